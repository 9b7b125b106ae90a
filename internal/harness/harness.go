package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/roach88/typedsql/internal/catalog"
	"github.com/roach88/typedsql/internal/ir"
	"github.com/roach88/typedsql/internal/schema"
)

// DefaultWorkers bounds RunAll when no worker count is given.
const DefaultWorkers = 4

// Harness is the scenario execution engine.
//
// A Harness caches registries loaded from CUE schema directories, so
// scenarios that share a schema compile it once. It is safe for concurrent
// use.
type Harness struct {
	logger *slog.Logger

	mu      sync.Mutex
	schemas map[string]*schema.Registry
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		schemas: make(map[string]*schema.Registry),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(context.Background(), scenario)
}

// Run executes a scenario and returns the result.
//
// A query that fails to build is an outcome, not an error: its code and
// message are recorded on the Result for error_code assertions. Run only
// returns an error when the scenario cannot be executed at all, for example
// when its schema fails to load.
//
// Execution flow:
// 1. Resolve the registry (built-in catalog or cached CUE schema)
// 2. Apply the query steps to a runtime-checked builder
// 3. Render SQL (inline or parameterized)
// 4. Evaluate assertions
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reg, err := h.registry(scenario.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	result := NewResult()
	if scenario.Params {
		result.SQL, result.Params, err = scenario.Query.RenderParams(reg)
	} else {
		result.SQL, err = scenario.Query.Render(reg)
	}
	if err != nil {
		result.SQL, result.Params = "", nil
		result.ErrorMessage = err.Error()
		if code, ok := ir.CodeOf(err); ok {
			result.ErrorCode = string(code)
		}
		h.logger.Debug("scenario build failed",
			"scenario", scenario.Name,
			"error_code", result.ErrorCode,
			"error", err,
		)
	} else {
		h.logger.Debug("scenario rendered",
			"scenario", scenario.Name,
			"sql", result.SQL,
			"params", len(result.Params),
		)
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"pass", result.Pass,
	)
	return result, nil
}

// Outcome pairs a scenario with its result or execution error.
type Outcome struct {
	Scenario *Scenario
	Result   *Result
	Err      error
}

// RunAll executes scenarios concurrently on a pool of at most workers
// goroutines (DefaultWorkers if workers < 1). Outcomes are returned in
// input order.
//
// Cancelling ctx stops scenarios that have not started; they report
// ctx.Err().
func (h *Harness) RunAll(ctx context.Context, scenarios []*Scenario, workers int) ([]Outcome, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		h.logger.Error("scenario worker panic", "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]Outcome, len(scenarios))
	var wg sync.WaitGroup

	for i, scenario := range scenarios {
		outcomes[i].Scenario = scenario
		outcomes[i].Err = fmt.Errorf("scenario %q did not complete", scenario.Name)

		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			result, err := h.Run(ctx, scenario)
			outcomes[i].Result = result
			outcomes[i].Err = err
		}); err != nil {
			// Balance the WaitGroup; the scenario never ran.
			wg.Done()
			outcomes[i].Err = fmt.Errorf("failed to schedule scenario %q: %w", scenario.Name, err)
		}
	}

	wg.Wait()

	h.logger.Info("scenarios completed", "count", len(scenarios), "workers", workers)
	return outcomes, nil
}

// registry returns the registry for a schema directory.
func (h *Harness) registry(dir string) (*schema.Registry, error) {
	if dir == "" {
		return catalog.Registry(), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if reg, ok := h.schemas[dir]; ok {
		return reg, nil
	}
	reg, err := schema.LoadCUE(dir)
	if err != nil {
		return nil, err
	}
	h.logger.Debug("schema loaded", "dir", dir, "tables", len(reg.Tables()))
	h.schemas[dir] = reg
	return reg, nil
}
