package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"
)

// UserSession identifies a signed-in user.
type UserSession struct {
	ID       string
	UserName string
}

// Ticker is the subset of time.Ticker used by periodic repositories.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// UserSessionRepository emits Loading and then a new session on every tick.
//
// Session IDs count up from "0" across all streams of one repository, with
// user names "User_0", "User_1", ...
type UserSessionRepository struct {
	newTicker func() Ticker
	logger    *slog.Logger
	counter   atomic.Int64
}

// Option configures a UserSessionRepository.
type Option func(*UserSessionRepository)

// WithTicker replaces the interval ticker, typically with
// testutil.ManualTicker.
func WithTicker(newTicker func() Ticker) Option {
	return func(r *UserSessionRepository) {
		r.newTicker = newTicker
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *UserSessionRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewUserSessionRepository creates a repository that produces a session
// every interval.
func NewUserSessionRepository(interval time.Duration, opts ...Option) *UserSessionRepository {
	r := &UserSessionRepository{
		newTicker: func() Ticker { return timeTicker{t: time.NewTicker(interval)} },
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stream implements Repository.
func (r *UserSessionRepository) Stream(ctx context.Context) <-chan DataState[UserSession] {
	ch := make(chan DataState[UserSession])
	go func() {
		defer close(ch)
		ticker := r.newTicker()
		defer ticker.Stop()

		if !send[UserSession](ctx, ch, Loading[UserSession]{}) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				r.logger.Debug("session stream stopped", "error", ctx.Err())
				return
			case <-ticker.C():
				n := r.counter.Add(1) - 1
				session := UserSession{
					ID:       strconv.FormatInt(n, 10),
					UserName: fmt.Sprintf("User_%d", n),
				}
				r.logger.Debug("session emitted", "id", session.ID)
				if !send[UserSession](ctx, ch, Success[UserSession]{Data: session}) {
					return
				}
			}
		}
	}()
	return ch
}
