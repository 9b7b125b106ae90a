// Package clientconfig builds HTTP client configurations.
//
// The builder tracks which required fields are set in its type parameters,
// so calling Build before both the base URL and the timeout are set does
// not compile:
//
//	cfg := clientconfig.Build(
//		clientconfig.WithTimeout(
//			clientconfig.WithBaseURL(clientconfig.NewBuilder(), "https://api.example.com"),
//			10*time.Second,
//		).WithLogging(true),
//	)
package clientconfig

import "time"

// Configuration is a complete client configuration.
type Configuration struct {
	BaseURL       string
	Timeout       time.Duration
	EnableLogging bool
}

// Phantom states for the base URL.
type (
	NoBaseURL  struct{}
	BaseURLSet struct{}
)

// Phantom states for the timeout.
type (
	NoTimeout  struct{}
	TimeoutSet struct{}
)

// Builder accumulates a Configuration. U tracks the base URL state and T
// the timeout state. Builders are values; every step returns a copy.
type Builder[U, T any] struct {
	baseURL       string
	timeout       time.Duration
	enableLogging bool
}

// NewBuilder starts a builder with no fields set.
func NewBuilder() Builder[NoBaseURL, NoTimeout] {
	return Builder[NoBaseURL, NoTimeout]{}
}

// WithBaseURL sets the base URL.
func WithBaseURL[U, T any](b Builder[U, T], url string) Builder[BaseURLSet, T] {
	return Builder[BaseURLSet, T]{
		baseURL:       url,
		timeout:       b.timeout,
		enableLogging: b.enableLogging,
	}
}

// WithTimeout sets the request timeout.
func WithTimeout[U, T any](b Builder[U, T], timeout time.Duration) Builder[U, TimeoutSet] {
	return Builder[U, TimeoutSet]{
		baseURL:       b.baseURL,
		timeout:       timeout,
		enableLogging: b.enableLogging,
	}
}

// WithLogging toggles request logging. It may be called in any state.
func (b Builder[U, T]) WithLogging(enabled bool) Builder[U, T] {
	b.enableLogging = enabled
	return b
}

// Build returns the configuration. Only a builder with both required
// fields set is accepted.
func Build(b Builder[BaseURLSet, TimeoutSet]) Configuration {
	return Configuration{
		BaseURL:       b.baseURL,
		Timeout:       b.timeout,
		EnableLogging: b.enableLogging,
	}
}
