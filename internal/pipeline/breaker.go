package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// breakerTimeout is how long an open breaker rejects calls before probing again
const breakerTimeout = 30 * time.Second

type breakerResolver struct {
	resolver Resolver
	cb       *gobreaker.CircuitBreaker
}

// WithCircuitBreaker wraps r so that after maxConsecutiveFailures failed
// fetches in a row further fetches fail immediately until the breaker
// half-opens again. Zero disables the breaker and returns r unchanged.
func WithCircuitBreaker(r Resolver, maxConsecutiveFailures uint32, logger *zap.Logger) Resolver {
	if maxConsecutiveFailures == 0 {
		return r
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        r.Name(),
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("resolver", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &breakerResolver{
		resolver: r,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Fetch runs the wrapped resolver through the breaker
func (b *breakerResolver) Fetch(ctx context.Context, descriptor string) ([]byte, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.resolver.Fetch(ctx, descriptor)
	})
	if err != nil {
		return nil, err
	}

	data, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected resolver result %T", result)
	}
	return data, nil
}

// Name returns the wrapped resolver name
func (b *breakerResolver) Name() string {
	return b.resolver.Name()
}
