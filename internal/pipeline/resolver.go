package pipeline

import "context"

// Resolver turns a source descriptor into the bytes of one artifact
type Resolver interface {
	// Fetch returns the payload for descriptor
	Fetch(ctx context.Context, descriptor string) ([]byte, error)

	// Name returns the resolver name
	Name() string
}

// ResolverFunc adapts a plain function to the Resolver interface
type ResolverFunc func(ctx context.Context, descriptor string) ([]byte, error)

// Fetch calls f
func (f ResolverFunc) Fetch(ctx context.Context, descriptor string) ([]byte, error) {
	return f(ctx, descriptor)
}

// Name returns "func"
func (f ResolverFunc) Name() string {
	return "func"
}
