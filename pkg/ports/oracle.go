package ports

import "context"

// Oracle is the external text-generation capability.
// It may fail transiently; retrying is the job of a middleware, not the core.
type Oracle interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, prompt string) (string, error)

// Respond calls f(ctx, prompt).
func (f OracleFunc) Respond(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
