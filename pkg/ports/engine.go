package ports

import (
	"context"

	"github.com/aretw0/decompose/pkg/domain"
)

// TaskRunner is the call surface transport adapters (HTTP, MCP) need.
type TaskRunner interface {
	// StartTask runs one story + question pair to a label.
	StartTask(ctx context.Context, task domain.Task) (domain.Result, error)

	// Disambiguate returns the containment sentences for a story.
	Disambiguate(ctx context.Context, story string) ([]string, error)
}
