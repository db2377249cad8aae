package runtime

import (
	"fmt"

	"github.com/aretw0/decompose/pkg/domain"
)

// StageError identifies where a task failed.
type StageError struct {
	Stage domain.Stage
	Depth int
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s at depth %d: %v", e.Stage, e.Depth, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
