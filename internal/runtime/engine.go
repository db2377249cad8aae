package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/adapters/memory"
	"github.com/aretw0/decompose/pkg/disamb"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/aretw0/decompose/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the recursive belief decomposer.
// It holds no per-task state and is safe for concurrent use.
type Engine struct {
	oracle       ports.Oracle
	mode         mode.Mode
	memo         *disamb.Memo
	cache        ports.DisambiguationCache
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	maxRecursion int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithDisambiguationCache sets the cache backing the disambiguation memo.
// Defaults to an in-memory cache.
func WithDisambiguationCache(cache ports.DisambiguationCache) EngineOption {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithDefaultMaxRecursion sets the budget used by tasks that don't set one.
func WithDefaultMaxRecursion(n int) EngineOption {
	return func(e *Engine) {
		e.maxRecursion = n
	}
}

// NewEngine creates an engine for one mode. The oracle is never constructed
// here; callers inject it with whatever middleware they need.
func NewEngine(oracle ports.Oracle, m mode.Mode, opts ...EngineOption) *Engine {
	e := &Engine{
		oracle: oracle,
		mode:   m,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = memory.NewCache()
	}
	e.memo = disamb.NewMemo(e.cache, disamb.WithLogger(e.logger))
	return e
}

// Mode returns the variant the engine was built with.
func (e *Engine) Mode() mode.Mode {
	return e.mode
}

// StartTask runs the decomposition of one task to a label.
// Errors are *StageError values wrapping the oracle failure.
func (e *Engine) StartTask(ctx context.Context, task domain.Task) (domain.Result, error) {
	if strings.TrimSpace(task.Question) == "" {
		return domain.Result{}, domain.ErrEmptyQuestion
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.MaxRecursion <= 0 && e.maxRecursion > 0 {
		task.MaxRecursion = e.maxRecursion
	}

	run := &taskRun{engine: e, task: task, logger: e.logger.With("task_id", task.ID)}
	res, err := run.execute(ctx)
	res.TaskID = task.ID
	res.OracleCalls = run.calls
	if err != nil {
		run.logger.Error("Task failed", "oracle_calls", run.calls, "error", err)
		return res, err
	}
	run.logger.Debug("Task finished", "label", res.Label, "layers", len(res.Layers), "oracle_calls", run.calls)
	return res, nil
}

// Disambiguate returns the container sentences for a story, memoized.
func (e *Engine) Disambiguate(ctx context.Context, story string) ([]string, error) {
	sentences, err := e.memo.Sentences(ctx, disamb.Split(story))
	if err != nil {
		return nil, fmt.Errorf("disambiguation failed: %w", err)
	}
	return sentences, nil
}

func (e *Engine) disambiguationText(ctx context.Context, story string) (string, error) {
	if !e.mode.Disambiguates() {
		return "", nil
	}
	sentences, err := e.Disambiguate(ctx, story)
	if err != nil {
		return "", err
	}
	return disamb.Text(sentences), nil
}
