package decompose

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/decompose/internal/runtime"
	loamAdapter "github.com/aretw0/decompose/pkg/adapters/loam"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/aretw0/decompose/pkg/ports"
)

// Engine is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime      *runtime.Engine
	mode         mode.Mode
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	cache        ports.DisambiguationCache
	promptDir    string
	overrides    map[mode.Key]string
	maxRecursion int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDisambiguationCache shares disambiguation results through cache,
// e.g. Redis across evaluation processes.
func WithDisambiguationCache(cache ports.DisambiguationCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithMaxRecursion sets the depth budget for tasks that don't carry one.
func WithMaxRecursion(n int) Option {
	return func(e *Engine) {
		e.maxRecursion = n
	}
}

// WithPromptDir loads prompt overrides from a Loam repository at dir.
func WithPromptDir(dir string) Option {
	return func(e *Engine) {
		e.promptDir = dir
	}
}

// WithPrompts overrides individual templates. Applied after WithPromptDir.
func WithPrompts(texts map[mode.Key]string) Option {
	return func(e *Engine) {
		e.overrides = texts
	}
}

// New initializes an Engine for one mode. The oracle is injected as-is;
// wrap it with oracle.Retry for production use.
func New(oracle ports.Oracle, m mode.Mode, opts ...Option) (*Engine, error) {
	if oracle == nil {
		return nil, fmt.Errorf("oracle is required")
	}

	eng := &Engine{mode: m}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("mode", string(m.Name()))

	if eng.promptDir != "" {
		loader, err := loamAdapter.Open(eng.promptDir)
		if err != nil {
			return nil, err
		}
		if eng.mode, err = loader.Apply(context.Background(), eng.mode); err != nil {
			return nil, fmt.Errorf("failed to apply prompt overrides: %w", err)
		}
	}
	if len(eng.overrides) > 0 {
		var err error
		if eng.mode, err = eng.mode.Override(eng.overrides); err != nil {
			return nil, fmt.Errorf("failed to apply prompt overrides: %w", err)
		}
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithDefaultMaxRecursion(eng.maxRecursion),
	}
	if eng.cache != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithDisambiguationCache(eng.cache))
	}

	eng.runtime = runtime.NewEngine(oracle, eng.mode, runtimeOpts...)
	return eng, nil
}

// StartTask answers one story + question pair.
func (e *Engine) StartTask(ctx context.Context, task domain.Task) (domain.Result, error) {
	return e.runtime.StartTask(ctx, task)
}

// Disambiguate returns the container sentences of a HiToM-style story.
func (e *Engine) Disambiguate(ctx context.Context, story string) ([]string, error) {
	return e.runtime.Disambiguate(ctx, story)
}

// Mode returns the (possibly customized) mode the engine runs.
func (e *Engine) Mode() mode.Mode {
	return e.mode
}
