// Package cli wires configuration into oracles, engines and evaluation runs
// for the decompose command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/decompose"
	"github.com/aretw0/decompose/internal/config"
	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/adapters/gemini"
	"github.com/aretw0/decompose/pkg/adapters/memory"
	"github.com/aretw0/decompose/pkg/adapters/openai"
	redisAdapter "github.com/aretw0/decompose/pkg/adapters/redis"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/aretw0/decompose/pkg/observability"
	"github.com/aretw0/decompose/pkg/oracle"
	"github.com/aretw0/decompose/pkg/ports"
)

// Options are the global command-line settings.
type Options struct {
	ConfigPath string
	Sets       []string
	LogLevel   string
	Debug      bool
}

// LoadConfig reads the config file, then the environment, then --set
// overrides, and validates the result.
func LoadConfig(opts Options, getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Set(opts.Sets); err != nil {
		return cfg, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Stack holds the shared services of one command invocation.
type Stack struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Oracle  ports.Oracle
	Cache   ports.DisambiguationCache
	Locker  ports.DistributedLocker

	debug   bool
	closers []func() error
}

// NewStack builds the oracle chain and caches described by cfg. The
// provider is wrapped with metrics and then with the retry policy, so every
// attempt is counted.
func NewStack(ctx context.Context, cfg config.Config, logger *slog.Logger, debug bool) (*Stack, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Stack{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		debug:   debug,
	}

	provider, err := NewOracle(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	delay, err := cfg.Delay()
	if err != nil {
		return nil, err
	}
	s.Oracle = oracle.Retry(
		observability.InstrumentOracle(provider, s.Metrics),
		oracle.WithAttempts(cfg.Retries),
		oracle.WithDelay(delay),
		oracle.WithLogger(logger),
	)

	if cfg.RedisAddr != "" {
		cache := redisAdapter.New(cfg.RedisAddr, "", 0)
		s.Cache = cache
		s.Locker = redisAdapter.NewLocker(cache.Client(), "decompose:")
		s.closers = append(s.closers, cache.Close)
		logger.Debug("Using redis for shared state", "address", cfg.RedisAddr)
	} else {
		s.Cache = memory.NewCache()
	}
	return s, nil
}

// NewOracle returns the bare provider client selected by cfg.Provider.
func NewOracle(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Oracle, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: float32(cfg.Temperature),
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return client, nil
	case config.ProviderOpenAI:
		return openai.New(openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Logger:      logger,
		}), nil
	case config.ProviderLocal:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = openai.LocalBaseURL
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = openai.LocalAPIKey
		}
		return openai.New(openai.Config{
			APIKey:      apiKey,
			BaseURL:     baseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Logger:      logger,
		}), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// Hooks returns the lifecycle hooks every engine of this stack carries:
// metrics always, debug logs with --debug.
func (s *Stack) Hooks() domain.LifecycleHooks {
	if s.debug {
		return domain.MergeHooks(s.Metrics.Hooks(), observability.LogHooks(s.Logger))
	}
	return s.Metrics.Hooks()
}

// Engine creates a decomposition engine for m sharing the stack's oracle
// and cache.
func (s *Stack) Engine(m mode.Mode) (*decompose.Engine, error) {
	opts := []decompose.Option{
		decompose.WithLogger(s.Logger),
		decompose.WithLifecycleHooks(s.Hooks()),
		decompose.WithDisambiguationCache(s.Cache),
		decompose.WithMaxRecursion(s.Config.MaxRecursion),
	}
	if s.Config.PromptDir != "" {
		opts = append(opts, decompose.WithPromptDir(s.Config.PromptDir))
	}
	return decompose.New(s.Oracle, m, opts...)
}

// ServeMetrics exposes the stack's metrics on addr until ctx is canceled.
// It returns immediately when addr is empty.
func (s *Stack) ServeMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		s.Logger.Info("Serving metrics", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("Metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// Close releases external connections.
func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
