package harness

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/methods"
	"golang.org/x/sync/errgroup"
)

// Outcome classifies one evaluated case.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeSkipped Outcome = "skipped"
	OutcomeError   Outcome = "error"
)

// Runner evaluates cases with one solver.
type Runner struct {
	solver   methods.Solver
	sink     Sink
	parallel int
	logger   *slog.Logger
	observe  func(Outcome)
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink records every non-skipped case.
func WithSink(sink Sink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// WithParallel sets the number of concurrent cases. Values below 1 mean
// sequential execution.
func WithParallel(n int) Option {
	return func(r *Runner) {
		r.parallel = n
	}
}

// WithLogger sets the logger for progress and the final summary.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver is called once per evaluated case, e.g. to feed metrics.
func WithObserver(fn func(Outcome)) Option {
	return func(r *Runner) {
		r.observe = fn
	}
}

// New creates a Runner.
func New(solver methods.Solver, opts ...Option) *Runner {
	r := &Runner{
		solver:   solver,
		parallel: 1,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.parallel < 1 {
		r.parallel = 1
	}
	return r
}

// Evaluate runs a single case. A solver error is reported in the row and as
// OutcomeError.
func (r *Runner) Evaluate(ctx context.Context, c Case) (Row, Outcome) {
	row := Row{
		ID:            c.ID,
		Source:        c.Source,
		Question:      c.Problem.Question,
		Choices:       c.Problem.Choices,
		CorrectAnswer: c.Correct,
	}

	resp, err := r.solver.Solve(ctx, c.Problem)
	if err != nil {
		row.Error = err.Error()
		return row, OutcomeError
	}
	row.ReturnedAnswer = resp

	correct, skip := c.Score(resp)
	if skip {
		return row, OutcomeSkipped
	}
	row.IsCorrect = correct
	if correct {
		return row, OutcomeCorrect
	}
	return row, OutcomeWrong
}

// Run evaluates every case and returns the aggregated report. Failing cases
// are recorded and do not stop the run; a canceled context or a sink error
// does.
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	st := newStats()
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)

	for _, c := range cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			row, out := r.Evaluate(gctx, c)
			st.record(c, out)
			if r.observe != nil {
				r.observe(out)
			}

			n := done.Add(1)
			attrs := []any{"id", c.ID, "outcome", out, "done", n, "total", len(cases)}
			if row.Error != "" {
				attrs = append(attrs, "error", row.Error)
			}
			r.logger.Debug("Case evaluated", attrs...)

			if out == OutcomeSkipped || r.sink == nil {
				return nil
			}
			return r.sink.Write(gctx, row)
		})
	}

	err := g.Wait()
	rep := st.report()
	r.logger.Info("Evaluation finished",
		"accuracy", rep.Overall.Accuracy(),
		"correct", rep.Overall.Correct,
		"total", rep.Overall.Total,
		"errors", rep.Errors,
		"skipped", rep.Skipped)
	return rep, err
}
