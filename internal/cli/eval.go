package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/aretw0/decompose/pkg/dataset"
	"github.com/aretw0/decompose/pkg/harness"
	"github.com/aretw0/decompose/pkg/methods"
	"github.com/aretw0/decompose/pkg/mode"
)

// EvalOptions select what an evaluation run covers.
type EvalOptions struct {
	Dataset       dataset.Kind
	Method        methods.Name
	NumProblems   int
	Context       dataset.ContextSize
	Parallel      int
	RandomExample bool
	Seed          int64
}

// ModeFor returns the engine mode matching a benchmark.
func ModeFor(kind dataset.Kind) (mode.Mode, error) {
	return mode.Parse(string(kind), "")
}

// LoadCases reads the benchmark files named in the stack's config and
// turns the selected entries into cases.
func (s *Stack) LoadCases(opts EvalOptions, rng *rand.Rand) ([]harness.Case, error) {
	data := s.Config.Data
	switch opts.Dataset {
	case dataset.KindHitom:
		entries, err := dataset.LoadHitom(data.HitomTell, data.HitomNoTell, s.Logger)
		if err != nil {
			return nil, err
		}
		sample := dataset.SampleHitom(dataset.PartitionHitom(entries), opts.NumProblems, rng)
		return harness.HitomCases(sample), nil
	case dataset.KindFantom:
		entries, err := dataset.LoadFantom(data.Fantom, opts.NumProblems, s.Logger)
		if err != nil {
			return nil, err
		}
		return harness.FantomCases(entries, opts.Context, rng), nil
	}
	return nil, fmt.Errorf("unsupported dataset %q", opts.Dataset)
}

// Solver builds the solver for opts on top of the stack's oracle.
func (s *Stack) Solver(opts EvalOptions) (methods.Solver, error) {
	m, err := ModeFor(opts.Dataset)
	if err != nil {
		return nil, err
	}
	engine, err := s.Engine(m)
	if err != nil {
		return nil, err
	}
	return methods.New(opts.Method, opts.Dataset, s.Oracle, engine)
}

// Eval runs a full evaluation and returns its report. With RandomExample it
// evaluates a single random case, prints it to out and returns a report
// without a result log.
func (s *Stack) Eval(ctx context.Context, opts EvalOptions, out io.Writer) (*harness.Report, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cases, err := s.LoadCases(opts, rng)
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("no %s entries selected", opts.Dataset)
	}

	solver, err := s.Solver(opts)
	if err != nil {
		return nil, err
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = s.Config.Parallel
	}
	runOpts := []harness.Option{
		harness.WithParallel(parallel),
		harness.WithLogger(s.Logger),
		harness.WithObserver(func(o harness.Outcome) {
			s.Metrics.ObserveTask(string(o))
		}),
	}

	if opts.RandomExample {
		c := cases[rng.Intn(len(cases))]
		return s.example(ctx, solver, c, opts, out, runOpts)
	}

	path := harness.LogPath(s.Config.ResultsDir, string(opts.Dataset), string(opts.Method), len(cases), time.Now())
	var sinkOpts []harness.SinkOption
	if s.Locker != nil {
		sinkOpts = append(sinkOpts, harness.WithLocker(s.Locker, path))
	}
	sink, err := harness.NewFileSink(path, sinkOpts...)
	if err != nil {
		return nil, err
	}
	runOpts = append(runOpts, harness.WithSink(sink))

	s.Logger.Info("Starting evaluation",
		"dataset", opts.Dataset,
		"method", opts.Method,
		"cases", len(cases),
		"parallel", parallel,
		"seed", seed)

	rep, err := harness.New(solver, runOpts...).Run(ctx, cases)
	if rep != nil {
		rep.Dataset = string(opts.Dataset)
		rep.Method = string(opts.Method)
		rep.LogPath = path
	}
	return rep, err
}

// lastRow keeps the most recent row written to it.
type lastRow struct {
	row harness.Row
	ok  bool
}

func (l *lastRow) Write(_ context.Context, row harness.Row) error {
	l.row, l.ok = row, true
	return nil
}

func (s *Stack) example(ctx context.Context, solver methods.Solver, c harness.Case, opts EvalOptions, out io.Writer, runOpts []harness.Option) (*harness.Report, error) {
	fmt.Fprintf(out, "Story:\n%s\n\n", c.Problem.Story)
	fmt.Fprintf(out, "Question: %s\n", c.Problem.Question)
	fmt.Fprintf(out, "Choices:\n%s\n\n", c.Problem.Choices)

	capture := &lastRow{}
	runOpts = append(runOpts, harness.WithSink(capture))
	rep, err := harness.New(solver, runOpts...).Run(ctx, []harness.Case{c})
	if err != nil {
		return rep, err
	}
	rep.Dataset = string(opts.Dataset)
	rep.Method = string(opts.Method)

	fmt.Fprintf(out, "Correct answer: %s\n", c.Correct)
	switch {
	case !capture.ok:
		fmt.Fprintln(out, "Returned answer: (empty, skipped)")
	case capture.row.Error != "":
		fmt.Fprintf(out, "Error: %s\n", capture.row.Error)
	default:
		fmt.Fprintf(out, "Returned answer: %s\n", capture.row.ReturnedAnswer)
		fmt.Fprintf(out, "Correct: %t\n", capture.row.IsCorrect)
	}
	return rep, nil
}
