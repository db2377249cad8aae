package harness_test

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/decompose/pkg/dataset"
	"github.com/aretw0/decompose/pkg/harness"
	"github.com/aretw0/decompose/pkg/methods"
	"github.com/aretw0/decompose/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreHitom(t *testing.T) {
	assert.True(t, harness.ScoreHitom("a: green_box", "green_box", "a"))
	assert.True(t, harness.ScoreHitom("The answer is GREEN_BOX", "green_box", "b"))
	assert.True(t, harness.ScoreHitom("b", "green_box", "b"))
	assert.False(t, harness.ScoreHitom("c: red_crate", "green_box", "a"))
	assert.False(t, harness.ScoreHitom("", "green_box", "a"))
}

func TestScoreFantom(t *testing.T) {
	correct, skip := harness.ScoreFantom("Answer: (b) they don't know", "b")
	assert.True(t, correct)
	assert.False(t, skip)

	correct, skip = harness.ScoreFantom("a", "b")
	assert.False(t, correct)
	assert.False(t, skip)

	_, skip = harness.ScoreFantom("Answer: **", "a")
	assert.True(t, skip)
}

func TestHitomCases(t *testing.T) {
	cases := harness.HitomCases([]dataset.HitomEntry{
		{ID: 1, Story: []string{"s."}, Question: "q", Choices: []string{"A. box", "B. crate"}, Answer: "B. crate",
			Descriptor: dataset.Descriptor{Order: 2, Length: 1}, Tell: true},
		{ID: 2, Choices: []string{"A. box"}, Answer: "A. missing"},
	})
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "b: crate", c.Correct)
	assert.Equal(t, "tell", c.Source)
	assert.Equal(t, []harness.Category{
		{Dimension: "order", Value: "2"},
		{Dimension: "length", Value: "1"},
		{Dimension: "tell", Value: "tell"},
	}, c.Categories)
	correct, _ := c.Score("b: crate")
	assert.True(t, correct)
}

func TestFantomCases(t *testing.T) {
	cases := harness.FantomCases([]dataset.FantomEntry{
		{ID: 4, ShortContext: "short", FullContext: "full", Question: "q", CorrectAnswer: "yes it is", WrongAnswer: "no"},
	}, dataset.ContextFull, rand.New(rand.NewSource(3)))
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "full", c.Problem.Story)
	letter := strings.Fields(c.Correct)[0]
	assert.Contains(t, c.Problem.Choices, "("+letter+") yes it is")
	correct, _ := c.Score("(" + letter + ")")
	assert.True(t, correct)
}

func fixedCases() []harness.Case {
	mk := func(id int, order string, want string) harness.Case {
		return harness.Case{
			ID:         id,
			Problem:    methods.Problem{Question: want},
			Correct:    want,
			Categories: []harness.Category{{Dimension: "order", Value: order}},
			Score: func(resp string) (bool, bool) {
				if resp == "" {
					return false, true
				}
				return resp == want, false
			},
		}
	}
	return []harness.Case{mk(1, "1", "a"), mk(2, "1", "b"), mk(3, "10", "a"), mk(4, "2", "skip"), mk(5, "2", "fail")}
}

// echoSolver answers "a" to everything, nothing to "skip" and fails on "fail".
var echoSolver = methods.SolverFunc(func(ctx context.Context, p methods.Problem) (string, error) {
	switch p.Question {
	case "skip":
		return "", nil
	case "fail":
		return "", errors.New("oracle down")
	}
	return "a", nil
})

func TestRunner_Run(t *testing.T) {
	path := harness.LogPath(t.TempDir(), "hitom", "baseline", 5, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.True(t, strings.HasSuffix(path, "hitom_baseline_5_20260102_030405.jsonl"))

	sink, err := harness.NewFileSink(path)
	require.NoError(t, err)

	var outcomes []harness.Outcome
	r := harness.New(echoSolver, harness.WithSink(sink), harness.WithObserver(func(o harness.Outcome) {
		outcomes = append(outcomes, o)
	}))

	rep, err := r.Run(context.Background(), fixedCases())
	require.NoError(t, err)

	assert.Equal(t, harness.Tally{Correct: 2, Total: 3}, rep.Overall)
	assert.Equal(t, 1, rep.Errors)
	assert.Equal(t, 1, rep.Skipped)
	assert.InDelta(t, 66.67, rep.Overall.Accuracy(), 0.01)
	assert.Len(t, outcomes, 5)

	require.Len(t, rep.Dimensions, 1)
	order := rep.Dimensions[0]
	assert.Equal(t, "order", order.Name)
	require.Len(t, order.Buckets, 2)
	assert.Equal(t, "1", order.Buckets[0].Value)
	assert.Equal(t, harness.Tally{Correct: 1, Total: 2}, order.Buckets[0].Tally)
	assert.Equal(t, "10", order.Buckets[1].Value)

	rows, err := harness.ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 4, "skipped cases are not logged")
	assert.True(t, rows[0].IsCorrect)
	assert.Equal(t, "oracle down", rows[3].Error)
}

func TestRunner_RowsKeepHitomSource(t *testing.T) {
	entry := func(tell bool) dataset.HitomEntry {
		return dataset.HitomEntry{ID: 1, Story: []string{"s."}, Question: "q", Choices: []string{"A. box", "B. crate"},
			Answer: "A. box", Descriptor: dataset.Descriptor{Order: 0, Length: 1}, Tell: tell}
	}
	cases := harness.HitomCases([]dataset.HitomEntry{entry(true), entry(false)})
	require.Len(t, cases, 2)

	sink, err := harness.NewFileSink(filepath.Join(t.TempDir(), "out.jsonl"))
	require.NoError(t, err)
	_, err = harness.New(echoSolver, harness.WithSink(sink)).Run(context.Background(), cases)
	require.NoError(t, err)

	rows, err := harness.ReadRows(sink.Path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, rows[0].ID, rows[1].ID)
	assert.ElementsMatch(t, []string{"tell", "no_tell"}, []string{rows[0].Source, rows[1].Source})
}

func TestRunner_Parallel(t *testing.T) {
	var cases []harness.Case
	for i := 0; i < 40; i++ {
		cases = append(cases, fixedCases()[0])
	}

	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	solver := methods.SolverFunc(func(ctx context.Context, p methods.Problem) (string, error) {
		mu.Lock()
		running++
		peak = max(peak, running)
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		running--
		mu.Unlock()
		return "a", nil
	})

	sink, err := harness.NewFileSink(filepath.Join(t.TempDir(), "out.jsonl"))
	require.NoError(t, err)
	rep, err := harness.New(solver, harness.WithParallel(4), harness.WithSink(sink)).Run(context.Background(), cases)
	require.NoError(t, err)
	assert.Equal(t, 40, rep.Overall.Correct)
	assert.LessOrEqual(t, peak, 4)

	rows, err := harness.ReadRows(sink.Path)
	require.NoError(t, err)
	assert.Len(t, rows, 40)
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := harness.New(echoSolver).Run(ctx, fixedCases())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rep.Overall.Total)
}

type countingLocker struct {
	mu    sync.Mutex
	locks int
	keys  []string
}

func (l *countingLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locks++
	l.keys = append(l.keys, key)
	return func(context.Context) error { return nil }, nil
}

func TestFileSink_Locker(t *testing.T) {
	locker := &countingLocker{}
	sink, err := harness.NewFileSink(filepath.Join(t.TempDir(), "nested", "log.jsonl"), harness.WithLocker(locker, "shared"))
	require.NoError(t, err)

	require.NoError(t, sink.Write(context.Background(), harness.Row{ID: 1}))
	require.NoError(t, sink.Write(context.Background(), harness.Row{ID: 2}))
	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, []string{"shared", "shared"}, locker.keys)
}
