package methods_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/decompose/pkg/dataset"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/methods"
	"github.com/aretw0/decompose/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	tasks     []domain.Task
	sentences []string
	label     string
	err       error
}

func (f *fakeRunner) StartTask(_ context.Context, task domain.Task) (domain.Result, error) {
	f.tasks = append(f.tasks, task)
	return domain.Result{Label: f.label}, f.err
}

func (f *fakeRunner) Disambiguate(_ context.Context, _ string) ([]string, error) {
	return f.sentences, f.err
}

const hitomStory = "Emma entered the den.\nThe pear is in the blue_box."

func TestParse(t *testing.T) {
	n, err := methods.Parse("CoT")
	require.NoError(t, err)
	assert.Equal(t, methods.CoT, n)

	_, err = methods.Parse("tree-of-thought")
	assert.ErrorIs(t, err, domain.ErrUnknownMethod)
}

func TestNew_Unknown(t *testing.T) {
	_, err := methods.New("magic", dataset.KindHitom, oracle.NewScripted(), &fakeRunner{})
	assert.ErrorIs(t, err, domain.ErrUnknownMethod)

	_, err = methods.New(methods.Baseline, "tomi", oracle.NewScripted(), &fakeRunner{})
	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}

func TestBaseline_HitomPrependsDisambiguation(t *testing.T) {
	o := oracle.NewScripted().On("Please provide answer without explanations", " A: blue_box. ")
	runner := &fakeRunner{sentences: []string{"The blue_box is in the den."}}

	s, err := methods.New(methods.Baseline, dataset.KindHitom, o, runner)
	require.NoError(t, err)

	resp, err := s.Solve(context.Background(), methods.Problem{
		Story:    hitomStory,
		Question: "Where is the pear really?",
		Choices:  "A. blue_box\nB. red_crate",
	})
	require.NoError(t, err)
	assert.Equal(t, "A: blue_box", resp)
	assert.Equal(t, 1, o.CountMatching("Story: The blue_box is in the den.\nEmma entered the den."))
}

func TestCoT_FantomTwoCalls(t *testing.T) {
	o := oracle.NewScripted().
		On("This is the provided explanation", "(b)").
		On("Think step-by-step", "Kim left, so she does not know. (b)")
	runner := &fakeRunner{}

	s, err := methods.New(methods.CoT, dataset.KindFantom, o, runner)
	require.NoError(t, err)

	resp, err := s.Solve(context.Background(), methods.Problem{Story: "Kim: hi", Question: "q", Choices: "(a) x\n(b) y"})
	require.NoError(t, err)
	assert.Equal(t, "(b)", resp)
	assert.Equal(t, 2, o.CallCount())
	assert.Equal(t, 1, o.CountMatching("explanation for a question: Kim left"))
}

func TestSimToM_RealityQuestion(t *testing.T) {
	o := oracle.NewScripted().
		On("What are the characters", "Emma, Jack").
		On("Based on the above information, answer the following question", "A: blue_box")
	runner := &fakeRunner{sentences: []string{"The blue_box is in the den."}}

	s, err := methods.New(methods.SimToM, dataset.KindHitom, o, runner)
	require.NoError(t, err)

	resp, err := s.Solve(context.Background(), methods.Problem{Story: hitomStory, Question: "Where is the pear really?", Choices: "A. blue_box"})
	require.NoError(t, err)
	assert.Equal(t, "A: blue_box", resp)
	assert.Equal(t, 2, o.CallCount())
	assert.Equal(t, 0, o.CountMatching("You are"))
}

func TestSimToM_PerspectiveTaking(t *testing.T) {
	o := oracle.NewScripted().
		On("What are the characters", "Kim, Lee").
		On("What events does Kim know about", "Kim: hi").
		On("You are Kim.", "B: Kim does not know")

	s, err := methods.New(methods.SimToM, dataset.KindFantom, o, &fakeRunner{})
	require.NoError(t, err)

	resp, err := s.Solve(context.Background(), methods.Problem{
		Story:    "Kim: hi\nLee: bye",
		Question: "What does Kim believe about the trip?",
		Choices:  "(a) x\n(b) y",
	})
	require.NoError(t, err)
	assert.Equal(t, "B: Kim does not know", resp)
	assert.Equal(t, 3, o.CallCount())
	assert.Equal(t, 1, o.CountMatching("Choose from the following:\n(a) x\n(b) y"))
}

func TestDecompose_UsesRunner(t *testing.T) {
	runner := &fakeRunner{label: "a: blue_box"}
	s, err := methods.New(methods.Decompose, dataset.KindHitom, oracle.NewScripted(), runner)
	require.NoError(t, err)

	resp, err := s.Solve(context.Background(), methods.Problem{Story: hitomStory, Question: "q", Choices: "c", Note: "rules"})
	require.NoError(t, err)
	assert.Equal(t, "a: blue_box", resp)
	require.Len(t, runner.tasks, 1)
	assert.Equal(t, "rules", runner.tasks[0].Note)

	fantom, err := methods.New(methods.Decompose, dataset.KindFantom, oracle.NewScripted(), runner)
	require.NoError(t, err)
	_, err = fantom.Solve(context.Background(), methods.Problem{Story: "s", Question: "q", Note: "ignored"})
	require.NoError(t, err)
	assert.Empty(t, runner.tasks[1].Note)
}

func TestSolve_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	o := oracle.NewScripted().FailOn("", boom)

	s, err := methods.New(methods.Baseline, dataset.KindFantom, o, &fakeRunner{})
	require.NoError(t, err)
	_, err = s.Solve(context.Background(), methods.Problem{Story: "s", Question: "q"})
	assert.ErrorIs(t, err, boom)

	d, err := methods.New(methods.Decompose, dataset.KindFantom, o, &fakeRunner{err: boom})
	require.NoError(t, err)
	_, err = d.Solve(context.Background(), methods.Problem{Story: "s", Question: "q"})
	assert.ErrorIs(t, err, boom)
}
