package harness

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/aretw0/decompose/pkg/answer"
	"github.com/aretw0/decompose/pkg/dataset"
	"github.com/aretw0/decompose/pkg/methods"
)

// Category places a case in one bucket of a reporting dimension, e.g.
// {"order", "2"}.
type Category struct {
	Dimension string
	Value     string
}

// Case is one scored problem. Source names the file the entry came from
// when a benchmark has several, e.g. "tell" and "no_tell".
type Case struct {
	ID         int
	Source     string
	Problem    methods.Problem
	Correct    string
	Categories []Category

	// Score judges a response. skip drops the case from the tallies.
	Score func(response string) (correct, skip bool)
}

// ScoreHitom counts a result correct when it contains the answer text or
// starts with the expected option letter.
func ScoreHitom(result, answerText, label string) bool {
	result = strings.TrimSpace(strings.ToLower(result))
	if answerText != "" && strings.Contains(result, strings.ToLower(answerText)) {
		return true
	}
	return result != "" && label != "" && result[:1] == label
}

// ScoreFantom applies the correctness predicate. Responses that normalize to
// nothing are skipped.
func ScoreFantom(response, letter string) (correct, skip bool) {
	if answer.Normalize(response) == "" {
		return false, true
	}
	return answer.IsCorrect(response, letter), false
}

// HitomCases turns HiToM entries into cases reported by order, length and
// tell/no_tell. Entries whose answer matches no choice are dropped.
func HitomCases(entries []dataset.HitomEntry) []Case {
	cases := make([]Case, 0, len(entries))
	for _, e := range entries {
		label, err := e.ExpectedLabel()
		if err != nil {
			continue
		}
		text := e.AnswerText()
		tell := "no_tell"
		if e.Tell {
			tell = "tell"
		}
		cases = append(cases, Case{
			ID:     e.ID,
			Source: tell,
			Problem: methods.Problem{
				Story:    e.StoryText(),
				Question: e.Question,
				Choices:  e.ChoicesText(),
				Note:     e.Note,
			},
			Correct: label + ": " + text,
			Categories: []Category{
				{Dimension: "order", Value: strconv.Itoa(e.Descriptor.Order)},
				{Dimension: "length", Value: strconv.Itoa(e.Descriptor.Length)},
				{Dimension: "tell", Value: tell},
			},
			Score: func(response string) (bool, bool) {
				return ScoreHitom(response, text, label), false
			},
		})
	}
	return cases
}

// FantomCases turns FANToM entries into cases with randomized choices.
func FantomCases(entries []dataset.FantomEntry, size dataset.ContextSize, rng *rand.Rand) []Case {
	cases := make([]Case, 0, len(entries))
	for _, e := range entries {
		set := dataset.GenerateChoices(e.CorrectAnswer, e.WrongAnswer, rng)
		letter := set.Correct().Label
		cases = append(cases, Case{
			ID: e.ID,
			Problem: methods.Problem{
				Story:    e.Context(size),
				Question: e.Question,
				Choices:  set.Text(),
				Note:     e.Note,
			},
			Correct: letter + " " + e.CorrectAnswer,
			Score: func(response string) (bool, bool) {
				return ScoreFantom(response, letter)
			},
		})
	}
	return cases
}
