package answer_test

import (
	"testing"

	"github.com/aretw0/decompose/pkg/answer"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A", "a"},
		{"  (B) The kitchen.  ", "(b) the kitchen"},
		{"Reasoning here. Answer: A**.", "a"},
		{"Answer: **A**.", "**a"},
		{"  .hidden", ".hidden"},
		{"*b*", "*b"},
		{"a. .", "a"},
		{"b \u00a0.", "b"},
		{"I think so.\nAnswer: b", "b"},
		{"Answer: A. Answer: B", "a. answer: b"},
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := answer.Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, answer.Normalize(got), "Normalize must be idempotent")
		})
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name     string
		response string
		letter   string
		want     bool
	}{
		{"exact", "a", "a", true},
		{"upper", "A", "a", true},
		{"paren suffix", "a) they know", "a", true},
		{"period suffix", "b. the garden", "b", true},
		{"colon suffix", "A: green_box", "a", true},
		{"comma suffix", "b, because", "b", true},
		{"wrapped", "(a) Yes", "a", true},
		{"contained", "My choice is (b) the basket", "b", true},
		{"after marker", "Thinking... Answer: (A) yes", "a", true},
		{"other letter", "b", "a", false},
		{"word starting with letter", "apple", "a", false},
		{"empty", "", "a", false},
		{"empty letter", "a", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, answer.IsCorrect(tt.response, tt.letter))
		})
	}
}

func TestDecisionToken(t *testing.T) {
	tok, ok := answer.DecisionToken("Alice is in the kitchen. Answer: Yes.")
	assert.True(t, ok)
	assert.Equal(t, "yes", tok)

	tok, ok = answer.DecisionToken("Answer: maybe")
	assert.True(t, ok)
	assert.Equal(t, "maybe", tok)

	_, ok = answer.DecisionToken("Alice probably does not know.")
	assert.False(t, ok)
}

func TestYesNo(t *testing.T) {
	yes, ok := answer.YesNo(" Yes. ")
	assert.True(t, ok)
	assert.True(t, yes)

	yes, ok = answer.YesNo("no")
	assert.True(t, ok)
	assert.False(t, yes)

	_, ok = answer.YesNo("probably yes")
	assert.False(t, ok)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "a: green_box", answer.Label(" A: green_box. "))
	assert.Equal(t, "alice", answer.Clean("Alice."))
}
