package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/domain"
)

// ContextSize selects which FANToM context a question is asked over.
type ContextSize string

const (
	ContextShort ContextSize = "short"
	ContextFull  ContextSize = "full"
)

// ParseContextSize validates a context selector.
func ParseContextSize(s string) (ContextSize, error) {
	switch c := ContextSize(strings.ToLower(strings.TrimSpace(s))); c {
	case ContextShort, ContextFull:
		return c, nil
	case "":
		return ContextShort, nil
	}
	return "", fmt.Errorf("unknown context %q (want short or full)", s)
}

// FantomEntry is one FANToM belief question.
type FantomEntry struct {
	ID            int    `json:"id"`
	ShortContext  string `json:"short_context"`
	FullContext   string `json:"full_context"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	WrongAnswer   string `json:"wrong_answer"`
	Note          string `json:"note"`
}

// Context returns the conversation for the given selector.
func (e FantomEntry) Context(size ContextSize) string {
	if size == ContextFull {
		return e.FullContext
	}
	return e.ShortContext
}

// ParseFantom reads FANToM entries from r.
func ParseFantom(r io.Reader, logger *slog.Logger) ([]FantomEntry, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var out []FantomEntry
	err := decodeLines(r, logger, func(line int, e FantomEntry) {
		e.ID = line
		out = append(out, e)
	})
	return out, err
}

// LoadFantom reads a FANToM file and keeps the first n entries (all when
// n <= 0).
func LoadFantom(path string, n int, logger *slog.Logger) ([]FantomEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fantom file: %w", err)
	}
	defer f.Close()

	entries, err := ParseFantom(f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// ChoiceSet is a randomized two-option presentation.
type ChoiceSet struct {
	Choices      []domain.Choice
	CorrectIndex int
}

// GenerateChoices places the correct answer first or last at random and
// labels the options a and b.
func GenerateChoices(correct, wrong string, rng *rand.Rand) ChoiceSet {
	texts := []string{correct, wrong}
	idx := 0
	if rng.Intn(2) == 1 {
		texts = []string{wrong, correct}
		idx = 1
	}

	choices := make([]domain.Choice, len(texts))
	for i, t := range texts {
		choices[i] = domain.Choice{Label: string(rune('a' + i)), Text: t}
	}
	return ChoiceSet{Choices: choices, CorrectIndex: idx}
}

// Text renders the options one per line as "(a) text".
func (s ChoiceSet) Text() string {
	return domain.FormatChoices(s.Choices)
}

// Correct returns the correct option.
func (s ChoiceSet) Correct() domain.Choice {
	return s.Choices[s.CorrectIndex]
}
