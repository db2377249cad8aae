package methods

import (
	"context"
	"slices"
	"strings"

	"github.com/aretw0/decompose/pkg/dataset"
)

// simtom takes the perspective of the question's subject before answering.
// Questions whose subject is not a character are asked directly.
func (s *solver) simtom(ctx context.Context, p Problem) (string, error) {
	disamb := ""
	if s.kind == dataset.KindHitom {
		sentences, err := s.runner.Disambiguate(ctx, p.Story)
		if err != nil {
			return "", err
		}
		disamb = strings.Join(sentences, "\n")
	}
	question := p.Question + "\nChoose from the following:\n" + p.Choices + "\n"

	subject := questionSubject(s.kind, p.Question)
	resp, err := s.ask(ctx, characterPrompt, promptData{Story: p.Story})
	if err != nil {
		return "", err
	}
	characters := strings.Split(strings.ReplaceAll(resp, " ", ""), ",")

	if subject == "" || !slices.Contains(characters, subject) {
		return s.ask(ctx, s.prompts.truth, promptData{Story: p.Story, Question: question})
	}

	perspective, err := s.ask(ctx, s.prompts.perspective, promptData{
		Story:         p.Story,
		Disambiguated: disamb,
		Character:     subject,
	})
	if err != nil {
		return "", err
	}
	return s.ask(ctx, s.prompts.simulate, promptData{
		Disambiguated: disamb,
		Perspective:   perspective,
		Character:     subject,
		Question:      question,
	})
}

// questionSubject picks the agent a question is about by word position:
// the 4th word for HiToM and the 3rd for FANToM.
func questionSubject(kind dataset.Kind, question string) string {
	idx := 2
	if kind == dataset.KindHitom {
		idx = 3
	}
	words := strings.Split(question, " ")
	if idx >= len(words) {
		return ""
	}
	return words[idx]
}
