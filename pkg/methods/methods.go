// Package methods implements the answering strategies compared by the
// evaluation harness: a direct prompt, chain of thought, perspective-taking
// simulation and recursive belief decomposition.
package methods

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/aretw0/decompose/pkg/dataset"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/ports"
)

// Name identifies an answering method.
type Name string

const (
	Baseline  Name = "baseline"
	CoT       Name = "cot"
	SimToM    Name = "simtom"
	Decompose Name = "decompose"
)

// Names lists the supported methods.
var Names = []Name{Baseline, CoT, SimToM, Decompose}

// Parse validates a method name.
func Parse(name string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Names {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownMethod, name)
}

// Problem is one benchmark question as the methods see it.
type Problem struct {
	Story    string
	Question string
	Choices  string
	Note     string
}

// Solver answers a Problem with free-form text the harness then scores.
type Solver interface {
	Solve(ctx context.Context, p Problem) (string, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(ctx context.Context, p Problem) (string, error)

// Solve implements Solver.
func (f SolverFunc) Solve(ctx context.Context, p Problem) (string, error) {
	return f(ctx, p)
}

// New builds the solver for a method and benchmark. The oracle serves the
// prompt-based methods; the runner serves decompose and the HiToM
// disambiguation step.
func New(name Name, kind dataset.Kind, oracle ports.Oracle, runner ports.TaskRunner) (Solver, error) {
	var tmpl promptSet
	switch kind {
	case dataset.KindHitom:
		tmpl = hitomPrompts
	case dataset.KindFantom:
		tmpl = fantomPrompts
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDataset, kind)
	}

	s := &solver{kind: kind, oracle: oracle, runner: runner, prompts: tmpl}
	switch name {
	case Baseline:
		return SolverFunc(s.baseline), nil
	case CoT:
		return SolverFunc(s.cot), nil
	case SimToM:
		return SolverFunc(s.simtom), nil
	case Decompose:
		return SolverFunc(s.decompose), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMethod, name)
}

type solver struct {
	kind    dataset.Kind
	oracle  ports.Oracle
	runner  ports.TaskRunner
	prompts promptSet
}

type promptData struct {
	Story         string
	Question      string
	Choices       string
	Note          string
	Response      string
	Character     string
	Perspective   string
	Disambiguated string
}

func (s *solver) ask(ctx context.Context, tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	resp, err := s.oracle.Respond(ctx, buf.String())
	if err != nil {
		return "", fmt.Errorf("%s: %w", tmpl.Name(), err)
	}
	return resp, nil
}

// withDisambiguation prepends the containment sentences for HiToM stories.
func (s *solver) withDisambiguation(ctx context.Context, story string) (string, error) {
	if s.kind != dataset.KindHitom {
		return story, nil
	}
	sentences, err := s.runner.Disambiguate(ctx, story)
	if err != nil {
		return "", err
	}
	return strings.Join(append(sentences, story), "\n"), nil
}

func (s *solver) baseline(ctx context.Context, p Problem) (string, error) {
	story, err := s.withDisambiguation(ctx, p.Story)
	if err != nil {
		return "", err
	}
	resp, err := s.ask(ctx, s.prompts.baseline, promptData{Story: story, Question: p.Question, Choices: p.Choices, Note: p.Note})
	if err != nil {
		return "", err
	}
	return trimAnswer(resp), nil
}

func (s *solver) cot(ctx context.Context, p Problem) (string, error) {
	story, err := s.withDisambiguation(ctx, p.Story)
	if err != nil {
		return "", err
	}
	reasoning, err := s.ask(ctx, s.prompts.cot, promptData{Story: story, Question: p.Question, Choices: p.Choices, Note: p.Note})
	if err != nil {
		return "", err
	}
	resp, err := s.ask(ctx, s.prompts.cotExtract, promptData{Response: reasoning})
	if err != nil {
		return "", err
	}
	return trimAnswer(resp), nil
}

func (s *solver) decompose(ctx context.Context, p Problem) (string, error) {
	note := p.Note
	if s.kind == dataset.KindFantom {
		note = ""
	}
	res, err := s.runner.StartTask(ctx, domain.Task{
		Story:    p.Story,
		Question: p.Question,
		Choices:  p.Choices,
		Note:     note,
	})
	if err != nil {
		return "", err
	}
	return res.Label, nil
}

// trimAnswer strips surrounding whitespace and periods from a reply.
func trimAnswer(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".")
}
