package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/decompose/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	got domain.Task
}

func (s *stubRunner) StartTask(_ context.Context, task domain.Task) (domain.Result, error) {
	s.got = task
	if task.Question == "" {
		return domain.Result{}, domain.ErrEmptyQuestion
	}
	return domain.Result{Label: "b", Agent: "kim"}, nil
}

func (s *stubRunner) Disambiguate(_ context.Context, _ string) ([]string, error) {
	return []string{"The box is in the den."}, nil
}

func TestHandleTask(t *testing.T) {
	runner := &stubRunner{}
	s := NewServer(runner, nil)

	res, err := s.handleTask(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"story":         "Kim: hi",
		"question":      "What does Kim believe?",
		"choices":       "(a) x\n(b) y",
		"max_recursion": float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "b", res.Label)
	assert.Equal(t, 2, runner.got.MaxRecursion)
	assert.Equal(t, "(a) x\n(b) y", runner.got.Choices)

	_, err = s.handleTask(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"story": "s"})
	assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
}

func TestHandleDisambiguate(t *testing.T) {
	s := NewServer(&stubRunner{}, nil)
	res, err := s.handleDisambiguate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"story": "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"The box is in the den."}, res.Sentences)
}

func TestHandleScore(t *testing.T) {
	s := NewServer(&stubRunner{}, nil)
	res, err := s.handleScore(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"response": "Answer: (b) she left.",
		"letter":   "b",
	})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, "(b) she left", res.Normalized)
}
