package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/decompose/pkg/adapters/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Respond(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Answer: yes"}}]}`))
	}))
	defer srv.Close()

	c := openai.New(openai.Config{APIKey: "secret", BaseURL: srv.URL, Model: "gpt-4o", Temperature: 0})
	resp, err := c.Respond(context.Background(), "Does alice know?")
	require.NoError(t, err)
	assert.Equal(t, "Answer: yes", resp)

	assert.Equal(t, "gpt-4o", got["model"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 1)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "Does alice know?", first["content"])
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := openai.New(openai.Config{BaseURL: srv.URL, Model: "m"})
	_, err := c.Respond(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := openai.New(openai.Config{BaseURL: srv.URL, Model: "m"})
	_, err := c.Respond(context.Background(), "x")
	assert.ErrorIs(t, err, openai.ErrEmptyCompletion)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"bad model"}}`))
	}))
	defer srv.Close()

	c := openai.New(openai.Config{BaseURL: srv.URL, Model: "m"})
	_, err := c.Respond(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad model")
}
