package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	decomposehttp "github.com/aretw0/decompose/internal/adapters/http"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	got domain.Task
	err error
}

func (s *stubRunner) StartTask(_ context.Context, task domain.Task) (domain.Result, error) {
	s.got = task
	if s.err != nil {
		return domain.Result{}, s.err
	}
	return domain.Result{TaskID: "t1", Label: "a: green_box", Agent: "bob", OracleCalls: 7}, nil
}

func (s *stubRunner) Disambiguate(_ context.Context, story string) ([]string, error) {
	if story == "" {
		return nil, nil
	}
	return []string{"The box is in the den."}, nil
}

func newServer(t *testing.T, runner *stubRunner) *httptest.Server {
	t.Helper()
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("decompose_answers_total 0\n"))
	})
	h, err := decomposehttp.NewHandler(runner, decomposehttp.WithMetrics(metrics))
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestStartTask(t *testing.T) {
	runner := &stubRunner{}
	srv := newServer(t, runner)

	resp, out := post(t, srv.URL+"/v1/tasks", `{"story": "s.", "question": "Where is x?", "choices": "A. y", "max_recursion": 2}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a: green_box", out["label"])
	assert.Equal(t, float64(7), out["oracle_calls"])
	assert.Equal(t, 2, runner.got.MaxRecursion)
}

func TestStartTask_ValidationRejects(t *testing.T) {
	srv := newServer(t, &stubRunner{})

	resp, out := post(t, srv.URL+"/v1/tasks", `{"story": "s."}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "question")

	resp, _ = post(t, srv.URL+"/v1/tasks", `{"story": "s.", "question": "q", "max_recursion": -1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStartTask_OracleFailure(t *testing.T) {
	srv := newServer(t, &stubRunner{err: fmt.Errorf("stage knowledge at depth 0: %w", domain.ErrOracleExhausted)})

	resp, out := post(t, srv.URL+"/v1/tasks", `{"story": "s.", "question": "q"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.NotEmpty(t, out["error"])
}

func TestDisambiguate(t *testing.T) {
	srv := newServer(t, &stubRunner{})

	resp, out := post(t, srv.URL+"/v1/disambiguate", `{"story": "Ann entered the den. The box is in the den."}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"The box is in the den."}, out["sentences"])

	resp, out = post(t, srv.URL+"/v1/disambiguate", `{"story": ""}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, out["sentences"])
}

func TestAuxiliaryRoutes(t *testing.T) {
	srv := newServer(t, &stubRunner{})

	for path, want := range map[string]string{
		"/healthz":      `"ok"`,
		"/openapi.yaml": "openapi: 3.0.3",
		"/metrics":      "decompose_answers_total",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, buf.String(), want, path)
	}
}
