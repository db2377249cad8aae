package cli

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/decompose/internal/config"
	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/internal/testutils"
	"github.com/aretw0/decompose/pkg/adapters/memory"
	"github.com/aretw0/decompose/pkg/adapters/openai"
	"github.com/aretw0/decompose/pkg/dataset"
	"github.com/aretw0/decompose/pkg/harness"
	"github.com/aretw0/decompose/pkg/methods"
	"github.com/aretw0/decompose/pkg/observability"
	"github.com/aretw0/decompose/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestLoadConfig(t *testing.T) {
	dir := testutils.WriteFiles(t, map[string]string{
		"decompose.yaml": "provider: gemini\nmodel: gemini-2.0-flash\n",
	})
	path := filepath.Join(dir, "decompose.yaml")

	cfg, err := LoadConfig(Options{
		ConfigPath: path,
		Sets:       []string{"parallel=4"},
		Debug:      true,
	}, func(key string) string {
		if key == "GEMINI_API_KEY" {
			return "g-key"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.APIKey)
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(Options{Sets: []string{"provider=claude"}}, noEnv)
	assert.ErrorContains(t, err, "unknown provider")

	_, err = LoadConfig(Options{Sets: []string{"nope=1"}}, noEnv)
	assert.ErrorContains(t, err, "unknown config keys")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewOracle_Local(t *testing.T) {
	cfg := config.Default()
	cfg.Provider = config.ProviderLocal
	o, err := NewOracle(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &openai.Client{}, o)
}

func TestNewStack_Memory(t *testing.T) {
	s, err := NewStack(context.Background(), config.Default(), nil, false)
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &memory.Cache{}, s.Cache)
	assert.Nil(t, s.Locker)
	assert.IsType(t, &oracle.Retrier{}, s.Oracle)
}

// testStack builds a Stack around a scripted oracle that always picks the
// option whose text is "Linda moved".
func testStack(t *testing.T) *Stack {
	t.Helper()
	lines := `{"short_context": "Linda: I moved.\nKai: ok", "full_context": "f", "question": "What does Kai believe about Linda?", "correct_answer": "Linda moved", "wrong_answer": "Linda stayed"}
{"short_context": "Linda: I moved.\nKai: ok", "full_context": "f", "question": "What does Linda believe?", "correct_answer": "Linda moved", "wrong_answer": "Linda stayed"}
`
	dir := testutils.WriteFiles(t, map[string]string{"data/fantom.jsonl": lines})
	fantom := filepath.Join(dir, "data", "fantom.jsonl")

	cfg := config.Default()
	cfg.ResultsDir = filepath.Join(dir, "results")
	cfg.Data.Fantom = fantom

	scripted := oracle.NewScripted().Handle(
		func(string) bool { return true },
		func(prompt string) string {
			if strings.Contains(prompt, "(a) Linda moved") {
				return "(a)"
			}
			return "(b)"
		},
	)
	return &Stack{
		Config:  cfg,
		Logger:  logging.NewNop(),
		Metrics: observability.NewMetrics(),
		Oracle:  scripted,
		Cache:   memory.NewCache(),
	}
}

func TestStack_Eval(t *testing.T) {
	s := testStack(t)
	rep, err := s.Eval(context.Background(), EvalOptions{
		Dataset: dataset.KindFantom,
		Method:  methods.Baseline,
		Context: dataset.ContextShort,
		Seed:    7,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "fantom", rep.Dataset)
	assert.Equal(t, harness.Tally{Correct: 2, Total: 2}, rep.Overall)

	rows, err := harness.ReadRows(rep.LogPath)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(filepath.Base(rep.LogPath), "fantom_baseline_2_"))
}

func TestStack_EvalRandomExample(t *testing.T) {
	s := testStack(t)
	var out bytes.Buffer
	rep, err := s.Eval(context.Background(), EvalOptions{
		Dataset:       dataset.KindFantom,
		Method:        methods.Baseline,
		RandomExample: true,
		Seed:          3,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Overall.Total)
	assert.Empty(t, rep.LogPath)
	assert.Contains(t, out.String(), "Question: What does")
	assert.Contains(t, out.String(), "Correct: true")
}

func TestStack_EvalMissingData(t *testing.T) {
	s := testStack(t)
	s.Config.Data.HitomTell = filepath.Join(t.TempDir(), "missing.jsonl")
	_, err := s.Eval(context.Background(), EvalOptions{
		Dataset: dataset.KindHitom,
		Method:  methods.Baseline,
	}, &bytes.Buffer{})
	assert.Error(t, err)
}
