// Package config loads evaluation settings from YAML or JSON, the
// environment and command-line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Providers accepted by Config.Provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// DataConfig points at the benchmark files.
type DataConfig struct {
	HitomTell   string `yaml:"hitom_tell" json:"hitom_tell" mapstructure:"hitom_tell"`
	HitomNoTell string `yaml:"hitom_no_tell" json:"hitom_no_tell" mapstructure:"hitom_no_tell"`
	Fantom      string `yaml:"fantom" json:"fantom" mapstructure:"fantom"`
}

// Config holds every knob of an evaluation run.
type Config struct {
	Provider    string  `yaml:"provider" json:"provider" mapstructure:"provider"`
	Model       string  `yaml:"model" json:"model" mapstructure:"model"`
	BaseURL     string  `yaml:"base_url" json:"base_url" mapstructure:"base_url"`
	APIKey      string  `yaml:"api_key" json:"api_key" mapstructure:"api_key"`
	Temperature float64 `yaml:"temperature" json:"temperature" mapstructure:"temperature"`

	Retries    int    `yaml:"retries" json:"retries" mapstructure:"retries"`
	RetryDelay string `yaml:"retry_delay" json:"retry_delay" mapstructure:"retry_delay"`

	MaxRecursion int    `yaml:"max_recursion" json:"max_recursion" mapstructure:"max_recursion"`
	Parallel     int    `yaml:"parallel" json:"parallel" mapstructure:"parallel"`
	Seed         int64  `yaml:"seed" json:"seed" mapstructure:"seed"`
	ResultsDir   string `yaml:"results_dir" json:"results_dir" mapstructure:"results_dir"`
	PromptDir    string `yaml:"prompt_dir" json:"prompt_dir" mapstructure:"prompt_dir"`

	RedisAddr   string `yaml:"redis_addr" json:"redis_addr" mapstructure:"redis_addr"`
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr" mapstructure:"metrics_addr"`
	LogLevel    string `yaml:"log_level" json:"log_level" mapstructure:"log_level"`

	Data DataConfig `yaml:"data" json:"data" mapstructure:"data"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Provider:   ProviderOpenAI,
		Model:      "gpt-4o",
		Retries:    10,
		RetryDelay: "10s",
		Parallel:   1,
		ResultsDir: "results",
		LogLevel:   "info",
		Data: DataConfig{
			HitomTell:   filepath.Join("data", "hitom_tell.jsonl"),
			HitomNoTell: filepath.Join("data", "hitom_no_tell.jsonl"),
			Fantom:      filepath.Join("data", "fantom.jsonl"),
		},
	}
}

// Load reads path (YAML, or JSON by extension) over the defaults. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// ApplyEnv fills credentials and addresses from the environment. The API
// key is taken from the variable matching the provider unless already set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.APIKey == "" {
		switch c.Provider {
		case ProviderGemini:
			c.APIKey = getenv("GEMINI_API_KEY")
		case ProviderOpenAI:
			c.APIKey = getenv("OPENAI_API_KEY")
		}
	}
	if addr := getenv("DECOMPOSE_REDIS_ADDR"); addr != "" {
		c.RedisAddr = addr
	}
}

// Set applies key=value overrides. Dotted keys reach nested sections, e.g.
// "data.fantom=/tmp/f.jsonl". Values are converted to the field type.
func (c *Config) Set(pairs []string) error {
	raw := make(map[string]any)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q (want key=value)", pair)
		}
		insert(raw, strings.Split(key, "."), value)
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to apply overrides: %w", err)
	}
	if len(md.Unused) > 0 {
		return fmt.Errorf("unknown config keys: %s", strings.Join(md.Unused, ", "))
	}
	return nil
}

func insert(m map[string]any, path []string, value string) {
	if len(path) == 1 {
		m[path[0]] = value
		return
	}
	child, ok := m[path[0]].(map[string]any)
	if !ok {
		child = make(map[string]any)
		m[path[0]] = child
	}
	insert(child, path[1:], value)
}

// Delay parses RetryDelay.
func (c Config) Delay() (time.Duration, error) {
	if c.RetryDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid retry_delay: %w", err)
	}
	return d, nil
}

// Validate reports settings that cannot run.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderLocal:
	default:
		return fmt.Errorf("unknown provider %q (want openai, gemini or local)", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Retries < 1 {
		return fmt.Errorf("retries must be at least 1")
	}
	if c.MaxRecursion < 0 {
		return fmt.Errorf("max_recursion must not be negative")
	}
	_, err := c.Delay()
	return err
}
