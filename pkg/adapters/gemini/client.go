// Package gemini implements ports.Oracle on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/decompose/internal/logging"
	"google.golang.org/genai"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.0-flash"

// ErrNoText is returned when a response carries no text part, e.g. when
// the candidate was blocked.
var ErrNoText = errors.New("gemini response has no text")

// contentGenerator is the slice of *genai.Models the oracle needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config configures a Client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	Logger      *slog.Logger
}

// Client answers prompts with a single-turn GenerateContent call.
type Client struct {
	models contentGenerator
	model  string
	config *genai.GenerateContentConfig
	logger *slog.Logger
}

// New connects to the Gemini API.
func New(ctx context.Context, cfg Config) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newClient(client.Models, cfg), nil
}

func newClient(models contentGenerator, cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}

	// Story text about hiding or taking objects trips the default filters.
	var safety []*genai.SafetySetting
	for _, category := range []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryHarassment,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	} {
		safety = append(safety, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}

	return &Client{
		models: models,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature:    genai.Ptr(cfg.Temperature),
			SafetySettings: safety,
		},
		logger: cfg.Logger,
	}
}

// Respond implements ports.Oracle. The reply is trimmed of surrounding
// whitespace and periods.
func (c *Client) Respond(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		c.config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrNoText
	}
	c.logger.Debug("Content generated", "model", c.model, "prompt_len", len(prompt), "response_len", len(text))
	return strings.Trim(strings.TrimSpace(text), "."), nil
}
