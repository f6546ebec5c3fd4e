// Package gemini provides a Classifier adapter backed by Google's
// Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/kevinjones/trialsift/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.Classifier = (*Classifier)(nil)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds configuration for the Gemini classifier.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the model identifier (default: gemini-2.5-flash).
	Model string

	// SystemInstruction is the instruction text applied to every call.
	// Set once here so per-record prompts carry only row data.
	SystemInstruction string
}

// Classifier classifies prompts using the Gemini API.
type Classifier struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// New creates a new Gemini classifier.
func New(ctx context.Context, cfg Config) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	var genCfg *genai.GenerateContentConfig
	if cfg.SystemInstruction != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
		}
	}

	return &Classifier{
		client: client,
		model:  cfg.Model,
		config: genCfg,
	}, nil
}

// Classify sends one prompt and returns the trimmed response text.
func (c *Classifier) Classify(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// ModelName returns the configured model identifier.
func (c *Classifier) ModelName() string {
	return c.model
}

// Close releases resources.
func (c *Classifier) Close() error {
	// The genai client does not need explicit cleanup.
	return nil
}
