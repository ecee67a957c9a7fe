package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// contentGenerator is the slice of *genai.Models the provider needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider queries Google Gemini through the genai SDK.
type GeminiProvider struct {
	models    contentGenerator
	model     string
	maxTokens int32
	timeout   time.Duration
}

// NewGeminiProvider creates a Gemini client for the given model definition.
func NewGeminiProvider(ctx context.Context, apiKey string, model domain.ModelDefinition, timeout time.Duration) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", domain.ErrAuthMissing, model.GetAuthEnvVar())
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newGeminiProvider(client.Models, model, timeout), nil
}

func newGeminiProvider(models contentGenerator, model domain.ModelDefinition, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{
		models:    models,
		model:     model.GetModelID(),
		maxTokens: int32(model.MaxTokens),
		timeout:   timeout,
	}
}

func (p *GeminiProvider) Name() string {
	return fmt.Sprintf("gemini:%s", p.model)
}

// Query sends one prompt. There is no retry; every failure wraps domain.ErrRequestFailed.
func (p *GeminiProvider) Query(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var cfg *genai.GenerateContentConfig
	if p.maxTokens > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: p.maxTokens}
	}

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: no response from %s", domain.ErrRequestFailed, p.model)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response from %s", domain.ErrRequestFailed, p.model)
	}
	return text, nil
}

var _ ports.Provider = (*GeminiProvider)(nil)
