package ai

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// Factory builds the configured provider.
type Factory struct {
	getenv func(string) string
}

// NewFactory returns a factory that reads credentials from the process environment.
func NewFactory() *Factory {
	return &Factory{getenv: os.Getenv}
}

// NewProvider resolves the API key and constructs the provider named by cfg.
// A missing key fails with domain.ErrAuthMissing before any network call.
func (f *Factory) NewProvider(ctx context.Context, cfg domain.Config) (ports.Provider, error) {
	model := cfg.Model
	apiKey := f.getenv(model.GetAuthEnvVar())
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", domain.ErrAuthMissing, model.GetAuthEnvVar())
	}

	switch model.GetProvider() {
	case domain.ProviderGemini:
		return NewGeminiProvider(ctx, apiKey, model, cfg.GetRequestTimeout())
	case domain.ProviderHTTP:
		return NewHTTPProvider(apiKey, model, &http.Client{Timeout: cfg.GetRequestTimeout()})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", model.Provider)
	}
}
