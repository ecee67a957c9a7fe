package domain

import (
	"fmt"
	"time"
)

// GetHistoryLimit returns how many past exchanges are replayed in each prompt.
func (c *Config) GetHistoryLimit() int {
	if c.Session.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.Session.HistoryLimit
}

// GetMaxOutputChars returns the per-exchange cap on command output inside a prompt.
func (c *Config) GetMaxOutputChars() int {
	if c.Session.MaxOutputChars <= 0 {
		return DefaultMaxOutputChars
	}
	return c.Session.MaxOutputChars
}

// GetRequestTimeout returns the transport timeout for one AI request.
func (c *Config) GetRequestTimeout() time.Duration {
	if c.Session.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.Session.RequestTimeoutSeconds) * time.Second
}

// GetProvider returns the configured provider kind, gemini when unset.
func (m ModelDefinition) GetProvider() ProviderKind {
	if m.Provider == "" {
		return ProviderGemini
	}
	return m.Provider
}

// GetModelID returns the model identifier with a provider default.
func (m ModelDefinition) GetModelID() string {
	if m.ModelID == "" && m.GetProvider() == ProviderGemini {
		return DefaultGeminiModel
	}
	return m.ModelID
}

// GetAuthEnvVar returns the environment variable holding the API key.
func (m ModelDefinition) GetAuthEnvVar() string {
	if m.AuthEnvVar == "" {
		return DefaultAuthEnvVar
	}
	return m.AuthEnvVar
}

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the authentication header prefix.
// An empty prefix with a custom header name is intentional (e.g. "x-api-key").
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderName != "" && f.AuthHeaderPrefix == "" {
		return ""
	}
	if f.AuthHeaderPrefix == "" {
		return DefaultAuthHeaderPrefix
	}
	return f.AuthHeaderPrefix
}

// GetResponseJSONPath returns where the generated text lives in the response body.
func (f APIFormat) GetResponseJSONPath() string {
	if f.ResponseJSONPath == "" {
		return DefaultResponsePath
	}
	return f.ResponseJSONPath
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	switch c.Model.GetProvider() {
	case ProviderGemini:
	case ProviderHTTP:
		if c.Model.Endpoint == "" {
			return fmt.Errorf("model %q: http provider requires an endpoint", c.Model.Name)
		}
		if c.Model.ModelID == "" {
			return fmt.Errorf("model %q: http provider requires model_id", c.Model.Name)
		}
	default:
		return fmt.Errorf("model %q: unsupported provider %q", c.Model.Name, c.Model.Provider)
	}
	if c.Session.HistoryLimit < 0 {
		return fmt.Errorf("session.history_limit must be >= 0")
	}
	return nil
}
