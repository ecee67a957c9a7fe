package domain

// Config mirrors ~/.hackassist/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Model               ModelDefinition   `yaml:"model"`
	Session             SessionSettings   `yaml:"session"`
	Execution           ExecutionSettings `yaml:"execution"`
}

// ModelDefinition describes the AI provider the session talks to.
type ModelDefinition struct {
	Name       string       `yaml:"name"`
	Provider   ProviderKind `yaml:"provider"`
	ModelID    string       `yaml:"model_id"`
	Endpoint   string       `yaml:"endpoint,omitempty"`
	AuthEnvVar string       `yaml:"auth_env_var"`
	MaxTokens  int          `yaml:"max_tokens,omitempty"`
	APIFormat  APIFormat    `yaml:"api_format,omitempty"`
}

// ProviderKind selects the AI client adapter.
type ProviderKind string

const (
	ProviderGemini ProviderKind = "gemini"
	ProviderHTTP   ProviderKind = "http"
)

// APIFormat tunes the generic HTTP provider for OpenAI-compatible endpoints.
// All fields are optional.
type APIFormat struct {
	// AuthHeaderName defaults to "Authorization".
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix defaults to "Bearer " unless AuthHeaderName is customized.
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// ResponseJSONPath defaults to "choices[0].message.content".
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

// SessionSettings bounds the context sent with every request.
type SessionSettings struct {
	HistoryLimit          int `yaml:"history_limit"`
	MaxOutputChars        int `yaml:"max_output_chars"`
	RequestTimeoutSeconds int `yaml:"request_timeout"`
}

// ExecutionSettings controls how commands run.
type ExecutionSettings struct {
	Shell string `yaml:"shell"`
}
