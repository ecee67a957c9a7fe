package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// HTTPProvider is a configuration-driven client for OpenAI-compatible chat endpoints.
type HTTPProvider struct {
	model      domain.ModelDefinition
	apiKey     string
	httpClient *http.Client
}

// NewHTTPProvider creates a provider for the model definition.
func NewHTTPProvider(apiKey string, model domain.ModelDefinition, client *http.Client) (*HTTPProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", domain.ErrAuthMissing, model.GetAuthEnvVar())
	}
	if client == nil {
		client = &http.Client{Timeout: domain.DefaultRequestTimeout}
	}
	return &HTTPProvider{
		model:      model,
		apiKey:     apiKey,
		httpClient: client,
	}, nil
}

func (p *HTTPProvider) Name() string {
	return fmt.Sprintf("http:%s", p.model.ModelID)
}

// Query posts the prompt as a single user message.
func (p *HTTPProvider) Query(ctx context.Context, prompt string) (string, error) {
	body, err := p.buildRequestBody(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create HTTP request: %v", domain.ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(p.model.APIFormat.GetAuthHeaderName(), p.model.APIFormat.GetAuthHeaderPrefix()+p.apiKey)
	for key, value := range p.model.APIFormat.ExtraHeaders {
		req.Header.Set(key, value)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("%w: read response body: %v", domain.ErrRequestFailed, err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: HTTP %d: %s", domain.ErrRequestFailed, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	content, err := p.parseResponse(raw.Bytes())
	if err != nil {
		return "", fmt.Errorf("%w: parse response: %v", domain.ErrRequestFailed, err)
	}
	if content == "" {
		return "", fmt.Errorf("%w: empty response from %s", domain.ErrRequestFailed, p.model.ModelID)
	}
	return content, nil
}

func (p *HTTPProvider) buildRequestBody(prompt string) ([]byte, error) {
	request := map[string]interface{}{
		"model": p.model.ModelID,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	if p.model.MaxTokens > 0 {
		request["max_tokens"] = p.model.MaxTokens
	}
	return json.Marshal(request)
}

// parseResponse extracts the generated text using the configured JSON path.
func (p *HTTPProvider) parseResponse(body []byte) (string, error) {
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("unmarshal JSON: %w", err)
	}

	path := p.model.APIFormat.GetResponseJSONPath()
	content, err := extractJSONPath(response, path)
	if err != nil {
		return "", fmt.Errorf("extract from path '%s': %w", path, err)
	}
	return strings.TrimSpace(content), nil
}

// extractJSONPath extracts a string value from a nested JSON structure.
// Supported paths: "field", "field.nested", "field[0]", "field[0].nested.field"
func extractJSONPath(data map[string]interface{}, path string) (string, error) {
	var current interface{} = data

	for _, part := range parseJSONPath(path) {
		switch part.kind {
		case pathField:
			obj, ok := current.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("expected object at '%s'", part.value)
			}
			next, found := obj[part.value]
			if !found {
				return "", fmt.Errorf("field '%s' not found", part.value)
			}
			current = next
		case pathIndex:
			arr, ok := current.([]interface{})
			if !ok {
				return "", fmt.Errorf("expected array at index %s", part.value)
			}
			idx, err := strconv.Atoi(part.value)
			if err != nil {
				return "", fmt.Errorf("invalid index %q", part.value)
			}
			if idx < 0 || idx >= len(arr) {
				return "", fmt.Errorf("index %d out of bounds (len=%d)", idx, len(arr))
			}
			current = arr[idx]
		}
	}

	if str, ok := current.(string); ok {
		return str, nil
	}
	return "", fmt.Errorf("final value is not a string: %T", current)
}

type pathKind int

const (
	pathField pathKind = iota
	pathIndex
)

type pathPart struct {
	kind  pathKind
	value string
}

// parseJSONPath converts "choices[0].message.content" into
// [{field choices} {index 0} {field message} {field content}].
func parseJSONPath(path string) []pathPart {
	var parts []pathPart
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, pathPart{kind: pathField, value: current.String()})
			current.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		switch ch := path[i]; ch {
		case '.':
			flush()
		case '[':
			flush()
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				parts = append(parts, pathPart{kind: pathIndex, value: path[i+1 : j]})
				i = j
			}
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	return parts
}

var _ ports.Provider = (*HTTPProvider)(nil)
