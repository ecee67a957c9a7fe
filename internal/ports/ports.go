// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The session core depends only on these contracts. Concrete adapters for the
// AI provider, the host shell, the terminal and configuration live in the
// infrastructure layer and are wired together by the app container.
package ports

import (
	"context"

	"github.com/doeshing/hackassist/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.hackassist/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// EnvironmentCollector captures the working directory and system description
// once at session start.
type EnvironmentCollector interface {
	Collect(context.Context) (domain.Environment, error)
}

// Provider is the AI client adapter: one composed prompt in, raw text out.
// Implementations make exactly one request per call and never retry.
// Errors wrap domain.ErrAuthMissing or domain.ErrRequestFailed.
type Provider interface {
	Name() string
	Query(ctx context.Context, prompt string) (string, error)
}

// CommandExtractor finds the executable command embedded in an AI response.
// Reply returns the human-facing part of the response.
type CommandExtractor interface {
	Extract(responseText string) (domain.SuggestedCommand, bool)
	Reply(responseText string) string
}

// CommandExecutor runs one shell command as a child process.
// A non-zero exit status is data, not an error; errors wrap domain.ErrSpawnFailed.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// Confirmer is the human gate between suggestion and execution.
type Confirmer interface {
	Confirm(domain.SuggestedCommand) (domain.Decision, error)
}

// LineReader reads one line of user input, returning io.EOF when input ends.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Presenter renders session events to the user.
type Presenter interface {
	Welcome(domain.Environment)
	PromptHint(afterCommand bool)
	Thinking() (stop func())
	Response(text string)
	Suggestion(domain.SuggestedCommand)
	Declined()
	Executing(command string)
	Output(domain.ExecutionResult)
	Failure(err error)
	Goodbye()
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
