// Package session implements the interactive assistant: the context tracker
// that composes prompts and the loop that drives request, suggestion,
// confirmation and execution.
package session

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/doeshing/hackassist/internal/domain"
)

// PromptTemplateVersion identifies the RESPONSE:/COMMAND: answer format the
// extractor understands. Bump it whenever systemTemplate changes that contract.
const PromptTemplateVersion = "v1"

const systemTemplate = `You are HackAssistant, an AI assistant for hackers and developers working on Linux systems.

Current context:
- Working Directory: {{.WorkingDir}}
- System: {{.SystemInfo}}
{{- if .Shell}}
- Shell: {{.Shell}}
{{- end}}
{{- if .Tools}}
- Available tools: {{.Tools}}
{{- end}}
- Session started: {{.StartedAt}}

Your role:
1. Provide helpful responses for hacking, development, and system administration tasks
2. Suggest specific Linux terminal commands when appropriate
3. Be concise but informative
4. Focus on practical solutions

When suggesting commands:
- Provide ONE specific command that can be executed
- Explain what the command does briefly
- Consider the current working directory context
- Use Linux/bash compatible commands only
- Commands run non-interactively with no stdin

Format your response as:
RESPONSE: [Your helpful response here]
COMMAND: [Single terminal command to execute, or NONE if no command needed]

Keep responses focused and actionable for a technical audience.`

var promptTmpl = template.Must(template.New("system").Parse(systemTemplate))

type templateData struct {
	WorkingDir string
	SystemInfo string
	Shell      string
	Tools      string
	StartedAt  string
}

// Tracker owns the conversational context of one session.
type Tracker struct {
	session        *domain.Session
	historyLimit   int
	maxOutputChars int
	now            func() time.Time
}

// NewTracker creates a tracker replaying at most historyLimit exchanges per prompt.
func NewTracker(s *domain.Session, historyLimit, maxOutputChars int) *Tracker {
	if historyLimit <= 0 {
		historyLimit = domain.DefaultHistoryLimit
	}
	if maxOutputChars <= 0 {
		maxOutputChars = domain.DefaultMaxOutputChars
	}
	return &Tracker{
		session:        s,
		historyLimit:   historyLimit,
		maxOutputChars: maxOutputChars,
		now:            time.Now,
	}
}

// ComposePrompt builds the full prompt for userInput. It reads session state only,
// so two calls without an intervening RecordExchange return identical text.
func (t *Tracker) ComposePrompt(userInput string) string {
	env := t.session.Environment

	var b bytes.Buffer
	// The template is parsed at init and its data has no methods that can fail.
	_ = promptTmpl.Execute(&b, templateData{
		WorkingDir: env.WorkingDir,
		SystemInfo: env.SystemInfo,
		Shell:      env.Shell,
		Tools:      strings.Join(env.AvailableTools, ", "),
		StartedAt:  env.StartedAt.Format(domain.TimestampFormat),
	})

	b.WriteString("\n\nConversation History:\n")
	for _, ex := range t.session.Recent(t.historyLimit) {
		t.writeExchange(&b, ex)
	}

	fmt.Fprintf(&b, "\nUSER: %s\n\nRespond in the specified format:", strings.TrimSpace(userInput))
	return b.String()
}

// RecordExchange appends a completed turn to the session history.
func (t *Tracker) RecordExchange(ex domain.Exchange) {
	if ex.RecordedAt.IsZero() {
		ex.RecordedAt = t.now()
	}
	t.session.Record(ex)
}

// HistoryLimit returns the number of exchanges replayed per prompt.
func (t *Tracker) HistoryLimit() int {
	return t.historyLimit
}

func (t *Tracker) writeExchange(b *bytes.Buffer, ex domain.Exchange) {
	fmt.Fprintf(b, "USER: %s\n", ex.UserInput)
	fmt.Fprintf(b, "ASSISTANT: %s\n", ex.AIResponseText)
	switch {
	case ex.SuggestedCommand == "":
	case ex.ExecutionResult != nil:
		fmt.Fprintf(b, "SYSTEM: Executed command: %s\n", ex.SuggestedCommand)
		fmt.Fprintf(b, "SYSTEM: Command output: %s\n", truncate(ex.ExecutionResult.Transcript(), t.maxOutputChars))
	default:
		fmt.Fprintf(b, "SYSTEM: Command failed to start: %s: %s\n", ex.SuggestedCommand, ex.ExecutionError)
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.ToValidUTF8(s[:limit], "") + "\n... [output truncated]"
}
