package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode is the state of the session loop.
type Mode int

const (
	ModeIdle Mode = iota
	ModeAwaitingPrompt
	ModeAwaitingConfirmation
	ModeExecuting
	ModeClosed
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeAwaitingPrompt:
		return "awaiting_prompt"
	case ModeAwaitingConfirmation:
		return "awaiting_confirmation"
	case ModeExecuting:
		return "executing"
	case ModeClosed:
		return "closed"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

var allowedTransitions = map[Mode][]Mode{
	ModeIdle:                 {ModeAwaitingPrompt, ModeClosed},
	ModeAwaitingPrompt:       {ModeAwaitingConfirmation, ModeClosed},
	ModeAwaitingConfirmation: {ModeExecuting, ModeAwaitingPrompt, ModeClosed},
	ModeExecuting:            {ModeAwaitingPrompt},
	ModeClosed:               nil,
}

// Decision is the user's answer to a suggested command.
type Decision int

const (
	DecisionDecline Decision = iota
	DecisionAccept
)

func (d Decision) String() string {
	if d == DecisionAccept {
		return "accept"
	}
	return "decline"
}

// SuggestedCommand is a shell command extracted from an AI response.
// It only lives for one confirmation cycle.
type SuggestedCommand struct {
	Command     string
	Explanation string
}

// ExecutionResult is the buffered outcome of one child process.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Succeeded reports whether the process exited with status zero.
func (r ExecutionResult) Succeeded() bool {
	return r.ExitCode == 0
}

// Transcript renders the result the way it is shown to the user and fed back to the model.
func (r ExecutionResult) Transcript() string {
	var b strings.Builder
	if r.Stdout != "" {
		fmt.Fprintf(&b, "STDOUT:\n%s\n", r.Stdout)
	}
	if r.Stderr != "" {
		fmt.Fprintf(&b, "STDERR:\n%s\n", r.Stderr)
	}
	if r.ExitCode != 0 {
		fmt.Fprintf(&b, "Return code: %d\n", r.ExitCode)
	}
	if b.Len() == 0 {
		return "Command executed successfully (no output)"
	}
	return b.String()
}

// Exchange is one completed turn of the conversation.
type Exchange struct {
	UserInput        string
	AIResponseText   string
	SuggestedCommand string
	ExecutionResult  *ExecutionResult
	ExecutionError   string
	RecordedAt       time.Time
}

// Executed reports whether a command ran to completion during this turn.
func (e Exchange) Executed() bool {
	return e.ExecutionResult != nil
}

// Session is the live state of one interactive assistant instance.
type Session struct {
	ID          string
	Environment Environment

	mode    Mode
	history []Exchange
}

// NewSession creates an idle session for the captured environment.
func NewSession(env Environment) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Environment: env,
		mode:        ModeIdle,
	}
}

// Mode returns the current state.
func (s *Session) Mode() Mode {
	return s.mode
}

// Transition moves the session to the next state.
func (s *Session) Transition(to Mode) error {
	for _, next := range allowedTransitions[s.mode] {
		if next == to {
			s.mode = to
			if to == ModeClosed {
				s.history = nil
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.mode, to)
}

// Record appends a completed exchange. History is append-only.
func (s *Session) Record(ex Exchange) {
	if ex.ExecutionResult != nil {
		res := *ex.ExecutionResult
		ex.ExecutionResult = &res
	}
	s.history = append(s.history, ex)
}

// Len returns the number of recorded exchanges.
func (s *Session) Len() int {
	return len(s.history)
}

// History returns a copy of all recorded exchanges in insertion order.
func (s *Session) History() []Exchange {
	return s.Recent(len(s.history))
}

// Recent returns a copy of the last n exchanges in insertion order.
func (s *Session) Recent(n int) []Exchange {
	if n <= 0 || len(s.history) == 0 {
		return nil
	}
	if n > len(s.history) {
		n = len(s.history)
	}
	tail := s.history[len(s.history)-n:]
	out := make([]Exchange, len(tail))
	for i, ex := range tail {
		if ex.ExecutionResult != nil {
			res := *ex.ExecutionResult
			ex.ExecutionResult = &res
		}
		out[i] = ex
	}
	return out
}
