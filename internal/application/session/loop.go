package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// InputPrompt is shown when the loop waits for a request.
const InputPrompt = "hackassistant> "

// Loop is the session state machine. It is strictly sequential: one turn
// (read, query, confirm, execute, record) completes before the next line is read.
type Loop struct {
	Session   *domain.Session
	Tracker   *Tracker
	Provider  ports.Provider
	Extractor ports.CommandExtractor
	Executor  ports.CommandExecutor
	Confirmer ports.Confirmer
	Input     ports.LineReader
	Presenter ports.Presenter
	Logger    ports.Logger
}

// Run drives the session until the close token, end of input or a fatal error.
// Closing through the close token or end of input returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(); err != nil {
		return err
	}
	for {
		more, err := l.Step(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Start moves an idle session to AwaitingPrompt and shows the banner.
func (l *Loop) Start() error {
	if l.Session == nil || l.Tracker == nil || l.Provider == nil || l.Extractor == nil ||
		l.Executor == nil || l.Confirmer == nil || l.Input == nil || l.Presenter == nil || l.Logger == nil {
		return errors.New("session.Loop dependencies not satisfied")
	}
	if err := l.Session.Transition(domain.ModeAwaitingPrompt); err != nil {
		return err
	}
	l.Logger.Info("session started", map[string]interface{}{
		"provider":      l.Provider.Name(),
		"working_dir":   l.Session.Environment.WorkingDir,
		"history_limit": l.Tracker.HistoryLimit(),
	})
	l.Presenter.Welcome(l.Session.Environment)
	return nil
}

// Step reads and handles one input line. It reports false once the session is closed.
func (l *Loop) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, l.closeWith(err)
	}

	line, err := l.Input.ReadLine(InputPrompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, l.closeWith(nil)
		}
		return false, l.closeWith(fmt.Errorf("read input: %w", err))
	}

	input := strings.TrimSpace(line)
	switch {
	case input == "":
		return true, nil
	case strings.EqualFold(input, domain.TokenClose):
		return false, l.closeWith(nil)
	case strings.EqualFold(input, domain.TokenNewPrompt):
		l.Presenter.PromptHint(false)
		return true, nil
	}

	return l.turn(ctx, input)
}

func (l *Loop) turn(ctx context.Context, input string) (bool, error) {
	prompt := l.Tracker.ComposePrompt(input)
	l.Logger.Debug("calling provider", map[string]interface{}{
		"provider":     l.Provider.Name(),
		"prompt_bytes": len(prompt),
	})

	stop := l.Presenter.Thinking()
	text, err := l.Provider.Query(ctx, prompt)
	stop()
	if err != nil {
		l.Logger.Error("provider request failed", err, map[string]interface{}{"provider": l.Provider.Name()})
		l.Presenter.Failure(err)
		l.Presenter.PromptHint(false)
		return true, nil
	}

	l.Presenter.Response(l.Extractor.Reply(text))
	ex := domain.Exchange{UserInput: input, AIResponseText: text}

	suggestion, ok := l.Extractor.Extract(text)
	l.Logger.Debug("extraction finished", map[string]interface{}{
		"found":   ok,
		"command": suggestion.Command,
	})
	if !ok {
		l.Tracker.RecordExchange(ex)
		l.Presenter.PromptHint(false)
		return true, nil
	}

	if err := l.Session.Transition(domain.ModeAwaitingConfirmation); err != nil {
		return false, err
	}
	l.Presenter.Suggestion(suggestion)

	decision, err := l.Confirmer.Confirm(suggestion)
	if err != nil {
		l.Tracker.RecordExchange(ex)
		if errors.Is(err, io.EOF) {
			return false, l.closeWith(nil)
		}
		return false, l.closeWith(fmt.Errorf("read confirmation: %w", err))
	}
	l.Logger.Info("confirmation", map[string]interface{}{
		"command":  suggestion.Command,
		"decision": decision.String(),
	})

	if decision != domain.DecisionAccept {
		l.Presenter.Declined()
		l.Tracker.RecordExchange(ex)
		if err := l.Session.Transition(domain.ModeAwaitingPrompt); err != nil {
			return false, err
		}
		l.Presenter.PromptHint(false)
		return true, nil
	}

	if err := l.Session.Transition(domain.ModeExecuting); err != nil {
		return false, err
	}
	l.execute(ctx, suggestion, &ex)
	l.Tracker.RecordExchange(ex)
	if err := l.Session.Transition(domain.ModeAwaitingPrompt); err != nil {
		return false, err
	}
	l.Presenter.PromptHint(true)
	return true, nil
}

func (l *Loop) execute(ctx context.Context, suggestion domain.SuggestedCommand, ex *domain.Exchange) {
	ex.SuggestedCommand = suggestion.Command
	l.Presenter.Executing(suggestion.Command)

	result, err := l.Executor.Execute(ctx, suggestion.Command)
	if err != nil {
		l.Logger.Error("command spawn failed", err, map[string]interface{}{"command": suggestion.Command})
		ex.ExecutionError = err.Error()
		l.Presenter.Failure(err)
		return
	}

	l.Logger.Info("command executed", map[string]interface{}{
		"command":     suggestion.Command,
		"exit_code":   result.ExitCode,
		"duration_ms": result.Duration.Milliseconds(),
	})
	ex.ExecutionResult = &result
	l.Presenter.Output(result)
}

// closeWith ends the session and returns cause unchanged.
func (l *Loop) closeWith(cause error) error {
	l.Logger.Info("session closed", map[string]interface{}{"exchanges": l.Session.Len()})
	if err := l.Session.Transition(domain.ModeClosed); err != nil {
		return errors.Join(cause, err)
	}
	l.Presenter.Goodbye()
	return cause
}
