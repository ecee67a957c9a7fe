package session_test

import (
	"context"
	"io"

	"github.com/doeshing/hackassist/internal/domain"
)

type scriptedInput struct {
	lines []string
	reads int
}

func (s *scriptedInput) ReadLine(string) (string, error) {
	if s.reads >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.reads]
	s.reads++
	return line, nil
}

type stubProvider struct {
	responses []string
	err       error
	prompts   []string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Query(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	if len(p.responses) == 0 {
		return "RESPONSE: nothing to do\nCOMMAND: NONE", nil
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

type stubConfirmer struct {
	decisions []domain.Decision
	err       error
	asked     []domain.SuggestedCommand
}

func (c *stubConfirmer) Confirm(cmd domain.SuggestedCommand) (domain.Decision, error) {
	c.asked = append(c.asked, cmd)
	if c.err != nil {
		return domain.DecisionDecline, c.err
	}
	if len(c.decisions) == 0 {
		return domain.DecisionDecline, nil
	}
	d := c.decisions[0]
	c.decisions = c.decisions[1:]
	return d, nil
}

type stubExecutor struct {
	result domain.ExecutionResult
	err    error
	ran    []string
}

func (e *stubExecutor) Execute(_ context.Context, command string) (domain.ExecutionResult, error) {
	e.ran = append(e.ran, command)
	if e.err != nil {
		return domain.ExecutionResult{}, e.err
	}
	return e.result, nil
}

type recordingPresenter struct {
	events []string
}

func (p *recordingPresenter) add(e string) { p.events = append(p.events, e) }

func (p *recordingPresenter) Welcome(domain.Environment)         { p.add("welcome") }
func (p *recordingPresenter) PromptHint(bool)                    { p.add("hint") }
func (p *recordingPresenter) Thinking() func()                   { p.add("thinking"); return func() {} }
func (p *recordingPresenter) Response(string)                    { p.add("response") }
func (p *recordingPresenter) Suggestion(domain.SuggestedCommand) { p.add("suggestion") }
func (p *recordingPresenter) Declined()                          { p.add("declined") }
func (p *recordingPresenter) Executing(string)                   { p.add("executing") }
func (p *recordingPresenter) Output(domain.ExecutionResult)      { p.add("output") }
func (p *recordingPresenter) Failure(error)                      { p.add("failure") }
func (p *recordingPresenter) Goodbye()                           { p.add("goodbye") }

func errEOF() error { return io.EOF }
