package domain

import "errors"

var (
	// ErrAuthMissing means no AI credential is configured. Fatal before the loop starts.
	ErrAuthMissing = errors.New("AI credential not configured")
	// ErrRequestFailed covers transport, status and malformed-response failures of one AI call.
	ErrRequestFailed = errors.New("AI request failed")
	// ErrSpawnFailed means the child process could not be started at all.
	ErrSpawnFailed = errors.New("command could not be started")
	// ErrInvalidTransition guards the session state machine.
	ErrInvalidTransition = errors.New("invalid session transition")
)
