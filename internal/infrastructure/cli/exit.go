package cli

import (
	"errors"

	"github.com/doeshing/hackassist/internal/domain"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitAuthMissing = 2
)

// ExitCode maps the error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrAuthMissing):
		return ExitAuthMissing
	default:
		return ExitFailure
	}
}
