package cli

import (
	"context"
	"errors"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// Process exit codes. Scripts can tell a bad directory file from a missing
// employee or an unreachable HR system without parsing messages.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitInvalid   = 2
	ExitNotFound  = 3
	ExitUpstream  = 4
	ExitCancelled = 130
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	}
	switch orgerrors.ClassOf(err) {
	case orgerrors.ClassInvalid:
		return ExitInvalid
	case orgerrors.ClassNotFound:
		return ExitNotFound
	case orgerrors.ClassUpstream, orgerrors.ClassDenied:
		return ExitUpstream
	}
	return ExitFailure
}
