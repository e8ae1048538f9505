package cli

import (
	"fmt"

	"github.com/morikuni/failure/v2"
	"github.com/raysurfer/raysurfer-cli/api"
)

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	InvalidArguments ErrorCode = "InvalidArguments"
	FileNotFound     ErrorCode = "FileNotFound"
	EmptyContent     ErrorCode = "EmptyContent"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// Exit status for handled errors
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode maps an error returned by Run to a process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case failure.Is(err, InvalidArguments),
		failure.Is(err, api.ErrInvalidRequest),
		failure.Is(err, api.ErrMissingCredential):
		return ExitUsage
	default:
		return ExitError
	}
}

func invalidArguments(format string, args ...any) error {
	return failure.New(InvalidArguments, failure.Message(fmt.Sprintf(format, args...)))
}

// apiError attaches the user-facing message for a failed API call, unless
// the error already carries one.
func apiError(err error, format string, args ...any) error {
	if failure.MessageOf(err) != "" {
		return failure.Wrap(err)
	}
	msg := fmt.Sprintf(format, args...) + ": " + api.Describe(err)
	return failure.Wrap(err, failure.Message(msg))
}

// rejected reports a 2xx response whose body says the operation did not succeed
func rejected(what, serverMessage string) error {
	if serverMessage == "" {
		serverMessage = "no reason given"
	}
	return failure.New(api.ErrServer,
		failure.Message(fmt.Sprintf("%s rejected by server: %s", what, serverMessage)),
	)
}
