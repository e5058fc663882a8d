package main

import "errors"

// Exit codes for assertctl.
const (
	// ExitSuccess indicates every check passed.
	ExitSuccess = 0

	// ExitCheckFailure indicates a failed or errored check, or any
	// other runtime error.
	ExitCheckFailure = 1

	// ExitInvalidFile indicates a check file that did not validate.
	ExitInvalidFile = 2
)

var (
	errChecksFailed = errors.New("one or more checks failed")
	errInvalidFiles = errors.New("one or more check files are invalid")
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errInvalidFiles):
		return ExitInvalidFile
	default:
		return ExitCheckFailure
	}
}
