package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/constants"
)

func assertRunWithErrorMessage(toExecute func() error, exitCode int, msg string, args ...any) {
	err := toExecute()
	if err != nil {
		args = append(args, "error", err.Error())
		slog.Error(msg, args...)
		os.Exit(exitCode)
	}
}

func assertRunWithResultAndErrorMessage[T any](toExecute func() (T, error), exitCode int, msg string, args ...any) T {
	result, err := toExecute()
	if err != nil {
		args = append(args, "error", err.Error())
		slog.Error(msg, args...)
		os.Exit(exitCode)
	}
	return result
}

func assertRunWithResult[T any](toExecute func() (T, error), exitCode int) T {
	return assertRunWithResultAndErrorMessage(toExecute, exitCode, "operation failed")
}

func assertRunWithErrorHandler[T any](toExecute func() (T, error), errorHandler func(error)) T {
	result, err := toExecute()
	if err != nil {
		errorHandler(err)
	}
	return result
}

// exitCodeFor maps phase errors to exit codes, fallback is used for everything else
func exitCodeFor(err error, fallback int) int {
	switch {
	case errors.Is(err, constants.ErrInsufficientBalance):
		return common.EXIT_INSUFFICIENT_BALANCE
	case errors.Is(err, constants.ErrInvalidArgument), errors.Is(err, constants.ErrInvalidPeriod):
		return common.EXIT_INVALID_ARGS
	case errors.Is(err, constants.ErrStateStoreFailed):
		return common.EXIT_STATE_LOAD_FAILURE
	case errors.Is(err, constants.ErrReportWriteFailed):
		return common.EXIT_REPORT_WRITE_FAILURE
	}
	return fallback
}

// exitWithPhaseError logs and exits with the code matching the error
func exitWithPhaseError(fallback int, msg string) func(error) {
	return func(err error) {
		slog.Error(msg, "error", err.Error())
		os.Exit(exitCodeFor(err, fallback))
	}
}
