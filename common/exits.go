package common

type PanicStatus struct {
	ExitCode int
	Error    error
	Message  string
}

const (
	EXIT_SUCCESS        = 0
	EXIT_COMMON_FAILURE = 1
	EXIT_INVALID_ARGS   = 2

	// phases
	EXIT_COMPUTE_FAILURE      = 5
	EXIT_PAYOUT_FAILURE       = 6
	EXIT_TRIGGER_FAILURE      = 7
	EXIT_INSUFFICIENT_BALANCE = 8

	// io
	EXIT_REPORT_WRITE_FAILURE = 10
	EXIT_LOG_READ_FAILURE     = 11

	// configuration
	EXIT_CONFIGURATION_LOAD_FAILURE = 20

	EXIT_STATE_LOAD_FAILURE = 30
	EXIT_STATE_LOCK_FAILURE = 31

	EXIT_UNHANDLED_ERROR = 100
)
