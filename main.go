package main

import (
	"log/slog"
	"os"

	"github.com/tez-capital/refpay/cmd"
	"github.com/tez-capital/refpay/common"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if panicStatus, ok := r.(common.PanicStatus); ok {
				os.Exit(panicStatus.ExitCode)
			}
			slog.Error("unhandled panic", "panic", r)
			os.Exit(common.EXIT_UNHANDLED_ERROR)
		}
	}()

	if err := cmd.Execute(); err != nil {
		os.Exit(common.EXIT_INVALID_ARGS)
	}
}
