package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/metrics"
	"github.com/tez-capital/refpay/state"
	"github.com/tez-capital/refpay/utils"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LOG_LEVEL_FLAG     = "log-level"
	LOG_FILE_FLAG      = "log-file"
	PATH_FLAG          = "path"
	VERSION_FLAG       = "version"
	OUTPUT_FORMAT_FLAG = "output-format"
	CONFIGURATION_FLAG = "configuration"
)

var (
	LOG_LEVEL_MAP = map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func setupLumberjackLogger(logFile string) io.Writer {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// json logs go to stderr, stdout is reserved for command results
func setupJsonLogger(level slog.Level, logFile string) {
	writers := make([]io.Writer, 0, 2)
	writers = append(writers, os.Stderr)
	if logFile != "" {
		writers = append(writers, setupLumberjackLogger(logFile))
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func setupTextLogger(level slog.Level, logFile string) {
	var writer io.Writer = os.Stderr
	if logFile != "" {
		writer = io.MultiWriter(os.Stderr, setupLumberjackLogger(logFile))
	}
	handler := tint.NewHandler(writer, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    logFile != "",
	})
	slog.SetDefault(slog.New(handler))
}

var (
	RootCmd = &cobra.Command{
		Use:   "refpay",
		Short: "REFPAY",
		Long: fmt.Sprintf(`REFPAY %s - the GMX referral rewards distributor
Copyright © %d tez.capital
`, constants.VERSION, time.Now().Year()),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString(OUTPUT_FORMAT_FLAG)
			level, _ := cmd.Flags().GetString(LOG_LEVEL_FLAG)
			logFile, _ := cmd.Flags().GetString(LOG_FILE_FLAG)

			wantsJson := format == "json"
			switch format {
			case "json":
				setupJsonLogger(LOG_LEVEL_MAP[level], logFile)
			case "text":
				setupTextLogger(LOG_LEVEL_MAP[level], logFile)
			default:
				if !utils.IsTty() {
					wantsJson = true
					setupJsonLogger(LOG_LEVEL_MAP[level], logFile)
				} else {
					setupTextLogger(LOG_LEVEL_MAP[level], logFile)
				}
			}

			slog.SetDefault(slog.Default().With(constants.LOG_FIELD_INVOCATION_ID, uuid.NewString()))
			slog.Debug("logger configured", "format", format, "level", level)

			workingDirectory, _ := cmd.Flags().GetString(PATH_FLAG)
			stateOptions := state.StateInitOptions{
				WantsJsonOutput: wantsJson,
			}
			if injected, _ := cmd.Flags().GetString(CONFIGURATION_FLAG); injected != "" {
				stateOptions.InjectedConfiguration = &injected
			}
			state.Init(workingDirectory, stateOptions)
			metrics.BuildInfo.WithLabelValues(constants.VERSION).Set(1)
		},
		Run: func(cmd *cobra.Command, args []string) {
			version, _ := cmd.Flags().GetBool(VERSION_FLAG)
			if version {
				fmt.Println(constants.VERSION)
				return
			}

			cmd.Help()
		},
	}
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Flags().Bool(VERSION_FLAG, false, "Prints version")
	RootCmd.PersistentFlags().StringP(PATH_FLAG, "p", ".", "path to working directory")
	RootCmd.PersistentFlags().StringP(OUTPUT_FORMAT_FLAG, "o", "auto", "Sets output log format (json/text/auto)")
	RootCmd.PersistentFlags().StringP(LOG_LEVEL_FLAG, "l", "info", "Sets log level format (debug/info/warn/error)")
	RootCmd.PersistentFlags().String(LOG_FILE_FLAG, "", "Logs to file")
	RootCmd.PersistentFlags().String(CONFIGURATION_FLAG, "", "hjson configuration used instead of the configuration file")
}
