package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/sift/internal/config"
	"github.com/rshade/sift/internal/logging"
)

// setupLogging configures logging based on the config file, environment and CLI
// flags. Interactive commands always log to a file so the terminal stays clean.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig, interactive bool) logging.LogPathResult {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
	}
	if interactive && loggingCfg.File == "" {
		loggingCfg.File = config.DefaultLogFile()
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed && !interactive {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
