package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitNoResult = 2
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	flags, err := ParseFlags(args, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		return exitFailure
	}

	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := config.LoadEnvFile(".env", bootstrap); err != nil {
		bootstrap.Warn().Err(err).Msg("Could not load .env file")
	}

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootstrap)
	if err != nil {
		log.Printf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
		return exitFailure
	}
	applyFlagOverrides(gCfg, flags)

	runID := newRunID(time.Now())
	zLogger, err := logger.NewWithRunID(gCfg.LogConfig, runID)
	if err != nil {
		log.Printf("[FATAL] Main: Could not initialize logger: %v", err)
		return exitFailure
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Error().Err(err).Msg("Configuration validation failed")
		return exitFailure
	}
	zLogger.Info().Str("mode", gCfg.Mode).Str("run_id", runID).Msg("Configuration validated successfully.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(gCfg, flags, runID, zLogger)
	result, err := app.Run(ctx)
	if err != nil {
		zLogger.Error().Err(err).Msg("Run failed")
		return exitFailure
	}

	switch {
	case result.Status.IsSuccess():
		return exitOK
	case result.Status.IsFailure():
		return exitFailure
	case result.TotalLinks == 0:
		return exitNoResult
	default:
		return exitOK
	}
}

// newRunID stamps now to the millisecond and adds a random suffix. The
// history table requires run IDs to be unique.
func newRunID(now time.Time) string {
	return now.Format("20060102-150405.000") + "-" + uuid.NewString()[:8]
}

// applyFlagOverrides lets command line flags take precedence over the config file.
func applyFlagOverrides(cfg *config.GlobalConfig, flags AppFlags) {
	if flags.Mode != "" {
		cfg.Mode = flags.Mode
	} else if len(flags.Archives) > 1 {
		cfg.Mode = config.ModeBatch
	}
	if flags.OutputDir != "" {
		cfg.ReporterConfig.OutputDir = flags.OutputDir
	}
}
