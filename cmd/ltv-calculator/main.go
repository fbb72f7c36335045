package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/young626-jang/LTV-Calculator/internal/config"
	"github.com/young626-jang/LTV-Calculator/internal/history"
	"github.com/young626-jang/LTV-Calculator/internal/ltv"
	"github.com/young626-jang/LTV-Calculator/internal/server"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
	"github.com/young626-jang/LTV-Calculator/pkg/output"
	"github.com/young626-jang/LTV-Calculator/pkg/validation"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var loggerConfig zap.Config
	switch format {
	case "console":
		loggerConfig = zap.NewDevelopmentConfig()
		loggerConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		loggerConfig = zap.NewProductionConfig()
		loggerConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		loggerConfig.OutputPaths = []string{loggingConfig.OutputFile}
		loggerConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return loggerConfig.Build()
}

// newHistoryStore builds the configured history store, or nil when history
// is disabled.
func newHistoryStore(conf *config.Configuration) history.Store {
	if !conf.History.Enabled {
		return nil
	}
	if conf.History.Backend == "redis" {
		return history.NewRedisStore(conf.History.RedisAddr)
	}
	return history.NewMemoryStore()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of running profiles")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	err = validation.ValidateHistoryBackend(conf.History.Backend)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	store := newHistoryStore(conf)

	if *serve {
		address := conf.Server.Address
		if address == "" {
			address = constants.DefaultServerAddress
		}
		handler := server.NewHandler(logger, conf, store, version)
		logger.Info("serving estimate API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Run every active profile through the estimation pipeline.
	ctx := context.Background()
	var reports []ltv.Report
	for _, profile := range conf.Profiles {
		if !profile.Active {
			logger.Debug(fmt.Sprintf("skipping profile %s because it is inactive", profile.Name),
				zap.String("op", "main"),
			)
			continue
		}
		report := ltv.Estimate(logger, conf.ToRequest(profile))
		reports = append(reports, report)

		if store != nil {
			if _, err := store.Save(ctx, history.RecordFromReport(report), true); err != nil {
				logger.Warn("failed to save history record",
					zap.String("op", "main"),
					zap.String("profile", profile.Name),
					zap.Error(err),
				)
			}
		}
	}

	// Age out stale history before reporting.
	if store != nil {
		retentionDays := conf.History.RetentionDays
		if retentionDays <= 0 {
			retentionDays = constants.DefaultHistoryRetentionDays
		}
		removed, err := store.CleanupOlderThan(ctx, history.RetentionCutoff(retentionDays))
		if err != nil {
			logger.Warn("failed to clean up history",
				zap.String("op", "main"),
				zap.Error(err),
			)
		} else if removed > 0 {
			logger.Info("removed stale history records",
				zap.String("op", "main"),
				zap.Int("removed", removed),
			)
		}
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(reports)
	case constants.OutputFormatCSV:
		output.CsvFormat(reports)
	}

}
