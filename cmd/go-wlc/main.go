package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/textbook/go-wlc/internal/appraisal"
	appconfig "github.com/textbook/go-wlc/internal/config"
	"github.com/textbook/go-wlc/pkg/constants"
	"github.com/textbook/go-wlc/pkg/output"
	"github.com/textbook/go-wlc/pkg/webtag"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig appconfig.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
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
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
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

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

// parseDatabook extracts a databook workbook to JSON, either to the given
// output file or to stdout.
func parseDatabook(logger *zap.Logger, databookPath, outputPath string) error {
	parser, err := webtag.OpenDatabook(databookPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = parser.Close()
	}()

	data, err := parser.ExtractAll()
	if err != nil {
		return err
	}

	if outputPath != "" {
		logger.Debug(fmt.Sprintf("writing dataset to %s", outputPath),
			zap.String("op", "main.parseDatabook"),
		)
		return data.WriteJSON(outputPath)
	}
	return data.DumpJSON(os.Stdout)
}

// loadData resolves the configured data path: a directory is searched for
// the most recently released dataset, a file is loaded directly, and no
// path at all yields an empty dataset with the default rate schedules.
func loadData(logger *zap.Logger, conf *appconfig.Configuration) (*webtag.Data, error) {
	path := conf.Appraisal.DataPath
	if path == "" {
		if conf.Appraisal.StartYear == 0 {
			return nil, fmt.Errorf("either appraisal.dataPath or appraisal.startYear must be configured")
		}
		return &webtag.Data{BaseYear: conf.Appraisal.StartYear}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return webtag.FromLatestJSON(path, logger)
	}
	return webtag.FromJSON(path, logger)
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	databook := flag.String("parse", "", "databook workbook to parse into a JSON dataset")
	outputFile := flag.String("o", "", "file to write the parsed dataset to (defaults to stdout)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration. Parsing a
	// databook works without one.
	conf, err := appconfig.LoadConfiguration(*configLocation)
	if err != nil {
		if *databook == "" {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
		conf = &appconfig.Configuration{}
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

	if *databook != "" {
		if err := parseDatabook(logger, *databook, *outputFile); err != nil {
			logger.Fatal("failed to parse databook",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = output.ValidateFormat(outputFormat)
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

	// Load the rate dataset named by the configuration.
	data, err := loadData(logger, conf)
	if err != nil {
		logger.Fatal("failed to load rate dataset",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Run the appraisal to get the factor tables and cost conversions.
	result, err := appraisal.Run(logger, *conf, data)
	if err != nil {
		logger.Fatal("failed to compute appraisal",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	}
}
