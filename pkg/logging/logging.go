package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// LogFileName receives rigup's own structured log
	LogFileName = "rigup.log"

	// InstallLogFileName receives raw subprocess output from installers
	InstallLogFileName = "install.log"
)

// SetupLogger configures the global logger based on verbosity level
// It sets up dual output to both console and a log file
func SetupLogger(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    false,
	}

	var writers []io.Writer
	writers = append(writers, consoleWriter)

	logFile := getLogFilePath()
	logFileHandle, err := openAppend(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// StateDir returns the directory rigup writes its logs to: RIGUP_STATE_DIR
// when set, otherwise rigup/ under the XDG state home.
func StateDir() string {
	return paths.New().StateDir()
}

// DefaultInstallLogPath is where installer subprocess output is appended
// unless configuration says otherwise.
func DefaultInstallLogPath() string {
	return filepath.Join(StateDir(), InstallLogFileName)
}

// OpenInstallLog opens the subprocess log for appending. Every installer
// writes the stdout and stderr of its commands here so the interactive
// surface stays clean.
func OpenInstallLog(path string) (*os.File, error) {
	if path == "" {
		path = DefaultInstallLogPath()
	}
	file, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(file, "\n==> rigup run started %s\n", time.Now().Format(time.RFC3339))
	return file, nil
}

func getLogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// openAppend creates the file and its parent directories
func openAppend(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
