package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const appName = "packlist"

var (
	fileMu sync.Mutex
	file   *os.File
)

// Setup configures the global logger from a verbosity count. Output goes to
// stderr and, when it can be opened, to a log file under XDG_STATE_HOME.
func Setup(verbosity int) {
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

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}}

	logFile := FilePath()
	fileMu.Lock()
	closeFileLocked()
	fh, err := openLogFile(logFile)
	if err == nil {
		file = fh
		writers = append(writers, fh)
	}
	fileMu.Unlock()

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// Close releases the log file opened by Setup. Later log lines go to stderr
// only until Setup runs again.
func Close() {
	fileMu.Lock()
	defer fileMu.Unlock()
	if file != nil {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	closeFileLocked()
}

func closeFileLocked() {
	if file == nil {
		return
	}
	_ = file.Close()
	file = nil
}

// For returns a logger tagged with a component name.
func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// FilePath is where Setup writes the log file.
func FilePath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func openLogFile(p string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
