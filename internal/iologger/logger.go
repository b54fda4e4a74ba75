// Package iologger sets up slog for gnbryo commands.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnbryo/pkg/config"
)

// LogFile is the name of the log file created in the log directory.
const LogFile = "gnbryo.log"

// Init creates the default slog logger according to cfg. When destination
// is "file", logs go to logDir/gnbryo.log, either appended or truncated.
// The returned closer must be called when the command finishes.
func Init(logDir string, cfg config.LogConfig, appendLog bool) (io.Closer, error) {
	w, closer, err := writer(logDir, cfg.Destination, appendLog)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(handler(w, cfg)))
	return closer, nil
}

// WithRun returns the default logger annotated with run ID and command
// name, so lines of concurrent or consecutive runs can be told apart.
func WithRun(runID, command string) *slog.Logger {
	return slog.Default().With("run_id", runID, "command", command)
}

func writer(
	logDir, dest string,
	appendLog bool,
) (io.Writer, io.Closer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if appendLog {
			flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(logPath, flag, 0644)
		if err != nil {
			return nil, nil, OpenLogFileError(logPath, err)
		}
		return f, f, nil
	default:
		return os.Stderr, nopCloser{}, nil
	}
}

func handler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	switch cfg.Format {
	case "text", "tint":
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
