package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// encode wraps out with the line encoding of format. Files pass color=false.
func encode(format LogFormat, out io.Writer, color bool) io.Writer {
	switch format {
	case FormatJSON:
		return out
	case FormatText:
		return zerolog.ConsoleWriter{
			Out:          out,
			NoColor:      true,
			TimeFormat:   time.DateTime,
			PartsExclude: []string{zerolog.CallerFieldName},
		}
	default:
		return zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !color,
			TimeFormat: time.RFC3339,
		}
	}
}

// WriterFactory builds the console and file destinations of a logger.
type WriterFactory struct {
	console io.Writer
}

// NewWriterFactory writes console output to stderr.
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{console: os.Stderr}
}

// Console returns the colored console destination.
func (wf *WriterFactory) Console(format LogFormat) io.Writer {
	return encode(format, wf.console, true)
}

// File returns a rotating file destination. With a RunID the file moves to
// <dir>/runs/<RunID>/<name>.
func (wf *WriterFactory) File(cfg LoggerConfig) (io.Writer, error) {
	logPath := runLogPath(cfg.FilePath, cfg.RunID)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create log directory")
	}

	rotating := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}
	return encode(cfg.Format, rotating, false), nil
}

func runLogPath(filePath, runID string) string {
	if runID == "" {
		return filePath
	}
	return filepath.Join(filepath.Dir(filePath), "runs", runID, filepath.Base(filePath))
}
