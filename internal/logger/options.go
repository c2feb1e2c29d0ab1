package logger

import (
	"strings"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/config"
	"github.com/rs/zerolog"
)

// LogFormat selects how log lines are encoded.
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

var formatNames = map[LogFormat]string{
	FormatJSON:    "json",
	FormatConsole: "console",
	FormatText:    "text",
}

func (lf LogFormat) String() string {
	if name, ok := formatNames[lf]; ok {
		return name
	}
	return formatNames[FormatConsole]
}

// ParseLogFormat maps a config value to a LogFormat. Unknown values mean console.
func ParseLogFormat(s string) LogFormat {
	s = strings.ToLower(strings.TrimSpace(s))
	for format, name := range formatNames {
		if name == s {
			return format
		}
	}
	return FormatConsole
}

// ParseLevel maps a config value to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return level, nil
}

// LoggerConfig is the resolved logger setup. File output is enabled by a
// non-empty FilePath and grouped under runs/<RunID>/ when RunID is set.
type LoggerConfig struct {
	Level      zerolog.Level
	Format     LogFormat
	Console    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	RunID      string
}

// HasFile reports whether logs are also written to a rotated file.
func (c LoggerConfig) HasFile() bool {
	return c.FilePath != ""
}

// DefaultLoggerConfig logs info and above to the console only.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		Console:    true,
		MaxSizeMB:  config.DefaultMaxLogSizeMB,
		MaxBackups: config.DefaultMaxLogBackups,
	}
}

// FromLogConfig resolves the application log section. An unparsable level
// falls back to info and is reported through the error.
func FromLogConfig(cfg config.LogConfig) (LoggerConfig, error) {
	level, err := ParseLevel(cfg.LogLevel)

	resolved := DefaultLoggerConfig()
	resolved.Level = level
	resolved.Format = ParseLogFormat(cfg.LogFormat)
	resolved.FilePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		resolved.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		resolved.MaxBackups = cfg.MaxLogBackups
	}
	return resolved, err
}
