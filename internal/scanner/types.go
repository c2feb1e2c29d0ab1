package scanner

import (
	"slices"

	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
)

// Scanner turns one archive into a ProcessingOutcome.
type Scanner interface {
	Scan(data []byte, label string) *models.ProcessingOutcome
}

// Aggregator merges the outcomes of several archives into one.
type Aggregator interface {
	Process(archives []models.ArchiveInput) *models.ProcessingOutcome
}

// Settings are the immutable inputs of one pipeline run.
type Settings struct {
	Host           string
	SourceCode     string
	MarkerPrefix   string
	ContentPrefix  string
	Table          locale.Table
	ExcludedNames  []string
	VerifyPayloads bool
}

// SettingsFromConfig builds run settings from converter configuration.
func SettingsFromConfig(cfg config.ConverterConfig) Settings {
	return Settings{
		Host:           cfg.AEMHost,
		SourceCode:     cfg.SourceLang,
		MarkerPrefix:   cfg.MarkerPrefix,
		ContentPrefix:  cfg.ContentPrefix,
		Table:          locale.TableFromConfig(cfg),
		ExcludedNames:  slices.Clone(cfg.ExcludedNames),
		VerifyPayloads: cfg.VerifyPayloads,
	}
}

// DefaultSettings mirrors config.NewDefaultConverterConfig.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.NewDefaultConverterConfig())
}

// ScanOptions tune a single ArchiveScanner.
type ScanOptions struct {
	// StampSource records the archive label on every link (batch runs).
	StampSource bool
	// VerifyPayloads reads accepted entries fully so corrupt data becomes an entry fault.
	VerifyPayloads bool
}
