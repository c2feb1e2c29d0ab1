package scanner

import (
	"github.com/aleister1102/aemlink/internal/linkresolver"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
)

// Pipeline holds the components built once for a run.
type Pipeline struct {
	settings Settings
	single   Scanner
	batch    Aggregator
	logger   zerolog.Logger
}

// NewPipeline builds the scanner and aggregator from settings.
func NewPipeline(settings Settings, logger zerolog.Logger) *Pipeline {
	locales := locale.NewTableResolver(settings.Table)
	links := linkresolver.NewEditorResolver(settings.Host, settings.MarkerPrefix, settings.SourceCode)
	filter := NewFileFilter(settings.ContentPrefix, settings.ExcludedNames)
	languages := settings.Table.Codes()

	single := NewArchiveScanner(locales, links, filter, languages,
		ScanOptions{VerifyPayloads: settings.VerifyPayloads}, logger)
	stamped := NewArchiveScanner(locales, links, filter, languages,
		ScanOptions{StampSource: true, VerifyPayloads: settings.VerifyPayloads}, logger)

	return NewPipelineWith(settings, single, NewBatchAggregator(stamped, languages, logger), logger)
}

// NewPipelineWith assembles a pipeline from caller supplied components.
func NewPipelineWith(settings Settings, single Scanner, batch Aggregator, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		settings: settings,
		single:   single,
		batch:    batch,
		logger:   logger.With().Str("module", "Pipeline").Logger(),
	}
}

// Settings returns the run settings.
func (p *Pipeline) Settings() Settings {
	return p.settings
}

// ScanSingle scans one archive. Links keep archive order and carry no source label.
func (p *Pipeline) ScanSingle(input models.ArchiveInput) *models.ProcessingOutcome {
	if input.ReadErr != nil {
		outcome := models.NewProcessingOutcome(p.settings.Table.Codes()...)
		outcome.RecordFault(unreadableError(input))
		return outcome
	}
	p.logger.Info().Str("archive", input.Label).Int("bytes", len(input.Data)).Msg("Scanning single archive")
	return p.single.Scan(input.Data, input.Label)
}

// ScanBatch scans archives in order and merges them with last-write-wins dedup.
func (p *Pipeline) ScanBatch(inputs []models.ArchiveInput) *models.ProcessingOutcome {
	p.logger.Info().Int("archives", len(inputs)).Msg("Scanning archive batch")
	return p.batch.Process(inputs)
}

// ScanSingle builds a pipeline for settings and scans one archive.
func ScanSingle(data []byte, label string, settings Settings, logger zerolog.Logger) *models.ProcessingOutcome {
	return NewPipeline(settings, logger).ScanSingle(models.ArchiveInput{Data: data, Label: label})
}

// ScanBatch builds a pipeline for settings and scans archives in order.
func ScanBatch(archives []models.ArchiveInput, settings Settings, logger zerolog.Logger) *models.ProcessingOutcome {
	return NewPipeline(settings, logger).ScanBatch(archives)
}
