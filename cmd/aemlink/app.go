package main

import (
	"context"
	"errors"
	"time"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/common/filemanager"
	"github.com/aleister1102/aemlink/internal/common/summary"
	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/datastore"
	"github.com/aleister1102/aemlink/internal/differ"
	"github.com/aleister1102/aemlink/internal/linkresolver"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/aleister1102/aemlink/internal/reporter"
	"github.com/aleister1102/aemlink/internal/resources"
	"github.com/aleister1102/aemlink/internal/scanner"
	"github.com/rs/zerolog"
)

// memoryWarnMB is the heap size above which the end-of-run usage log warns.
const memoryWarnMB = 1024

// App runs the archive pipeline once and hands the outcome to the exporters
// and the reporter.
type App struct {
	cfg    *config.GlobalConfig
	flags  AppFlags
	runID  string
	logger zerolog.Logger
	now    func() time.Time
}

func newApp(cfg *config.GlobalConfig, flags AppFlags, runID string, logger zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		flags:  flags,
		runID:  runID,
		logger: logger.With().Str("module", "App").Logger(),
		now:    time.Now,
	}
}

// Run reads the archives, scans them and produces exports, reports and a
// history record. Only setup problems and interruption are returned as
// errors; per-archive and per-entry faults end up in the summary.
func (a *App) Run(ctx context.Context) (summary.RunSummaryData, error) {
	startTime := a.now()
	usage := resources.NewUsageMonitor(a.logger, memoryWarnMB)
	usage.Start()
	defer usage.Finish()

	if a.cfg.Mode == config.ModeSingle && len(a.flags.Archives) != 1 {
		return summary.RunSummaryData{}, errorwrapper.NewValidationError("archive", a.flags.Archives, "single mode takes exactly one archive")
	}

	files := filemanager.NewFileManager(a.logger)
	archives, err := files.ReadArchives(a.flags.Archives, filemanager.ArchiveReadOptions())
	if err != nil {
		a.logger.Warn().Err(err).Msg("Some archives could not be read")
	}
	labels := make([]string, 0, len(archives))
	for _, archive := range archives {
		labels = append(labels, archive.Label)
	}

	// History outlives an interrupt so the row never stays STARTED.
	historyCtx := context.WithoutCancel(ctx)
	history, historyID := a.startHistory(historyCtx, len(archives), startTime)
	if history != nil {
		defer history.Close()
	}

	input := &summary.SummaryInput{
		RunID:     a.runID,
		Mode:      a.cfg.Mode,
		Archives:  labels,
		StartTime: startTime,
		Outcome:   a.scan(archives),
	}

	runErr := ctx.Err()
	if runErr != nil {
		a.logger.Warn().Err(runErr).Msg("Run interrupted, skipping export and reports")
		input.Interrupted = true
	} else {
		a.deliver(ctx, input)
	}

	result := summary.NewSummaryBuilder(a.logger).BuildSummary(input)
	if err := summary.NewRunSummaryValidator().ValidateSummary(result); err != nil {
		a.logger.Warn().Err(err).Msg("Run summary is incomplete")
	}

	if history != nil {
		if err := history.UpdateRunCompletion(historyCtx, historyID, result, a.now()); err != nil {
			a.logger.Warn().Err(err).Int64("history_id", historyID).Msg("Failed to record run completion")
		}
	}

	a.logSummary(result)
	return result, runErr
}

// scan runs every archive set through the batch aggregator, so a single
// archive is deduplicated and sorted the same way a batch is.
func (a *App) scan(archives []models.ArchiveInput) *models.ProcessingOutcome {
	pipeline := scanner.NewPipeline(scanner.SettingsFromConfig(a.cfg.ConverterConfig), a.logger)
	return pipeline.ScanBatch(archives)
}

// deliver exports and reports input.Outcome. Problems are recorded on input
// and the outcome itself is left as the scan produced it.
func (a *App) deliver(ctx context.Context, input *summary.SummaryInput) {
	input.Diffs, input.HostWarnings = a.exportLinks(ctx, input.Outcome)

	reportPaths, err := a.writeReports(input.Outcome, input.Archives, input.Diffs)
	input.ReportPaths = reportPaths
	if err != nil {
		a.logger.Error().Err(err).Msg("Report generation failed")
		input.ReportErrors = append(input.ReportErrors, err.Error())
	}
}

// startHistory opens the history store and records the run start. History
// is best effort: any failure disables it for this run.
func (a *App) startHistory(ctx context.Context, archiveCount int, startTime time.Time) (*datastore.HistoryStore, int64) {
	if !a.cfg.StorageConfig.RecordHistory {
		return nil, 0
	}
	store, err := datastore.NewHistoryStore(ctx, a.cfg.StorageConfig.HistoryDBPath, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Run history disabled")
		return nil, 0
	}
	id, err := store.RecordRunStart(ctx, a.runID, a.cfg.Mode, archiveCount, startTime)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record run start, run history disabled")
		_ = store.Close()
		return nil, 0
	}
	return store, id
}

// exportLinks diffs every language bucket against the previous export and
// then replaces that export. It returns the diffs and one warning per failure.
func (a *App) exportLinks(ctx context.Context, outcome *models.ProcessingOutcome) (map[string]models.LinkDiffResult, []string) {
	if !a.cfg.StorageConfig.ExportLinks {
		return nil, nil
	}

	writer, err := datastore.NewParquetWriter(&a.cfg.StorageConfig, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Link export disabled")
		return nil, []string{errorwrapper.WrapError(err, "link export disabled").Error()}
	}
	linkDiffer, err := differ.NewLinkDiffer(datastore.NewParquetReader(&a.cfg.StorageConfig, a.logger), a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Link export disabled")
		return nil, []string{errorwrapper.WrapError(err, "link export disabled").Error()}
	}

	failures := errorwrapper.NewErrorCollector()
	diffs := make(map[string]models.LinkDiffResult, len(outcome.Links.Languages()))
	for _, code := range outcome.Links.Languages() {
		links := outcome.Links.Get(code)

		diff, err := linkDiffer.Differentiate(code, links)
		if err != nil {
			failures.Add(errorwrapper.WrapError(err, "link diff failed for "+code))
		} else {
			diffs[code] = diff
		}

		if _, err := writer.WriteLinks(ctx, code, links, a.runID); err != nil {
			if errors.Is(err, context.Canceled) {
				a.logger.Warn().Msg("Link export interrupted")
				break
			}
			failures.Add(errorwrapper.WrapError(err, "link export failed for "+code))
		}
	}

	warnings := make([]string, 0, len(failures.Errors()))
	for _, err := range failures.Errors() {
		warnings = append(warnings, err.Error())
	}
	if failures.HasErrors() {
		a.logger.Warn().Err(failures.Error()).Msg("Link export incomplete")
	}
	return diffs, warnings
}

func (a *App) writeReports(outcome *models.ProcessingOutcome, labels []string, diffs map[string]models.LinkDiffResult) ([]string, error) {
	converter := a.cfg.ConverterConfig
	paths := locale.NewPathManager(converter.MarkerPrefix, converter.SourceLang, converter.SPACPaths)
	validator := linkresolver.NewValidator(converter.AEMHost, converter.MarkerPrefix)

	htmlReporter, err := reporter.NewHtmlReporter(&a.cfg.ReporterConfig, paths, validator, a.logger)
	if err != nil {
		return nil, err
	}
	return htmlReporter.GenerateReports(reporter.ReportInput{
		Outcome:        outcome,
		SourceNames:    labels,
		JobID:          a.flags.JobID,
		SubmissionName: a.flags.SubmissionName,
		Diffs:          diffs,
	})
}

func (a *App) logSummary(result summary.RunSummaryData) {
	event := a.logger.Info().
		Str("run_id", result.RunID).
		Str("mode", result.Mode).
		Str("status", string(result.Status)).
		Int("processed", result.ProcessedCount).
		Int("errors", result.ErrorCount).
		Int("links", result.TotalLinks).
		Dur("duration", result.Duration)
	for _, lang := range result.Languages {
		event = event.Int(lang.Code+"_links", lang.Links)
	}
	event.Strs("reports", result.ReportPaths).Msg("Run finished")

	for _, warning := range result.Warnings {
		a.logger.Warn().Msg(warning)
	}
	for _, warning := range result.HostWarnings {
		a.logger.Warn().Msg(warning)
	}
	for _, reportErr := range result.ReportErrors {
		a.logger.Error().Str("report_error", reportErr).Msg("Report not written")
	}
}
