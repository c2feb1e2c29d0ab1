package reporter

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/common/filemanager"
	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
)

// ReportInput is what one run hands to the reporter.
type ReportInput struct {
	Outcome        *models.ProcessingOutcome
	SourceNames    []string
	JobID          string
	SubmissionName string
	// Diffs is keyed by language code and may be nil.
	Diffs map[string]models.LinkDiffResult
}

// HtmlReporter writes one HTML report per language bucket.
type HtmlReporter struct {
	cfg    *config.ReporterConfig
	logger zerolog.Logger
	mode   RenderMode
	loader *TemplateLoader
	tables *TableBuilder
	assets *reportAssets
	files  *filemanager.FileManager
	now    func() time.Time
}

// NewHtmlReporter creates a reporter. validator may be nil.
func NewHtmlReporter(cfg *config.ReporterConfig, paths *locale.PathManager, validator LinkValidator, appLogger zerolog.Logger) (*HtmlReporter, error) {
	moduleLogger := appLogger.With().Str("module", "HtmlReporter").Logger()

	mode, err := ParseRenderMode(cfg.RenderMode)
	if err != nil {
		return nil, err
	}

	loader, err := NewTemplateLoader(*cfg, moduleLogger)
	if err != nil {
		return nil, err
	}

	files := filemanager.NewFileManager(moduleLogger)
	assets, err := newReportAssets(assetsFS, files, moduleLogger)
	if err != nil {
		return nil, err
	}

	reporter := &HtmlReporter{
		cfg:    cfg,
		logger: moduleLogger,
		mode:   mode,
		loader: loader,
		tables: NewTableBuilder(NewQuickLinksGenerator(paths), validator),
		assets: assets,
		files:  files,
		now:    time.Now,
	}

	if err := reporter.initializeOutputDirectory(); err != nil {
		return nil, err
	}

	// Fail early on a broken template instead of after scanning.
	if _, err := reporter.template(); err != nil {
		return nil, err
	}

	moduleLogger.Info().Str("mode", mode.String()).Str("output_dir", cfg.OutputDir).Msg("HtmlReporter initialized successfully.")
	return reporter, nil
}

// Mode returns the configured render mode.
func (r *HtmlReporter) Mode() RenderMode {
	return r.mode
}

// Loader exposes the template loader, e.g. to reload templates between runs.
func (r *HtmlReporter) Loader() *TemplateLoader {
	return r.loader
}

func (r *HtmlReporter) initializeOutputDirectory() error {
	if r.cfg.OutputDir == "" {
		r.cfg.OutputDir = config.DefaultReporterOutputDir
		r.logger.Info().Str("default_dir", r.cfg.OutputDir).Msg("OutputDir not specified, using default.")
	}

	if err := r.files.EnsureDirectory(r.cfg.OutputDir, DirPermissions); err != nil {
		return errorwrapper.WrapError(err, "failed to create output directory")
	}
	if r.cfg.EmbedAssets {
		return nil
	}
	return r.assets.Publish(context.Background(), r.cfg.OutputDir)
}

func (r *HtmlReporter) template() (*template.Template, error) {
	if r.cfg.TemplateName != "" {
		return r.loader.LoadNamed(r.cfg.TemplateName, r.mode)
	}
	return r.loader.Load(r.mode)
}

// GenerateReports writes a report for every language of the outcome and
// returns the written paths in language order.
func (r *HtmlReporter) GenerateReports(input ReportInput) ([]string, error) {
	if input.Outcome == nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrInvalidInput, "no outcome to report")
	}

	paths := []string{}
	for _, code := range input.Outcome.Links.Languages() {
		if input.Outcome.Links.Count(code) == 0 && !r.cfg.GenerateEmptyReport {
			r.logger.Info().Str("language", code).Msg("No links, skipping report")
			continue
		}

		content, err := r.RenderLanguage(input, code)
		if err != nil {
			return paths, err
		}

		outputPath := filepath.Join(r.cfg.OutputDir, ReportFileName(code, input.SourceNames))
		if err := r.writeReport(content, outputPath); err != nil {
			return paths, err
		}
		paths = append(paths, outputPath)
		r.logger.Info().Str("language", code).Str("path", outputPath).Int("links", input.Outcome.Links.Count(code)).Msg("HTML report generated")
	}
	return paths, nil
}

// RenderLanguage renders the report of one language bucket.
func (r *HtmlReporter) RenderLanguage(input ReportInput, code string) ([]byte, error) {
	tmpl, err := r.template()
	if err != nil {
		return nil, err
	}

	pageData := r.prepareReportData(input, code)

	var htmlBuffer bytes.Buffer
	if err := tmpl.Execute(&htmlBuffer, &pageData); err != nil {
		r.logger.Error().Err(err).Str("language", code).Msg("Failed to execute template")
		return nil, fmt.Errorf("template execution failed: %w", err)
	}
	return htmlBuffer.Bytes(), nil
}

func (r *HtmlReporter) prepareReportData(input ReportInput, code string) ReportPageData {
	links := input.Outcome.Links.Get(code)
	languageName := locale.DisplayName(code)
	sourceName := titleSource(input.SourceNames)
	showSource := len(input.SourceNames) > 1

	var diff *models.LinkDiffResult
	if d, ok := input.Diffs[code]; ok && r.mode == RenderModeAdvanced {
		diff = &d
	}

	headers, rows := r.tables.Build(links, code, showSource, diff)

	pageData := ReportPageData{
		ReportTitle:    r.reportTitle(),
		PageTitle:      fmt.Sprintf("AEM %s Links - %s", languageName, sourceName),
		Language:       code,
		LanguageName:   languageName,
		RenderMode:     r.mode.String(),
		GeneratedAt:    r.now().Format("2006-01-02 15:04:05"),
		Source:         SourceInfo{JobID: input.JobID, SubmissionName: input.SubmissionName, SourceFile: sourceName},
		Headers:        headers,
		Rows:           rows,
		ShowSource:     showSource,
		LinkCount:      len(links),
		HasLinks:       len(links) > 0,
		NoLinksMessage: NoLinksMessage,
	}

	if r.mode == RenderModeAdvanced {
		pageData.ProcessedCount = input.Outcome.ProcessedCount
		pageData.ErrorCount = input.Outcome.ErrorCount
		if input.Outcome.HasWarnings() {
			pageData.Warnings = input.Outcome.Warnings
		}
		pageData.Summary = BuildSummaryTable(input.Outcome.Links)
		pageData.Sections = BuildSectionSummary(languageName, links)
		pageData.Diff = diff
	}

	if r.cfg.EmbedAssets {
		r.assets.Inline(&pageData)
	}
	return pageData
}

func (r *HtmlReporter) writeReport(content []byte, outputPath string) error {
	opts := filemanager.DefaultWriteOptions()
	opts.Perm = FilePermissions
	if err := r.files.WriteFile(context.Background(), outputPath, content, opts); err != nil {
		r.logger.Error().Err(err).Str("output", outputPath).Msg("Failed to write report file")
		return fmt.Errorf("failed to write report to %s: %w", outputPath, err)
	}
	return nil
}

func (r *HtmlReporter) reportTitle() string {
	if r.cfg.ReportTitle != "" {
		return r.cfg.ReportTitle
	}
	return DefaultReportTitle
}

func titleSource(names []string) string {
	if len(names) == 0 {
		return unnamedSourceName
	}
	return strings.Join(names, ", ")
}
