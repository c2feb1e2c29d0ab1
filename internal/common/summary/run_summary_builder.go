package summary

import (
	"time"

	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
)

// SummaryBuilder handles the creation of run summary data
type SummaryBuilder struct {
	logger zerolog.Logger
}

// NewSummaryBuilder creates a new SummaryBuilder instance
func NewSummaryBuilder(logger zerolog.Logger) *SummaryBuilder {
	return &SummaryBuilder{
		logger: logger.With().Str("module", "SummaryBuilder").Logger(),
	}
}

// SummaryInput contains data needed to build a run summary. HostWarnings and
// ReportErrors come from the steps after the scan and never touch Outcome.
type SummaryInput struct {
	RunID        string
	Mode         string
	Archives     []string
	StartTime    time.Time
	Outcome      *models.ProcessingOutcome
	Diffs        map[string]models.LinkDiffResult
	ReportPaths  []string
	HostWarnings []string
	ReportErrors []string
	Interrupted  bool
}

// BuildSummary creates the run summary from the pipeline outcome
func (sb *SummaryBuilder) BuildSummary(input *SummaryInput) RunSummaryData {
	summary := GetDefaultRunSummaryData()
	summary.RunID = input.RunID
	summary.Mode = input.Mode
	summary.Archives = append(summary.Archives, input.Archives...)
	summary.ReportPaths = input.ReportPaths
	summary.HostWarnings = append(summary.HostWarnings, input.HostWarnings...)
	summary.ReportErrors = append(summary.ReportErrors, input.ReportErrors...)

	if !input.StartTime.IsZero() {
		summary.Duration = time.Since(input.StartTime)
	}

	summary.Status = StatusFromOutcome(input.Outcome)
	switch {
	case input.Interrupted:
		summary.Status = RunStatusInterrupted
	case summary.Status == RunStatusCompleted && len(input.ReportErrors) > 0:
		summary.Status = RunStatusCompletedWithIssues
	}
	if input.Outcome == nil {
		sb.logger.Warn().Str("run_id", input.RunID).Msg("Building summary without outcome")
		return summary
	}

	summary.ProcessedCount = input.Outcome.ProcessedCount
	summary.ErrorCount = input.Outcome.ErrorCount
	summary.TotalLinks = input.Outcome.Links.Total()
	summary.Warnings = append(summary.Warnings, input.Outcome.Warnings...)

	for _, code := range input.Outcome.Links.Languages() {
		stats := LanguageStats{
			Code:  code,
			Name:  locale.DisplayName(code),
			Links: input.Outcome.Links.Count(code),
		}
		if diff, ok := input.Diffs[code]; ok {
			stats.Added = len(diff.Added)
			stats.Removed = len(diff.Removed)
		}
		summary.Languages = append(summary.Languages, stats)
	}

	return summary
}
