package summary

import "time"

// LanguageStats holds per-language counts of one run.
type LanguageStats struct {
	Code    string
	Name    string
	Links   int
	Added   int
	Removed int
}

// RunSummaryData holds all relevant information about a run, for logs,
// reports and the history store.
type RunSummaryData struct {
	RunID          string
	Mode           string
	Archives       []string
	ProcessedCount int
	ErrorCount     int
	TotalLinks     int
	Languages      []LanguageStats
	Warnings       []string
	HostWarnings   []string
	ReportErrors   []string
	Duration       time.Duration
	ReportPaths    []string
	Status         RunStatus
}

// GetDefaultRunSummaryData initializes a RunSummaryData with empty values.
func GetDefaultRunSummaryData() RunSummaryData {
	return RunSummaryData{
		Mode:         "Unknown",
		Archives:     []string{},
		Languages:    []LanguageStats{},
		Warnings:     []string{},
		HostWarnings: []string{},
		ReportErrors: []string{},
		Status:       RunStatusUnknown,
	}
}

// WarningCount counts scan warnings together with export and report problems.
func (s RunSummaryData) WarningCount() int {
	return len(s.Warnings) + len(s.HostWarnings) + len(s.ReportErrors)
}
