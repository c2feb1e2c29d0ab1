package reporter

import (
	"html/template"

	"github.com/aleister1102/aemlink/internal/models"
)

// SourceInfo identifies what a report was generated from.
type SourceInfo struct {
	JobID          string
	SubmissionName string
	SourceFile     string
}

// HasJob is true when both the job id and the submission name are known.
func (s SourceInfo) HasJob() bool {
	return s.JobID != "" && s.SubmissionName != ""
}

// TableCell is one level cell. URL is set only on the last level of a path.
type TableCell struct {
	Text string
	URL  string
}

// LinkRow is one row of the link table.
type LinkRow struct {
	URL           string
	Path          string
	SourceArchive string
	QuickLinks    []QuickLink
	Cells         []TableCell
	IsNew         bool
	Invalid       bool
	InvalidReason string
}

// ReportPageData is everything a report template can reference.
type ReportPageData struct {
	ReportTitle    string
	PageTitle      string
	Language       string
	LanguageName   string
	RenderMode     string
	GeneratedAt    string
	Source         SourceInfo
	Headers        []string
	Rows           []LinkRow
	ShowSource     bool
	LinkCount      int
	HasLinks       bool
	NoLinksMessage string

	// Populated in advanced mode only.
	ProcessedCount int
	ErrorCount     int
	Warnings       []string
	Summary        SummaryTable
	Sections       []SectionSummaryRow
	Diff           *models.LinkDiffResult

	CustomCSS template.CSS
	ReportJs  template.JS
}

// SetCustomCSS implements AssetSetter.
func (d *ReportPageData) SetCustomCSS(css template.CSS) {
	d.CustomCSS = css
}

// SetReportJs implements AssetSetter.
func (d *ReportPageData) SetReportJs(js template.JS) {
	d.ReportJs = js
}
