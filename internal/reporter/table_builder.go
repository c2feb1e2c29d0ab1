package reporter

import (
	"strconv"
	"strings"

	"github.com/aleister1102/aemlink/internal/linkresolver"
	"github.com/aleister1102/aemlink/internal/models"
)

// LinkValidator flags links that do not look like editor pages.
type LinkValidator interface {
	Validate(link models.LocalizedLink) error
}

// SplitPath returns the hierarchy levels of a page path: slashes trimmed,
// ".html" removed and the leading root segment dropped.
// "content/language-master/ko/a/b.html" -> ["language-master" "ko" "a" "b"].
func SplitPath(path string) []string {
	trimmed := strings.ReplaceAll(strings.Trim(path, "/"), linkresolver.PageExtension, "")
	return strings.Split(trimmed, "/")[1:]
}

// LevelHeader names the i-th level column. Level numbering starts at 2
// because the root segment is not shown.
func LevelHeader(i int) string {
	return "Level " + strconv.Itoa(i+FirstLevelNumber)
}

// TableBuilder turns a language bucket into the hierarchical link table.
type TableBuilder struct {
	quickLinks *QuickLinksGenerator
	validator  LinkValidator
}

// NewTableBuilder creates a builder. validator may be nil.
func NewTableBuilder(quickLinks *QuickLinksGenerator, validator LinkValidator) *TableBuilder {
	return &TableBuilder{quickLinks: quickLinks, validator: validator}
}

// Headers returns the column names for a table with maxDepth levels.
func (b *TableBuilder) Headers(maxDepth int, showSource bool) []string {
	headers := []string{"Check", "Quick Links"}
	if showSource {
		headers = append(headers, "Source")
	}
	for i := 0; i < maxDepth; i++ {
		headers = append(headers, LevelHeader(i))
	}
	return headers
}

// Build returns the headers and rows for links. Rows keep the bucket order.
// diff may be nil.
func (b *TableBuilder) Build(links []models.LocalizedLink, code string, showSource bool, diff *models.LinkDiffResult) ([]string, []LinkRow) {
	parts := make([][]string, len(links))
	maxDepth := 0
	for i, link := range links {
		parts[i] = SplitPath(link.Path)
		maxDepth = max(maxDepth, len(parts[i]))
	}

	rows := make([]LinkRow, 0, len(links))
	for i, link := range links {
		row := LinkRow{
			URL:           link.URL,
			Path:          link.Path,
			SourceArchive: link.SourceArchive,
			QuickLinks:    b.quickLinks.Generate(link.URL, code),
			Cells:         buildCells(link.URL, parts[i], maxDepth),
		}
		if diff != nil && diff.HasBaseline {
			row.IsNew = diff.Status(link.Path) == models.StatusNew
		}
		if b.validator != nil {
			if err := b.validator.Validate(link); err != nil {
				row.Invalid = true
				row.InvalidReason = err.Error()
			}
		}
		rows = append(rows, row)
	}

	return b.Headers(maxDepth, showSource), rows
}

func buildCells(url string, parts []string, maxDepth int) []TableCell {
	cells := make([]TableCell, maxDepth)
	last := len(parts) - 1
	for j := 0; j < maxDepth; j++ {
		switch {
		case j < last:
			cells[j] = TableCell{Text: parts[j]}
		case j == last:
			cells[j] = TableCell{Text: parts[j], URL: url}
		}
	}
	return cells
}
