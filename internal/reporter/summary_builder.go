package reporter

import (
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
)

// SummaryRow is the page count of one language.
type SummaryRow struct {
	Language  string
	PageCount int
}

// SummaryTable lists page counts per language and their total.
type SummaryTable struct {
	Rows  []SummaryRow
	Total int
}

// SectionSummaryRow counts pages under one top-level section.
type SectionSummaryRow struct {
	Language string
	Section  string
	Count    int
}

// BuildSummaryTable counts every bucket of set, in language order.
func BuildSummaryTable(set *models.LinkSet) SummaryTable {
	table := SummaryTable{Rows: []SummaryRow{}}
	for _, code := range set.Languages() {
		count := set.Count(code)
		table.Rows = append(table.Rows, SummaryRow{Language: locale.DisplayName(code), PageCount: count})
		table.Total += count
	}
	return table
}

// BuildSectionSummary counts links per first hierarchy level. Sections are
// listed in the order they are first seen; links without levels are skipped.
func BuildSectionSummary(languageName string, links []models.LocalizedLink) []SectionSummaryRow {
	index := make(map[string]int)
	rows := []SectionSummaryRow{}
	for _, link := range links {
		parts := SplitPath(link.Path)
		if len(parts) == 0 {
			continue
		}
		section := parts[0]
		if i, ok := index[section]; ok {
			rows[i].Count++
			continue
		}
		index[section] = len(rows)
		rows = append(rows, SectionSummaryRow{Language: languageName, Section: section, Count: 1})
	}
	return rows
}
