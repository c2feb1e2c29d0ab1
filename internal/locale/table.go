package locale

import (
	"slices"

	"github.com/aleister1102/aemlink/internal/config"
)

// Mapping pairs a marker substring found in entry paths with a short language code.
type Mapping struct {
	Marker string
	Code   string
}

// Table is the ordered locale table used for one run. Order is the
// tie-break when several markers occur in the same path.
type Table struct {
	sourceCode string
	mappings   []Mapping
}

// NewTable creates a table for the given source language and ordered mappings.
func NewTable(sourceCode string, mappings ...Mapping) Table {
	return Table{
		sourceCode: sourceCode,
		mappings:   slices.Clone(mappings),
	}
}

// DefaultTable is the built-in English source table with Korean and Japanese targets.
func DefaultTable() Table {
	return NewTable("en",
		Mapping{Marker: "ko-KR", Code: "ko"},
		Mapping{Marker: "ja-JP", Code: "ja"},
	)
}

// TableFromConfig builds the table from converter settings, keeping file order.
func TableFromConfig(cfg config.ConverterConfig) Table {
	mappings := make([]Mapping, 0, len(cfg.LanguageMappings))
	for _, m := range cfg.LanguageMappings {
		mappings = append(mappings, Mapping{Marker: m.Marker, Code: m.Code})
	}
	return NewTable(cfg.SourceLang, mappings...)
}

// SourceCode is the canonical code of the master language.
func (t Table) SourceCode() string {
	return t.sourceCode
}

// Mappings returns a copy of the ordered mappings.
func (t Table) Mappings() []Mapping {
	return slices.Clone(t.mappings)
}

// Codes returns the target codes in table order.
func (t Table) Codes() []string {
	codes := make([]string, len(t.mappings))
	for i, m := range t.mappings {
		codes[i] = m.Code
	}
	return codes
}

// Contains reports whether code is one of the target codes.
func (t Table) Contains(code string) bool {
	return slices.Contains(t.Codes(), code)
}
