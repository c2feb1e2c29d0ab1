package models

// ParquetLink is the row schema of a per-language link export.
type ParquetLink struct {
	URL           string  `parquet:"url"`
	Path          string  `parquet:"path"`
	Language      string  `parquet:"language"`
	SourceArchive *string `parquet:"source_archive,optional"`
	RunID         string  `parquet:"run_id"`
	ExportedAt    int64   `parquet:"exported_at"`
}

// StringPtrOrNil returns nil for empty strings.
func StringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToLocalizedLink converts a stored row back into a link.
func (p ParquetLink) ToLocalizedLink() LocalizedLink {
	var source string
	if p.SourceArchive != nil {
		source = *p.SourceArchive
	}
	return NewLocalizedLink(p.URL, p.Path, p.Language, source)
}
