package models

import "strings"

// LocalizedLink is one resolved editor link for a target language.
// Treat it as a value: copies are cheap and nothing mutates it after construction.
type LocalizedLink struct {
	URL           string `json:"url"`
	Path          string `json:"path"`
	Language      string `json:"language"`
	SourceArchive string `json:"source_archive,omitempty"` // set in batch runs only
}

// NewLocalizedLink builds a link; sourceArchive may be empty.
func NewLocalizedLink(url, path, language, sourceArchive string) LocalizedLink {
	return LocalizedLink{
		URL:           url,
		Path:          path,
		Language:      language,
		SourceArchive: sourceArchive,
	}
}

// WithSourceArchive returns a copy stamped with the originating archive.
func (l LocalizedLink) WithSourceArchive(label string) LocalizedLink {
	l.SourceArchive = label
	return l
}

// HasSourceArchive reports whether the link records its archive.
func (l LocalizedLink) HasSourceArchive() bool {
	return l.SourceArchive != ""
}

// IsWellFormed checks the path/url invariants of a link.
func (l LocalizedLink) IsWellFormed() bool {
	return l.Path != "" && strings.HasSuffix(l.Path, ".html") && strings.HasSuffix(l.URL, l.Path)
}
