package scanner

import (
	"path"
	"strings"
)

// EntryFilter decides which archive entries are candidate content pages.
type EntryFilter interface {
	Accept(entryPath string) bool
}

// FileFilter accepts entries whose file name starts with the content prefix
// and skips platform metadata such as resource forks.
type FileFilter struct {
	contentPrefix string
	excluded      []string
}

// NewFileFilter creates a filter. excluded names are matched as substrings of the full path.
func NewFileFilter(contentPrefix string, excluded []string) *FileFilter {
	return &FileFilter{contentPrefix: contentPrefix, excluded: excluded}
}

// IsMetadata reports whether entryPath belongs to archive metadata.
func (f *FileFilter) IsMetadata(entryPath string) bool {
	for _, name := range f.excluded {
		if name != "" && strings.Contains(entryPath, name) {
			return true
		}
	}
	return false
}

// Accept implements EntryFilter.
func (f *FileFilter) Accept(entryPath string) bool {
	if strings.HasSuffix(entryPath, "/") || f.IsMetadata(entryPath) {
		return false
	}
	return strings.HasPrefix(FileName(entryPath), f.contentPrefix)
}

// FileName returns the last component of a ZIP entry path.
func FileName(entryPath string) string {
	return path.Base(entryPath)
}
