package filemanager

import (
	"regexp"
	"strings"
)

var (
	unsafeFilenameCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)
	multipleUnderscoresRegex = regexp.MustCompile(`_+`)
)

// SanitizeFilename creates a safe filename string from any input string.
// It removes a URL scheme, replaces unsafe characters with underscores and
// collapses repeated underscores.
func SanitizeFilename(input string) string {
	name := input
	if i := strings.Index(name, "://"); i != -1 {
		name = name[i+3:]
	}

	name = unsafeFilenameCharsRegex.ReplaceAllString(name, "_")
	name = multipleUnderscoresRegex.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "sanitized_empty_input"
	}
	return name
}

// CleanArchiveName strips every ".zip" and turns spaces into underscores,
// e.g. "Job 42.zip" -> "Job_42".
func CleanArchiveName(label string) string {
	return strings.ReplaceAll(strings.ReplaceAll(label, ".zip", ""), " ", "_")
}
