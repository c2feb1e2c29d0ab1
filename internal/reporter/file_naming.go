package reporter

import (
	"fmt"

	"github.com/aleister1102/aemlink/internal/common/filemanager"
)

const (
	reportFilePrefix  = "aem_links"
	multiFilesSuffix  = "multi_files"
	reportFileExt     = ".html"
	unnamedSourceName = "unnamed"
)

// ReportFileName names the report of language code for the given sources:
// aem_links_<code>_<archive>.html for one archive, aem_links_<code>_multi_files.html otherwise.
func ReportFileName(code string, sourceNames []string) string {
	var source string
	switch len(sourceNames) {
	case 0:
		source = unnamedSourceName
	case 1:
		source = filemanager.SanitizeFilename(filemanager.CleanArchiveName(sourceNames[0]))
	default:
		source = multiFilesSuffix
	}
	return fmt.Sprintf("%s_%s_%s%s", reportFilePrefix, filemanager.SanitizeFilename(code), source, reportFileExt)
}
