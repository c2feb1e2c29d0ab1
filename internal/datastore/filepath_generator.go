package datastore

import (
	"path/filepath"

	"github.com/aleister1102/aemlink/internal/common/filemanager"
)

const (
	linksDataDir     = "links"
	linkFileSuffix   = ".parquet"
	tempFilePattern  = ".export-*.tmp"
	defaultDirPerm   = 0755
	defaultFilePerms = 0644
)

// LinksDir is the directory holding the per-language exports under baseDir.
func LinksDir(baseDir string) string {
	return filepath.Join(baseDir, linksDataDir)
}

// LinkFilePath returns <baseDir>/links/<code>.parquet.
func LinkFilePath(baseDir, code string) string {
	return filepath.Join(LinksDir(baseDir), filemanager.SanitizeFilename(code)+linkFileSuffix)
}
