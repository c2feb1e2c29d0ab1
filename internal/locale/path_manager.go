package locale

import (
	"maps"
	"strings"
)

// PathManager rewrites editor URLs between the language-master tree of a
// target language, the source language and the SPAC tree.
type PathManager struct {
	masterSegment string
	sourceCode    string
	spacPaths     map[string]string
}

// NewPathManager creates a manager. masterSegment is the tree name, e.g. "language-master".
func NewPathManager(masterSegment, sourceCode string, spacPaths map[string]string) *PathManager {
	return &PathManager{
		masterSegment: masterSegment,
		sourceCode:    sourceCode,
		spacPaths:     maps.Clone(spacPaths),
	}
}

// MasterPath returns "/<masterSegment>/<code>/".
func (pm *PathManager) MasterPath(code string) string {
	return "/" + pm.masterSegment + "/" + code + "/"
}

// SPACPath returns the SPAC path configured for code.
func (pm *PathManager) SPACPath(code string) (string, bool) {
	p, ok := pm.spacPaths[code]
	return p, ok
}

// SourceCode returns the master language code.
func (pm *PathManager) SourceCode() string {
	return pm.sourceCode
}

// ToSPAC points url at the SPAC tree for code. URLs for codes without a
// SPAC path are returned unchanged.
func (pm *PathManager) ToSPAC(url, code string) string {
	spac, ok := pm.spacPaths[code]
	if !ok {
		return url
	}
	return strings.ReplaceAll(url, pm.MasterPath(code), spac)
}

// ToSource points url at the source language's master tree.
func (pm *PathManager) ToSource(url, code string) string {
	return strings.ReplaceAll(url, pm.MasterPath(code), pm.MasterPath(pm.sourceCode))
}
