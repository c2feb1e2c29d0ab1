package reporter

import "github.com/aleister1102/aemlink/internal/locale"

// QuickLink is one anchor in the Quick Links column.
type QuickLink struct {
	Label string
	URL   string
}

// QuickLinksGenerator builds the source, target and SPAC variants of a link.
type QuickLinksGenerator struct {
	paths *locale.PathManager
}

// NewQuickLinksGenerator creates a generator backed by paths.
func NewQuickLinksGenerator(paths *locale.PathManager) *QuickLinksGenerator {
	return &QuickLinksGenerator{paths: paths}
}

// Generate returns lm-<source>, lm-<code> and spac-<code>, in that order.
func (g *QuickLinksGenerator) Generate(url, code string) []QuickLink {
	return []QuickLink{
		{Label: "lm-" + g.paths.SourceCode(), URL: g.paths.ToSource(url, code)},
		{Label: "lm-" + code, URL: url},
		{Label: "spac-" + code, URL: g.paths.ToSPAC(url, code)},
	}
}
