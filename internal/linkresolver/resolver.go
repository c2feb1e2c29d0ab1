package linkresolver

import "strings"

const (
	// StructuralSeparator replaces "/" inside exported file names.
	StructuralSeparator = "#"
	// EditorSegment joins the host and the page path.
	EditorSegment = "/editor.html/"
	// SourceExtension is the only payload extension that maps to a page.
	SourceExtension = ".xml"
	// PageExtension replaces SourceExtension in the final path.
	PageExtension = ".html"
)

// Resolution is an editor URL and the content path it points at.
type Resolution struct {
	URL  string
	Path string
}

// Resolver turns an exported file name into an editor link for a target language.
type Resolver interface {
	Resolve(fileName, targetCode string) (Resolution, bool)
}

// EditorResolver rewrites "<prefix>#<source>" file names into editor URLs.
type EditorResolver struct {
	host         string
	markerPrefix string
	sourceMarker string
}

// NewEditorResolver creates a resolver for host, e.g. with markerPrefix
// "language-master" and sourceCode "en" the source marker is "language-master#en".
func NewEditorResolver(host, markerPrefix, sourceCode string) *EditorResolver {
	return &EditorResolver{
		host:         host,
		markerPrefix: markerPrefix,
		sourceMarker: Marker(markerPrefix, sourceCode),
	}
}

// Marker builds "<prefix>#<code>".
func Marker(prefix, code string) string {
	return prefix + StructuralSeparator + code
}

// SourceMarker returns the marker every resolvable file name must contain.
func (r *EditorResolver) SourceMarker() string {
	return r.sourceMarker
}

// Host returns the configured editor host.
func (r *EditorResolver) Host() string {
	return r.host
}

// Resolve applies the rewrite steps in order. Any failed step means the
// entry is not a content page and ok is false.
func (r *EditorResolver) Resolve(fileName, targetCode string) (Resolution, bool) {
	if !strings.Contains(fileName, r.sourceMarker) {
		return Resolution{}, false
	}

	// Only the first occurrence is rewritten.
	rewritten := strings.Replace(fileName, r.sourceMarker, Marker(r.markerPrefix, targetCode), 1)

	rest, ok := strings.CutPrefix(rewritten, StructuralSeparator)
	if !ok {
		return Resolution{}, false
	}
	candidate := strings.ReplaceAll(rest, StructuralSeparator, "/")

	stem, ok := strings.CutSuffix(candidate, SourceExtension)
	if !ok {
		return Resolution{}, false
	}
	path := stem + PageExtension

	return Resolution{
		URL:  r.host + EditorSegment + path,
		Path: path,
	}, true
}
