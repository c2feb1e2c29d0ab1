package linkresolver

import (
	"strings"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/models"
)

// ContentRoot is the first segment of every publishable page path.
const ContentRoot = "content/"

// Validator checks resolved links against the editor URL conventions.
type Validator struct {
	host          string
	masterSegment string
}

// NewValidator creates a validator for host and the language-master tree name.
func NewValidator(host, masterSegment string) *Validator {
	return &Validator{host: host, masterSegment: masterSegment}
}

// ValidateURL requires the host prefix, the editor segment and an .html suffix.
func (v *Validator) ValidateURL(url string) bool {
	return strings.HasPrefix(url, v.host) &&
		strings.Contains(url, EditorSegment) &&
		strings.HasSuffix(url, PageExtension)
}

// ValidatePath requires a content/ root inside the language-master tree.
func (v *Validator) ValidatePath(path string) bool {
	return strings.HasPrefix(path, ContentRoot) && strings.Contains(path, v.masterSegment)
}

// Validate returns a ValidationError describing the first broken rule.
func (v *Validator) Validate(link models.LocalizedLink) error {
	if !v.ValidateURL(link.URL) {
		return errorwrapper.NewValidationError("url", link.URL, "not an editor URL on "+v.host)
	}
	if !v.ValidatePath(link.Path) {
		return errorwrapper.NewValidationError("path", link.Path, "not a "+v.masterSegment+" content path")
	}
	if !strings.HasSuffix(link.URL, link.Path) {
		return errorwrapper.NewValidationError("url", link.URL, "does not end with path")
	}
	return nil
}
