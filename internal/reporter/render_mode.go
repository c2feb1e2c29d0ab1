package reporter

import (
	"strings"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
)

// RenderMode selects how much a report shows. It is chosen by configuration,
// never inferred from template content.
type RenderMode int

const (
	// RenderModeBasic renders title, source info and the link table.
	RenderModeBasic RenderMode = iota
	// RenderModeAdvanced adds run counters, warnings, summaries and the change list.
	RenderModeAdvanced
)

// String returns the config spelling of the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderModeBasic:
		return "basic"
	case RenderModeAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// TemplatePath returns the embedded template for the mode.
func (m RenderMode) TemplatePath() string {
	if m == RenderModeBasic {
		return BasicTemplatePath
	}
	return AdvancedTemplatePath
}

// ParseRenderMode parses a config value. Empty means advanced.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "advanced":
		return RenderModeAdvanced, nil
	case "basic":
		return RenderModeBasic, nil
	default:
		return RenderModeAdvanced, errorwrapper.NewValidationError("render_mode", s, "expected basic or advanced")
	}
}
