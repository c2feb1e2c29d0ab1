package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayName returns the English name of a language code, e.g. "ko" -> "Korean".
// Unparsable codes are returned unchanged.
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}
