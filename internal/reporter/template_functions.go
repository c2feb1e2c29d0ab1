package reporter

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/aleister1102/aemlink/internal/locale"
)

// reportFuncs are available to embedded and custom templates.
func reportFuncs() template.FuncMap {
	return template.FuncMap{
		"languageName": locale.DisplayName,
		"levelHeader":  LevelHeader,
		"splitPath":    SplitPath,
		"join":         strings.Join,
		"upper":        strings.ToUpper,
		"add":          func(a, b int) int { return a + b },
		// json embeds values into inline scripts of custom templates.
		"json": func(v any) (template.JS, error) {
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(data), nil
		},
	}
}
