package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := newValidator()

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %w", errorwrapper.ErrInvalidConfiguration, err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", trimNamespace(e.StructNamespace()), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("%w: validation failed:\n  %s", errorwrapper.ErrInvalidConfiguration, strings.Join(messages, "\n  "))
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("fileexists", func(fl validator.FieldLevel) bool {
		path := fl.Field().String()
		if path == "" {
			return true
		}
		return fileExists(path)
	})

	_ = validate.RegisterValidation("dirpath", func(fl validator.FieldLevel) bool {
		dirPath := fl.Field().String()
		if dirPath == "" {
			return true
		}
		info, err := os.Stat(dirPath)
		return err == nil && info.IsDir()
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case ModeSingle, ModeBatch:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("rendermode", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", RenderModeBasic, RenderModeAdvanced:
			return true
		default:
			return false
		}
	})

	// Language codes must be well-formed BCP 47 tags.
	_ = validate.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		_, err := language.Parse(fl.Field().String())
		return err == nil
	})

	// Host is used as a URL prefix, so it must be absolute and carry no trailing slash.
	_ = validate.RegisterValidation("hosturl", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if strings.HasSuffix(raw, "/") {
			return false
		}
		u, err := url.Parse(raw)
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})

	validate.RegisterStructValidation(validateConverterMappings, ConverterConfig{})

	return validate
}

// validateConverterMappings rejects duplicate markers or codes and a table
// that maps onto the source language itself.
func validateConverterMappings(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(ConverterConfig)

	markers := make(map[string]struct{}, len(cfg.LanguageMappings))
	codes := make(map[string]struct{}, len(cfg.LanguageMappings))
	for _, m := range cfg.LanguageMappings {
		if _, dup := markers[m.Marker]; dup {
			sl.ReportError(cfg.LanguageMappings, "LanguageMappings", "LanguageMappings", "uniquemarker", m.Marker)
		}
		markers[m.Marker] = struct{}{}

		if _, dup := codes[m.Code]; dup {
			sl.ReportError(cfg.LanguageMappings, "LanguageMappings", "LanguageMappings", "uniquecode", m.Code)
		}
		codes[m.Code] = struct{}{}

		if m.Code == cfg.SourceLang {
			sl.ReportError(cfg.LanguageMappings, "LanguageMappings", "LanguageMappings", "notsource", m.Code)
		}
	}
}

// trimNamespace drops the root struct name from a validator namespace.
func trimNamespace(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
