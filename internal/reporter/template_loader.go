package reporter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/config"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

const (
	embeddedKeyPrefix = "embedded:"
	fileKeyPrefix     = "file:"
	namedKeyPrefix    = "named:"
)

// TemplateLoader resolves and parses report templates. Parsed templates are
// kept in an LRU cache until Reload is called.
type TemplateLoader struct {
	logger       zerolog.Logger
	templatePath string
	templateDir  string
	funcs        template.FuncMap
	cache        *lru.Cache[string, *template.Template]
}

// NewTemplateLoader creates a loader for the template file and directory in cfg.
func NewTemplateLoader(cfg config.ReporterConfig, logger zerolog.Logger) (*TemplateLoader, error) {
	size := cfg.TemplateCacheSize
	if size <= 0 {
		size = DefaultTemplateCacheSize
	}
	cache, err := lru.New[string, *template.Template](size)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create template cache")
	}

	return &TemplateLoader{
		logger:       logger.With().Str("module", "TemplateLoader").Logger(),
		templatePath: cfg.TemplatePath,
		templateDir:  cfg.TemplateDir,
		funcs:        reportFuncs(),
		cache:        cache,
	}, nil
}

// Load returns the configured template file, or the embedded template for mode.
func (l *TemplateLoader) Load(mode RenderMode) (*template.Template, error) {
	if l.templatePath != "" {
		return l.cached(fileKeyPrefix+l.templatePath, func() (*template.Template, error) {
			return l.parseFile(l.templatePath)
		})
	}
	return l.loadEmbedded(mode)
}

// LoadNamed returns <template_dir>/<name>.html.tmpl. A missing template falls
// back to Load(mode).
func (l *TemplateLoader) LoadNamed(name string, mode RenderMode) (*template.Template, error) {
	if !l.Exists(name) {
		l.logger.Warn().Str("template", name).Str("dir", l.templateDir).Msg("Named template not found, using default")
		return l.Load(mode)
	}
	return l.cached(namedKeyPrefix+name, func() (*template.Template, error) {
		return l.parseFile(l.namedPath(name))
	})
}

// Exists reports whether a named template is present in the template directory.
func (l *TemplateLoader) Exists(name string) bool {
	if l.templateDir == "" || name == "" {
		return false
	}
	info, err := os.Stat(l.namedPath(name))
	return err == nil && !info.IsDir()
}

// Available lists the named templates in the template directory, sorted.
func (l *TemplateLoader) Available() ([]string, error) {
	if l.templateDir == "" {
		return []string{}, nil
	}
	entries, err := os.ReadDir(l.templateDir)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to list template directory "+l.templateDir)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), TemplateFileSuffix); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Reload drops every cached template so the next load re-reads from disk.
func (l *TemplateLoader) Reload() {
	l.cache.Purge()
	l.logger.Debug().Msg("Template cache purged")
}

// Cached reports how many parsed templates are held.
func (l *TemplateLoader) Cached() int {
	return l.cache.Len()
}

func (l *TemplateLoader) namedPath(name string) string {
	return filepath.Join(l.templateDir, name+TemplateFileSuffix)
}

func (l *TemplateLoader) cached(key string, parse func() (*template.Template, error)) (*template.Template, error) {
	if tmpl, ok := l.cache.Get(key); ok {
		return tmpl, nil
	}
	tmpl, err := parse()
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, tmpl)
	return tmpl, nil
}

func (l *TemplateLoader) loadEmbedded(mode RenderMode) (*template.Template, error) {
	path := mode.TemplatePath()
	return l.cached(embeddedKeyPrefix+path, func() (*template.Template, error) {
		content, err := templatesFS.ReadFile(path)
		if err != nil {
			l.logger.Error().Err(err).Str("template", path).Msg("Failed to read embedded report template.")
			return nil, fmt.Errorf("%w: %s: %v", errorwrapper.ErrTemplateNotFound, path, err)
		}

		cleaned := strings.ReplaceAll(string(content), "\r\n", "\n")
		tmpl, err := template.New(filepath.Base(path)).Funcs(l.funcs).Parse(cleaned)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedded report template '%s': %w", path, err)
		}
		l.logger.Debug().Str("template", path).Msg("Embedded template loaded")
		return tmpl, nil
	})
}

func (l *TemplateLoader) parseFile(path string) (*template.Template, error) {
	l.logger.Info().Str("template_path", path).Msg("Loading report template from file.")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errorwrapper.ErrTemplateNotFound, path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).Funcs(l.funcs).ParseFiles(path)
	if err != nil {
		l.logger.Error().Err(err).Str("path", path).Msg("Failed to parse report template.")
		return nil, fmt.Errorf("failed to parse report template '%s': %w", path, err)
	}
	return tmpl, nil
}
