package config

// LocaleMappingConfig maps a marker found in archive entry paths to a short language code.
type LocaleMappingConfig struct {
	Marker string `json:"marker" yaml:"marker" validate:"required"`
	Code   string `json:"code" yaml:"code" validate:"required,langcode"`
}

// ConverterConfig holds everything the link pipeline needs for one run.
type ConverterConfig struct {
	AEMHost          string                `json:"aem_host,omitempty" yaml:"aem_host,omitempty" validate:"required,hosturl"`
	SourceLang       string                `json:"source_lang,omitempty" yaml:"source_lang,omitempty" validate:"required,langcode"`
	MarkerPrefix     string                `json:"marker_prefix,omitempty" yaml:"marker_prefix,omitempty" validate:"required"`
	ContentPrefix    string                `json:"content_prefix,omitempty" yaml:"content_prefix,omitempty" validate:"required"`
	LanguageMappings []LocaleMappingConfig `json:"language_mappings,omitempty" yaml:"language_mappings,omitempty" validate:"required,min=1,dive"`
	SPACPaths        map[string]string     `json:"spac_paths,omitempty" yaml:"spac_paths,omitempty"`
	ExcludedNames    []string              `json:"excluded_names,omitempty" yaml:"excluded_names,omitempty"`
	VerifyPayloads   bool                  `json:"verify_payloads" yaml:"verify_payloads"`
}

// NewDefaultConverterConfig creates the default converter configuration
func NewDefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		AEMHost:       DefaultConverterAEMHost,
		SourceLang:    DefaultConverterSourceLang,
		MarkerPrefix:  DefaultConverterMarkerPrefix,
		ContentPrefix: DefaultConverterContentPrefix,
		LanguageMappings: []LocaleMappingConfig{
			{Marker: "ko-KR", Code: "ko"},
			{Marker: "ja-JP", Code: "ja"},
		},
		SPACPaths: map[string]string{
			"ko": "/spac/ko_KR/",
			"ja": "/spac/ja_JP/",
		},
		ExcludedNames:  []string{"__MACOSX", ".DS_Store", "Thumbs.db"},
		VerifyPayloads: DefaultConverterVerifyPayload,
	}
}

// LanguageCodes returns the mapped codes in table order.
func (c ConverterConfig) LanguageCodes() []string {
	codes := make([]string, 0, len(c.LanguageMappings))
	for _, m := range c.LanguageMappings {
		codes = append(codes, m.Code)
	}
	return codes
}
