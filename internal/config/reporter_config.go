package config

// ReporterConfig defines configuration for generating reports
type ReporterConfig struct {
	OutputDir           string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ReportTitle         string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
	RenderMode          string `json:"render_mode,omitempty" yaml:"render_mode,omitempty" validate:"omitempty,rendermode"`
	TemplatePath        string `json:"template_path,omitempty" yaml:"template_path,omitempty" validate:"omitempty,fileexists"`
	TemplateDir         string `json:"template_dir,omitempty" yaml:"template_dir,omitempty" validate:"omitempty,dirpath"`
	TemplateName        string `json:"template_name,omitempty" yaml:"template_name,omitempty"`
	TemplateCacheSize   int    `json:"template_cache_size,omitempty" yaml:"template_cache_size,omitempty" validate:"omitempty,min=1"`
	GenerateEmptyReport bool   `json:"generate_empty_report" yaml:"generate_empty_report"`
	EmbedAssets         bool   `json:"embed_assets" yaml:"embed_assets"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputDir:           DefaultReporterOutputDir,
		ReportTitle:         DefaultReporterTitle,
		RenderMode:          DefaultReporterRenderMode,
		TemplateCacheSize:   DefaultReporterCacheSize,
		GenerateEmptyReport: true,
		EmbedAssets:         true,
	}
}
