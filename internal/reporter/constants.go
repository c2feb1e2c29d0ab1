package reporter

const (
	// Embedded template and asset paths
	BasicTemplatePath    = "templates/basic.html.tmpl"
	AdvancedTemplatePath = "templates/advanced.html.tmpl"
	EmbeddedCSSPath      = "assets/css/report.css"
	EmbeddedJSPath       = "assets/js/report.js"

	// Custom templates in a template directory use this suffix
	TemplateFileSuffix = ".html.tmpl"

	// Report generation defaults
	DefaultReportTitle       = "AEM Links Report"
	DefaultTemplateCacheSize = 16
	FirstLevelNumber         = 2
	NoLinksMessage           = "No links to display."

	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644
)
