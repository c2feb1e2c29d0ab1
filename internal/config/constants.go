package config

const (
	// Converter Defaults
	DefaultConverterAEMHost       = "https://prod-author.illumina.com"
	DefaultConverterSourceLang    = "en"
	DefaultConverterMarkerPrefix  = "language-master"
	DefaultConverterContentPrefix = "#content"
	DefaultConverterVerifyPayload = true

	// Reporter Defaults
	DefaultReporterOutputDir  = "reports"
	DefaultReporterRenderMode = "advanced"
	DefaultReporterTitle      = "AEM Links Report"
	DefaultReporterCacheSize  = 16

	// Storage Defaults
	DefaultStorageBaseDir          = "database"
	DefaultStorageCompressionCodec = "zstd"
	DefaultStorageHistoryDBPath    = "database/history/run_history.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Mode Defaults
	DefaultMode = "single"
)

// Environment variables honoured on top of the config file.
const (
	EnvConfigPath   = "AEMLINK_CONFIG_PATH"
	EnvAEMHost      = "AEM_HOST"
	EnvSourceLang   = "SOURCE_LANG"
	EnvTemplateFile = "TEMPLATE_FILE"
	EnvLogLevel     = "AEMLINK_LOG_LEVEL"
)

// Render modes understood by the reporter.
const (
	RenderModeBasic    = "basic"
	RenderModeAdvanced = "advanced"
)

// Run modes understood by the CLI.
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)
