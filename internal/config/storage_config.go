package config

// StorageConfig defines configuration for link exports and run history
type StorageConfig struct {
	BaseDir          string `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,oneof=zstd snappy gzip none"`
	HistoryDBPath    string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty"`
	ExportLinks      bool   `json:"export_links" yaml:"export_links"`
	RecordHistory    bool   `json:"record_history" yaml:"record_history"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		BaseDir:          DefaultStorageBaseDir,
		CompressionCodec: DefaultStorageCompressionCodec,
		HistoryDBPath:    DefaultStorageHistoryDBPath,
		ExportLinks:      true,
		RecordHistory:    true,
	}
}
