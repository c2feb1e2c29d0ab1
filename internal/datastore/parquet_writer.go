package datastore

import (
	"context"
	"os"
	"time"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/common/filemanager"
	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ParquetWriterConfig holds configuration for ParquetWriter
type ParquetWriterConfig struct {
	CompressionType string
}

// DefaultParquetWriterConfig returns default configuration
func DefaultParquetWriterConfig() ParquetWriterConfig {
	return ParquetWriterConfig{
		CompressionType: "zstd",
	}
}

// ParquetWriter writes per-language link exports.
type ParquetWriter struct {
	config       *config.StorageConfig
	logger       zerolog.Logger
	fileManager  *filemanager.FileManager
	writerConfig ParquetWriterConfig
	now          func() time.Time
}

// NewParquetWriter creates a writer rooted at cfg.BaseDir.
func NewParquetWriter(cfg *config.StorageConfig, logger zerolog.Logger) (*ParquetWriter, error) {
	if cfg == nil {
		return nil, errorwrapper.NewValidationError("config", cfg, "storage config cannot be nil")
	}
	if cfg.BaseDir == "" {
		return nil, errorwrapper.NewValidationError("base_dir", cfg.BaseDir, "BaseDir is not configured")
	}

	componentLogger := logger.With().Str("component", "ParquetWriter").Logger()
	writerConfig := DefaultParquetWriterConfig()
	if cfg.CompressionCodec != "" {
		writerConfig.CompressionType = cfg.CompressionCodec
	}

	return &ParquetWriter{
		config:       cfg,
		logger:       componentLogger,
		fileManager:  filemanager.NewFileManager(componentLogger),
		writerConfig: writerConfig,
		now:          time.Now,
	}, nil
}

// WriteResult contains the result of a write operation
type WriteResult struct {
	FilePath       string
	RecordsWritten int
	FileSize       int64
	WriteTime      time.Duration
}

// WriteLinks replaces the export of language code with links. The new file
// is written next to the old one and renamed over it, so a failed write
// leaves the previous export intact.
func (pw *ParquetWriter) WriteLinks(ctx context.Context, code string, links []models.LocalizedLink, runID string) (*WriteResult, error) {
	startTime := pw.now()

	if err := ctx.Err(); err != nil {
		return nil, errorwrapper.WrapError(err, "link export cancelled")
	}

	dir := LinksDir(pw.config.BaseDir)
	if err := pw.fileManager.EnsureDirectory(dir, defaultDirPerm); err != nil {
		return nil, err
	}

	rows := pw.transformRecords(links, runID, startTime)

	if err := ctx.Err(); err != nil {
		return nil, errorwrapper.WrapError(err, "link export cancelled")
	}

	filePath := LinkFilePath(pw.config.BaseDir, code)
	written, err := pw.writeToParquetFile(dir, filePath, rows)
	if err != nil {
		return nil, err
	}

	var fileSize int64
	if info, statErr := os.Stat(filePath); statErr == nil {
		fileSize = info.Size()
	}

	result := &WriteResult{
		FilePath:       filePath,
		RecordsWritten: written,
		FileSize:       fileSize,
		WriteTime:      time.Since(startTime),
	}
	pw.logger.Info().
		Str("language", code).
		Str("file_path", result.FilePath).
		Int("records_written", result.RecordsWritten).
		Dur("write_time", result.WriteTime).
		Msg("Wrote link export")
	return result, nil
}

func (pw *ParquetWriter) transformRecords(links []models.LocalizedLink, runID string, exportTime time.Time) []models.ParquetLink {
	rows := make([]models.ParquetLink, 0, len(links))
	for _, l := range links {
		rows = append(rows, models.ParquetLink{
			URL:           l.URL,
			Path:          l.Path,
			Language:      l.Language,
			SourceArchive: models.StringPtrOrNil(l.SourceArchive),
			RunID:         runID,
			ExportedAt:    exportTime.UnixMilli(),
		})
	}
	return rows
}

func (pw *ParquetWriter) writeToParquetFile(dir, filePath string, rows []models.ParquetLink) (int, error) {
	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to create temporary parquet file in "+dir)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	writer := parquet.NewGenericWriter[models.ParquetLink](tmp, pw.getCompressionOption())
	written, err := writer.Write(rows)
	if err != nil {
		tmp.Close()
		return 0, errorwrapper.WrapError(err, "failed to write links to parquet file")
	}
	if err := writer.Close(); err != nil {
		tmp.Close()
		return 0, errorwrapper.WrapError(err, "failed to finalize parquet file")
	}
	if err := tmp.Close(); err != nil {
		return 0, errorwrapper.WrapError(err, "failed to close parquet file")
	}
	if err := os.Chmod(tmpPath, defaultFilePerms); err != nil {
		return 0, errorwrapper.WrapError(err, "failed to set parquet file permissions")
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return 0, errorwrapper.WrapError(err, "failed to replace parquet file: "+filePath)
	}
	return written, nil
}

// getCompressionOption returns the compression option based on configuration
func (pw *ParquetWriter) getCompressionOption() parquet.WriterOption {
	switch pw.writerConfig.CompressionType {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}
