package datastore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ParquetReader reads per-language link exports.
type ParquetReader struct {
	storageConfig *config.StorageConfig
	logger        zerolog.Logger
}

// NewParquetReader creates a new ParquetReader.
func NewParquetReader(cfg *config.StorageConfig, logger zerolog.Logger) *ParquetReader {
	if cfg == nil || cfg.BaseDir == "" {
		logger.Warn().Msg("ParquetReader: StorageConfig or BaseDir is not properly configured.")
	}
	return &ParquetReader{
		storageConfig: cfg,
		logger:        logger.With().Str("module", "ParquetReader").Logger(),
	}
}

// ReadLinks returns the exported links of language code in file order.
// found is false when no export exists yet.
func (pr *ParquetReader) ReadLinks(code string) (links []models.LocalizedLink, found bool, err error) {
	if pr.storageConfig == nil || pr.storageConfig.BaseDir == "" {
		return nil, false, nil
	}

	filePath := LinkFilePath(pr.storageConfig.BaseDir, code)
	if _, statErr := os.Stat(filePath); errors.Is(statErr, os.ErrNotExist) {
		pr.logger.Debug().Str("language", code).Str("file", filePath).Msg("No previous link export")
		return nil, false, nil
	}

	links, err = pr.readLinksFromFile(filePath)
	if err != nil {
		return nil, false, err
	}
	return links, true, nil
}

func (pr *ParquetReader) readLinksFromFile(filePath string) ([]models.LocalizedLink, error) {
	file, err := os.Open(filePath)
	if err != nil {
		pr.logger.Error().Err(err).Str("file", filePath).Msg("Failed to open parquet file")
		return nil, fmt.Errorf("failed to open parquet file %s: %w", filePath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat parquet file %s: %w", filePath, err)
	}

	// OpenFile validates the footer; NewReader would panic on a corrupt file.
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		pr.logger.Error().Err(err).Str("file", filePath).Msg("Failed to parse parquet file")
		return nil, fmt.Errorf("failed to parse parquet file %s: %w", filePath, err)
	}

	reader := parquet.NewReader(pf)
	defer reader.Close()

	links := []models.LocalizedLink{}
	for {
		row := models.ParquetLink{}
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			pr.logger.Error().Err(err).Str("file", filePath).Msg("Failed to read row from parquet file")
			return nil, fmt.Errorf("failed to read row from %s: %w", filePath, err)
		}
		links = append(links, row.ToLocalizedLink())
	}

	pr.logger.Debug().Int("record_count", len(links)).Str("file", filePath).Msg("Read link export")
	return links, nil
}
