package datastore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorageConfig(t *testing.T, codec string) *config.StorageConfig {
	t.Helper()
	cfg := config.NewDefaultStorageConfig()
	cfg.BaseDir = t.TempDir()
	cfg.CompressionCodec = codec
	return &cfg
}

func sampleLinks() []models.LocalizedLink {
	return []models.LocalizedLink{
		models.NewLocalizedLink("https://h/editor.html/content/a.html", "content/a.html", "ko", "first.zip"),
		models.NewLocalizedLink("https://h/editor.html/content/b.html", "content/b.html", "ko", ""),
	}
}

func TestParquetWriter_RoundTrip(t *testing.T) {
	for _, codec := range []string{"zstd", "snappy", "gzip", "none"} {
		t.Run(codec, func(t *testing.T) {
			cfg := testStorageConfig(t, codec)
			writer, err := NewParquetWriter(cfg, zerolog.Nop())
			require.NoError(t, err)

			result, err := writer.WriteLinks(context.Background(), "ko", sampleLinks(), "run-1")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(cfg.BaseDir, "links", "ko.parquet"), result.FilePath)
			assert.Equal(t, 2, result.RecordsWritten)
			assert.Positive(t, result.FileSize)

			links, found, err := NewParquetReader(cfg, zerolog.Nop()).ReadLinks("ko")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, sampleLinks(), links)
		})
	}
}

func TestParquetWriter_OverwritesPreviousExport(t *testing.T) {
	cfg := testStorageConfig(t, "zstd")
	writer, err := NewParquetWriter(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = writer.WriteLinks(context.Background(), "ja", sampleLinks(), "run-1")
	require.NoError(t, err)
	_, err = writer.WriteLinks(context.Background(), "ja", sampleLinks()[:1], "run-2")
	require.NoError(t, err)

	links, found, err := NewParquetReader(cfg, zerolog.Nop()).ReadLinks("ja")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, links, 1)

	entries, err := os.ReadDir(LinksDir(cfg.BaseDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestParquetWriter_EmptyExport(t *testing.T) {
	cfg := testStorageConfig(t, "zstd")
	writer, err := NewParquetWriter(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = writer.WriteLinks(context.Background(), "ko", nil, "run-1")
	require.NoError(t, err)

	links, found, err := NewParquetReader(cfg, zerolog.Nop()).ReadLinks("ko")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, links)
}

func TestParquetWriter_Cancelled(t *testing.T) {
	cfg := testStorageConfig(t, "zstd")
	writer, err := NewParquetWriter(cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = writer.WriteLinks(ctx, "ko", sampleLinks(), "run-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, LinkFilePath(cfg.BaseDir, "ko"))
}

func TestNewParquetWriter_RequiresBaseDir(t *testing.T) {
	_, err := NewParquetWriter(&config.StorageConfig{}, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewParquetWriter(nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestParquetReader_MissingExport(t *testing.T) {
	links, found, err := NewParquetReader(testStorageConfig(t, "zstd"), zerolog.Nop()).ReadLinks("ko")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, links)
}

func TestParquetReader_CorruptExport(t *testing.T) {
	cfg := testStorageConfig(t, "zstd")
	require.NoError(t, os.MkdirAll(LinksDir(cfg.BaseDir), 0755))
	require.NoError(t, os.WriteFile(LinkFilePath(cfg.BaseDir, "ko"), []byte("not parquet"), 0644))

	_, _, err := NewParquetReader(cfg, zerolog.Nop()).ReadLinks("ko")
	assert.Error(t, err)
}

func TestParquetWriter_StampsRunAndTime(t *testing.T) {
	cfg := testStorageConfig(t, "zstd")
	writer, err := NewParquetWriter(cfg, zerolog.Nop())
	require.NoError(t, err)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	writer.now = func() time.Time { return fixed }

	rows := writer.transformRecords(sampleLinks(), "run-9", fixed)
	require.Len(t, rows, 2)
	assert.Equal(t, "run-9", rows[0].RunID)
	assert.Equal(t, fixed.UnixMilli(), rows[0].ExportedAt)
	require.NotNil(t, rows[0].SourceArchive)
	assert.Equal(t, "first.zip", *rows[0].SourceArchive)
	assert.Nil(t, rows[1].SourceArchive)
}
