package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/common/summary"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const runHistoryTable = "run_history"

var runHistoryColumns = []string{
	"id", "run_id", "mode", "started_at", "finished_at", "status", "archive_count",
	"processed_count", "error_count", "link_count", "warning_count", "report_paths",
}

// RunHistoryEntry represents a record in the run_history table.
type RunHistoryEntry struct {
	ID             int64
	RunID          string
	Mode           string
	StartedAt      time.Time
	FinishedAt     *time.Time
	Status         summary.RunStatus
	ArchiveCount   int
	ProcessedCount int
	ErrorCount     int
	LinkCount      int
	WarningCount   int
	ReportPaths    []string
}

// HistoryStore records pipeline runs in a SQLite database.
type HistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewHistoryStore opens (or creates) the database and ensures the schema.
func NewHistoryStore(ctx context.Context, dataSourceName string, logger zerolog.Logger) (*HistoryStore, error) {
	storeLogger := logger.With().Str("module", "HistoryStore").Logger()
	storeLogger.Info().Str("db_path", dataSourceName).Msg("Initializing run history database")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, defaultDirPerm); err != nil {
		storeLogger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create history database directory")
		return nil, fmt.Errorf("failed to create history database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		storeLogger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open history database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// SQLite serializes writers.
	dbInstance.SetMaxOpenConns(1)

	store := &HistoryStore{db: dbInstance, logger: storeLogger}
	if err := store.InitSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (h *HistoryStore) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// InitSchema creates the run_history table if it doesn't already exist.
func (h *HistoryStore) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		mode TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		status TEXT NOT NULL,
		archive_count INTEGER NOT NULL DEFAULT 0,
		processed_count INTEGER NOT NULL DEFAULT 0,
		error_count INTEGER NOT NULL DEFAULT 0,
		link_count INTEGER NOT NULL DEFAULT 0,
		warning_count INTEGER NOT NULL DEFAULT 0,
		report_paths TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := h.db.ExecContext(ctx, query); err != nil {
		h.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	h.logger.Debug().Msg("Schema initialized (run_history table ensured)")
	return nil
}

// RecordRunStart inserts a STARTED row and returns its id.
func (h *HistoryStore) RecordRunStart(ctx context.Context, runID, mode string, archiveCount int, startTime time.Time) (int64, error) {
	query, args, err := sq.Insert(runHistoryTable).
		Columns("run_id", "mode", "started_at", "status", "archive_count").
		Values(runID, mode, startTime.UnixMilli(), string(summary.RunStatusStarted), archiveCount).
		ToSql()
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to build run start insert")
	}

	result, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Failed to record run start")
		return 0, fmt.Errorf("failed to insert run start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	h.logger.Info().Int64("db_id", id).Str("run_id", runID).Msg("Recorded run start")
	return id, nil
}

// UpdateRunCompletion stores the final counters and status of a run.
func (h *HistoryStore) UpdateRunCompletion(ctx context.Context, id int64, data summary.RunSummaryData, endTime time.Time) error {
	query, args, err := sq.Update(runHistoryTable).
		SetMap(map[string]any{
			"finished_at":     endTime.UnixMilli(),
			"status":          string(data.Status),
			"processed_count": data.ProcessedCount,
			"error_count":     data.ErrorCount,
			"link_count":      data.TotalLinks,
			"warning_count":   data.WarningCount(),
			"report_paths":    strings.Join(data.ReportPaths, "\n"),
		}).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errorwrapper.WrapError(err, "failed to build run completion update")
	}

	result, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		h.logger.Error().Err(err).Int64("db_id", id).Msg("Failed to update run completion")
		return fmt.Errorf("failed to update run completion for ID %d: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errorwrapper.WrapError(errorwrapper.ErrNotFound, fmt.Sprintf("run history ID %d", id))
	}

	h.logger.Info().Int64("db_id", id).Str("status", string(data.Status)).Msg("Updated run completion")
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (h *HistoryStore) RecentRuns(ctx context.Context, limit uint64) ([]RunHistoryEntry, error) {
	builder := sq.Select(runHistoryColumns...).
		From(runHistoryTable).
		OrderBy("started_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	return h.queryEntries(ctx, builder)
}

// LastCompletedRun returns the newest run with status COMPLETED. It returns
// an error wrapping errorwrapper.ErrNotFound when there is none.
func (h *HistoryStore) LastCompletedRun(ctx context.Context) (*RunHistoryEntry, error) {
	entries, err := h.queryEntries(ctx, sq.Select(runHistoryColumns...).
		From(runHistoryTable).
		Where(sq.Eq{"status": string(summary.RunStatusCompleted)}).
		OrderBy("started_at DESC", "id DESC").
		Limit(1))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errorwrapper.WrapError(errorwrapper.ErrNotFound, "no completed run in history")
	}
	return &entries[0], nil
}

func (h *HistoryStore) queryEntries(ctx context.Context, builder sq.SelectBuilder) ([]RunHistoryEntry, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build run history query")
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Failed to query run history")
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	entries := []RunHistoryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run history: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (RunHistoryEntry, error) {
	var (
		entry       RunHistoryEntry
		startedAt   int64
		finishedAt  sql.NullInt64
		status      string
		reportPaths string
	)
	err := rows.Scan(&entry.ID, &entry.RunID, &entry.Mode, &startedAt, &finishedAt, &status,
		&entry.ArchiveCount, &entry.ProcessedCount, &entry.ErrorCount, &entry.LinkCount,
		&entry.WarningCount, &reportPaths)
	if err != nil {
		return entry, err
	}

	entry.StartedAt = time.UnixMilli(startedAt)
	if finishedAt.Valid {
		t := time.UnixMilli(finishedAt.Int64)
		entry.FinishedAt = &t
	}
	entry.Status = summary.RunStatus(status)
	entry.ReportPaths = []string{}
	if reportPaths != "" {
		entry.ReportPaths = strings.Split(reportPaths, "\n")
	}
	return entry, nil
}

// IsNotFound reports whether err means a history row was missing.
func IsNotFound(err error) bool {
	return errors.Is(err, errorwrapper.ErrNotFound)
}
