package filemanager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
)

// FileManager reads submitted archives and writes generated files.
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a FileManager.
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("module", "FileManager").Logger(),
	}
}

// ReadFile validates path against opts and returns its content.
// A missing file wraps errorwrapper.ErrNotFound; a rejected one is a ValidationError.
func (fm *FileManager) ReadFile(path string, opts ReadOptions) ([]byte, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errorwrapper.WrapError(errorwrapper.ErrNotFound, "file not found: "+path)
	case err != nil:
		return nil, errorwrapper.WrapError(err, "failed to stat "+path)
	case info.IsDir():
		return nil, errorwrapper.NewValidationError("path", path, "is a directory, not a file")
	case opts.MaxSize > 0 && info.Size() > opts.MaxSize:
		return nil, errorwrapper.NewValidationError("file_size", info.Size(), fmt.Sprintf("exceeds maximum size of %d bytes", opts.MaxSize))
	}

	if len(opts.Extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(opts.Extensions, ext) {
			return nil, errorwrapper.NewValidationError("extension", ext, "expected one of "+strings.Join(opts.Extensions, ", "))
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read file: "+path)
	}
	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File read")
	return data, nil
}

// ReadArchives loads paths in order. Each input is labelled with the base
// name of its path; the bytes are not inspected here. A path that cannot be
// read still yields an input, carrying the failure in ReadErr, and the
// returned error joins every such failure.
func (fm *FileManager) ReadArchives(paths []string, opts ReadOptions) ([]models.ArchiveInput, error) {
	inputs := make([]models.ArchiveInput, 0, len(paths))
	failures := errorwrapper.NewErrorCollector()
	for _, p := range paths {
		input := models.ArchiveInput{Label: filepath.Base(p)}
		data, err := fm.ReadFile(p, opts)
		if err != nil {
			fm.logger.Warn().Err(err).Str("path", p).Msg("Archive unreadable")
			input.ReadErr = err
			failures.Add(err)
		} else {
			input.Data = data
		}
		inputs = append(inputs, input)
	}
	fm.logger.Info().Int("archives", len(inputs)).Int("unreadable", len(failures.Errors())).Msg("Archives loaded")
	return inputs, failures.Error()
}

// EnsureDirectory creates path and its parents. An existing non-directory
// at path is a ValidationError.
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return errorwrapper.NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return errorwrapper.WrapError(err, "failed to check directory: "+path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return errorwrapper.WrapError(err, "failed to create directory: "+path)
	}
	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFile replaces path with data, creating parent directories. The data
// goes to a temp file that is renamed over path, so readers never see a
// partial file. Cancellation of ctx or the timeout aborts the wait.
func (fm *FileManager) WriteFile(ctx context.Context, path string, data []byte, opts WriteOptions) error {
	if err := fm.EnsureDirectory(filepath.Dir(path), defaultDirPerm); err != nil {
		return errorwrapper.WrapError(err, "failed to create parent directories for: "+path)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return errorwrapper.WrapError(err, "file write cancelled")
	}

	perm := opts.Perm
	if perm == 0 {
		perm = defaultFilePerm
	}

	done := make(chan error, 1)
	go func() {
		done <- writeAtomic(path, data, perm)
	}()

	select {
	case <-ctx.Done():
		fm.logger.Warn().Str("path", path).Msg("File write cancelled")
		return errorwrapper.WrapError(ctx.Err(), "file write cancelled")
	case err := <-done:
		if err != nil {
			return errorwrapper.WrapError(err, "failed to write file: "+path)
		}
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written")
	return nil
}

func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
