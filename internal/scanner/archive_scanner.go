package scanner

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/linkresolver"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
)

// ArchiveScanner scans one ZIP archive. A broken entry is recorded and
// skipped; it never stops the remaining entries.
type ArchiveScanner struct {
	locales   locale.Resolver
	links     linkresolver.Resolver
	filter    EntryFilter
	languages []string
	opts      ScanOptions
	logger    zerolog.Logger
}

// NewArchiveScanner wires a scanner from its collaborators. languages
// pre-creates buckets so empty languages still show up in the outcome.
func NewArchiveScanner(
	locales locale.Resolver,
	links linkresolver.Resolver,
	filter EntryFilter,
	languages []string,
	opts ScanOptions,
	logger zerolog.Logger,
) *ArchiveScanner {
	return &ArchiveScanner{
		locales:   locales,
		links:     links,
		filter:    filter,
		languages: languages,
		opts:      opts,
		logger:    logger.With().Str("module", "ArchiveScanner").Logger(),
	}
}

// Scan implements Scanner.
func (s *ArchiveScanner) Scan(data []byte, label string) *models.ProcessingOutcome {
	outcome := models.NewProcessingOutcome(s.languages...)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	// Entry names are only inspected, never extracted, so insecure paths are harmless.
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		archiveErr := errorwrapper.NewArchiveError(label, err)
		s.logger.Error().Err(err).Str("archive", label).Msg("Cannot open archive")
		outcome.RecordFault(archiveErr)
		return outcome
	}

	for _, file := range reader.File {
		outcome.ProcessedCount++

		link, ok, err := s.processEntry(file, label)
		if err != nil {
			s.logger.Warn().Err(err).Str("archive", label).Str("entry", file.Name).Msg("Entry failed")
			outcome.RecordFault(errorwrapper.NewEntryError(file.Name, err))
			continue
		}
		if ok {
			outcome.Links.Add(link)
		}
	}

	s.logger.Info().
		Str("archive", label).
		Int("entries", outcome.ProcessedCount).
		Int("links", outcome.Links.Total()).
		Int("errors", outcome.ErrorCount).
		Msg("Archive scanned")

	return outcome
}

// processEntry resolves one entry. ok=false with a nil error is a routine skip.
func (s *ArchiveScanner) processEntry(file *zip.File, label string) (link models.LocalizedLink, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			link, ok, err = models.LocalizedLink{}, false, fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	if file.FileInfo().IsDir() || !s.filter.Accept(file.Name) {
		return models.LocalizedLink{}, false, nil
	}

	code, found := s.locales.Resolve(file.Name)
	if !found {
		return models.LocalizedLink{}, false, nil
	}

	res, found := s.links.Resolve(FileName(file.Name), code)
	if !found {
		return models.LocalizedLink{}, false, nil
	}

	if s.opts.VerifyPayloads {
		if err := verifyPayload(file); err != nil {
			return models.LocalizedLink{}, false, err
		}
	}

	var source string
	if s.opts.StampSource {
		source = label
	}
	return models.NewLocalizedLink(res.URL, res.Path, code, source), true, nil
}

// verifyPayload reads the entry to the end so checksum and decompression errors surface.
func verifyPayload(file *zip.File) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	if _, err := io.Copy(io.Discard, rc); err != nil {
		return err
	}
	return nil
}
