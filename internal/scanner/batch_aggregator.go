package scanner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
)

// BatchAggregator scans archives in submission order and merges the results.
// Later archives win when two links share a path.
type BatchAggregator struct {
	scanner   Scanner
	languages []string
	logger    zerolog.Logger
}

// NewBatchAggregator creates an aggregator over scanner.
func NewBatchAggregator(scanner Scanner, languages []string, logger zerolog.Logger) *BatchAggregator {
	return &BatchAggregator{
		scanner:   scanner,
		languages: languages,
		logger:    logger.With().Str("module", "BatchAggregator").Logger(),
	}
}

// Process implements Aggregator. Archives are scanned sequentially; the
// dedup tie-break depends on that order.
func (a *BatchAggregator) Process(archives []models.ArchiveInput) *models.ProcessingOutcome {
	merged := models.NewProcessingOutcome(a.languages...)

	for i, archive := range archives {
		if archive.ReadErr != nil {
			a.logger.Warn().Err(archive.ReadErr).Int("index", i).Str("archive", archive.Label).Msg("Skipping unreadable archive")
			merged.RecordFault(unreadableError(archive))
			continue
		}
		a.logger.Debug().Int("index", i).Str("archive", archive.Label).Msg("Scanning archive")
		outcome := a.scanner.Scan(archive.Data, archive.Label)
		mergeInto(merged, outcome)
	}

	removed := make(map[string]int)
	totalRemoved := 0
	for _, lang := range merged.Links.Languages() {
		deduped, n := DedupByPath(merged.Links.Get(lang))
		SortByPath(deduped)
		merged.Links.Replace(lang, deduped)
		removed[lang] = n
		totalRemoved += n
	}

	if totalRemoved > 0 {
		msg := duplicateWarning(merged.Links.Languages(), removed, totalRemoved)
		a.logger.Info().Int("removed", totalRemoved).Msg(msg)
		merged.AddWarning(msg)
	}

	a.logger.Info().
		Int("archives", len(archives)).
		Int("entries", merged.ProcessedCount).
		Int("links", merged.Links.Total()).
		Int("errors", merged.ErrorCount).
		Msg("Batch merged")

	return merged
}

// mergeInto appends src's links, counters and warnings onto dst.
func mergeInto(dst, src *models.ProcessingOutcome) {
	dst.ProcessedCount += src.ProcessedCount
	dst.ErrorCount += src.ErrorCount
	dst.Warnings = append(dst.Warnings, src.Warnings...)
	for _, lang := range src.Links.Languages() {
		for _, link := range src.Links.Get(lang) {
			dst.Links.Add(link)
		}
	}
}

// unreadableError is the container fault recorded for an archive whose
// bytes never arrived.
func unreadableError(archive models.ArchiveInput) error {
	return errorwrapper.WrapError(archive.ReadErr, "cannot read archive "+archive.Label)
}

// DedupByPath keeps one link per path. A later link replaces an earlier one
// in place. It returns the kept links and how many were dropped.
func DedupByPath(links []models.LocalizedLink) ([]models.LocalizedLink, int) {
	index := make(map[string]int, len(links))
	kept := make([]models.LocalizedLink, 0, len(links))
	removed := 0

	for _, link := range links {
		if i, seen := index[link.Path]; seen {
			kept[i] = link
			removed++
			continue
		}
		index[link.Path] = len(kept)
		kept = append(kept, link)
	}
	return kept, removed
}

// SortByPath orders links by plain lexicographic path comparison.
func SortByPath(links []models.LocalizedLink) {
	slices.SortStableFunc(links, func(a, b models.LocalizedLink) int {
		return strings.Compare(a.Path, b.Path)
	})
}

func duplicateWarning(languages []string, removed map[string]int, total int) string {
	parts := make([]string, 0, len(languages))
	for _, lang := range languages {
		parts = append(parts, fmt.Sprintf("%s: %d", locale.DisplayName(lang), removed[lang]))
	}
	return fmt.Sprintf("Removed %d duplicate links (%s)", total, strings.Join(parts, ", "))
}
