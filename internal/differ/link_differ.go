package differ

import (
	"slices"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
)

// PreviousLinksLoader returns the last exported links of a language.
// found is false when there is no earlier export.
type PreviousLinksLoader interface {
	ReadLinks(code string) (links []models.LocalizedLink, found bool, err error)
}

// LinkDiffer compares the current links of a language with its previous export.
type LinkDiffer struct {
	loader    PreviousLinksLoader
	processor *DiffProcessor
	logger    zerolog.Logger
}

// NewLinkDiffer creates a differ that reads baselines from loader.
func NewLinkDiffer(loader PreviousLinksLoader, logger zerolog.Logger) (*LinkDiffer, error) {
	if loader == nil {
		return nil, errorwrapper.NewValidationError("loader", loader, "previous links loader cannot be nil")
	}
	return &LinkDiffer{
		loader:    loader,
		processor: NewDiffProcessor(),
		logger:    logger.With().Str("module", "LinkDiffer").Logger(),
	}, nil
}

// Differentiate loads the previous export of code and compares it with current.
func (d *LinkDiffer) Differentiate(code string, current []models.LocalizedLink) (models.LinkDiffResult, error) {
	previous, found, err := d.loader.ReadLinks(code)
	if err != nil {
		return models.LinkDiffResult{Language: code}, errorwrapper.WrapError(err, "failed to load previous links for "+code)
	}

	result := d.Compare(code, pathsOf(previous), pathsOf(current), found)
	d.logger.Info().
		Str("language", code).
		Bool("has_baseline", result.HasBaseline).
		Int("added", len(result.Added)).
		Int("removed", len(result.Removed)).
		Int("unchanged", result.Unchanged).
		Msg("Link diff computed")
	return result, nil
}

// Compare diffs two path lists. Order and duplicates in the inputs do not
// matter; Added and Removed come back sorted. Without a baseline nothing is
// reported as added.
func (d *LinkDiffer) Compare(code string, previous, current []string, hasBaseline bool) models.LinkDiffResult {
	result := models.LinkDiffResult{
		Language:    code,
		Added:       []string{},
		Removed:     []string{},
		HasBaseline: hasBaseline,
	}
	prev := normalize(previous)
	curr := normalize(current)

	if !hasBaseline {
		result.Unchanged = len(curr)
		return result
	}

	stats := CalculateStats(d.processor.ProcessLines(prev, curr))
	result.Added = append(result.Added, stats.Inserted...)
	result.Removed = append(result.Removed, stats.Deleted...)
	result.Unchanged = stats.Unchanged
	return result
}

func normalize(paths []string) []string {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

func pathsOf(links []models.LocalizedLink) []string {
	paths := make([]string, len(links))
	for i, l := range links {
		paths[i] = l.Path
	}
	return paths
}
