package models

// LinkStatus represents the status of a page path compared to the previous export.
type LinkStatus string

const (
	// StatusNew indicates a path present now but not in the previous export.
	StatusNew LinkStatus = "new"
	// StatusRemoved indicates a path that was exported previously but is gone now.
	StatusRemoved LinkStatus = "removed"
	// StatusExisting indicates a path present in both exports.
	StatusExisting LinkStatus = "existing"
)

// LinkDiffResult is the per-language comparison against the previous export.
type LinkDiffResult struct {
	Language    string   `json:"language"`
	Added       []string `json:"added"`
	Removed     []string `json:"removed"`
	Unchanged   int      `json:"unchanged"`
	HasBaseline bool     `json:"has_baseline"`
}

// HasChanges reports whether any path was added or removed.
func (r LinkDiffResult) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Status returns the status of path within this diff.
func (r LinkDiffResult) Status(path string) LinkStatus {
	for _, p := range r.Added {
		if p == path {
			return StatusNew
		}
	}
	for _, p := range r.Removed {
		if p == path {
			return StatusRemoved
		}
	}
	return StatusExisting
}
