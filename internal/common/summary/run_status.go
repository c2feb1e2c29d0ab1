package summary

import "github.com/aleister1102/aemlink/internal/models"

// RunStatus defines the possible states of a conversion run.
type RunStatus string

const (
	RunStatusStarted             RunStatus = "STARTED"
	RunStatusCompleted           RunStatus = "COMPLETED"
	RunStatusCompletedWithIssues RunStatus = "COMPLETED_WITH_ISSUES"
	RunStatusFailed              RunStatus = "FAILED"
	RunStatusInterrupted         RunStatus = "INTERRUPTED"
	RunStatusNoLinks             RunStatus = "NO_LINKS"
	RunStatusUnknown             RunStatus = "UNKNOWN"
)

// IsSuccess checks if run status indicates success
func (rs RunStatus) IsSuccess() bool {
	return rs == RunStatusCompleted
}

// IsFailure checks if run status indicates failure
func (rs RunStatus) IsFailure() bool {
	return rs == RunStatusFailed || rs == RunStatusInterrupted
}

// IsInProgress checks if run status indicates in progress
func (rs RunStatus) IsInProgress() bool {
	return rs == RunStatusStarted
}

// StatusFromOutcome classifies a finished outcome. Partial success (links
// and errors) is COMPLETED_WITH_ISSUES rather than a failure.
func StatusFromOutcome(o *models.ProcessingOutcome) RunStatus {
	if o == nil {
		return RunStatusUnknown
	}
	hasLinks := o.Links.HasLinks()
	switch {
	case o.ErrorCount == 0 && hasLinks:
		return RunStatusCompleted
	case hasLinks:
		return RunStatusCompletedWithIssues
	case o.ErrorCount > 0:
		return RunStatusFailed
	default:
		return RunStatusNoLinks
	}
}
