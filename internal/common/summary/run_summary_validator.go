package summary

import "github.com/aleister1102/aemlink/internal/common/errorwrapper"

// RunSummaryValidator handles validation of run summary data
type RunSummaryValidator struct{}

// NewRunSummaryValidator creates a new validator
func NewRunSummaryValidator() *RunSummaryValidator {
	return &RunSummaryValidator{}
}

// ValidateSummary validates the run summary data
func (v *RunSummaryValidator) ValidateSummary(s RunSummaryData) error {
	if s.RunID == "" {
		return errorwrapper.NewValidationError("run_id", s.RunID, "run ID is required")
	}
	if s.Mode == "" {
		return errorwrapper.NewValidationError("mode", s.Mode, "mode is required")
	}
	if s.Status == "" {
		return errorwrapper.NewValidationError("status", s.Status, "status is required")
	}
	if s.ProcessedCount < 0 {
		return errorwrapper.NewValidationError("processed_count", s.ProcessedCount, "processed count cannot be negative")
	}
	if s.ErrorCount < 0 {
		return errorwrapper.NewValidationError("error_count", s.ErrorCount, "error count cannot be negative")
	}
	if s.Duration < 0 {
		return errorwrapper.NewValidationError("duration", s.Duration, "duration cannot be negative")
	}
	return nil
}
