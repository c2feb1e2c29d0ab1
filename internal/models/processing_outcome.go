package models

// ProcessingOutcome is the result of one pipeline invocation.
type ProcessingOutcome struct {
	Links          *LinkSet
	ProcessedCount int
	ErrorCount     int
	Warnings       []string
}

// NewProcessingOutcome creates an empty outcome with buckets for languages.
func NewProcessingOutcome(languages ...string) *ProcessingOutcome {
	return &ProcessingOutcome{
		Links:    NewLinkSet(languages...),
		Warnings: []string{},
	}
}

// AddWarning appends an informational message without counting it as an error.
func (o *ProcessingOutcome) AddWarning(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// RecordFault counts err as an error and keeps its message as a warning.
func (o *ProcessingOutcome) RecordFault(err error) {
	o.ErrorCount++
	o.AddWarning(err.Error())
}

// IsSuccessful is true when nothing failed and at least one link was produced.
func (o *ProcessingOutcome) IsSuccessful() bool {
	return o.ErrorCount == 0 && o.Links.HasLinks()
}

// HasWarnings reports whether any warning was recorded.
func (o *ProcessingOutcome) HasWarnings() bool {
	return len(o.Warnings) > 0
}
