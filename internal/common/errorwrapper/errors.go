package errorwrapper

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidArchive indicates bytes that cannot be opened as a ZIP container
	ErrInvalidArchive = errors.New("invalid ZIP file format")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrTemplateNotFound indicates a named report template is missing
	ErrTemplateNotFound = errors.New("template not found")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// EntryError ties a failure to one entry inside an archive.
type EntryError struct {
	Path    string
	Wrapped error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("Error processing %s: %v", e.Path, e.Wrapped)
}

func (e *EntryError) Unwrap() error {
	return e.Wrapped
}

// NewEntryError creates a new entry error
func NewEntryError(path string, wrapped error) *EntryError {
	return &EntryError{Path: path, Wrapped: wrapped}
}

// ArchiveError reports an archive whose container could not be opened.
type ArchiveError struct {
	Label   string
	Wrapped error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInvalidArchive, e.Label, e.Wrapped)
}

func (e *ArchiveError) Unwrap() []error {
	return []error{ErrInvalidArchive, e.Wrapped}
}

// NewArchiveError creates a new archive error
func NewArchiveError(label string, wrapped error) *ArchiveError {
	return &ArchiveError{Label: label, Wrapped: wrapped}
}

// ErrorCollector helps collect multiple errors during processing
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// Add records err if it is non-nil
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// HasErrors reports whether any error was collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// Errors returns the collected errors
func (ec *ErrorCollector) Errors() []error {
	return ec.errors
}

// Error combines the collected errors into one, or nil if there are none
func (ec *ErrorCollector) Error() error {
	return CombineErrors(ec.errors)
}

// CombineErrors combines multiple errors into a single error with formatted message
func CombineErrors(errs []error) error {
	var messages []string
	var kept []error
	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
			kept = append(kept, err)
		}
	}

	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &multiError{msg: fmt.Sprintf("multiple errors occurred: [%s]", strings.Join(messages, "; ")), errs: kept}
}

// multiError keeps every combined error reachable through errors.Is and errors.As.
type multiError struct {
	msg  string
	errs []error
}

func (e *multiError) Error() string   { return e.msg }
func (e *multiError) Unwrap() []error { return e.errs }
