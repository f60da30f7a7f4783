package gemini

import "fmt"

// ExtractionError covers a failed profile extraction: malformed image,
// unreachable service, or an unparsable response. Any one of these aborts the
// whole document batch it belongs to.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extraction failed: %v", e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// MappingError covers a failed form-field mapping; it aborts the current
// capture and the capture surface resumes.
type MappingError struct {
	Err error
}

func (e *MappingError) Error() string { return fmt.Sprintf("form mapping failed: %v", e.Err) }
func (e *MappingError) Unwrap() error { return e.Err }
