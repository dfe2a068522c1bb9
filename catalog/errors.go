package catalog

import (
	"errors"
	"fmt"
)

var ErrMalformedLine = errors.New("malformed catalog line")

// LineError ties a failure to the catalog line that caused it.
type LineError struct {
	Line   int
	Text   string
	Reason error
}

func NewLineError(line int, text string, reason error) *LineError {
	return &LineError{
		Line:   line,
		Text:   text,
		Reason: reason,
	}
}

func (e *LineError) Unwrap() error {
	return e.Reason
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Reason, e.Text)
}
