package extract

import (
	"errors"
	"fmt"
)

// UnparseableError marks a line whose grammatical subject could not be
// identified, or whose annotation failed outright. It is line-scoped: the
// line is skipped, the run continues.
type UnparseableError struct {
	LineID  int
	RawText string
	Reason  string
	Err     error // underlying annotator error, if any
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("line %d unparseable: %s: %q", e.LineID, e.Reason, e.RawText)
}

func (e *UnparseableError) Unwrap() error {
	return e.Err
}

// AsUnparseable returns the UnparseableError inside err, or nil
func AsUnparseable(err error) *UnparseableError {
	if err == nil {
		return nil
	}
	var u *UnparseableError
	if errors.As(err, &u) {
		return u
	}
	return nil
}
