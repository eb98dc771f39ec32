package sheetio

import (
	"errors"
	"fmt"
)

// ErrMalformedInput indicates the uploaded bytes could not be parsed into
// rows at all. Nothing partial is ever produced alongside it.
var ErrMalformedInput = errors.New("malformed input file")

// WriteError reports a failure to produce the output workbook. Selection
// state is untouched by a failed export so the user can retry.
type WriteError struct {
	Sheet string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("write sheet %q: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("write workbook: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
