// README: Ledger error taxonomy.
package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrDataFormat      = errors.New("data format error")
)

// FormatError pinpoints the source cell that failed to parse.
type FormatError struct {
	Table  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s row %d: column %s: bad value %q", e.Table, e.Row, e.Column, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataFormat}
	}
	return []error{ErrDataFormat, e.Err}
}

func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive (got %d)", ErrInvalidArgument, id)
	}
	return nil
}
