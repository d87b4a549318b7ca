package profiles

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange marks a caller addressing a profile or reference that
// does not exist. It is the only failure the index mutators report.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError describes an out-of-range access.
type IndexError struct {
	What  string // "profile" or "reference"
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.What, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
