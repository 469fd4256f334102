package parser

import (
	"errors"
	"fmt"
)

// MismatchPolicy decides what happens to a non-blank line that does not
// have the shape of a diagnostic.
type MismatchPolicy string

const (
	// MismatchAbort stops the parse at the first non-matching line.
	MismatchAbort MismatchPolicy = "abort"
	// MismatchSkip drops non-matching lines as build noise.
	MismatchSkip MismatchPolicy = "skip"
)

// ErrStructureMismatch is matched by every *MismatchError.
var ErrStructureMismatch = errors.New("log structure doesn't match")

// ParseMismatchPolicy validates a configured policy name. The empty
// string selects MismatchAbort.
func ParseMismatchPolicy(name string) (MismatchPolicy, error) {
	switch p := MismatchPolicy(name); p {
	case "":
		return MismatchAbort, nil
	case MismatchAbort, MismatchSkip:
		return p, nil
	default:
		return "", fmt.Errorf("unknown mismatch policy %q (valid: abort, skip)", name)
	}
}

// MismatchError reports the line that stopped a parse under MismatchAbort.
type MismatchError struct {
	Parser     string
	LineNumber int // 1-based
	Line       string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s parser: %s at line %d", e.Parser, ErrStructureMismatch, e.LineNumber)
}

func (e *MismatchError) Unwrap() error {
	return ErrStructureMismatch
}
