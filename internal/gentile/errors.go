package gentile

import (
	"errors"
	"fmt"
)

// ErrNoGuidesSelected means no target contributed a single guide. An
// empty report is never useful, so the whole run fails.
var ErrNoGuidesSelected = errors.New("no guides selected for any target")

// MalformedRecordError is a row that could not be parsed. The row is
// dropped with a warning and the run continues.
type MalformedRecordError struct {
	// Line number in the input table, 1-based, header included
	Line int

	// Reason the row was rejected
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record on line %d: %s", e.Line, e.Reason)
}

// ConfigError is an input or parameter problem found before any row is
// processed: an unknown column, a bad metric, an unusable file. Fatal.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}
