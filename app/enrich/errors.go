package enrich

import (
	"fmt"
)

// Error reports a failed enrichment of a single item.
type Error struct {
	Link string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("enrich %s: %v", e.Link, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
