package reports

import "errors"

// Error kinds for report query validation. Handlers match on these with
// errors.Is to decide the response status; the QueryError message is
// what callers see.
var (
	ErrInvalidGroup = errors.New("invalid group")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnknownType marks a movement whose type is neither INCOME nor
	// EXPENSE reaching the aggregation engine. That row should have been
	// rejected at creation, so this is a data integrity failure rather
	// than a validation error.
	ErrUnknownType = errors.New("unknown movement type")
)

// QueryError is a validation failure with a human-readable message and
// an error kind reachable through errors.Is.
type QueryError struct {
	kind error
	msg  string
}

func (e *QueryError) Error() string { return e.msg }

func (e *QueryError) Unwrap() error { return e.kind }
