package canvas

import "errors"

// Operation errors. Callers match with errors.Is; operations wrap these
// with the offending identifier or value.
var (
	ErrNotFound        = errors.New("item not found")
	ErrInvalidType     = errors.New("invalid item type")
	ErrTypeMismatch    = errors.New("operation does not apply to item type")
	ErrInvalidEnum     = errors.New("value not in allowed options")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrOutOfRange      = errors.New("value out of range")
	ErrIndexOutOfRange = errors.New("index out of range")
)
