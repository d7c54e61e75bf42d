package table

import "errors"

// Column model errors. SetColumns rejects the whole model when any of these apply.
var (
	ErrDuplicateColumn  = errors.New("duplicate column id")
	ErrMultipleFlexible = errors.New("only one column may be flexible")
	ErrInvalidMinWidth  = errors.New("column min width must be positive")
	ErrEmptyColumnID    = errors.New("column id must not be empty")
	ErrNilAccessor      = errors.New("column accessor must not be nil")
	ErrUnknownColumn    = errors.New("unknown column id")
)
