package table

import "fmt"

// DefaultColumnWidth is the starting width of a column that declares no InitialWidth.
const DefaultColumnWidth = 150

// Column declares one column of a Table over rows of type R.
type Column[R any] struct {
	// ID uniquely identifies the column; it keys widths and sort state.
	ID string

	// Header is the label shown in the header row.
	Header string

	// Accessor derives the sortable value of a row.
	Accessor func(R) Value

	// Render produces the display fragment of a row. When nil the accessor's
	// value is formatted with Value.String.
	Render func(R) string

	// MinWidth is the lower bound for the column width. Must be positive.
	MinWidth int

	// InitialWidth is the starting width; zero means max(MinWidth, DefaultColumnWidth).
	InitialWidth int

	// Flexible marks the single column that fills the remaining viewport width.
	Flexible bool
}

// startWidth returns the width a column takes when first added.
func (c Column[R]) startWidth() int {
	if c.InitialWidth > 0 {
		return max(c.InitialWidth, c.MinWidth)
	}
	return max(DefaultColumnWidth, c.MinWidth)
}

// cell renders the column's fragment for row.
func (c Column[R]) cell(row R) string {
	if c.Render != nil {
		return c.Render(row)
	}
	return c.Accessor(row).String()
}

// validateColumns checks a column model for the configuration errors SetColumns rejects.
func validateColumns[R any](cols []Column[R]) error {
	seen := make(map[string]bool, len(cols))
	flexible := ""

	for _, c := range cols {
		if c.ID == "" {
			return ErrEmptyColumnID
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.ID)
		}
		seen[c.ID] = true

		if c.MinWidth <= 0 {
			return fmt.Errorf("%w: %q has %d", ErrInvalidMinWidth, c.ID, c.MinWidth)
		}
		if c.Accessor == nil {
			return fmt.Errorf("%w: %q", ErrNilAccessor, c.ID)
		}
		if c.Flexible {
			if flexible != "" {
				return fmt.Errorf("%w: %q and %q", ErrMultipleFlexible, flexible, c.ID)
			}
			flexible = c.ID
		}
	}

	return nil
}
