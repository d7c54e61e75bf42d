// Package table provides the headless table core behind the explorer list view.
//
// A Table holds a column model, a reference to the caller's row slice, the current
// sort state, and mutable per-column widths. It never copies or mutates rows:
//   - Column accessors derive tagged Values used for ordering
//   - RowOrder returns a stable permutation of row indices for the current sort
//   - Column widths are clamped to each column's minimum
//   - Observers are notified synchronously after every mutation
//
// Rendering layers pull derived state (order, widths, cell fragments) when notified.
package table
