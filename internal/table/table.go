package table

import (
	"fmt"
	"maps"
)

// ChangeKind identifies what a Table mutation touched.
type ChangeKind int

const (
	// ChangeColumns follows SetColumns.
	ChangeColumns ChangeKind = iota
	// ChangeRows follows SetRows or InvalidateRow.
	ChangeRows
	// ChangeSort follows SetSort, ClearSort or ToggleSort.
	ChangeSort
	// ChangeWidth follows a column width mutation.
	ChangeWidth
)

// Change describes a mutation delivered to observers.
type Change struct {
	Kind ChangeKind
	// ColumnID is set for ChangeWidth and ChangeSort.
	ColumnID string
	// Row is the patched row index for InvalidateRow, -1 otherwise.
	Row int
}

// Table is the headless table core. It is not safe for concurrent use; all
// mutations are expected on the single event loop that owns it.
type Table[R any] struct {
	columns []Column[R]
	index   map[string]int
	rows    []R

	sort       SortState
	order      []int
	positions  []int
	orderDirty bool

	widths map[string]int

	observers map[int]func(Change)
	nextObs   int
}

// New creates an empty Table. Columns must be set before use.
func New[R any]() *Table[R] {
	return &Table[R]{
		index:      make(map[string]int),
		widths:     make(map[string]int),
		observers:  make(map[int]func(Change)),
		orderDirty: true,
	}
}

// NewWithColumns creates a Table with the given column model.
func NewWithColumns[R any](cols []Column[R]) (*Table[R], error) {
	t := New[R]()
	if err := t.SetColumns(cols); err != nil {
		return nil, err
	}
	return t, nil
}

// SetColumns replaces the column model. On error the previous model is kept.
// Widths of column ids present in both models are preserved, and the sort is
// cleared if its column no longer exists.
func (t *Table[R]) SetColumns(cols []Column[R]) error {
	if err := validateColumns(cols); err != nil {
		return fmt.Errorf("invalid column model: %w", err)
	}

	index := make(map[string]int, len(cols))
	widths := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c.ID] = i
		if w, ok := t.widths[c.ID]; ok {
			widths[c.ID] = max(w, c.MinWidth)
		} else {
			widths[c.ID] = c.startWidth()
		}
	}

	t.columns = append([]Column[R](nil), cols...)
	t.index = index
	t.widths = widths

	if _, ok := index[t.sort.ColumnID]; !ok {
		t.sort = SortState{}
	}
	t.orderDirty = true

	t.notify(Change{Kind: ChangeColumns, Row: -1})
	return nil
}

// Columns returns a copy of the column model.
func (t *Table[R]) Columns() []Column[R] {
	return append([]Column[R](nil), t.columns...)
}

// Column looks up a column by id.
func (t *Table[R]) Column(id string) (Column[R], bool) {
	i, ok := t.index[id]
	if !ok {
		return Column[R]{}, false
	}
	return t.columns[i], true
}

// ColumnIDs returns column ids in declaration order.
func (t *Table[R]) ColumnIDs() []string {
	ids := make([]string, len(t.columns))
	for i, c := range t.columns {
		ids[i] = c.ID
	}
	return ids
}

// FlexibleColumnID returns the id of the flexible column, if one is declared.
func (t *Table[R]) FlexibleColumnID() (string, bool) {
	for _, c := range t.columns {
		if c.Flexible {
			return c.ID, true
		}
	}
	return "", false
}

// MinWidth returns the minimum width of a column, or 0 for unknown ids.
func (t *Table[R]) MinWidth(id string) int {
	c, ok := t.Column(id)
	if !ok {
		return 0
	}
	return c.MinWidth
}

// SetRows stores a reference to rows. The slice is never copied or modified;
// the row order is recomputed lazily on the next RowOrder call.
func (t *Table[R]) SetRows(rows []R) {
	t.rows = rows
	t.orderDirty = true
	t.notify(Change{Kind: ChangeRows, Row: -1})
}

// InvalidateRow signals that the row at index i was patched in place by its owner.
func (t *Table[R]) InvalidateRow(i int) {
	if i < 0 || i >= len(t.rows) {
		return
	}
	if t.sort.Active() {
		t.orderDirty = true
	}
	t.notify(Change{Kind: ChangeRows, Row: i})
}

// Rows returns the stored row slice.
func (t *Table[R]) Rows() []R {
	return t.rows
}

// Len returns the number of rows.
func (t *Table[R]) Len() int {
	return len(t.rows)
}

// Row returns the row at raw index i.
func (t *Table[R]) Row(i int) (R, bool) {
	if i < 0 || i >= len(t.rows) {
		var zero R
		return zero, false
	}
	return t.rows[i], true
}

// SetSort sorts by the given column and direction.
func (t *Table[R]) SetSort(id string, dir Direction) error {
	if id == "" {
		t.ClearSort()
		return nil
	}
	if _, ok := t.index[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}

	t.sort = SortState{ColumnID: id, Direction: dir}
	t.orderDirty = true
	t.notify(Change{Kind: ChangeSort, ColumnID: id, Row: -1})
	return nil
}

// ClearSort restores the original row order.
func (t *Table[R]) ClearSort() {
	t.sort = SortState{}
	t.orderDirty = true
	t.notify(Change{Kind: ChangeSort, Row: -1})
}

// ToggleSort cycles a column through ascending, descending and unsorted.
// Toggling a column other than the sorted one starts at ascending.
func (t *Table[R]) ToggleSort(id string) error {
	if t.sort.ColumnID != id {
		return t.SetSort(id, Ascending)
	}
	if t.sort.Direction == Ascending {
		return t.SetSort(id, Descending)
	}
	t.ClearSort()
	return nil
}

// Sort returns the active sort state.
func (t *Table[R]) Sort() SortState {
	return t.sort
}

// RowOrder returns the raw row indices in display order. The returned slice is
// owned by the Table and must not be modified.
func (t *Table[R]) RowOrder() []int {
	if t.orderDirty {
		t.order = t.computeOrder()
		t.positions = make([]int, len(t.order))
		for pos, idx := range t.order {
			t.positions[idx] = pos
		}
		t.orderDirty = false
	}
	return t.order
}

// Position returns the display position of a raw row index, or -1.
func (t *Table[R]) Position(rowIndex int) int {
	if rowIndex < 0 || rowIndex >= len(t.rows) {
		return -1
	}
	t.RowOrder()
	return t.positions[rowIndex]
}

// computeOrder evaluates the sort accessor once per row and sorts stably.
func (t *Table[R]) computeOrder() []int {
	col, ok := t.Column(t.sort.ColumnID)
	if !t.sort.Active() || !ok {
		order := make([]int, len(t.rows))
		for i := range order {
			order[i] = i
		}
		return order
	}

	keys := make([]Value, len(t.rows))
	for i, r := range t.rows {
		keys[i] = col.Accessor(r)
	}
	return sortedOrder(keys, t.sort.Direction)
}

// ColumnWidth returns the current width of a column, or 0 for unknown ids.
func (t *Table[R]) ColumnWidth(id string) int {
	return t.widths[id]
}

// SetColumnWidth sets a column width clamped to its minimum and returns the
// stored value. Unknown ids are ignored and return 0.
func (t *Table[R]) SetColumnWidth(id string, w int) int {
	c, ok := t.Column(id)
	if !ok {
		return 0
	}

	w = max(w, c.MinWidth)
	if t.widths[id] == w {
		return w
	}
	t.widths[id] = w
	t.notify(Change{Kind: ChangeWidth, ColumnID: id, Row: -1})
	return w
}

// Widths returns a copy of the sizing state keyed by column id.
func (t *Table[R]) Widths() map[string]int {
	return maps.Clone(t.widths)
}

// RestoreWidths applies previously saved widths. Unknown ids are skipped.
func (t *Table[R]) RestoreWidths(widths map[string]int) {
	for id, w := range widths {
		t.SetColumnWidth(id, w)
	}
}

// TotalWidth returns the sum of all column widths.
func (t *Table[R]) TotalWidth() int {
	total := 0
	for _, w := range t.widths {
		total += w
	}
	return total
}

// Cells renders every column's fragment for the row at raw index i.
func (t *Table[R]) Cells(i int) []string {
	row, ok := t.Row(i)
	if !ok {
		return nil
	}
	cells := make([]string, len(t.columns))
	for c, col := range t.columns {
		cells[c] = col.cell(row)
	}
	return cells
}

// Subscribe registers an observer called synchronously after each mutation.
// The returned function removes it.
func (t *Table[R]) Subscribe(fn func(Change)) func() {
	id := t.nextObs
	t.nextObs++
	t.observers[id] = fn
	return func() { delete(t.observers, id) }
}

func (t *Table[R]) notify(c Change) {
	for _, fn := range t.observers {
		fn(c)
	}
}
