package explorer

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/rshade/sift/internal/selection"
	"github.com/rshade/sift/internal/sizing"
	"github.com/rshade/sift/internal/table"
	"github.com/rshade/sift/internal/virtual"
)

// DefaultInspectorWidth is the inspector panel width in pixels.
const DefaultInspectorWidth = 260

// ErrNoColumns is returned when a ListView is built without a column model.
var ErrNoColumns = errors.New("list view needs at least one column")

// Options configures a ListView.
type Options[R any] struct {
	Columns []table.Column[R]

	// Key identifies a row across row-set replacements. Without it the selection
	// is cleared whenever rows are replaced.
	Key func(R) string

	// Store holds the selection. A MemoryStore is created when nil.
	Store selection.Store

	Policy selection.Policy

	// Sizing holds the layout allowances; the zero value uses sizing.DefaultOptions.
	Sizing sizing.Options

	// RowHeight is the fixed row size; zero uses the virtualizer default.
	RowHeight int
	// Overscan is the number of rows rendered past each viewport edge; negative
	// values use the virtualizer default.
	Overscan int

	// InspectorWidth is subtracted from the viewport while the inspector is visible.
	InspectorWidth int

	Logger zerolog.Logger
}

// HeaderCell is one rendered header column.
type HeaderCell struct {
	ID        string
	Title     string
	Width     int
	Sorted    bool
	Direction table.Direction
	// Resizable is false for the flexible column.
	Resizable bool
}

// RenderedRow is one materialized row of the current window.
type RenderedRow struct {
	// Position is the row's place in display order.
	Position int
	// RowIndex is the raw index into the caller's row slice.
	RowIndex int
	Top      int
	Height   int
	Selected bool
	// Even is true for even display positions, used for zebra striping.
	Even  bool
	Cells []string
}

// ListView is the assembled list view. Like the table core it is owned by a
// single event loop.
type ListView[R any] struct {
	table  *table.Table[R]
	virt   *virtual.Virtualizer
	sizer  *sizing.Controller
	nav    *selection.Navigator
	store  selection.Store
	key    func(R) string
	policy selection.Policy
	logger zerolog.Logger

	inspectorWidth int
	rowHeight      int

	width     int
	height    int
	scrollTop int
	measured  bool
}

// New builds a ListView from opts.
func New[R any](opts Options[R]) (*ListView[R], error) {
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}

	tbl, err := table.NewWithColumns(opts.Columns)
	if err != nil {
		return nil, err
	}

	rowHeight := opts.RowHeight
	if rowHeight <= 0 {
		rowHeight = virtual.DefaultEstimateSize
	}
	overscan := opts.Overscan
	if overscan < 0 {
		overscan = virtual.DefaultOverscan
	}

	sizingOpts := opts.Sizing
	if sizingOpts == (sizing.Options{}) {
		sizingOpts = sizing.DefaultOptions()
	}

	store := opts.Store
	if store == nil {
		store = selection.NewMemoryStore()
	}

	lv := &ListView[R]{
		table:          tbl,
		virt:           virtual.New(0, virtual.WithFixedSize(rowHeight), virtual.WithOverscan(overscan)),
		sizer:          sizing.NewController(tbl, sizingOpts, opts.Logger),
		store:          store,
		key:            opts.Key,
		policy:         opts.Policy,
		logger:         opts.Logger,
		inspectorWidth: max(opts.InspectorWidth, 0),
		rowHeight:      rowHeight,
	}
	lv.nav = selection.NewNavigator(store, tbl)
	lv.nav.OnLayoutChange(lv.reflow)
	return lv, nil
}

// Table returns the underlying table core.
func (l *ListView[R]) Table() *table.Table[R] {
	return l.table
}

// Sizer returns the column sizing controller.
func (l *ListView[R]) Sizer() *sizing.Controller {
	return l.sizer
}

// Store returns the selection store.
func (l *ListView[R]) Store() selection.Store {
	return l.store
}

// Subscribe registers fn for table mutations.
func (l *ListView[R]) Subscribe(fn func(table.Change)) func() {
	return l.table.Subscribe(fn)
}

// SetRows replaces the row set and reconciles the selection with it.
func (l *ListView[R]) SetRows(rows []R) {
	prevKey := ""
	if row, ok := l.SelectedRow(); ok && l.key != nil {
		prevKey = l.key(row)
	}

	l.table.SetRows(rows)
	l.virt.SetCount(len(rows))

	var keyAt func(int) string
	if l.key != nil {
		keyAt = func(i int) string { return l.key(rows[i]) }
	}
	l.nav.Reconcile(l.policy, prevKey, len(rows), keyAt)
	l.clampScroll()

	l.logger.Debug().Int("rows", len(rows)).Str("prev_key", prevKey).Msg("rows replaced")
}

// InvalidateRow marks the row at raw index i as patched in place.
func (l *ListView[R]) InvalidateRow(i int) {
	l.table.InvalidateRow(i)
}

// Len returns the row count.
func (l *ListView[R]) Len() int {
	return l.table.Len()
}

// SetSort sorts by column id; an empty id clears the sort.
func (l *ListView[R]) SetSort(id string, dir table.Direction) error {
	return l.table.SetSort(id, dir)
}

// ToggleSort cycles column id through ascending, descending and unsorted.
func (l *ListView[R]) ToggleSort(id string) error {
	return l.table.ToggleSort(id)
}

// Resize records the viewport size and reconciles column widths. The first
// positive width seeds the flexible column.
func (l *ListView[R]) Resize(width, height int) {
	l.width = width
	l.height = max(height, 0)

	eff := l.effectiveWidth()
	if !l.measured && eff > 0 {
		l.sizer.Measure(eff)
		l.measured = true
	} else {
		l.sizer.ViewportResized(eff)
	}
	l.clampScroll()
}

// Viewport returns the last reported viewport size.
func (l *ListView[R]) Viewport() (width, height int) {
	return l.width, l.height
}

// ContentWidth returns the width available to the table after the inspector.
func (l *ListView[R]) ContentWidth() int {
	return l.effectiveWidth()
}

func (l *ListView[R]) effectiveWidth() int {
	if l.nav.InspectorVisible() {
		return l.width - l.inspectorWidth
	}
	return l.width
}

// reflow runs when the inspector starts or stops taking width.
func (l *ListView[R]) reflow() {
	eff := l.effectiveWidth()
	l.logger.Debug().Int("width", eff).Bool("inspector", l.nav.InspectorVisible()).Msg("layout changed")
	l.sizer.ViewportResized(eff)
}

// ScrollTop returns the scroll offset.
func (l *ListView[R]) ScrollTop() int {
	return l.scrollTop
}

// ScrollTo sets the scroll offset, clamped to the scrollable range.
func (l *ListView[R]) ScrollTo(top int) {
	l.scrollTop = min(max(top, 0), l.virt.MaxScroll(l.height))
}

// ScrollBy moves the scroll offset by delta.
func (l *ListView[R]) ScrollBy(delta int) {
	l.ScrollTo(l.scrollTop + delta)
}

func (l *ListView[R]) clampScroll() {
	l.ScrollTo(l.scrollTop)
}

// pageRows is the number of rows a page key moves.
func (l *ListView[R]) pageRows() int {
	return max(l.height/l.rowHeight, 1)
}

// SelectNext moves the selection down one row.
func (l *ListView[R]) SelectNext() bool {
	return l.reveal(l.nav.Next())
}

// SelectPrev moves the selection up one row.
func (l *ListView[R]) SelectPrev() bool {
	return l.reveal(l.nav.Prev())
}

// PageDown moves the selection down one viewport.
func (l *ListView[R]) PageDown() bool {
	return l.reveal(l.nav.MoveBy(l.pageRows()))
}

// PageUp moves the selection up one viewport.
func (l *ListView[R]) PageUp() bool {
	return l.reveal(l.nav.MoveBy(-l.pageRows()))
}

// Home selects the first row.
func (l *ListView[R]) Home() bool {
	return l.reveal(l.nav.First())
}

// End selects the last row.
func (l *ListView[R]) End() bool {
	return l.reveal(l.nav.Last())
}

// reveal scrolls the selected row into view after a keyboard move.
func (l *ListView[R]) reveal(changed bool) bool {
	if !changed {
		return false
	}
	pos := l.table.Position(l.store.State().SelectedIndex)
	if pos >= 0 {
		l.scrollTop = l.virt.ScrollToIndex(pos, l.scrollTop, l.height)
	}
	return true
}

// Select selects the row at raw index i, as from a pointer click.
func (l *ListView[R]) Select(i int) bool {
	if i >= l.table.Len() {
		return false
	}
	return l.nav.Select(i)
}

// ClearSelection removes the selection.
func (l *ListView[R]) ClearSelection() bool {
	return l.nav.Clear()
}

// ToggleInspector shows or hides the inspector and returns the new flag.
func (l *ListView[R]) ToggleInspector() bool {
	return l.nav.ToggleInspector()
}

// InspectorVisible reports whether the inspector currently takes width.
func (l *ListView[R]) InspectorVisible() bool {
	return l.nav.InspectorVisible()
}

// BeginRename starts renaming the selected row.
func (l *ListView[R]) BeginRename() bool {
	return l.nav.BeginRename()
}

// EndRename finishes renaming.
func (l *ListView[R]) EndRename() bool {
	return l.nav.EndRename()
}

// Renaming reports whether a rename is active.
func (l *ListView[R]) Renaming() bool {
	return l.store.State().Renaming
}

// SelectedRow returns the selected row, if any.
func (l *ListView[R]) SelectedRow() (R, bool) {
	return l.table.Row(l.store.State().SelectedIndex)
}

// Header returns the header cells in column order.
func (l *ListView[R]) Header() []HeaderCell {
	sort := l.table.Sort()
	cols := l.table.Columns()
	cells := make([]HeaderCell, len(cols))
	for i, c := range cols {
		cells[i] = HeaderCell{
			ID:        c.ID,
			Title:     c.Header,
			Width:     l.table.ColumnWidth(c.ID),
			Sorted:    sort.Active() && sort.ColumnID == c.ID,
			Direction: sort.Direction,
			Resizable: !c.Flexible,
		}
	}
	return cells
}

// Window returns the virtual window for the current scroll position.
func (l *ListView[R]) Window() virtual.Window {
	return l.virt.Window(l.scrollTop, l.height)
}

// Rows materializes the rows of the current window.
func (l *ListView[R]) Rows() []RenderedRow {
	win := l.Window()
	if win.Empty() {
		return nil
	}

	order := l.table.RowOrder()
	selected := l.store.State().SelectedIndex
	rows := make([]RenderedRow, 0, len(win.Items))
	for _, item := range win.Items {
		if item.Index >= len(order) {
			break
		}
		idx := order[item.Index]
		rows = append(rows, RenderedRow{
			Position: item.Index,
			RowIndex: idx,
			Top:      item.Start,
			Height:   item.Size,
			Selected: idx == selected,
			Even:     item.Index%2 == 0,
			Cells:    l.table.Cells(idx),
		})
	}
	return rows
}

// DragStart begins resizing column id.
func (l *ListView[R]) DragStart(id string) bool {
	return l.sizer.DragStart(id)
}

// DragMove resizes column id by delta and returns its new width.
func (l *ListView[R]) DragMove(id string, delta int) int {
	return l.sizer.DragMove(id, delta)
}

// DragEnd finishes the active resize.
func (l *ListView[R]) DragEnd() {
	l.sizer.DragEnd()
}

// Widths returns a copy of the column widths.
func (l *ListView[R]) Widths() map[string]int {
	return l.table.Widths()
}

// RestoreWidths applies saved widths and refits the flexible column.
func (l *ListView[R]) RestoreWidths(widths map[string]int) {
	l.table.RestoreWidths(widths)
	if l.measured {
		l.sizer.Measure(l.effectiveWidth())
	}
}
