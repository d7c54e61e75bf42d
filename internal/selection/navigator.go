package selection

// RowOrder is the display order the navigator walks.
type RowOrder interface {
	// RowOrder returns raw row indices in display order.
	RowOrder() []int
	// Position returns the display position of a raw row index, or -1.
	Position(rowIndex int) int
}

// Policy decides what happens to the selection when the row set is replaced.
type Policy int

const (
	// RemapByKey follows the selected row to its new index by key, clearing the
	// selection when the key is gone.
	RemapByKey Policy = iota
	// ClearOnReplace clears the selection on every row-set replacement.
	ClearOnReplace
)

// String returns the config name of the policy.
func (p Policy) String() string {
	if p == ClearOnReplace {
		return "clear"
	}
	return "remap"
}

// ParsePolicy maps a config value to a Policy, defaulting to RemapByKey.
func ParsePolicy(s string) Policy {
	if s == "clear" {
		return ClearOnReplace
	}
	return RemapByKey
}

// Navigator moves the selection through the display order and keeps the store
// consistent. It is the only writer of selection changes driven by this list.
type Navigator struct {
	store Store
	rows  RowOrder

	onLayoutChange func()
}

// NewNavigator creates a Navigator over rows writing to store.
func NewNavigator(store Store, rows RowOrder) *Navigator {
	return &Navigator{store: store, rows: rows}
}

// OnLayoutChange registers fn to run when a selection or inspector change alters
// the width available to the list.
func (n *Navigator) OnLayoutChange(fn func()) {
	n.onLayoutChange = fn
}

// Store returns the backing store.
func (n *Navigator) Store() Store {
	return n.store
}

// Prev selects the row before the current one in display order. It is a no-op
// with no selection, at the first position, or while renaming.
func (n *Navigator) Prev() bool {
	st := n.store.State()
	if st.Renaming || !st.HasSelection() {
		return false
	}

	order := n.rows.RowOrder()
	pos := n.rows.Position(st.SelectedIndex)
	if pos <= 0 {
		return false
	}
	return n.Select(order[pos-1])
}

// Next selects the row after the current one in display order. With no selection
// it selects the first row. It is a no-op at the last position, when the selected
// raw index is the last row index, or while renaming.
func (n *Navigator) Next() bool {
	st := n.store.State()
	if st.Renaming {
		return false
	}

	order := n.rows.RowOrder()
	if len(order) == 0 {
		return false
	}
	if !st.HasSelection() {
		return n.Select(order[0])
	}

	last := len(order) - 1
	pos := n.rows.Position(st.SelectedIndex)
	if pos < 0 || pos >= last || st.SelectedIndex == last {
		return false
	}
	return n.Select(order[pos+1])
}

// MoveBy moves the selection delta positions, clamped to the ends of the order.
func (n *Navigator) MoveBy(delta int) bool {
	st := n.store.State()
	if st.Renaming {
		return false
	}

	order := n.rows.RowOrder()
	if len(order) == 0 {
		return false
	}

	pos := n.rows.Position(st.SelectedIndex)
	if pos < 0 {
		pos = 0
	} else {
		pos += delta
	}
	pos = min(max(pos, 0), len(order)-1)
	return n.Select(order[pos])
}

// First selects the first row in display order.
func (n *Navigator) First() bool {
	return n.jump(func(order []int) int { return order[0] })
}

// Last selects the last row in display order.
func (n *Navigator) Last() bool {
	return n.jump(func(order []int) int { return order[len(order)-1] })
}

func (n *Navigator) jump(pick func([]int) int) bool {
	if n.store.State().Renaming {
		return false
	}
	order := n.rows.RowOrder()
	if len(order) == 0 {
		return false
	}
	return n.Select(pick(order))
}

// Select stores rowIndex as the selection. Pointer selection is allowed while
// renaming; it ends the rename on a different row.
func (n *Navigator) Select(rowIndex int) bool {
	st := n.store.State()
	if rowIndex < 0 {
		rowIndex = None
	}
	if st.SelectedIndex == rowIndex {
		return false
	}

	if st.Renaming {
		n.store.SetRenaming(false)
	}
	n.store.SetSelectedIndex(rowIndex)

	// Showing or hiding the inspector changes the list width.
	if st.ShowInspector && (st.HasSelection() != (rowIndex != None)) {
		n.layoutChanged()
	}
	return true
}

// Clear removes the selection.
func (n *Navigator) Clear() bool {
	return n.Select(None)
}

// ToggleInspector flips the inspector flag and returns the new value.
func (n *Navigator) ToggleInspector() bool {
	st := n.store.State()
	show := !st.ShowInspector
	n.store.SetShowInspector(show)
	if st.HasSelection() {
		n.layoutChanged()
	}
	return show
}

// BeginRename enters rename mode for the selected row.
func (n *Navigator) BeginRename() bool {
	st := n.store.State()
	if !st.HasSelection() || st.Renaming {
		return false
	}
	n.store.SetRenaming(true)
	return true
}

// EndRename leaves rename mode.
func (n *Navigator) EndRename() bool {
	if !n.store.State().Renaming {
		return false
	}
	n.store.SetRenaming(false)
	return true
}

// Reconcile applies policy after the row set was replaced. prevKey is the key of
// the previously selected row (empty when nothing was selected) and keyAt returns
// the key of a row in the new set; count is the new row count.
func (n *Navigator) Reconcile(policy Policy, prevKey string, count int, keyAt func(int) string) {
	st := n.store.State()
	if !st.HasSelection() {
		return
	}

	if policy == ClearOnReplace || prevKey == "" || keyAt == nil {
		n.Clear()
		return
	}

	if st.SelectedIndex < count && keyAt(st.SelectedIndex) == prevKey {
		return
	}
	for i := range count {
		if keyAt(i) == prevKey {
			n.Select(i)
			return
		}
	}
	n.Clear()
}

// InspectorVisible reports whether the inspector panel is currently taking width.
func (n *Navigator) InspectorVisible() bool {
	st := n.store.State()
	return st.ShowInspector && st.HasSelection()
}

func (n *Navigator) layoutChanged() {
	if n.onLayoutChange != nil {
		n.onLayoutChange()
	}
}
