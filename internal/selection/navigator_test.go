package selection_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/sift/internal/selection"
)

// fixedOrder is a RowOrder with a static permutation.
type fixedOrder []int

func (o fixedOrder) RowOrder() []int { return o }

func (o fixedOrder) Position(rowIndex int) int { return slices.Index(o, rowIndex) }

func newNavigator(order ...int) (*selection.Navigator, *selection.MemoryStore) {
	store := selection.NewMemoryStore()
	return selection.NewNavigator(store, fixedOrder(order)), store
}

// TestNavigator_FollowsDisplayOrder tests that arrows walk the sorted order, not storage order.
func TestNavigator_FollowsDisplayOrder(t *testing.T) {
	nav, store := newNavigator(3, 1, 0, 2)
	store.SetSelectedIndex(1)

	assert.True(t, nav.Next())
	assert.Equal(t, 0, store.State().SelectedIndex)

	assert.True(t, nav.Next())
	assert.Equal(t, 2, store.State().SelectedIndex)

	assert.True(t, nav.Prev())
	assert.True(t, nav.Prev())
	assert.True(t, nav.Prev())
	assert.Equal(t, 3, store.State().SelectedIndex)
}

// TestNavigator_Boundaries tests that moves at either end leave the store unchanged.
func TestNavigator_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		move     func(*selection.Navigator) bool
	}{
		{name: "down at last row", selected: 2, move: (*selection.Navigator).Next},
		{name: "up at first row", selected: 3, move: (*selection.Navigator).Prev},
		{name: "up with no selection", selected: selection.None, move: (*selection.Navigator).Prev},
		{name: "down from stale index", selected: 42, move: (*selection.Navigator).Next},
		{name: "down from last row index shown first", selected: 3, move: (*selection.Navigator).Next},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, store := newNavigator(3, 1, 0, 2)
			store.SetSelectedIndex(tt.selected)
			before := store.State()

			assert.False(t, tt.move(nav))
			assert.Equal(t, before, store.State())
		})
	}
}

// TestNavigator_NextStopsAtLastRowIndex tests that down is a no-op on the last raw
// row index even when a descending sort shows it first.
func TestNavigator_NextStopsAtLastRowIndex(t *testing.T) {
	nav, store := newNavigator(3, 2, 1, 0)
	store.SetSelectedIndex(3)

	assert.False(t, nav.Next())
	assert.Equal(t, 3, store.State().SelectedIndex)

	// Other rows still walk the sorted order.
	store.SetSelectedIndex(2)
	assert.True(t, nav.Next())
	assert.Equal(t, 1, store.State().SelectedIndex)
}

// TestNavigator_NextFromNone tests that the first down press selects the first row.
func TestNavigator_NextFromNone(t *testing.T) {
	nav, store := newNavigator(3, 1, 0, 2)

	assert.True(t, nav.Next())
	assert.Equal(t, 3, store.State().SelectedIndex)

	empty, emptyStore := newNavigator()
	assert.False(t, empty.Next())
	assert.Equal(t, selection.None, emptyStore.State().SelectedIndex)
}

// TestNavigator_SuppressedWhileRenaming tests that keyboard moves are ignored during rename.
func TestNavigator_SuppressedWhileRenaming(t *testing.T) {
	nav, store := newNavigator(0, 1, 2)
	store.SetSelectedIndex(1)
	assert.True(t, nav.BeginRename())
	assert.False(t, nav.BeginRename())

	assert.False(t, nav.Next())
	assert.False(t, nav.Prev())
	assert.False(t, nav.MoveBy(5))
	assert.False(t, nav.First())
	assert.Equal(t, 1, store.State().SelectedIndex)

	assert.True(t, nav.EndRename())
	assert.False(t, nav.EndRename())
	assert.True(t, nav.Next())
	assert.Equal(t, 2, store.State().SelectedIndex)
}

// TestNavigator_RereadsStore tests tolerance to external mutation between events.
func TestNavigator_RereadsStore(t *testing.T) {
	nav, store := newNavigator(0, 1, 2, 3)
	store.SetSelectedIndex(0)
	assert.True(t, nav.Next())

	// Another part of the UI moves the selection.
	store.SetSelectedIndex(3)
	assert.False(t, nav.Next())
	assert.True(t, nav.Prev())
	assert.Equal(t, 2, store.State().SelectedIndex)
}

// TestNavigator_MoveByAndJumps tests paging and home/end moves.
func TestNavigator_MoveByAndJumps(t *testing.T) {
	nav, store := newNavigator(4, 3, 2, 1, 0)

	assert.True(t, nav.MoveBy(3))
	assert.Equal(t, 4, store.State().SelectedIndex, "no selection starts at the first row")

	assert.True(t, nav.MoveBy(3))
	assert.Equal(t, 1, store.State().SelectedIndex)

	assert.True(t, nav.MoveBy(10))
	assert.Equal(t, 0, store.State().SelectedIndex)

	assert.True(t, nav.First())
	assert.Equal(t, 4, store.State().SelectedIndex)
	assert.False(t, nav.First())

	assert.True(t, nav.Last())
	assert.Equal(t, 0, store.State().SelectedIndex)
}

// TestNavigator_LayoutTrigger tests the inspector-driven width reconciliation trigger.
func TestNavigator_LayoutTrigger(t *testing.T) {
	nav, store := newNavigator(0, 1, 2)
	calls := 0
	nav.OnLayoutChange(func() { calls++ })

	// Inspector hidden: selection changes never trigger.
	nav.Select(1)
	nav.Clear()
	assert.Equal(t, 0, calls)

	// Toggling with nothing selected does not change list width.
	assert.True(t, nav.ToggleInspector())
	assert.Equal(t, 0, calls)
	assert.False(t, nav.InspectorVisible())

	// None -> row shows the panel.
	nav.Select(0)
	assert.Equal(t, 1, calls)
	assert.True(t, nav.InspectorVisible())

	// Row -> row keeps the panel.
	nav.Next()
	assert.Equal(t, 1, calls)

	// Row -> none hides it.
	nav.Clear()
	assert.Equal(t, 2, calls)

	// Toggling while selected changes width.
	nav.Select(2)
	assert.Equal(t, 3, calls)
	assert.False(t, nav.ToggleInspector())
	assert.Equal(t, 4, calls)
	assert.False(t, store.State().ShowInspector)
}

// TestNavigator_SelectEndsRename tests that pointer selection of another row ends a rename.
func TestNavigator_SelectEndsRename(t *testing.T) {
	nav, store := newNavigator(0, 1, 2)
	nav.Select(0)
	nav.BeginRename()

	assert.True(t, nav.Select(2))
	assert.False(t, store.State().Renaming)
	assert.Equal(t, 2, store.State().SelectedIndex)
}

// TestNavigator_Reconcile tests both stale-selection policies.
func TestNavigator_Reconcile(t *testing.T) {
	tests := []struct {
		name     string
		policy   selection.Policy
		selected int
		prevKey  string
		newKeys  []string
		want     int
	}{
		{name: "remap unchanged", policy: selection.RemapByKey, selected: 1, prevKey: "/b", newKeys: []string{"/a", "/b"}, want: 1},
		{name: "remap moved", policy: selection.RemapByKey, selected: 1, prevKey: "/b", newKeys: []string{"/b", "/c"}, want: 0},
		{name: "remap gone clears", policy: selection.RemapByKey, selected: 2, prevKey: "/c", newKeys: []string{"/a"}, want: selection.None},
		{name: "clear policy", policy: selection.ClearOnReplace, selected: 0, prevKey: "/a", newKeys: []string{"/a"}, want: selection.None},
		{name: "nothing selected", policy: selection.RemapByKey, selected: selection.None, prevKey: "", newKeys: []string{"/a", "/b", "/c"}, want: selection.None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := make([]int, len(tt.newKeys))
			for i := range order {
				order[i] = i
			}
			store := selection.NewMemoryStore()
			nav := selection.NewNavigator(store, fixedOrder(order))
			store.SetSelectedIndex(tt.selected)

			nav.Reconcile(tt.policy, tt.prevKey, len(tt.newKeys), func(i int) string { return tt.newKeys[i] })
			assert.Equal(t, tt.want, store.State().SelectedIndex)
		})
	}
}

// TestParsePolicy tests config names for policies.
func TestParsePolicy(t *testing.T) {
	assert.Equal(t, selection.ClearOnReplace, selection.ParsePolicy("clear"))
	assert.Equal(t, selection.RemapByKey, selection.ParsePolicy("remap"))
	assert.Equal(t, selection.RemapByKey, selection.ParsePolicy(""))
	assert.Equal(t, "clear", selection.ClearOnReplace.String())
}
