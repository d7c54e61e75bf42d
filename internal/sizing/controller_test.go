package sizing_test

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/sift/internal/sizing"
	"github.com/rshade/sift/internal/table"
)

type file struct{ name string }

func newLayout(t *testing.T) *table.Table[file] {
	t.Helper()
	acc := func(f file) table.Value { return table.Text(f.name) }
	tbl, err := table.NewWithColumns([]table.Column[file]{
		{ID: "Name", Accessor: acc, MinWidth: 200, Flexible: true},
		{ID: "Size", Accessor: acc, MinWidth: 50, InitialWidth: 80},
		{ID: "Type", Accessor: acc, MinWidth: 50, InitialWidth: 120},
		{ID: "Content ID", Accessor: acc, MinWidth: 50, InitialWidth: 180},
	})
	require.NoError(t, err)
	return tbl
}

func newController(t *testing.T) (*sizing.Controller, *table.Table[file]) {
	t.Helper()
	layout := newLayout(t)
	return sizing.NewController(layout, sizing.DefaultOptions(), zerolog.Nop()), layout
}

// TestMeasure_FlexibleFill tests the 760px viewport scenario.
func TestMeasure_FlexibleFill(t *testing.T) {
	c, layout := newController(t)

	c.Measure(760)

	assert.Equal(t, sizing.Locked, c.Mode())
	assert.Equal(t, 760-32-8-(80+120+180), layout.ColumnWidth("Name"))
	assert.Equal(t, 340, layout.ColumnWidth("Name"))
	assert.Equal(t, c.Available(760), layout.TotalWidth())
}

// TestViewportResized_Locked tests that locked resizes track the viewport.
func TestViewportResized_Locked(t *testing.T) {
	c, layout := newController(t)
	c.Measure(760)

	c.ViewportResized(1000)
	assert.Equal(t, 580, layout.ColumnWidth("Name"))
	assert.Equal(t, c.Available(1000), layout.TotalWidth())

	// Too narrow: the flexible column stops at its minimum.
	c.ViewportResized(300)
	assert.Equal(t, 200, layout.ColumnWidth("Name"))
	assert.Equal(t, sizing.Locked, c.Mode())
}

// TestViewportResized_IgnoresMissingGeometry tests that non-positive widths are skipped.
func TestViewportResized_IgnoresMissingGeometry(t *testing.T) {
	c, layout := newController(t)
	c.Measure(760)

	c.ViewportResized(0)
	c.ViewportResized(-10)
	assert.Equal(t, 340, layout.ColumnWidth("Name"))
	assert.Equal(t, 760, c.Viewport())
}

// TestDrag_UnlockedDivergence tests dragging Type from 120 to 160 while locked.
func TestDrag_UnlockedDivergence(t *testing.T) {
	c, layout := newController(t)
	c.Measure(760)
	before := layout.TotalWidth()

	require.True(t, c.DragStart("Type"))
	assert.Equal(t, sizing.Unlocked, c.Mode())
	assert.Equal(t, "Type", c.Dragging())

	assert.Equal(t, 160, c.DragMove("Type", 40))
	c.DragEnd()
	assert.Equal(t, sizing.Unlocked, c.Mode())
	assert.Empty(t, c.Dragging())

	// Other columns are untouched; the total now exceeds the available width.
	assert.Equal(t, 340, layout.ColumnWidth("Name"))

	c.ViewportResized(760)
	assert.Equal(t, sizing.Unlocked, c.Mode())
	assert.Equal(t, before+40, layout.TotalWidth())
	assert.Equal(t, c.Available(760)+40, layout.TotalWidth())

	// Widening the viewport until the widths fit re-locks and refills.
	c.ViewportResized(805)
	assert.Equal(t, sizing.Locked, c.Mode())
	assert.Equal(t, c.Available(805), layout.TotalWidth())
}

// TestDragStart_FlexibleIgnored tests that the flexible column is not draggable.
func TestDragStart_FlexibleIgnored(t *testing.T) {
	c, layout := newController(t)
	c.Measure(760)

	assert.False(t, c.DragStart("Name"))
	assert.Equal(t, sizing.Locked, c.Mode())
	assert.Equal(t, 340, c.DragMove("Name", 100))
	assert.Equal(t, 340, layout.ColumnWidth("Name"))

	assert.False(t, c.DragStart("Nope"))
}

// TestDragMove_ClampsToMin tests that drags never shrink below the minimum.
func TestDragMove_ClampsToMin(t *testing.T) {
	c, layout := newController(t)
	c.Measure(760)

	require.True(t, c.DragStart("Size"))
	assert.Equal(t, 50, c.DragMove("Size", -500))
	assert.Equal(t, 50, layout.ColumnWidth("Size"))
}

// TestInvariants_RandomSequences tests min widths and the locked sum after random events.
func TestInvariants_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"Name", "Size", "Type", "Content ID"}

	for run := range 50 {
		c, layout := newController(t)
		c.Measure(400 + rng.Intn(1200))

		for range 100 {
			switch rng.Intn(3) {
			case 0:
				id := ids[rng.Intn(len(ids))]
				c.DragStart(id)
				c.DragMove(id, rng.Intn(300)-150)
				c.DragEnd()
			default:
				w := 400 + rng.Intn(1200)
				c.ViewportResized(w)

				if c.Mode() == sizing.Locked {
					flex := layout.ColumnWidth("Name")
					if flex > layout.MinWidth("Name") {
						assert.Equal(t, c.Available(w), layout.TotalWidth(), "run %d", run)
					}
				}
			}

			for _, id := range ids {
				assert.GreaterOrEqual(t, layout.ColumnWidth(id), layout.MinWidth(id))
			}
		}
	}
}

// TestSnapshot tests the persisted sizing view.
func TestSnapshot(t *testing.T) {
	c, _ := newController(t)
	c.Measure(760)

	snap := c.Snapshot()
	assert.Equal(t, sizing.Locked, snap.Mode)
	assert.Equal(t, map[string]int{"Name": 340, "Size": 80, "Type": 120, "Content ID": 180}, snap.Widths)
	assert.Equal(t, "locked", snap.Mode.String())
}

// TestReconcile tests that reconcile reuses the last viewport width.
func TestReconcile(t *testing.T) {
	c, layout := newController(t)
	c.Measure(760)
	layout.SetColumnWidth("Size", 100)

	c.Reconcile()
	assert.Equal(t, 320, layout.ColumnWidth("Name"))
}
