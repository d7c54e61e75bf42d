package sizing

import (
	"github.com/rs/zerolog"
)

// Pixel defaults taken from the explorer list view layout.
const (
	// DefaultPadding is the total horizontal padding (16px on each side).
	DefaultPadding = 32
	// DefaultScrollbarWidth is the allowance reserved for a vertical scrollbar.
	DefaultScrollbarWidth = 8
	// DefaultTolerance is the distance within which unlocked widths snap back to locked.
	DefaultTolerance = 10
)

// Mode is the sizing state.
type Mode int

const (
	// Locked keeps the total width in sync with the viewport.
	Locked Mode = iota
	// Unlocked lets widths diverge from the viewport after a manual resize.
	Unlocked
)

// String returns "locked" or "unlocked".
func (m Mode) String() string {
	if m == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Layout is the width state the controller mutates.
type Layout interface {
	ColumnIDs() []string
	FlexibleColumnID() (string, bool)
	MinWidth(id string) int
	ColumnWidth(id string) int
	SetColumnWidth(id string, w int) int
	TotalWidth() int
}

// Options are the layout allowances subtracted from the viewport width.
type Options struct {
	Padding        int
	ScrollbarWidth int
	Tolerance      int
}

// DefaultOptions returns the pixel layout allowances.
func DefaultOptions() Options {
	return Options{
		Padding:        DefaultPadding,
		ScrollbarWidth: DefaultScrollbarWidth,
		Tolerance:      DefaultTolerance,
	}
}

// Snapshot is the persisted view of the sizing state.
type Snapshot struct {
	Mode   Mode
	Widths map[string]int
}

// Controller implements the locked/unlocked column sizing state machine.
type Controller struct {
	layout   Layout
	opts     Options
	mode     Mode
	dragging string
	viewport int
	logger   zerolog.Logger
}

// NewController creates a Controller in the locked state.
func NewController(layout Layout, opts Options, logger zerolog.Logger) *Controller {
	return &Controller{
		layout: layout,
		opts:   opts,
		mode:   Locked,
		logger: logger.With().Str("component", "sizing").Logger(),
	}
}

// Mode returns the current state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Dragging returns the column being dragged, or "".
func (c *Controller) Dragging() string {
	return c.dragging
}

// Viewport returns the last reported viewport width.
func (c *Controller) Viewport() int {
	return c.viewport
}

// Options returns the layout allowances.
func (c *Controller) Options() Options {
	return c.opts
}

// Available returns the width left for columns in a viewport of width w.
func (c *Controller) Available(w int) int {
	return w - c.opts.Padding - c.opts.ScrollbarWidth
}

// Measure seeds the flexible column before first paint from the fixed columns'
// natural widths. It always leaves the controller locked.
func (c *Controller) Measure(viewportWidth int) {
	c.mode = Locked
	c.dragging = ""
	c.ViewportResized(viewportWidth)
}

// ViewportResized reconciles widths with a new viewport width. In the locked state
// the flexible column is recomputed. In the unlocked state the controller re-locks
// when the total width is within the tolerance of the available width.
// Non-positive widths are layout that has not happened yet and are ignored.
func (c *Controller) ViewportResized(w int) {
	if w <= 0 {
		c.logger.Debug().Int("width", w).Msg("ignoring non-positive viewport width")
		return
	}
	c.viewport = w

	if c.mode == Unlocked {
		diff := c.layout.TotalWidth() - c.Available(w)
		if abs(diff) >= c.opts.Tolerance {
			return
		}
		c.mode = Locked
		c.logger.Debug().Int("width", w).Int("diff", diff).Msg("widths converged, sizing locked")
	}

	c.fill(w)
}

// fill sets the flexible column to the width left over by the fixed columns.
func (c *Controller) fill(w int) {
	flex, ok := c.layout.FlexibleColumnID()
	if !ok {
		return
	}

	fixed := 0
	for _, id := range c.layout.ColumnIDs() {
		if id != flex {
			fixed += c.layout.ColumnWidth(id)
		}
	}

	c.layout.SetColumnWidth(flex, c.Available(w)-fixed)
}

// DragStart begins a resize of column id and unlocks sizing. The flexible column
// is not draggable; the call reports whether a drag started.
func (c *Controller) DragStart(id string) bool {
	if flex, ok := c.layout.FlexibleColumnID(); ok && flex == id {
		return false
	}
	if c.layout.MinWidth(id) <= 0 {
		return false
	}

	c.dragging = id
	c.mode = Unlocked
	return true
}

// DragMove adds delta to column id, clamped to its minimum, and returns the new
// width. Other columns are left untouched.
func (c *Controller) DragMove(id string, delta int) int {
	if flex, ok := c.layout.FlexibleColumnID(); ok && flex == id {
		return c.layout.ColumnWidth(id)
	}
	if c.dragging != id && !c.DragStart(id) {
		return c.layout.ColumnWidth(id)
	}
	return c.layout.SetColumnWidth(id, c.layout.ColumnWidth(id)+delta)
}

// DragEnd finishes the active drag. Sizing stays unlocked until a viewport
// resize finds the widths converged.
func (c *Controller) DragEnd() {
	c.dragging = ""
}

// Reconcile re-runs ViewportResized with the last known viewport width.
func (c *Controller) Reconcile() {
	c.ViewportResized(c.viewport)
}

// Snapshot returns the current mode and a copy of the widths.
func (c *Controller) Snapshot() Snapshot {
	widths := make(map[string]int)
	for _, id := range c.layout.ColumnIDs() {
		widths[id] = c.layout.ColumnWidth(id)
	}
	return Snapshot{Mode: c.mode, Widths: widths}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
