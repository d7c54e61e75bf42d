package virtual

import "sort"

// DefaultEstimateSize is the row size used when no estimator is supplied.
const DefaultEstimateSize = 45

// DefaultOverscan is the number of extra rows rendered above and below the viewport.
const DefaultOverscan = 5

// minItemSize is the floor applied to non-positive size estimates.
const minItemSize = 1

// EstimateFunc returns the estimated size of the row at index.
type EstimateFunc func(index int) int

// Option configures a Virtualizer.
type Option func(*Virtualizer)

// WithEstimateSize sets the per-row size estimator.
func WithEstimateSize(fn EstimateFunc) Option {
	return func(v *Virtualizer) {
		if fn != nil {
			v.estimate = fn
		}
	}
}

// WithFixedSize sets a constant row size.
func WithFixedSize(size int) Option {
	return WithEstimateSize(func(int) int { return size })
}

// WithOverscan sets the overscan margin. Negative values are treated as zero.
func WithOverscan(n int) Option {
	return func(v *Virtualizer) {
		v.overscan = max(n, 0)
	}
}

// Item is one materialized row of the window.
type Item struct {
	// Index is the position of the row in display order.
	Index int
	// Start is the offset of the row's top edge.
	Start int
	// Size is the row height.
	Size int
}

// End returns the offset just past the row's bottom edge.
func (i Item) End() int {
	return i.Start + i.Size
}

// Window is the set of rows to render for one scroll position.
// All index bounds are inclusive and -1 when the window is empty.
type Window struct {
	Items []Item

	// VisibleStart and VisibleEnd bound the rows intersecting the viewport.
	VisibleStart int
	VisibleEnd   int

	// Start and End bound the rendered rows including overscan.
	Start int
	End   int

	// PaddingTop and PaddingBottom stand in for the rows outside the window.
	PaddingTop    int
	PaddingBottom int

	TotalSize int
}

// Empty reports whether the window has no rows to render.
func (w Window) Empty() bool {
	return len(w.Items) == 0
}

// emptyWindow returns a window with no rows.
func emptyWindow(total int) Window {
	return Window{
		VisibleStart:  -1,
		VisibleEnd:    -1,
		Start:         -1,
		End:           -1,
		PaddingBottom: total,
		TotalSize:     total,
	}
}

// Virtualizer maps scroll geometry to a window of rows.
type Virtualizer struct {
	count    int
	estimate EstimateFunc
	overscan int

	// offsets[i] is the start of row i; offsets[count] is the total size.
	offsets []int
	dirty   bool
}

// New creates a Virtualizer for count rows.
func New(count int, opts ...Option) *Virtualizer {
	v := &Virtualizer{
		count:    max(count, 0),
		estimate: func(int) int { return DefaultEstimateSize },
		overscan: DefaultOverscan,
		dirty:    true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetCount changes the row count.
func (v *Virtualizer) SetCount(n int) {
	n = max(n, 0)
	if n == v.count {
		return
	}
	v.count = n
	v.dirty = true
}

// SetEstimateSize replaces the size estimator and discards cached offsets.
func (v *Virtualizer) SetEstimateSize(fn EstimateFunc) {
	if fn == nil {
		return
	}
	v.estimate = fn
	v.dirty = true
}

// SetOverscan changes the overscan margin.
func (v *Virtualizer) SetOverscan(n int) {
	v.overscan = max(n, 0)
}

// Invalidate discards cached offsets, e.g. after row sizes changed.
func (v *Virtualizer) Invalidate() {
	v.dirty = true
}

// Count returns the row count.
func (v *Virtualizer) Count() int {
	return v.count
}

// Overscan returns the overscan margin.
func (v *Virtualizer) Overscan() int {
	return v.overscan
}

// measure rebuilds the prefix sums when inputs changed.
func (v *Virtualizer) measure() {
	if !v.dirty {
		return
	}
	offsets := make([]int, v.count+1)
	for i := range v.count {
		offsets[i+1] = offsets[i] + max(v.estimate(i), minItemSize)
	}
	v.offsets = offsets
	v.dirty = false
}

// TotalSize returns the combined size of all rows.
func (v *Virtualizer) TotalSize() int {
	v.measure()
	return v.offsets[v.count]
}

// Offset returns the start of row i, clamped to the valid range.
func (v *Virtualizer) Offset(i int) int {
	v.measure()
	if v.count == 0 {
		return 0
	}
	return v.offsets[clamp(i, 0, v.count-1)]
}

// Size returns the size of row i, or 0 when out of range.
func (v *Virtualizer) Size(i int) int {
	v.measure()
	if i < 0 || i >= v.count {
		return 0
	}
	return v.offsets[i+1] - v.offsets[i]
}

// IndexAt returns the row containing offset, clamped to the valid range,
// or -1 when there are no rows.
func (v *Virtualizer) IndexAt(offset int) int {
	v.measure()
	if v.count == 0 {
		return -1
	}
	// First row whose end is past offset.
	i := sort.Search(v.count, func(i int) bool { return v.offsets[i+1] > offset })
	return clamp(i, 0, v.count-1)
}

// Window returns the rows to render for a viewport of height at scrollTop.
// A non-positive height is treated as geometry that is not available yet and
// yields an empty window.
func (v *Virtualizer) Window(scrollTop, height int) Window {
	v.measure()
	total := v.offsets[v.count]
	if v.count == 0 || height <= 0 {
		return emptyWindow(total)
	}

	scrollTop = clamp(scrollTop, 0, max(total-height, 0))
	bottom := scrollTop + height

	visStart := v.IndexAt(scrollTop)
	// First row whose end reaches the bottom edge of the viewport.
	visEnd := sort.Search(v.count, func(i int) bool { return v.offsets[i+1] >= bottom })
	visEnd = clamp(visEnd, visStart, v.count-1)

	start := max(visStart-v.overscan, 0)
	end := min(visEnd+v.overscan, v.count-1)

	items := make([]Item, 0, end-start+1)
	for i := start; i <= end; i++ {
		items = append(items, Item{
			Index: i,
			Start: v.offsets[i],
			Size:  v.offsets[i+1] - v.offsets[i],
		})
	}

	return Window{
		Items:         items,
		VisibleStart:  visStart,
		VisibleEnd:    visEnd,
		Start:         start,
		End:           end,
		PaddingTop:    v.offsets[start],
		PaddingBottom: total - v.offsets[end+1],
		TotalSize:     total,
	}
}

// ScrollToIndex returns the smallest scroll adjustment from scrollTop that brings
// row i fully into a viewport of height. Rows taller than the viewport align to
// their top edge.
func (v *Virtualizer) ScrollToIndex(i, scrollTop, height int) int {
	v.measure()
	if v.count == 0 || height <= 0 {
		return max(scrollTop, 0)
	}

	i = clamp(i, 0, v.count-1)
	start, end := v.offsets[i], v.offsets[i+1]

	switch {
	case start < scrollTop:
		return start
	case end > scrollTop+height:
		return min(start, end-height)
	default:
		return scrollTop
	}
}

// MaxScroll returns the largest meaningful scroll offset for height.
func (v *Virtualizer) MaxScroll(height int) int {
	return max(v.TotalSize()-max(height, 0), 0)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
