// Package virtual computes the visible window of a virtualized list.
//
// Given a row count, a per-row size estimate, and the viewport's scroll offset and
// height, a Virtualizer returns only the rows that intersect the viewport plus a
// small overscan margin, together with the padding needed above and below them to
// fake the full list height. Offsets are kept as prefix sums so lookups are
// O(log n) and recomputation is idempotent.
package virtual
