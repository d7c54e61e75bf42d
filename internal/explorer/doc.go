// Package explorer assembles the headless list view used by the file browser.
//
// A ListView wires a table core, a virtualizer, the column sizing controller and
// a selection navigator together. Hosts feed it viewport sizes, scroll offsets,
// row replacements and input events, and pull header cells and windowed rows to
// draw. It holds no rendering state of its own beyond the scroll offset.
package explorer
