// Package selection holds the explorer selection store and keyboard navigation.
//
// The Store is injected rather than global so several list views can run side by
// side and tests can substitute fakes. The Navigator re-reads the store before every
// decision because other parts of the UI may write to it between events.
package selection
