// Package sizing owns interactive column resizing for the list view.
//
// The Controller runs a two-state machine over a table's width state:
//   - Locked: the flexible column absorbs whatever width the viewport leaves after
//     padding, scrollbar and fixed columns
//   - Unlocked: the user resized a fixed column and widths no longer track the
//     viewport until a viewport resize finds them within the snap tolerance
//
// The controller never measures anything itself; the host reports viewport widths,
// including explicit reconciliation requests when a side panel changes the space
// available to the table.
package sizing
