package tui

import (
	"github.com/rshade/sift/internal/files"
	"github.com/rshade/sift/internal/library"
)

// EntriesLoadedMsg carries the result of listing a directory.
type EntriesLoadedMsg struct {
	Gen     int
	Dir     string
	Entries []files.Entry
	// Select is the path to select once the entries are shown, if any.
	Select string
	Err    error
}

// ContentReadyMsg reports a computed content identifier.
type ContentReadyMsg struct {
	Gen int
	library.ContentReady
}

// identifyDoneMsg follows the last ContentReadyMsg of a load.
type identifyDoneMsg struct {
	Gen int
	Err error
}

// RescanMsg asks for the current directory to be listed again.
type RescanMsg struct {
	Dir string
}

// RenamedMsg reports the outcome of a rename.
type RenamedMsg struct {
	OldPath string
	NewPath string
	Err     error
}
