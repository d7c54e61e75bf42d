// Package files defines the file entry row type browsed by sift and its column set.
package files

import (
	"path/filepath"
	"strings"
	"time"
)

// Entry is one file or directory shown in the list.
type Entry struct {
	Path string
	// Name is the base name without the extension.
	Name string
	// Extension is the lowercase extension without the leading dot.
	Extension string
	IsDir     bool
	Size      int64
	Created   time.Time
	Modified  time.Time
	// ContentID is the sampled content hash, empty until identified.
	ContentID string
	Kind      Kind
}

// NewEntry builds an Entry for path, splitting the name and classifying its kind.
func NewEntry(path string, isDir bool, size int64, created, modified time.Time) Entry {
	base := filepath.Base(path)
	name, ext := base, ""
	if !isDir {
		if dot := strings.LastIndexByte(base, '.'); dot > 0 {
			name, ext = base[:dot], strings.ToLower(base[dot+1:])
		}
	}

	e := Entry{
		Path:      path,
		Name:      name,
		Extension: ext,
		IsDir:     isDir,
		Size:      size,
		Created:   created,
		Modified:  modified,
	}
	e.Kind = Classify(e)
	return e
}

// Key identifies the entry across rescans.
func (e Entry) Key() string {
	return e.Path
}

// FileName returns the name with its extension.
func (e Entry) FileName() string {
	if e.Extension == "" {
		return e.Name
	}
	return e.Name + "." + e.Extension
}

// Hidden reports whether the entry is a dotfile.
func (e Entry) Hidden() bool {
	return strings.HasPrefix(filepath.Base(e.Path), ".")
}
