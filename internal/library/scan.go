package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rshade/sift/internal/files"
)

// Scan errors.
var (
	ErrPathNotFound = errors.New("path not found")
	ErrNotDirectory = errors.New("not a directory")
)

// ScanOptions controls Scan.
type ScanOptions struct {
	// ShowHidden includes dotfiles.
	ShowHidden bool
	Logger     zerolog.Logger
}

// Scan lists one level of root as entries in directory order. Entries that
// vanish while being listed are skipped.
func Scan(ctx context.Context, root string, opts ScanOptions) ([]files.Entry, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, abs)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	children, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}

	entries := make([]files.Entry, 0, len(children))
	for _, child := range children {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		e, ok := entryFor(abs, child, opts.Logger)
		if !ok {
			continue
		}
		if e.Hidden() && !opts.ShowHidden {
			continue
		}
		entries = append(entries, e)
	}

	opts.Logger.Debug().
		Str("root", abs).
		Int("entries", len(entries)).
		Int("skipped", len(children)-len(entries)).
		Msg("directory scanned")
	return entries, nil
}

func entryFor(dir string, child os.DirEntry, logger zerolog.Logger) (files.Entry, bool) {
	path := filepath.Join(dir, child.Name())

	info, err := child.Info()
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
		return files.Entry{}, false
	}

	// Follow symlinks so a link to a directory lists as a folder.
	if info.Mode()&os.ModeSymlink != 0 {
		if target, statErr := os.Stat(path); statErr == nil {
			info = target
		}
	}

	size := info.Size()
	if info.IsDir() {
		size = 0
	}
	// Portable birth times are unavailable; modification time stands in.
	return files.NewEntry(path, info.IsDir(), size, info.ModTime(), info.ModTime()), true
}
