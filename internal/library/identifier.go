package library

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/sift/internal/files"
)

// Sampling parameters for content identifiers.
const (
	// SampleSize is the size of each sampled block.
	SampleSize = 10 * 1024
	// SampleCount is the number of blocks sampled from large files.
	SampleCount = 4
	// MinSampledSize is the size up to which files are hashed whole.
	MinSampledSize = 100 * 1024
)

// ContentReady reports a computed content identifier for the entry at Path.
type ContentReady struct {
	Path      string
	ContentID string
}

// ContentID computes the sampled content identifier of the file at path with
// the given size. Small files are hashed whole; larger files contribute
// SampleCount evenly spaced blocks including the first and last.
func ContentID(path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := xxhash.New()
	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], uint64(size))
	_, _ = h.Write(sizeBuf[:])

	if size <= MinSampledSize {
		if _, err = io.Copy(h, f); err != nil {
			return "", fmt.Errorf("hashing %s: %w", path, err)
		}
		return fmt.Sprintf("%016x", h.Sum64()), nil
	}

	buf := make([]byte, SampleSize)
	span := size - SampleSize
	for i := range int64(SampleCount) {
		offset := span * i / (SampleCount - 1)
		n, readErr := f.ReadAt(buf, offset)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return "", fmt.Errorf("sampling %s at %d: %w", path, offset, readErr)
		}
		_, _ = h.Write(buf[:n])
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Identifier computes content identifiers concurrently.
type Identifier struct {
	concurrency int
	logger      zerolog.Logger
	inflight    singleflight.Group
}

// NewIdentifier creates an Identifier running at most concurrency hashes at
// once; non-positive values use the CPU count.
func NewIdentifier(concurrency int, logger zerolog.Logger) *Identifier {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Identifier{
		concurrency: concurrency,
		logger:      logger.With().Str("component", "identifier").Logger(),
	}
}

// Identify hashes every file entry that has no content identifier yet and calls
// emit for each result. emit may be called from several goroutines at once.
// Files that cannot be read are logged and skipped; only cancellation is
// returned as an error.
func (id *Identifier) Identify(ctx context.Context, entries []files.Entry, emit func(ContentReady)) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(id.concurrency)

	queued := 0
	for _, e := range entries {
		if e.IsDir || e.ContentID != "" {
			continue
		}
		if gCtx.Err() != nil {
			break
		}
		queued++

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			v, err, _ := id.inflight.Do(e.Path, func() (interface{}, error) {
				return ContentID(e.Path, e.Size)
			})
			if err != nil {
				id.logger.Warn().Err(err).Str("path", e.Path).Msg("content identification failed")
				return nil
			}
			cid, _ := v.(string)
			emit(ContentReady{Path: e.Path, ContentID: cid})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	id.logger.Debug().Int("files", queued).Msg("content identification finished")
	return nil
}
