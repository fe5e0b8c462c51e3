package chunker

import (
	"errors"
	"strings"
)

var (
	// ErrNotText marks a file whose bytes do not decode as text.
	ErrNotText = errors.New("file is not valid text")
	// ErrWrite wraps every output directory or chunk file failure.
	ErrWrite = errors.New("failed to write chunk output")
)

// TextRecord is a loaded text file, keyed by its root-relative slash path.
type TextRecord struct {
	Path    string // Relative path with forward slashes.
	Content string // Decoded file content.
}

// Chunk is one closed output unit. Entries are already rendered.
type Chunk struct {
	Index   int      // Zero-based, contiguous.
	Entries []string // Rendered entries in input order.
	Size    int      // Measured size of all entries.
}

// String concatenates the chunk's entries.
func (c Chunk) String() string {
	return strings.Join(c.Entries, "")
}

// Summary reports what a run did.
type Summary struct {
	OutputDir         string // Absolute output directory.
	Listed            int    // Candidate files produced by the lister.
	Included          int    // Files that made it into a chunk.
	SkippedBinary     int    // Files rejected by extension.
	SkippedUnreadable int    // Files that failed to load or were not text.
	Chunks            int    // Chunk files written.
}
