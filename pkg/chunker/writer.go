// File: pkg/chunker/writer.go
package chunker

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ChunkFileName returns the file name used for a chunk index.
func ChunkFileName(index int) string {
	return fmt.Sprintf("chunk-%d.txt", index)
}

// Writer persists chunks into a single output directory.
type Writer struct {
	dir    string
	logger *zap.Logger
}

// NewWriter creates a writer for dir.
func NewWriter(dir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// EnsureDir creates the output directory and its parents if missing.
func (w *Writer) EnsureDir() error {
	if err := os.MkdirAll(w.dir, os.ModePerm); err != nil {
		w.logger.Error("Failed to create directory", zap.String("path", w.dir), zap.Error(err))
		return fmt.Errorf("%w: create directory %s: %w", ErrWrite, w.dir, err)
	}
	w.logger.Debug("Ensured directory exists", zap.String("path", w.dir))
	return nil
}

// Write stores the chunk as chunk-<index>.txt, replacing any earlier file.
func (w *Writer) Write(c Chunk) error {
	outputPath := filepath.Join(w.dir, ChunkFileName(c.Index))

	outFile, err := os.Create(outputPath)
	if err != nil {
		w.logger.Error("Failed to create chunk file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("%w: create %s: %w", ErrWrite, outputPath, err)
	}

	writer := bufio.NewWriter(outFile)
	for _, entry := range c.Entries {
		if _, err := writer.WriteString(entry); err != nil {
			outFile.Close()
			w.logger.Error("Failed to write chunk content", zap.String("file", outputPath), zap.Error(err))
			return fmt.Errorf("%w: write %s: %w", ErrWrite, outputPath, err)
		}
	}

	if err := writer.Flush(); err != nil {
		outFile.Close()
		w.logger.Error("Failed to flush chunk file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("%w: flush %s: %w", ErrWrite, outputPath, err)
	}
	if err := outFile.Close(); err != nil {
		w.logger.Error("Failed to close chunk file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("%w: close %s: %w", ErrWrite, outputPath, err)
	}

	w.logger.Debug("Wrote chunk",
		zap.String("file", outputPath),
		zap.Int("entries", len(c.Entries)),
		zap.Int("size", c.Size))
	return nil
}
