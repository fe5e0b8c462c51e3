// File: pkg/chunker/lister.go
package chunker

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"repochunk/pkg/ignore"
)

// ListOptions controls which candidates ListFiles yields.
type ListOptions struct {
	Ignore        *ignore.Matcher // Optional ignore rules.
	ExcludeDirs   []string        // Absolute directories never descended into.
	MaxFileSizeKB int             // Larger files are skipped; 0 disables.
}

// ListFiles walks root and returns regular files as root-relative slash
// paths in walk order, which is lexical within each directory. Errors below
// the root are logged and skipped.
func ListFiles(root string, opts ListOptions, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	excluded := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, dir := range opts.ExcludeDirs {
		excluded[filepath.Clean(dir)] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}

		if path == root {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if _, skip := excluded[filepath.Clean(path)]; skip || d.Name() == ".git" {
				logger.Debug("Skipping excluded directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			if opts.Ignore != nil && opts.Ignore.MatchesPath(relPath, true) {
				logger.Debug("Skipping ignored directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			logger.Debug("Skipping non-regular file", zap.String("path", relPath))
			return nil
		}
		if opts.Ignore != nil && opts.Ignore.MatchesPath(relPath, false) {
			logger.Debug("Skipping ignored file", zap.String("path", relPath))
			return nil
		}

		if opts.MaxFileSizeKB > 0 {
			info, err := d.Info()
			if err != nil {
				logger.Warn("Failed to get file info during traversal", zap.String("path", relPath), zap.Error(err))
				return nil
			}
			if info.Size() > int64(opts.MaxFileSizeKB)*1024 {
				logger.Debug("Skipping file due to size limit",
					zap.String("path", relPath),
					zap.Int64("sizeBytes", info.Size()),
					zap.Int("maxSizeKB", opts.MaxFileSizeKB))
				return nil
			}
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	logger.Debug("Completed file traversal", zap.Int("files", len(files)))
	return files, nil
}
