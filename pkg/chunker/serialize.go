package chunker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"repochunk/pkg/config"
	"repochunk/pkg/ignore"
)

// SerializeRepo writes the text files under root into numbered chunk files.
// A nil cfg means config.Default(). Unreadable and binary files are skipped;
// configuration and output failures abort the run.
func SerializeRepo(root string, cfg *config.Config, logger *zap.Logger) error {
	_, err := Serialize(root, cfg, logger)
	return err
}

// Serialize is SerializeRepo returning a summary of the run.
func Serialize(root string, cfg *config.Config, logger *zap.Logger) (Summary, error) {
	startTime := time.Now()
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	rootDir, err := filepath.Abs(root)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	// WalkDir does not descend into a symlinked root.
	rootDir, err = filepath.EvalSymlinks(rootDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to access root %s: %w", root, err)
	}
	info, err := os.Stat(rootDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to access root %s: %w", rootDir, err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("root %s is not a directory", rootDir)
	}

	outputDir, err := filepath.Abs(cfg.ResolvedOutputDir())
	if err != nil {
		return Summary{}, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	summary := Summary{OutputDir: outputDir}

	logger.Info("Starting serialization",
		zap.String("root", rootDir),
		zap.String("outputDir", outputDir),
		zap.Int("maxChunkSize", cfg.MaxChunkSize),
		zap.String("sizeMode", string(cfg.SizeMode)))

	loader, err := NewLoader(rootDir, cfg.Encoding)
	if err != nil {
		return summary, err
	}

	gi, err := ignore.LoadIgnoreFiles(filepath.Join(rootDir, ignore.FileName), cfg.GlobalIgnoreFile, logger)
	if err != nil {
		logger.Error("Failed to load ignore patterns", zap.Error(err))
		return summary, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	if len(cfg.IgnorePatterns) > 0 {
		gi.CompileIgnoreLines(cfg.IgnorePatterns...)
	}

	writer := NewWriter(outputDir, logger)
	if err := writer.EnsureDir(); err != nil {
		return summary, err
	}
	realOutputDir, err := filepath.EvalSymlinks(outputDir)
	if err != nil {
		return summary, fmt.Errorf("%w: resolve %s: %w", ErrWrite, outputDir, err)
	}

	candidates, err := ListFiles(rootDir, ListOptions{
		Ignore:        gi,
		ExcludeDirs:   []string{realOutputDir},
		MaxFileSizeKB: cfg.MaxFileSizeKB,
	}, logger)
	if err != nil {
		logger.Error("Failed to collect files", zap.Error(err))
		return summary, err
	}
	summary.Listed = len(candidates)

	binarySet := NewExtensionSet(cfg.BinaryExtensions, cfg.BinaryExtensionsMode)
	textPaths := make([]string, 0, len(candidates))
	for _, p := range candidates {
		if IsBinary(p, binarySet) {
			logger.Debug("File has binary extension", zap.String("file", p))
			summary.SkippedBinary++
			continue
		}
		textPaths = append(textPaths, p)
	}

	acc := NewAccumulator(cfg.MaxChunkSize, MetricFor(cfg.SizeMode), writer.Write)
	err = loadInOrder(textPaths, loader, cfg.MaxWorkers, logger, func(res loadResult) error {
		if res.err != nil {
			if errors.Is(res.err, ErrNotText) {
				logger.Debug("Skipping file that is not text", zap.String("file", res.path), zap.Error(res.err))
			} else {
				logger.Warn("Skipping unreadable file", zap.String("file", res.path), zap.Error(res.err))
			}
			summary.SkippedUnreadable++
			return nil
		}
		return acc.Add(res.rec)
	})
	if err == nil {
		err = acc.Flush()
	}
	summary.Included = acc.Written()
	summary.Chunks = acc.Chunks()
	if err != nil {
		logger.Error("Failed to write chunks", zap.Error(err))
		return summary, err
	}

	logger.Info("Serialization completed",
		zap.Int("files", summary.Included),
		zap.Int("skippedBinary", summary.SkippedBinary),
		zap.Int("skippedUnreadable", summary.SkippedUnreadable),
		zap.Int("chunks", summary.Chunks),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}
