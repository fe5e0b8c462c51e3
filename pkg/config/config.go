// File: pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the scan root when no config path is given.
const DefaultFileName = "repochunk.yaml"

// Defaults applied by Default.
const (
	DefaultMaxChunkSize   = 10 * 1024 * 1024 // 10MB in bytes mode
	DefaultMaxChunkLines  = 20000
	DefaultMaxChunkTokens = 128000
	DefaultEncoding       = "utf-8"
	DefaultOutputDir      = "repochunk-output" // created under os.TempDir()
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// SizeMode selects how chunk capacity is measured.
type SizeMode string

const (
	SizeBytes  SizeMode = "bytes"
	SizeLines  SizeMode = "lines"
	SizeTokens SizeMode = "tokens"
)

// BinaryMode decides how user extensions combine with the built-in list.
type BinaryMode string

const (
	// BinaryReplace uses only the user list when it is non-empty.
	BinaryReplace BinaryMode = "replace"
	// BinaryExtend adds the user list to the built-in defaults.
	BinaryExtend BinaryMode = "extend"
)

// Config holds the resolved options for one serialization run.
type Config struct {
	OutputDir            string     `yaml:"output_dir"`             // Destination for chunk files.
	BinaryExtensions     []string   `yaml:"binary_extensions"`      // Extensions treated as binary.
	BinaryExtensionsMode BinaryMode `yaml:"binary_extensions_mode"` // replace or extend.
	MaxChunkSize         int        `yaml:"-"`                      // Capacity per chunk, in SizeMode units.
	MaxSize              string     `yaml:"max_size"`               // Raw capacity from the file, e.g. "10MB".
	SizeMode             SizeMode   `yaml:"size_mode"`              // bytes, lines or tokens.
	Encoding             string     `yaml:"encoding"`               // Expected text encoding.
	IgnorePatterns       []string   `yaml:"ignore_patterns"`        // Gitignore-style patterns.
	GlobalIgnoreFile     string     `yaml:"global_ignore_file"`     // Optional extra ignore file.
	MaxFileSizeKB        int        `yaml:"max_file_size_kb"`       // Larger files are skipped; 0 disables.
	MaxWorkers           int        `yaml:"max_workers"`            // Loader concurrency; <=1 is sequential.
}

// Default returns the configuration used when none is supplied.
func Default() *Config {
	return &Config{
		BinaryExtensionsMode: BinaryReplace,
		MaxChunkSize:         DefaultMaxChunkSize,
		SizeMode:             SizeBytes,
		Encoding:             DefaultEncoding,
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.MaxSize == "" {
		cfg.MaxChunkSize = DefaultMaxChunkSizeFor(cfg.SizeMode)
	} else {
		size, err := ParseSize(cfg.MaxSize, cfg.SizeMode)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.MaxChunkSize = size
	}

	return cfg, nil
}

// LoadOptional loads path when it exists and falls back to Default otherwise.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}
	return Load(path)
}

// Clone returns a deep copy so a run never mutates the caller's config.
func (c *Config) Clone() *Config {
	cp := *c
	cp.BinaryExtensions = append([]string(nil), c.BinaryExtensions...)
	cp.IgnorePatterns = append([]string(nil), c.IgnorePatterns...)
	return &cp
}

// Validate normalizes the configuration and rejects unusable values.
func (c *Config) Validate() error {
	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("%w: max chunk size must be positive, got %d", ErrInvalid, c.MaxChunkSize)
	}

	switch c.SizeMode {
	case "":
		c.SizeMode = SizeBytes
	case SizeBytes, SizeLines, SizeTokens:
	default:
		return fmt.Errorf("%w: unknown size mode %q", ErrInvalid, c.SizeMode)
	}

	switch c.BinaryExtensionsMode {
	case "":
		c.BinaryExtensionsMode = BinaryReplace
	case BinaryReplace, BinaryExtend:
	default:
		return fmt.Errorf("%w: unknown binary extensions mode %q", ErrInvalid, c.BinaryExtensionsMode)
	}

	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if c.MaxFileSizeKB < 0 {
		return fmt.Errorf("%w: max file size must not be negative", ErrInvalid)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("%w: max workers must not be negative", ErrInvalid)
	}

	for i, ext := range c.BinaryExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			return fmt.Errorf("%w: empty binary extension at position %d", ErrInvalid, i)
		}
		c.BinaryExtensions[i] = ext
	}
	return nil
}

// ResolvedOutputDir returns OutputDir or the default temp location.
func (c *Config) ResolvedOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(os.TempDir(), DefaultOutputDir)
}

// DefaultMaxChunkSizeFor returns the default capacity for a size mode.
func DefaultMaxChunkSizeFor(mode SizeMode) int {
	switch mode {
	case SizeLines:
		return DefaultMaxChunkLines
	case SizeTokens:
		return DefaultMaxChunkTokens
	default:
		return DefaultMaxChunkSize
	}
}

// ParseSize converts a capacity string into a count. In bytes mode the
// suffixes K, KB, M, MB, G and GB are accepted (powers of 1024); other modes
// take a plain integer.
func ParseSize(s string, mode SizeMode) (int, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return 0, fmt.Errorf("%w: empty size", ErrInvalid)
	}

	multiplier := 1
	if mode == SizeBytes || mode == "" {
		for _, unit := range []struct {
			suffix string
			mult   int
		}{
			{"KB", 1 << 10}, {"MB", 1 << 20}, {"GB", 1 << 30},
			{"K", 1 << 10}, {"M", 1 << 20}, {"G", 1 << 30},
			{"B", 1},
		} {
			if strings.HasSuffix(raw, unit.suffix) {
				raw = strings.TrimSpace(strings.TrimSuffix(raw, unit.suffix))
				multiplier = unit.mult
				break
			}
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q", ErrInvalid, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: size must be positive, got %q", ErrInvalid, s)
	}
	return n * multiplier, nil
}
