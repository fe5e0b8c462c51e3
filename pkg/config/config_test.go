package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SizeBytes, cfg.SizeMode)
	assert.Equal(t, BinaryReplace, cfg.BinaryExtensionsMode)
	assert.Equal(t, DefaultMaxChunkSize, cfg.MaxChunkSize)
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultOutputDir), cfg.ResolvedOutputDir())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"zero capacity", func(c *Config) { c.MaxChunkSize = 0 }, true},
		{"unknown size mode", func(c *Config) { c.SizeMode = "pages" }, true},
		{"unknown binary mode", func(c *Config) { c.BinaryExtensionsMode = "merge" }, true},
		{"empty extension", func(c *Config) { c.BinaryExtensions = []string{"dat", " "} }, true},
		{"negative workers", func(c *Config) { c.MaxWorkers = -1 }, true},
		{"negative file size", func(c *Config) { c.MaxFileSizeKB = -5 }, true},
		{"blank modes get defaults", func(c *Config) { c.SizeMode = ""; c.BinaryExtensionsMode = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, SizeBytes, cfg.SizeMode)
			assert.Equal(t, BinaryReplace, cfg.BinaryExtensionsMode)
		})
	}
}

func TestValidateNormalizesExtensions(t *testing.T) {
	cfg := Default()
	cfg.BinaryExtensions = []string{".DAT", "Bin"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"dat", "bin"}, cfg.BinaryExtensions)
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	cfg := Default()
	cfg.BinaryExtensions = []string{".DAT"}
	cp := cfg.Clone()
	require.NoError(t, cp.Validate())
	assert.Equal(t, []string{".DAT"}, cfg.BinaryExtensions)
	assert.Equal(t, []string{"dat"}, cp.BinaryExtensions)
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		mode SizeMode
		want int
		err  bool
	}{
		{"2000", SizeBytes, 2000, false},
		{"128K", SizeBytes, 128 * 1024, false},
		{"10MB", SizeBytes, 10 * 1024 * 1024, false},
		{"1 gb", SizeBytes, 1 << 30, false},
		{"64B", SizeBytes, 64, false},
		{"500", SizeTokens, 500, false},
		{"10MB", SizeLines, 0, true},
		{"abc", SizeBytes, 0, true},
		{"0", SizeBytes, 0, true},
		{"", SizeBytes, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in, tt.mode)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	content := `output_dir: out
binary_extensions: [dat, bin]
binary_extensions_mode: extend
max_size: 4KB
ignore_patterns:
  - "*.log"
max_workers: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, []string{"dat", "bin"}, cfg.BinaryExtensions)
	assert.Equal(t, BinaryExtend, cfg.BinaryExtensionsMode)
	assert.Equal(t, 4096, cfg.MaxChunkSize)
	assert.Equal(t, []string{"*.log"}, cfg.IgnorePatterns)
	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.Equal(t, DefaultEncoding, cfg.Encoding)
}

func TestLoadRejectsBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("max_size: huge\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUsesModeDefaultCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("size_mode: tokens\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SizeTokens, cfg.SizeMode)
	assert.Equal(t, DefaultMaxChunkTokens, cfg.MaxChunkSize)
}
