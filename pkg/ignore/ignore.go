package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// FileName is the per-root ignore file.
const FileName = ".repochunkignore"

// IgnorePattern is one compiled gitignore-style rule.
type IgnorePattern struct {
	Glob     string // doublestar glob, relative to the scan root.
	Negate   bool   // Indicates if the pattern is a negation (starts with '!').
	DirOnly  bool   // Pattern ended with '/', so it only matches directories.
	Anchored bool   // Pattern is matched from the root instead of any depth.
	Line     string // Original pattern line.
	LineNo   int    // Line number in the source (1-based).
}

// Matcher represents a collection of ignore patterns. The last matching
// pattern decides, so a later negation re-includes a path.
type Matcher struct {
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// New initializes a Matcher with an optional logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		Patterns: []*IgnorePattern{},
		logger:   logger,
	}
}

// LoadIgnoreFiles loads patterns from the global file first and then the
// local one. Missing files are not an error.
func LoadIgnoreFiles(localPath, globalPath string, logger *zap.Logger) (*Matcher, error) {
	m := New(logger)

	for _, path := range []string{globalPath, localPath} {
		if path == "" {
			continue
		}
		if err := m.CompileIgnoreFile(path); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return m, nil
}

// CompileIgnoreLines compiles pattern lines and appends them to the matcher.
func (m *Matcher) CompileIgnoreLines(lines ...string) {
	for i, line := range lines {
		p := parsePatternLine(line)
		if p == nil {
			continue
		}
		p.LineNo = i + 1
		m.Patterns = append(m.Patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// CompileIgnoreFile reads an ignore file and adds its patterns.
func (m *Matcher) CompileIgnoreFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", fpath))
		} else {
			m.logger.Error("Failed to read ignore file", zap.String("filePath", fpath), zap.Error(err))
		}
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	m.CompileIgnoreLines(lines...)
	m.logger.Debug("Compiled ignore patterns", zap.String("filePath", fpath), zap.Int("lineCount", len(lines)))
	return nil
}

// MatchesPath reports whether a root-relative path is ignored.
func (m *Matcher) MatchesPath(path string, isDir bool) bool {
	matches, _ := m.MatchesPathWithPattern(path, isDir)
	return matches
}

// MatchesPathWithPattern reports whether the path is ignored and returns the
// pattern that decided it.
func (m *Matcher) MatchesPathWithPattern(path string, isDir bool) (bool, *IgnorePattern) {
	normalizedPath := strings.TrimPrefix(filepath.ToSlash(path), "./")
	normalizedPath = strings.TrimSuffix(normalizedPath, "/")
	if normalizedPath == "" || normalizedPath == "." {
		return false, nil
	}

	var matchedPattern *IgnorePattern
	matches := false

	for _, pattern := range m.Patterns {
		if pattern.match(normalizedPath, isDir) {
			matchedPattern = pattern
			matches = !pattern.Negate
		}
	}

	return matches, matchedPattern
}

func (p *IgnorePattern) match(path string, isDir bool) bool {
	globs := []string{p.Glob}
	if !p.Anchored {
		globs = append(globs, "**/"+p.Glob)
	}

	for _, g := range globs {
		if (!p.DirOnly || isDir) && matchGlob(g, path) {
			return true
		}
		// Anything below a matched directory is covered as well.
		if matchGlob(g+"/**", path) {
			return true
		}
	}
	return false
}

func matchGlob(glob, path string) bool {
	ok, err := doublestar.Match(glob, path)
	return err == nil && ok
}

// parsePatternLine turns a line into a pattern. Returns nil for comments,
// blank lines and globs doublestar cannot compile.
func parsePatternLine(line string) *IgnorePattern {
	trimmedLine := strings.TrimSpace(line)

	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil
	}

	p := &IgnorePattern{Line: line}
	if strings.HasPrefix(trimmedLine, "!") {
		p.Negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// Escaped leading '#' or '!'.
	if strings.HasPrefix(trimmedLine, `\#`) || strings.HasPrefix(trimmedLine, `\!`) {
		trimmedLine = trimmedLine[1:]
	}

	if strings.HasSuffix(trimmedLine, "/") {
		p.DirOnly = true
		trimmedLine = strings.TrimRight(trimmedLine, "/")
	}
	if strings.HasPrefix(trimmedLine, "/") {
		p.Anchored = true
		trimmedLine = strings.TrimLeft(trimmedLine, "/")
	} else if strings.Contains(trimmedLine, "/") && !strings.HasPrefix(trimmedLine, "**/") {
		p.Anchored = true
	}

	if trimmedLine == "" || !doublestar.ValidatePattern(trimmedLine) {
		return nil
	}
	p.Glob = trimmedLine
	return p
}
