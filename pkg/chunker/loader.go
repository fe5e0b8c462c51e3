// File: pkg/chunker/loader.go
package chunker

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"repochunk/pkg/config"
)

// Loader reads files below a root and decodes them as text.
type Loader struct {
	root    string
	enc     encoding.Encoding
	encName string
}

// NewLoader resolves the encoding by IANA name. Unknown names are a
// configuration error.
func NewLoader(root, encodingName string) (*Loader, error) {
	enc, name := charset.Lookup(encodingName)
	if enc == nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", config.ErrInvalid, encodingName)
	}
	return &Loader{root: root, enc: enc, encName: name}, nil
}

// Load reads relPath (relative to the root) into a TextRecord. Read failures
// and ErrNotText are per-file errors the caller is expected to skip.
func (l *Loader) Load(relPath string) (TextRecord, error) {
	relPath = filepath.ToSlash(relPath)

	fileBytes, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(relPath)))
	if err != nil {
		return TextRecord{}, fmt.Errorf("error reading file %s: %w", relPath, err)
	}

	content, err := l.decode(fileBytes)
	if err != nil {
		return TextRecord{}, fmt.Errorf("%s (%s): %w", relPath, l.encName, err)
	}

	return TextRecord{Path: relPath, Content: content}, nil
}

// decode converts raw bytes to a UTF-8 string. A decoded NUL never
// appears in text, whatever the encoding claims.
func (l *Loader) decode(b []byte) (string, error) {
	out := b
	if l.encName == "utf-8" {
		if !utf8.Valid(b) {
			return "", ErrNotText
		}
	} else {
		decoded, _, err := transform.Bytes(l.enc.NewDecoder(), b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotText, err)
		}
		// Decoders substitute U+FFFD for sequences they cannot map.
		if bytes.Contains(decoded, []byte(string(utf8.RuneError))) {
			return "", ErrNotText
		}
		out = decoded
	}

	if bytes.IndexByte(out, 0) >= 0 {
		return "", ErrNotText
	}
	return string(out), nil
}
