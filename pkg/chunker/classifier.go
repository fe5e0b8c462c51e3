// File: pkg/chunker/classifier.go
package chunker

import (
	"path"
	"strings"

	"repochunk/pkg/config"
)

// DefaultBinaryExtensions lists formats that are never useful as text.
var DefaultBinaryExtensions = []string{
	// images
	"jpg", "jpeg", "png", "gif", "bmp", "ico", "webp", "tif", "tiff", "psd", "heic", "avif", "icns",
	// audio
	"mp3", "wav", "ogg", "flac", "aac", "m4a", "wma", "opus",
	// video
	"mp4", "avi", "mov", "mkv", "wmv", "flv", "webm", "m4v", "mpg", "mpeg",
	// archives
	"zip", "tar", "gz", "tgz", "bz2", "xz", "7z", "rar", "zst", "lz4", "jar", "war",
	// executables and objects
	"exe", "dll", "so", "dylib", "bin", "o", "a", "lib", "obj", "class", "pyc", "pyo", "wasm",
	// documents
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods",
	// fonts
	"ttf", "otf", "woff", "woff2", "eot",
	// disk images and databases
	"iso", "dmg", "img", "sqlite", "db",
}

// ExtensionSet is an effective set of lower-case binary extensions.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds the effective set. A non-empty user list replaces
// the defaults in BinaryReplace mode and is added to them in BinaryExtend mode.
func NewExtensionSet(user []string, mode config.BinaryMode) ExtensionSet {
	set := make(ExtensionSet, len(DefaultBinaryExtensions)+len(user))
	if len(user) == 0 || mode == config.BinaryExtend {
		for _, ext := range DefaultBinaryExtensions {
			set[ext] = struct{}{}
		}
	}
	for _, ext := range user {
		set[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return set
}

// IsBinary reports whether the file's extension is in the set. Files with no
// extension are text.
func IsBinary(filePath string, set ExtensionSet) bool {
	ext := extension(filePath)
	if ext == "" {
		return false
	}
	_, ok := set[ext]
	return ok
}

// extension returns the lower-cased text after the last '.' of the base name.
func extension(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, `\`, "/"))
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}
