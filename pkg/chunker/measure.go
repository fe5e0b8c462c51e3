package chunker

import (
	"strings"

	"repochunk/pkg/config"
)

// EntryHeaderPrefix starts the path line of every rendered entry.
const EntryHeaderPrefix = ">>>> "

// Render serializes a record: path header line, raw content, blank-line
// separator.
func Render(rec TextRecord) string {
	var b strings.Builder
	b.Grow(len(EntryHeaderPrefix) + len(rec.Path) + len(rec.Content) + 3)
	b.WriteString(EntryHeaderPrefix)
	b.WriteString(rec.Path)
	b.WriteByte('\n')
	b.WriteString(rec.Content)
	b.WriteString("\n\n")
	return b.String()
}

// Metric measures a rendered entry in chunk capacity units.
type Metric func(s string) int

// MetricFor returns the metric for a size mode; unknown modes measure bytes.
func MetricFor(mode config.SizeMode) Metric {
	switch mode {
	case config.SizeLines:
		return countLines
	case config.SizeTokens:
		return countTokens
	default:
		return countBytes
	}
}

func countBytes(s string) int { return len(s) }

func countLines(s string) int {
	n := strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// countTokens approximates model tokens with whitespace-separated words.
func countTokens(s string) int {
	return len(strings.Fields(s))
}
