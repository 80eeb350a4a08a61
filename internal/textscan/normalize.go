// Package textscan holds the line-level machinery shared by every section of
// an instrument report: the text normalizer, the line classifier, the chunk
// splitter and the forward-only stream cursor.
package textscan

import (
	"regexp"
	"strings"
)

const emptyQuoted = `""`

var (
	trailingCommaRe = regexp.MustCompile(`,+(\r*\n|$)`)
	separatorRe     = regexp.MustCompile(`\r*\n(?:\r*\n)+`)
)

// Normalize removes every empty-quoted token and then strips runs of commas
// that end a line, keeping the line terminator. Stripping repeats until no
// line ends in a comma, so a lone "\r" between comma runs cannot leave one
// behind. Normalize is idempotent.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, emptyQuoted, "")
	for {
		stripped := trailingCommaRe.ReplaceAllString(text, "$1")
		if stripped == text {
			return text
		}
		text = stripped
	}
}

// SplitChunks normalizes text and splits it on runs of two or more line
// terminators. Here and in Normalize, stray carriage returns before a "\n"
// belong to the line terminator. Chunks that are empty or whitespace-only
// are dropped.
func SplitChunks(text string) []string {
	parts := separatorRe.Split(Normalize(text), -1)
	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		chunks = append(chunks, p)
	}
	return chunks
}
