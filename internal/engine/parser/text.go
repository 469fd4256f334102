package parser

import (
	"strconv"
	"strings"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines splits content into physical lines, accepting \r\n, \n and
// bare \r line endings. A single trailing line break does not produce an
// extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := lineBreaks.Replace(content)
	normalized = strings.TrimSuffix(normalized, "\n")
	return strings.Split(normalized, "\n")
}

// ParseNumber converts a captured number to an int. Empty or
// non-numeric input yields NoPosition.
func ParseNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return NoPosition
	}
	return n
}
