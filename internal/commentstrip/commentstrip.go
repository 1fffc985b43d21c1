// Package commentstrip implements the first pipeline stage: drop
// everything from the first '#' to end of line, before any lexing
// happens. Grounded directly on original_source/wandle/arpeggio_parse.py,
// which does the same pre-transform ahead of handing source to Arpeggio
// because the PEG grammar had no clean way to match "to end of line".
package commentstrip

import "strings"

// Strip removes '#'-to-end-of-line comments from src and right-trims
// trailing whitespace on every line. Deterministic; performs no parsing.
func Strip(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		out[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(out, "\n")
}
