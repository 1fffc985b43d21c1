// Package treedump prints an internal/tree.Node indented by rule name,
// the Go analogue of original_source/wandle/arpeggio_parse.py's
// arpeggio_parse_debug: a debug aid for diagnosing parser issues, wired
// to cmd/wandle's `-tree` flag.
package treedump

import (
	"fmt"
	"io"
	"strings"

	"github.com/wandlelang/wandle/internal/tree"
)

// Print writes n to w, one line per node, each non-terminal's children
// indented four spaces deeper than their parent, terminals shown inline
// as "value".
func Print(w io.Writer, n tree.Node) {
	recurse(w, n, 0)
}

func recurse(w io.Writer, n tree.Node, depth int) {
	indent := strings.Repeat(" ", depth*4)
	if n.RuleName() == "" {
		fmt.Fprintf(w, "%s%q\n", indent, n.Value())
		return
	}
	fmt.Fprintf(w, "%s%s\n", indent, n.RuleName())
	for _, child := range n.Children() {
		recurse(w, child, depth+1)
	}
}
