package analysis

import (
	"fmt"
	"io"

	"redoscan/regex"
)

// ExportDOT prints a Graphviz representation of the explored state
// space to w. States are labeled with their rendered expression, edges
// with the consumed symbol.
func ExportDOT(w io.Writer, ss *regex.StateSpace) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")

	for id, st := range ss.States {
		fmt.Fprintf(w, "    q%d [shape=circle,label=%q];\n", id, regex.Render(st))
	}
	fmt.Fprintln(w, "    _start [shape=point]; _start -> q0;")

	for _, sym := range ss.Alphabet {
		for src := range ss.States {
			for _, dst := range ss.Successors(sym, src) {
				fmt.Fprintf(w, "    q%d -> q%d [label=%q];\n", src, dst, string(sym))
			}
		}
	}

	fmt.Fprintln(w, "}")
}
