package regex

import (
	"fmt"
	"sort"
	"strings"
)

// key returns an injective structural encoding of a tree, used for
// discovered-set membership. The display rendering is not usable here:
// it collides across variants (Lit('.') vs Dot, Lit('ε') vs Eps), so
// identity gets its own variant-tagged encoding.
func key(e Expr) string {
	var b strings.Builder
	writeKey(&b, e)
	return b.String()
}

func writeKey(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case Lit:
		fmt.Fprintf(b, "lit<%U>", n.Ch)
	case Empty:
		b.WriteString("empty")
	case Eps:
		b.WriteString("eps")
	case Cat:
		b.WriteString("cat<")
		writeKey(b, n.L)
		b.WriteByte(' ')
		writeKey(b, n.R)
		b.WriteByte('>')
	case Alt:
		b.WriteString("alt<")
		writeKey(b, n.L)
		b.WriteByte(' ')
		writeKey(b, n.R)
		b.WriteByte('>')
	case Star:
		fmt.Fprintf(b, "star%t<", n.Greedy)
		writeKey(b, n.Sub)
		b.WriteByte('>')
	case Plus:
		fmt.Fprintf(b, "plus%t<", n.Greedy)
		writeKey(b, n.Sub)
		b.WriteByte('>')
	case Opt:
		fmt.Fprintf(b, "opt%t<", n.Greedy)
		writeKey(b, n.Sub)
		b.WriteByte('>')
	case Dot:
		b.WriteString("dot")
	case Class:
		fmt.Fprintf(b, "class%t<", n.Positive)
		for _, it := range n.Items {
			fmt.Fprintf(b, "%U", it.Lo)
			if it.Range {
				fmt.Fprintf(b, "-%U", it.Hi)
			}
			b.WriteByte(' ')
		}
		b.WriteByte('>')
	}
}

// Alphabet collects every concrete symbol appearing in literals and
// character-class elements of the tree, ascending. Dot contributes
// nothing: the state space is only explored over symbols that literally
// occur in the expression.
func Alphabet(e Expr) []rune {
	set := map[rune]struct{}{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case Lit:
			set[n.Ch] = struct{}{}
		case Class:
			for _, it := range n.Items {
				for _, r := range it.Set() {
					set[r] = struct{}{}
				}
			}
		case Cat:
			walk(n.L)
			walk(n.R)
		case Alt:
			walk(n.L)
			walk(n.R)
		case Star:
			walk(n.Sub)
		case Plus:
			walk(n.Sub)
		case Opt:
			walk(n.Sub)
		}
	}
	walk(e)

	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StateSpace is the reachable derivative space of one root expression.
// States carry dense ids in discovery order; States[0] is the root. For
// each alphabet symbol, Morphs[sym][id] is the ordered list of successor
// ids reached by the nondeterministic derivative of state id on sym —
// duplicates across branches preserved, completed (Absent) branches
// omitted, hard failure an empty list. Every morph is total over States.
type StateSpace struct {
	Alphabet []rune
	States   []Expr
	Morphs   map[rune][][]int
}

// Explore discovers every structurally distinct derivative reachable
// from root over its own alphabet and records the per-symbol transition
// relation. Discovered-set membership is structural identity, via the
// variant-tagged key above. Exploration is unbounded: the
// reachable-state count is exactly what downstream analysis measures.
func Explore(root Expr) *StateSpace {
	ss, _ := ExploreBounded(root, 0)
	return ss
}

// ExploreBounded is Explore with a caller-imposed cap on discovered
// states (0 means no cap). On overflow it returns the partial space and
// an error.
func ExploreBounded(root Expr, maxStates int) (*StateSpace, error) {
	alpha := Alphabet(root)
	ss := &StateSpace{
		Alphabet: alpha,
		States:   []Expr{root},
		Morphs:   make(map[rune][][]int, len(alpha)),
	}

	ids := map[string]int{key(root): 0}
	queue := []int{0}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t := ss.States[cur]

		for _, sym := range alpha {
			var succ []int
			for _, b := range Derive(t, sym, Multi).Branches() {
				if b == nil {
					// Completed match, not a transition.
					continue
				}
				k := key(b)
				id, seen := ids[k]
				if !seen {
					id = len(ss.States)
					ids[k] = id
					ss.States = append(ss.States, b)
					queue = append(queue, id)
				}
				succ = append(succ, id)
			}
			// The FIFO queue pops ids in discovery order, so this
			// append lands at index cur.
			ss.Morphs[sym] = append(ss.Morphs[sym], succ)
		}

		if maxStates > 0 && len(ss.States) > maxStates {
			return ss, fmt.Errorf("state space exceeds %d states", maxStates)
		}
	}
	return ss, nil
}

// State returns the expression with the given id.
func (s *StateSpace) State(id int) Expr { return s.States[id] }

// Successors returns the recorded successor ids of state id on sym.
func (s *StateSpace) Successors(sym rune, id int) []int {
	m, ok := s.Morphs[sym]
	if !ok || id >= len(m) {
		return nil
	}
	return m[id]
}
