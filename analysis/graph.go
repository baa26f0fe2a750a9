// Package analysis rates the catastrophic-backtracking risk of an
// explored derivative state space. It consumes only the transition
// relation contract exposed by the regex package: per-symbol morphs
// from each discovered state to its ordered successor list.
package analysis

import "redoscan/regex"

// graph is the merged transition multigraph of a state space, with its
// strongly connected components. Component ids come out of Tarjan in
// reverse topological order: an edge between distinct components always
// points at the smaller id.
type graph struct {
	n      int
	adj    [][]int // deduplicated successors across all symbols
	comp   []int   // state -> component id
	comps  int
	cyclic []bool // component contains a cycle (size > 1 or self-loop)
}

func buildGraph(ss *regex.StateSpace) *graph {
	g := &graph{n: len(ss.States)}
	g.adj = make([][]int, g.n)
	selfLoop := make([]bool, g.n)
	for src := 0; src < g.n; src++ {
		seen := map[int]struct{}{}
		for _, sym := range ss.Alphabet {
			for _, dst := range ss.Successors(sym, src) {
				if dst == src {
					selfLoop[src] = true
				}
				if _, ok := seen[dst]; ok {
					continue
				}
				seen[dst] = struct{}{}
				g.adj[src] = append(g.adj[src], dst)
			}
		}
	}

	g.tarjan()

	g.cyclic = make([]bool, g.comps)
	size := make([]int, g.comps)
	for v := 0; v < g.n; v++ {
		size[g.comp[v]]++
	}
	for v := 0; v < g.n; v++ {
		c := g.comp[v]
		if size[c] > 1 || selfLoop[v] {
			g.cyclic[c] = true
		}
	}
	return g
}

func (g *graph) tarjan() {
	const unvisited = -1
	index := make([]int, g.n)
	low := make([]int, g.n)
	onStack := make([]bool, g.n)
	g.comp = make([]int, g.n)
	for i := range index {
		index[i] = unvisited
		g.comp[i] = unvisited
	}

	var stack []int
	next := 0

	var visit func(v int)
	visit = func(v int) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.adj[v] {
			if index[w] == unvisited {
				visit(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] && index[w] < low[v] {
				low[v] = index[w]
			}
		}

		if low[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				g.comp[w] = g.comps
				if w == v {
					break
				}
			}
			g.comps++
		}
	}

	for v := 0; v < g.n; v++ {
		if index[v] == unvisited {
			visit(v)
		}
	}
}
