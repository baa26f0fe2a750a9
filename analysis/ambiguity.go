package analysis

import "redoscan/regex"

// Degree classifies how the number of distinct matching paths a
// backtracking engine must explore grows with input length.
type Degree int

const (
	Linear Degree = iota
	Polynomial
	Exponential
)

func (d Degree) String() string {
	switch d {
	case Linear:
		return "linear"
	case Polynomial:
		return "polynomial"
	case Exponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Report is the result of classifying one state space.
type Report struct {
	Degree Degree

	// PolyDegree is the polynomial exponent when Degree is Polynomial
	// (1 means quadratic runtime for a backtracking matcher).
	PolyDegree int

	// States is the number of discovered derivative states.
	States int

	// Witness is the rendering of an ambiguous state, when one exists.
	Witness string
}

// Dangerous reports whether the pattern has super-linear blow-up.
func (r Report) Dangerous() bool { return r.Degree != Linear }

// Classify rates the growth of a state space's matching-path count.
//
// A state with two same-symbol transitions (branch multiplicity counted)
// that both stay inside its own cyclic component can restart two distinct
// same-length loops, so path count doubles per iteration: exponential.
// Failing that, each state that can either stay in its own cyclic
// component or leave on the same symbol toward a component that still
// reaches a cycle adds one independent choice point; the longest chain
// of such splits is the polynomial exponent. No splits at all means
// linear.
func Classify(ss *regex.StateSpace) Report {
	rep := Report{States: len(ss.States)}
	if len(ss.States) == 0 {
		return rep
	}
	g := buildGraph(ss)

	for src := 0; src < g.n; src++ {
		c := g.comp[src]
		if !g.cyclic[c] {
			continue
		}
		for _, sym := range ss.Alphabet {
			inside := 0
			for _, dst := range ss.Successors(sym, src) {
				if g.comp[dst] == c {
					inside++
				}
			}
			if inside >= 2 {
				rep.Degree = Exponential
				rep.Witness = regex.Render(ss.State(src))
				return rep
			}
		}
	}

	deg, witness := polyDegree(ss, g)
	if deg > 0 {
		rep.Degree = Polynomial
		rep.PolyDegree = deg
		rep.Witness = witness
	}
	return rep
}

// polyDegree computes the longest chain of stay-or-leave splits over the
// condensation. Component ids are in reverse topological order, so one
// ascending pass sees every edge target before its source.
func polyDegree(ss *regex.StateSpace, g *graph) (int, string) {
	// splitTargets[c]: components directly entered by the leave half of
	// a split originating in cyclic component c.
	splitTargets := make([][]int, g.comps)
	splitWitness := make([]string, g.comps)
	for src := 0; src < g.n; src++ {
		c := g.comp[src]
		if !g.cyclic[c] {
			continue
		}
		for _, sym := range ss.Alphabet {
			stays := false
			var leaves []int
			for _, dst := range ss.Successors(sym, src) {
				if g.comp[dst] == c {
					stays = true
				} else {
					leaves = append(leaves, g.comp[dst])
				}
			}
			if stays && len(leaves) > 0 {
				splitTargets[c] = append(splitTargets[c], leaves...)
				if splitWitness[c] == "" {
					splitWitness[c] = regex.Render(ss.State(src))
				}
			}
		}
	}

	// compAdj over distinct components; targets always have smaller ids.
	compAdj := make([][]int, g.comps)
	for v := 0; v < g.n; v++ {
		for _, w := range g.adj[v] {
			if g.comp[v] != g.comp[w] {
				compAdj[g.comp[v]] = append(compAdj[g.comp[v]], g.comp[w])
			}
		}
	}

	// A split only multiplies work if the leave half can reach another
	// cycle to pump; a*a is harmless, a*a* is not.
	canPump := make([]bool, g.comps)
	splits := make([]int, g.comps)    // longest split chain starting at c
	chainBest := make([]int, g.comps) // max splits over c and everything below it
	best, witness := 0, ""
	for c := 0; c < g.comps; c++ {
		canPump[c] = g.cyclic[c]
		for _, d := range compAdj[c] {
			if canPump[d] {
				canPump[c] = true
			}
		}
		pumpable := false
		deepest := 0
		for _, d := range splitTargets[c] {
			if !canPump[d] {
				continue
			}
			pumpable = true
			if chainBest[d] > deepest {
				deepest = chainBest[d]
			}
		}
		if pumpable {
			splits[c] = 1 + deepest
		}
		chainBest[c] = splits[c]
		for _, d := range compAdj[c] {
			if chainBest[d] > chainBest[c] {
				chainBest[c] = chainBest[d]
			}
		}
		if splits[c] > best {
			best = splits[c]
			witness = splitWitness[c]
		}
	}
	return best, witness
}
