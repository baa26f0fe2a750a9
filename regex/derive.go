package regex

// Result is the outcome of deriving one tree on one symbol under some
// Mode: an ordered list of alternative branches. A nil branch marks a
// completed match with no residual obligation (the expression denoted
// exactly the consumed symbol's remainder of nothing); it is distinct
// from hard failure, which is the absence of any branch at all.
type Result struct {
	branches []Expr
}

// Branches flattens the result into its ordered concrete alternatives.
func (r Result) Branches() []Expr { return r.branches }

// Failed reports hard failure: the symbol cannot be consumed at all.
func (r Result) Failed() bool { return len(r.branches) == 0 }

// Mode is the result-effect the derivative recursion is generic over:
// unit produces one deterministic branch, Zero is hard failure, and
// Combine merges alternatives with first-alternative priority. The same
// recursion serves canonical single-branch derivation and exhaustive
// nondeterministic enumeration depending on the mode passed in.
type Mode interface {
	Unit(branch Expr) Result
	Zero() Result
	Combine(a, b Result) Result
}

// Single keeps only the first successful alternative. Branch order in
// Combine decides which match a greedy-vs-lazy matcher would report as
// canonical.
var Single Mode = singleMode{}

// Multi enumerates every alternative in priority order. The explorer
// needs this to surface all ambiguous continuations.
var Multi Mode = multiMode{}

type singleMode struct{}

func (singleMode) Unit(branch Expr) Result { return Result{branches: []Expr{branch}} }
func (singleMode) Zero() Result { return Result{} }

func (singleMode) Combine(a, b Result) Result {
	if !a.Failed() {
		return a
	}
	return b
}

type multiMode struct{}

func (multiMode) Unit(branch Expr) Result { return Result{branches: []Expr{branch}} }
func (multiMode) Zero() Result { return Result{} }

func (multiMode) Combine(a, b Result) Result {
	if a.Failed() {
		return b
	}
	if b.Failed() {
		return a
	}
	out := make([]Expr, 0, len(a.branches)+len(b.branches))
	out = append(out, a.branches...)
	out = append(out, b.branches...)
	return Result{branches: out}
}

// Derive computes the symbolic derivative of t with respect to sym: what
// remains to be matched after consuming sym. Residuals are always fresh
// values; t is never mutated.
func Derive(t Expr, sym rune, m Mode) Result {
	switch n := t.(type) {
	case Lit:
		if n.Ch == sym {
			return m.Unit(Eps{})
		}
		return m.Zero()

	case Empty:
		return m.Unit(Empty{})

	case Eps:
		return m.Unit(nil)

	case Cat:
		out := m.Zero()
		for _, b := range Derive(n.L, sym, m).Branches() {
			switch {
			case b == nil:
				// r1 is already satisfied, the symbol lands on r2.
				out = m.Combine(out, Derive(n.R, sym, m))
			case isEps(b):
				out = m.Combine(out, m.Unit(n.R))
			default:
				out = m.Combine(out, m.Unit(Cat{L: b, R: n.R}))
			}
		}
		return out

	case Alt:
		return m.Combine(Derive(n.L, sym, m), Derive(n.R, sym, m))

	case Star:
		loop := deriveLoop(n.Sub, sym, m, n)
		if n.Greedy {
			return m.Combine(loop, m.Unit(nil))
		}
		return m.Combine(m.Unit(nil), loop)

	case Plus:
		star := Star{Sub: n.Sub, Greedy: n.Greedy}
		res := deriveLoop(n.Sub, sym, m, star)
		if res.Failed() {
			// First iteration consumed nothing, fall back to the
			// star encoding of the remainder.
			return Derive(star, sym, m)
		}
		return res

	case Opt:
		if n.Greedy {
			return m.Combine(Derive(n.Sub, sym, m), m.Unit(nil))
		}
		return m.Combine(m.Unit(nil), Derive(n.Sub, sym, m))

	case Dot:
		return m.Unit(Eps{})

	case Class:
		if n.Matches(sym) {
			return m.Unit(Eps{})
		}
		return m.Zero()
	}
	return m.Zero()
}

// deriveLoop derives one unrolling of a repetition body and reattaches
// the remaining star obligation to every surviving branch. The ε·r and
// r·ε collapses here are what keep the residual space finite.
func deriveLoop(sub Expr, sym rune, m Mode, star Star) Result {
	out := m.Zero()
	for _, b := range Derive(sub, sym, m).Branches() {
		switch {
		case b == nil:
			out = m.Combine(out, m.Unit(nil))
		case isEps(b):
			out = m.Combine(out, m.Unit(star))
		default:
			out = m.Combine(out, m.Unit(Cat{L: b, R: star}))
		}
	}
	return out
}

func isEps(e Expr) bool {
	_, ok := e.(Eps)
	return ok
}
