// Package regex models regular expressions as immutable trees and computes
// their symbolic derivatives: the residual expression left over after one
// input symbol is consumed. Repeatedly deriving over the expression's own
// alphabet yields the reachable state space a backtracking matcher would
// walk, which downstream analysis uses to rate catastrophic-backtracking
// risk.
package regex

import "strings"

// Expr is a node of the expression tree. Trees are immutable; every
// transformation produces a fresh value. Two trees are the same state iff
// they are structurally equal: identical variant and identical children.
type Expr interface {
	String() string
	expr()
}

// Lit matches exactly one symbol.
type Lit struct{ Ch rune }

// Empty matches nothing (the empty language).
type Empty struct{}

// Eps matches only the zero-length string.
type Eps struct{}

// Cat is the ordered sequence r1 r2.
type Cat struct{ L, R Expr }

// Alt is the union r1|r2. Order is preserved for rendering and for
// branch priority in single-result derivation.
type Alt struct{ L, R Expr }

// Star is zero-or-more repetitions of Sub.
type Star struct {
	Sub    Expr
	Greedy bool
}

// Plus is one-or-more repetitions of Sub.
type Plus struct {
	Sub    Expr
	Greedy bool
}

// Opt is zero-or-one occurrence of Sub.
type Opt struct {
	Sub    Expr
	Greedy bool
}

// Dot matches any single symbol. It contributes nothing to the alphabet:
// wildcard transitions are deliberately not enumerated by the explorer.
type Dot struct{}

// ClassItem is one element of a character class: a single char when
// Range is false, otherwise the inclusive range Lo..Hi. A descending
// range (Lo > Hi) denotes the empty set and is kept as written.
type ClassItem struct {
	Lo, Hi rune
	Range  bool
}

// Class matches a symbol whose membership in the union of its items
// equals Positive. The flattened set is computed once at construction.
type Class struct {
	Items    []ClassItem
	Positive bool

	set map[rune]bool
}

// NewClass builds a class and memoizes its flattened character set.
func NewClass(items []ClassItem, positive bool) Class {
	set := make(map[rune]bool)
	for _, it := range items {
		for _, r := range it.Set() {
			set[r] = true
		}
	}
	return Class{Items: items, Positive: positive, set: set}
}

// Set expands the item to its characters, ascending. Empty for a
// descending range.
func (it ClassItem) Set() []rune {
	if !it.Range {
		return []rune{it.Lo}
	}
	var out []rune
	for r := it.Lo; r <= it.Hi; r++ {
		out = append(out, r)
	}
	return out
}

// Matches reports whether the class accepts ch.
func (c Class) Matches(ch rune) bool { return c.set[ch] == c.Positive }

func (Lit) expr() {}
func (Empty) expr() {}
func (Eps) expr() {}
func (Cat) expr() {}
func (Alt) expr() {}
func (Star) expr() {}
func (Plus) expr() {}
func (Opt) expr() {}
func (Dot) expr() {}
func (Class) expr() {}

/* ----------------------------- rendering ------------------------------ */

func (e Lit) String() string { return string(e.Ch) }
func (Empty) String() string { return "∅" }
func (Eps) String() string { return "ε" }
func (e Cat) String() string { return "(" + e.L.String() + e.R.String() + ")" }
func (e Alt) String() string { return "(" + e.L.String() + "|" + e.R.String() + ")" }
func (e Star) String() string { return quantified(e.Sub, "*", e.Greedy) }
func (e Plus) String() string { return quantified(e.Sub, "+", e.Greedy) }
func (e Opt) String() string { return quantified(e.Sub, "?", e.Greedy) }
func (Dot) String() string { return "." }

func (e Class) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if !e.Positive {
		b.WriteByte('^')
	}
	for _, it := range e.Items {
		b.WriteRune(it.Lo)
		if it.Range {
			b.WriteByte('-')
			b.WriteRune(it.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func quantified(sub Expr, op string, greedy bool) string {
	s := "(" + sub.String() + ")" + op
	if !greedy {
		s += "?"
	}
	return s
}

// Render returns the canonical textual form of a tree: a pure function
// of structure, meant for diagnostics. It is not injective across
// variants (a literal '.' renders like the wildcard), so it is not an
// identity key.
func Render(e Expr) string { return e.String() }
