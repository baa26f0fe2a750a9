package regex

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Textual pattern grammar. Alternation binds loosest, then implicit
// concatenation, then quantifiers; a quantifier followed by '?' is the
// lazy form. Groups carry no capture semantics here.

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escaped", Pattern: `\\.`},
	{Name: "Meta", Pattern: `[-|*+?()\[\]^.]`},
	{Name: "Char", Pattern: `[^\\]`},
})

type pattern struct {
	Alt *altExpr `parser:"@@?"`
}

type altExpr struct {
	First *catExpr   `parser:"@@"`
	Rest  []*catExpr `parser:"( '|' @@ )*"`
}

type catExpr struct {
	Terms []*repExpr `parser:"@@+"`
}

type repExpr struct {
	Atom *atomExpr `parser:"@@"`
	Ops  []string  `parser:"@( '*' | '+' | '?' )*"`
}

type atomExpr struct {
	Group *altExpr   `parser:"'(' @@ ')'"`
	Class *classExpr `parser:"| @@"`
	Any   bool       `parser:"| @'.'"`
	Ch    string     `parser:"| @Escaped | @Char | @'-' | @'^'"`
}

type classExpr struct {
	Neg   bool         `parser:"'[' @'^'?"`
	Items []*classItem `parser:"@@+ ']'"`
}

// The range tail is guarded by a lookahead so that a trailing dash, as
// in [a-], stays a literal item instead of failing as a half range.
type classItem struct {
	Lo string  `parser:"@( Char | Escaped | '.' | '*' | '+' | '?' | '(' | ')' | '|' | '^' | '-' )"`
	Hi *string `parser:"( (?= '-' (!']') ) '-' @( Char | Escaped | '.' | '*' | '+' | '?' | '(' | ')' | '|' | '^' ) )?"`
}

var patternParser = participle.MustBuild[pattern](
	participle.Lexer(patternLexer),
	participle.UseLookahead(2),
)

// Parse converts a textual regular expression into its tree form. An
// empty pattern parses to ε.
func Parse(src string) (Expr, error) {
	p, err := patternParser.ParseString("pattern", src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	return p.toExpr(), nil
}

// MustParse is Parse that panics on malformed patterns.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *pattern) toExpr() Expr {
	if p.Alt == nil {
		return Eps{}
	}
	return p.Alt.toExpr()
}

func (a *altExpr) toExpr() Expr {
	e := a.First.toExpr()
	for _, r := range a.Rest {
		e = Alt{L: e, R: r.toExpr()}
	}
	return e
}

func (c *catExpr) toExpr() Expr {
	e := c.Terms[len(c.Terms)-1].toExpr()
	for i := len(c.Terms) - 2; i >= 0; i-- {
		e = Cat{L: c.Terms[i].toExpr(), R: e}
	}
	return e
}

func (r *repExpr) toExpr() Expr {
	e := r.Atom.toExpr()
	for i := 0; i < len(r.Ops); {
		greedy := true
		if i+1 < len(r.Ops) && r.Ops[i+1] == "?" {
			greedy = false
		}
		switch r.Ops[i] {
		case "*":
			e = Star{Sub: e, Greedy: greedy}
		case "+":
			e = Plus{Sub: e, Greedy: greedy}
		case "?":
			e = Opt{Sub: e, Greedy: greedy}
		}
		if greedy {
			i++
		} else {
			i += 2
		}
	}
	return e
}

func (a *atomExpr) toExpr() Expr {
	switch {
	case a.Group != nil:
		return a.Group.toExpr()
	case a.Class != nil:
		return a.Class.toExpr()
	case a.Any:
		return Dot{}
	default:
		return Lit{Ch: unescape(a.Ch)}
	}
}

func (c *classExpr) toExpr() Expr {
	items := make([]ClassItem, 0, len(c.Items))
	for _, it := range c.Items {
		ci := ClassItem{Lo: unescape(it.Lo)}
		if it.Hi != nil {
			ci.Hi = unescape(*it.Hi)
			ci.Range = true
		} else {
			ci.Hi = ci.Lo
		}
		items = append(items, ci)
	}
	return NewClass(items, !c.Neg)
}

func unescape(s string) rune {
	r := []rune(s)
	if len(r) == 2 && r[0] == '\\' {
		switch r[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case 'r':
			return '\r'
		default:
			return r[1]
		}
	}
	return r[0]
}
