package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsed(t *testing.T, src string) Expr {
	t.Helper()
	e, err := Parse(src)
	require.NoError(t, err, "parse %q", src)
	return e
}

// ------------------------------------------------------------------ shapes

func TestParsePrecedence(t *testing.T) {
	// Alternation binds loosest, quantifiers tightest.
	assert.Equal(t, "(a|(b(c)*))", Render(parsed(t, "a|bc*")))
	assert.Equal(t, "((a|b))*", Render(parsed(t, "(a|b)*")))
	assert.Equal(t, "(a(b(cd)))", Render(parsed(t, "abcd")))
}

func TestParseQuantifiers(t *testing.T) {
	assert.Equal(t, "(a)*", Render(parsed(t, "a*")))
	assert.Equal(t, "(a)*?", Render(parsed(t, "a*?")))
	assert.Equal(t, "(a)+?", Render(parsed(t, "a+?")))
	assert.Equal(t, "(a)??", Render(parsed(t, "a??")))
	assert.Equal(t, "((a)*?)?", Render(parsed(t, "a*??")))
}

func TestParseClass(t *testing.T) {
	e := parsed(t, "[a-cz]")
	cls, ok := e.(Class)
	require.True(t, ok)
	assert.True(t, cls.Positive)
	assert.Equal(t, "[a-cz]", Render(cls))
	assert.True(t, cls.Matches('b'))
	assert.True(t, cls.Matches('z'))
	assert.False(t, cls.Matches('d'))

	neg, ok := parsed(t, "[^a-c]").(Class)
	require.True(t, ok)
	assert.False(t, neg.Positive)
	assert.False(t, neg.Matches('b'))
	assert.True(t, neg.Matches('d'))
}

func TestParseClassLiterals(t *testing.T) {
	// Metacharacters lose their meaning inside a class.
	cls, ok := parsed(t, "[+*]").(Class)
	require.True(t, ok)
	assert.True(t, cls.Matches('+'))
	assert.True(t, cls.Matches('*'))
}

func TestParseClassTrailingDash(t *testing.T) {
	// A dash that cannot be a range is a literal class member.
	cls, ok := parsed(t, "[a-]").(Class)
	require.True(t, ok)
	assert.True(t, cls.Matches('a'))
	assert.True(t, cls.Matches('-'))
	assert.False(t, cls.Matches('b'))

	dash, ok := parsed(t, "[-]").(Class)
	require.True(t, ok)
	assert.True(t, dash.Matches('-'))
}

func TestParseEscapes(t *testing.T) {
	assert.Equal(t, Lit{'*'}, parsed(t, `\*`))
	assert.Equal(t, Lit{'\n'}, parsed(t, `\n`))
	assert.Equal(t, Lit{'\t'}, parsed(t, `\t`))
	assert.Equal(t, Lit{'\\'}, parsed(t, `\\`))
}

func TestParseDotAndEmpty(t *testing.T) {
	assert.Equal(t, Dot{}, parsed(t, "."))
	assert.Equal(t, Eps{}, parsed(t, ""))
}

func TestParseLiteralDashAndCaret(t *testing.T) {
	assert.Equal(t, "(a(-b))", Render(parsed(t, "a-b")))
	assert.Equal(t, Lit{'^'}, parsed(t, "^"))
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"(", "(a", "[a", "*"} {
		_, err := Parse(src)
		assert.Error(t, err, "pattern %q", src)
	}
}

func TestParseExploreRoundTrip(t *testing.T) {
	// The canonical ReDoS shape survives the full pipeline.
	ss := Explore(MustParse("a(a)*"))
	require.Len(t, ss.States, 2)
	assert.Equal(t, [][]int{{1}, {1}}, ss.Morphs['a'])
}
