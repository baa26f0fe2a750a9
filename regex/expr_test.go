package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ------------------------------------------------------------------ Render

func TestRenderForms(t *testing.T) {
	cases := []struct {
		e    Expr
		want string
	}{
		{Lit{'a'}, "a"},
		{Empty{}, "∅"},
		{Eps{}, "ε"},
		{Cat{Lit{'a'}, Lit{'b'}}, "(ab)"},
		{Alt{Lit{'a'}, Lit{'b'}}, "(a|b)"},
		{Star{Lit{'a'}, true}, "(a)*"},
		{Star{Lit{'a'}, false}, "(a)*?"},
		{Plus{Lit{'a'}, true}, "(a)+"},
		{Opt{Lit{'a'}, false}, "(a)??"},
		{Dot{}, "."},
		{NewClass([]ClassItem{{Lo: 'a', Hi: 'c', Range: true}}, true), "[a-c]"},
		{NewClass([]ClassItem{{Lo: 'a', Hi: 'a'}, {Lo: 'z', Hi: 'z'}}, false), "[^az]"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Render(c.e))
	}
}

func TestRenderIsStructural(t *testing.T) {
	// Two independently built but structurally equal trees render the same;
	// differently associated trees do not.
	a := Cat{Lit{'a'}, Cat{Lit{'b'}, Lit{'c'}}}
	b := Cat{Lit{'a'}, Cat{Lit{'b'}, Lit{'c'}}}
	c := Cat{Cat{Lit{'a'}, Lit{'b'}}, Lit{'c'}}
	assert.Equal(t, Render(a), Render(b))
	assert.NotEqual(t, Render(a), Render(c))
}

// ------------------------------------------------------------------ Class

func TestClassItemSet(t *testing.T) {
	assert.Equal(t, []rune{'a', 'b', 'c'}, ClassItem{Lo: 'a', Hi: 'c', Range: true}.Set())
	assert.Equal(t, []rune{'x'}, ClassItem{Lo: 'x', Hi: 'x'}.Set())

	// A descending range denotes the empty set and is preserved as written.
	empty := ClassItem{Lo: 'c', Hi: 'a', Range: true}
	assert.Empty(t, empty.Set())
	cls := NewClass([]ClassItem{empty}, true)
	assert.Equal(t, "[c-a]", Render(cls))
	assert.False(t, cls.Matches('b'))
}

func TestClassMatches(t *testing.T) {
	pos := NewClass([]ClassItem{{Lo: 'a', Hi: 'c', Range: true}}, true)
	assert.True(t, pos.Matches('b'))
	assert.False(t, pos.Matches('d'))

	neg := NewClass([]ClassItem{{Lo: 'a', Hi: 'c', Range: true}}, false)
	assert.False(t, neg.Matches('b'))
	assert.True(t, neg.Matches('d'))
}
