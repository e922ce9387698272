package compiler

import (
	"errors"
	"sort"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/opencost/matchkit/pkg/matcher/ast"
	"github.com/opencost/matchkit/pkg/matcher/ops"
	"github.com/opencost/matchkit/pkg/matcher/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *registry.Registry[int] {
	t.Helper()

	r := registry.New[int]()
	r.MustRegister("positive", matcher.NewFunc("is positive", func(v int) bool { return v > 0 }))
	r.MustRegister("even", matcher.NewFunc("is even", func(v int) bool { return v%2 == 0 }))
	r.MustRegister("zero", matcher.NewFunc("is zero", func(v int) bool { return v == 0 }))
	return r
}

func lookup(t *testing.T, r *registry.Registry[int], name string) matcher.Matcher[int] {
	t.Helper()

	m, ok := r.Lookup(name)
	require.True(t, ok, name)
	return m
}

func TestCompileString(t *testing.T) {
	mc := NewMatchCompiler[int](newTestRegistry(t))

	cases := []struct {
		name        string
		input       string
		description string
		matches     []int
		rejects     []int
	}{
		{
			name:        "empty matches anything",
			input:       "",
			description: "anything",
			matches:     []int{-1, 0, 1},
		},
		{
			name:        "single identifier",
			input:       "even",
			description: "is even",
			matches:     []int{-2, 0, 4},
			rejects:     []int{1, 3},
		},
		{
			name:        "and",
			input:       "positive and even",
			description: "( is positive and is even )",
			matches:     []int{2, 4},
			rejects:     []int{-2, 0, 3},
		},
		{
			name:        "precedence",
			input:       "positive or even and not zero",
			description: "( is positive or ( is even and not is zero ) )",
			matches:     []int{1, 3, -2},
			rejects:     []int{0, -1},
		},
		{
			name:        "parenthesized same kind is flattened",
			input:       "(positive and even) and not zero",
			description: "( is positive and is even and not is zero )",
			matches:     []int{2},
			rejects:     []int{0, 1},
		},
		{
			name:        "double negation",
			input:       "!!positive",
			description: "not not is positive",
			matches:     []int{1},
			rejects:     []int{0},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := mc.CompileString(c.input)
			require.NoError(t, err)

			assert.Equal(t, c.description, m.String())
			for _, v := range c.matches {
				assert.Truef(t, m.Matches(v), "%s should match %d", c.input, v)
			}
			for _, v := range c.rejects {
				assert.Falsef(t, m.Matches(v), "%s should not match %d", c.input, v)
			}
		})
	}
}

func TestCompileMatchesBuilder(t *testing.T) {
	r := newTestRegistry(t)
	mc := NewMatchCompiler[int](r)

	compiled, err := mc.CompileString("positive or even and not zero")
	require.NoError(t, err)

	built := ops.Or(
		lookup(t, r, "positive"),
		ops.And(lookup(t, r, "even"), ops.Not(lookup(t, r, "zero"))),
	)

	assert.Equal(t, built.String(), compiled.String())

	or, ok := compiled.(*matcher.Or[int])
	require.True(t, ok, "expected *matcher.Or, got %T", compiled)
	require.Equal(t, 2, or.Len())
	assert.Same(t, lookup(t, r, "positive"), or.Matchers()[0])
}

func TestCompileFlattensGroups(t *testing.T) {
	mc := NewMatchCompiler[int](newTestRegistry(t))

	tree := &ast.AndOp{Operands: []ast.FilterNode{
		&ast.AndOp{Operands: []ast.FilterNode{&ast.IdentOp{Name: "positive"}, &ast.IdentOp{Name: "even"}}},
		&ast.IdentOp{Name: "zero"},
	}}

	m, err := mc.Compile(tree)
	require.NoError(t, err)

	group, ok := m.(matcher.Group[int])
	require.True(t, ok)
	assert.Equal(t, 3, group.Len())
}

func TestCompileVoid(t *testing.T) {
	mc := NewMatchCompiler[int](newTestRegistry(t))

	for _, tree := range []ast.FilterNode{nil, &ast.VoidOp{}} {
		m, err := mc.Compile(tree)
		require.NoError(t, err)
		assert.IsType(t, &matcher.AllPass[int]{}, m)
	}
}

func TestCompileUnknownIdentifiers(t *testing.T) {
	mc := NewMatchCompiler[int](newTestRegistry(t))

	m, err := mc.CompileString("odd and positive or not huge")
	require.Error(t, err)
	assert.Nil(t, m)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Equal(t, 2, merr.Len())

	var names []string
	for _, e := range merr.Errors {
		var unknown *UnknownIdentifierError
		require.True(t, errors.As(e, &unknown))
		names = append(names, unknown.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"huge", "odd"}, names)
}

func TestCompileParseError(t *testing.T) {
	mc := NewMatchCompiler[int](newTestRegistry(t))

	_, err := mc.CompileString("positive and (even")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing expression")
}

func TestCachedCompiler(t *testing.T) {
	cc := NewCachedCompiler(NewMatchCompiler[int](newTestRegistry(t)), 0)

	first, err := cc.CompileString("positive and even")
	require.NoError(t, err)

	again, err := cc.CompileString("positive and even")
	require.NoError(t, err)
	assert.Same(t, first, again)

	alias, err := cc.CompileString("positive && even")
	require.NoError(t, err)
	assert.Same(t, first, alias, "equivalent spelling should share the compiled tree")

	assert.Equal(t, 2, cc.Len())

	_, err = cc.CompileString("positive and odd")
	require.Error(t, err)
	assert.Equal(t, 2, cc.Len(), "failed compilations are not cached")

	cc.Flush()
	assert.Equal(t, 0, cc.Len())

	fresh, err := cc.CompileString("positive and even")
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, first.String(), fresh.String())
}
