// Package compiler turns parsed matcher expressions into matcher trees.
package compiler

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/opencost/matchkit/pkg/matcher/ast"
	"github.com/opencost/matchkit/pkg/util/stack"
)

// Resolver looks up the matcher referenced by an identifier in an expression.
// *registry.Registry[T] is a Resolver[T].
type Resolver[T any] interface {
	Lookup(name string) (matcher.Matcher[T], bool)
}

// UnknownIdentifierError is reported for each expression identifier the
// resolver does not know.
type UnknownIdentifierError struct {
	Name string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown matcher %q", e.Name)
}

// MatchCompiler compiles an `ast.FilterNode` into a Matcher[T] implementation.
type MatchCompiler[T any] struct {
	resolver Resolver[T]
	parser   ast.FilterParser
}

// NewMatchCompiler creates a new MatchCompiler for T instances which resolves
// identifiers through resolver.
func NewMatchCompiler[T any](resolver Resolver[T]) *MatchCompiler[T] {
	return &MatchCompiler[T]{
		resolver: resolver,
		parser:   ast.NewFilterParser(),
	}
}

// pending group op, collecting operands until its Exit
type frame[T any] struct {
	op       ast.FilterOp
	operands []matcher.Matcher[T]
}

// Compile accepts an `ast.FilterNode` tree and compiles it into a `Matcher[T]` implementation
// built from the matcher package constructors, so groups of the same kind are
// flattened exactly as they are for hand built trees. Every unknown identifier
// is reported in the returned error.
func (mc *MatchCompiler[T]) Compile(filter ast.FilterNode) (matcher.Matcher[T], error) {
	// if the root node is a void op, return an allpass
	if _, ok := filter.(*ast.VoidOp); ok || filter == nil {
		return &matcher.AllPass[T]{}, nil
	}

	var result matcher.Matcher[T]
	var errs *multierror.Error
	currentOps := stack.New[*frame[T]]()

	// add either appends to the open group or, at the root, sets the result
	add := func(m matcher.Matcher[T]) {
		if currentOps.Length() == 0 {
			result = m
			return
		}
		top := currentOps.Top()
		top.operands = append(top.operands, m)
	}

	// handle leaf is the ast walker func. group ops get pushed onto a stack on
	// the Enter state, and built on the Exit state once all of their operands
	// have been collected.
	handleLeaf := func(leaf ast.FilterNode, state ast.TraversalState) {
		switch n := leaf.(type) {
		case *ast.AndOp, *ast.OrOp, *ast.NotOp:
			if state == ast.TraversalStateEnter {
				currentOps.Push(&frame[T]{op: n.Op()})
			} else if state == ast.TraversalStateExit {
				add(build(currentOps.Pop()))
			}

		case *ast.IdentOp:
			m, ok := mc.resolver.Lookup(n.Name)
			if !ok {
				errs = multierror.Append(errs, &UnknownIdentifierError{Name: n.Name})
				m = &matcher.AllCut[T]{}
			}
			add(m)

		case *ast.VoidOp:
			add(&matcher.AllPass[T]{})

		default:
			errs = multierror.Append(errs, fmt.Errorf("unsupported op %s", leaf.Op()))
		}
	}

	ast.PreOrderTraversal(filter, handleLeaf)

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if result == nil {
		return &matcher.AllPass[T]{}, nil
	}

	log.Debugf("compiler: compiled %s", ast.ToPreOrderShortString(filter))

	return result, nil
}

func build[T any](f *frame[T]) matcher.Matcher[T] {
	switch f.op {
	case ast.FilterOpAnd:
		return matcher.NewAnd(f.operands...)
	case ast.FilterOpOr:
		return matcher.NewOr(f.operands...)
	default:
		var operand matcher.Matcher[T] = &matcher.AllPass[T]{}
		if len(f.operands) > 0 {
			operand = f.operands[0]
		}
		return matcher.NewNot(operand)
	}
}

// CompileString parses expr and compiles the resulting tree.
func (mc *MatchCompiler[T]) CompileString(expr string) (matcher.Matcher[T], error) {
	tree, err := mc.parser.Parse(expr)
	if err != nil {
		return nil, err
	}

	m, err := mc.Compile(tree)
	if err != nil {
		return nil, fmt.Errorf("compiling expression: %w", err)
	}

	return m, nil
}
