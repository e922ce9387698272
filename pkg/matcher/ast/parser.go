// Package ast provides the lexer, parser and tree types for the textual matcher
// expression language.
//
// e.g. "positive and not (even or zero)"
package ast

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// The grammar is as follows. NOT binds tightest, then AND, then OR. Keywords
// are case-insensitive and have symbolic aliases.
//
// <expr>     ::= <and-expr> (<or-op> <and-expr>)*
// <and-expr> ::= <unary> (<and-op> <unary>)*
// <unary>    ::= <not-op> <unary> | <primary>
// <primary>  ::= <identifier> | '(' <expr> ')'
// <or-op>    ::= 'or' | '||'
// <and-op>   ::= 'and' | '&&'
// <not-op>   ::= 'not' | '!'
// <identifier> ::= [A-Za-z0-9_.-]+ (excluding keywords)

// ============================================================================
// Parser
//
// Based on the Parser class in Chapter 6: Parsing Expressions of Crafting
// Interpreters by Robert Nystrom
// ============================================================================

// parseError produces error messages tailored to the needs of the parser
func parseError(t token, message string) error {
	if t.kind == eof {
		return fmt.Errorf("at end: %s", message)
	}

	return fmt.Errorf("at '%s' (position %d): %s", t.s, t.pos, message)
}

type parser struct {
	tokens  []token
	current int
	errs    *multierror.Error
}

// ----------------------------------------------------------------------------
// Parser helper methods for token handling
// ----------------------------------------------------------------------------

func (p *parser) atEnd() bool {
	return p.peek().kind == eof
}

func (p *parser) advance() token {
	if !p.atEnd() {
		p.current += 1
	}

	return p.previous()
}

func (p *parser) previous() token {
	return p.tokens[p.current-1]
}

// match return true and advances the parser by one token if the next token has
// a kind that matches one of the arguments. Otherwise, it returns false and
// DOES NOT advance the parser.
func (p *parser) match(tokenKinds ...tokenKind) bool {
	for _, kind := range tokenKinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// check returns true iff the next token matches the provided kind.
func (p *parser) check(tk tokenKind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().kind == tk
}

func (p *parser) peek() token {
	return p.tokens[p.current]
}

// consume is a "next token must be this kind" method. If the next token is of
// the correct kind, the parser is advanced and that token is returned. If it
// is not of the correct kind, a parse error is recorded and the parser is NOT
// advanced.
func (p *parser) consume(tk tokenKind, message string) bool {
	if p.check(tk) {
		p.advance()
		return true
	}

	p.report(parseError(p.peek(), message))
	return false
}

func (p *parser) report(err error) {
	p.errs = multierror.Append(p.errs, err)
}

// synchronize attempts to skip forward until the next tokenKind, indicating the
// start of a new operand (and, or, or parenClose).
func (p *parser) synchronize(tokens ...tokenKind) {
	for !p.atEnd() {
		kind := p.peek().kind
		for _, token := range tokens {
			if kind == token {
				return
			}
		}

		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Parser grammar rules as recursive descent methods
// ----------------------------------------------------------------------------

// parse is the main method of the parser. It turns the token stream into a
// FilterNode tree, reporting parse errors that occurred along the way.
func (p *parser) parse() (FilterNode, error) {
	// Special Case: Empty expression
	if p.atEnd() {
		return &VoidOp{}, nil
	}

	node := p.disjunction()

	// anything left over is either a stray ')' or two operands without an operator
	for !p.atEnd() {
		t := p.advance()
		if t.kind == parenClose {
			p.report(fmt.Errorf("Found ')' without matching '(' at position %d", t.pos))
		} else {
			p.report(parseError(t, "expect 'and' or 'or' between operands"))
		}
		p.synchronize(and, or, parenClose)
		if p.match(and, or) {
			p.disjunction()
		}
	}

	if err := p.errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return node, nil
}

// disjunction parses <and-expr> (<or-op> <and-expr>)*
func (p *parser) disjunction() FilterNode {
	left := p.conjunction()
	if !p.check(or) {
		return left
	}

	group := &OrOp{}
	addOperand(group, left)

	for p.match(or) {
		addOperand(group, p.conjunction())
	}

	return group
}

// conjunction parses <unary> (<and-op> <unary>)*
func (p *parser) conjunction() FilterNode {
	left := p.unary()
	if !p.check(and) {
		return left
	}

	group := &AndOp{}
	addOperand(group, left)

	for p.match(and) {
		addOperand(group, p.unary())
	}

	return group
}

// unary parses <not-op> <unary> | <primary>
func (p *parser) unary() FilterNode {
	if p.match(not) {
		operand := p.unary()
		if operand == nil {
			return nil
		}

		return &NotOp{Operand: operand}
	}

	return p.primary()
}

// primary parses <identifier> | '(' <expr> ')'
func (p *parser) primary() FilterNode {
	if p.match(identifier) {
		return &IdentOp{Name: p.previous().s}
	}

	if p.match(parenOpen) {
		open := p.previous()
		if p.check(parenClose) {
			p.report(parseError(p.peek(), "expect expression inside '()'"))
			p.advance()
			return nil
		}

		node := p.disjunction()
		if !p.match(parenClose) {
			p.report(fmt.Errorf("Found '(' without matching ')' at position %d", open.pos))
			p.synchronize(parenClose)
			p.match(parenClose)
		}

		return node
	}

	p.report(parseError(p.peek(), "expect matcher name, 'not' or '('"))
	if !p.atEnd() && !p.check(parenClose) {
		p.advance()
	}
	p.synchronize(and, or, parenClose)

	return nil
}

// addOperand adds a successfully parsed operand to the group. Failed operands
// (nil) were already reported.
func addOperand(group FilterGroup, node FilterNode) {
	if node == nil {
		return
	}
	group.Add(node)
}

// FilterParser is an object capable of parsing a matcher expression into a
// `FilterNode` AST
type FilterParser interface {
	// Parse parses an expression string into a FilterNode AST.
	Parse(expr string) (FilterNode, error)
}

// default implementation of FilterParser
type defaultFilterParser struct{}

// Parse parses an expression string into a FilterNode AST.
func (dfp *defaultFilterParser) Parse(expr string) (FilterNode, error) {
	tokens, err := lex(expr)
	if err != nil {
		return nil, fmt.Errorf("lexing expression: %w", err)
	}

	p := parser{
		tokens: tokens,
	}

	parsed, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("parsing expression: %w", err)
	}

	return parsed, nil
}

// NewFilterParser creates a new `FilterParser` instance.
func NewFilterParser() FilterParser {
	return &defaultFilterParser{}
}

// Parse parses expr with the default parser.
func Parse(expr string) (FilterNode, error) {
	return NewFilterParser().Parse(expr)
}
