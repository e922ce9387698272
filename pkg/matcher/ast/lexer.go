package ast

import (
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// ============================================================================
// This file contains:
// Lexing (string -> []token) for matcher expressions
// ============================================================================
//
// See parser.go for a formal grammar.

type tokenKind int

const (
	and tokenKind = iota // 'and', '&&'
	or                   // 'or', '||'
	not                  // 'not', '!'

	parenOpen  // '('
	parenClose // ')'

	identifier // 'positive', 'is-even', 'range.small'

	eof
)

func (tk tokenKind) String() string {
	switch tk {
	case and:
		return "and"
	case or:
		return "or"
	case not:
		return "not"
	case parenOpen:
		return "parenOpen"
	case parenClose:
		return "parenClose"
	case identifier:
		return "identifier"
	case eof:
		return "eof"
	default:
		return fmt.Sprintf("Unspecified: %d", tk)
	}
}

// keywords are matched case-insensitively
var keywords = map[string]tokenKind{
	"and": and,
	"or":  or,
	"not": not,
}

// ============================================================================
// Lexer/Scanner
//
// Based on the Scanner class in Chapter 4: Scanning of Crafting Interpreters by
// Robert Nystrom
// ============================================================================

type token struct {
	kind tokenKind
	s    string
	pos  int
}

func (t token) String() string {
	return fmt.Sprintf("%s:%s", t.kind, t.s)
}

type scanner struct {
	source string
	tokens []token
	errors []error

	lexemeStartByte int
	nextByte        int
}

func (s *scanner) scanTokens() {
	for !s.atEnd() {
		s.lexemeStartByte = s.nextByte
		s.scanToken()
	}

	s.tokens = append(s.tokens, token{kind: eof, pos: len(s.source)})
}

func (s *scanner) atEnd() bool {
	return s.nextByte >= len(s.source)
}

// advance returns a byte because we only accept ASCII, which has to fit in a
// byte
func (s *scanner) advance() byte {
	b := s.source[s.nextByte]
	s.nextByte += 1
	return b
}

func (s *scanner) match(expected byte) bool {
	if s.atEnd() {
		return false
	}
	if s.source[s.nextByte] != expected {
		return false
	}
	s.nextByte += 1
	return true
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.nextByte]
}

func (s *scanner) addToken(kind tokenKind) {
	s.tokens = append(s.tokens, token{
		kind: kind,
		s:    s.source[s.lexemeStartByte:s.nextByte],
		pos:  s.lexemeStartByte,
	})
}

func (s *scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(parenOpen)
	case ')':
		s.addToken(parenClose)
	case '!':
		s.addToken(not)
	case '&':
		if s.match('&') {
			s.addToken(and)
		} else {
			s.errors = append(s.errors, fmt.Errorf("Position %d: Unexpected '&', expected '&&'", s.nextByte-1))
		}
	case '|':
		if s.match('|') {
			s.addToken(or)
		} else {
			s.errors = append(s.errors, fmt.Errorf("Position %d: Unexpected '|', expected '||'", s.nextByte-1))
		}
	// Ignore whitespace chars
	case ' ', '\t', '\n', '\r':
		break
	default:
		if isIdentifierChar(c) {
			s.identifier()
			break
		}

		s.errors = append(s.errors, fmt.Errorf("unexpected character/byte at position %d. Please avoid Unicode.", s.nextByte-1))
	}
}

// isIdentifierChar matches the characters allowed in matcher names.
func isIdentifierChar(b byte) bool {
	return (b >= '0' && b <= '9') || // 0-9
		(b >= 'A' && b <= 'Z') || // A-Z
		(b >= 'a' && b <= 'z') || // a-z
		b == '-' ||
		b == '_' ||
		b == '.'
}

// IsIdentifier returns true if name can be referenced from an expression: it
// is non-empty, made only of identifier characters, and is not a keyword.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := keywords[strings.ToLower(name)]; ok {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isIdentifierChar(name[i]) {
			return false
		}
	}
	return true
}

func (s *scanner) identifier() {
	for isIdentifierChar(s.peek()) {
		s.advance()
	}

	text := s.source[s.lexemeStartByte:s.nextByte]
	if kind, ok := keywords[strings.ToLower(text)]; ok {
		s.addToken(kind)
		return
	}

	s.addToken(identifier)
}

// lex will generate a slice of tokens provided a raw expression string
func lex(raw string) ([]token, error) {
	s := scanner{
		source: raw,
	}
	s.scanTokens()

	if len(s.errors) > 0 {
		return s.tokens, multierror.Append(nil, s.errors...)
	}

	return s.tokens, nil
}
