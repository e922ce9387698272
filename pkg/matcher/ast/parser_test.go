package ast

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
)

func ident(name string) *IdentOp {
	return &IdentOp{Name: name}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected FilterNode
	}{
		{
			name:     "empty",
			input:    "",
			expected: &VoidOp{},
		},
		{
			name:     "whitespace only",
			input:    " \t\n",
			expected: &VoidOp{},
		},
		{
			name:     "single identifier",
			input:    "positive",
			expected: ident("positive"),
		},
		{
			name:     "and",
			input:    "a and b",
			expected: &AndOp{Operands: []FilterNode{ident("a"), ident("b")}},
		},
		{
			name:     "and chain is flat",
			input:    "a && b && c",
			expected: &AndOp{Operands: []FilterNode{ident("a"), ident("b"), ident("c")}},
		},
		{
			name:     "or chain is flat",
			input:    "a or b || c",
			expected: &OrOp{Operands: []FilterNode{ident("a"), ident("b"), ident("c")}},
		},
		{
			name:  "not binds tighter than and, and tighter than or",
			input: "a or b and not c",
			expected: &OrOp{Operands: []FilterNode{
				ident("a"),
				&AndOp{Operands: []FilterNode{ident("b"), &NotOp{Operand: ident("c")}}},
			}},
		},
		{
			name:  "parens override precedence",
			input: "(a or b) and c",
			expected: &AndOp{Operands: []FilterNode{
				&OrOp{Operands: []FilterNode{ident("a"), ident("b")}},
				ident("c"),
			}},
		},
		{
			name:     "parenthesized same kind is spliced left",
			input:    "(a and b) and c",
			expected: &AndOp{Operands: []FilterNode{ident("a"), ident("b"), ident("c")}},
		},
		{
			name:     "parenthesized same kind is spliced right",
			input:    "a or (b or c)",
			expected: &OrOp{Operands: []FilterNode{ident("a"), ident("b"), ident("c")}},
		},
		{
			name:     "double negation is kept",
			input:    "not not a",
			expected: &NotOp{Operand: &NotOp{Operand: ident("a")}},
		},
		{
			name:  "not of group",
			input: "!(a && b)",
			expected: &NotOp{Operand: &AndOp{Operands: []FilterNode{
				ident("a"), ident("b"),
			}}},
		},
		{
			name:  "mixed case keywords",
			input: "A AND b Or NOT c",
			expected: &OrOp{Operands: []FilterNode{
				&AndOp{Operands: []FilterNode{ident("A"), ident("b")}},
				&NotOp{Operand: ident("c")},
			}},
		},
		{
			name:     "redundant parens",
			input:    "((a))",
			expected: ident("a"),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Logf("Input: '%s'", c.input)
			result, err := Parse(c.input)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if diff := cmp.Diff(c.expected, result); len(diff) > 0 {
				t.Logf("Got: %s", spew.Sdump(result))
				t.Logf("Expected: %s", spew.Sdump(c.expected))
				t.Errorf("%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "trailing and",
			input:    "a and",
			contains: "at end: expect matcher name",
		},
		{
			name:     "leading or",
			input:    "or a",
			contains: "expect matcher name",
		},
		{
			name:     "not without operand",
			input:    "not",
			contains: "at end",
		},
		{
			name:     "unmatched open paren",
			input:    "(a",
			contains: "Found '(' without matching ')' at position 0",
		},
		{
			name:     "unmatched close paren",
			input:    "a)",
			contains: "Found ')' without matching '(' at position 1",
		},
		{
			name:     "empty parens",
			input:    "a and ()",
			contains: "expect expression inside '()'",
		},
		{
			name:     "missing operator",
			input:    "a b",
			contains: "expect 'and' or 'or' between operands",
		},
		{
			name:     "lexer error",
			input:    "a & b",
			contains: "lexing expression",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := Parse(c.input)
			if err == nil {
				t.Fatalf("expected error, got tree %s", ToPreOrderShortString(result))
			}
			if result != nil {
				t.Errorf("expected nil tree alongside error")
			}
			if !strings.Contains(err.Error(), c.contains) {
				t.Errorf("expected error containing %q, got: %s", c.contains, err)
			}
		})
	}
}

func TestParseReportsAllErrors(t *testing.T) {
	_, err := Parse("(a and ) or b)")
	if err == nil {
		t.Fatalf("expected error")
	}

	msg := err.Error()
	for _, want := range []string{"expect matcher name", "Found ')' without matching '('"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error containing %q, got: %s", want, msg)
		}
	}
}
