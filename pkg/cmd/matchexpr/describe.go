package matchexpr

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/opencost/matchkit/pkg/matcher/ast"
)

// DescribeOpts contain configuration options that can be passed to Describe.
type DescribeOpts struct {
	CommonOpts

	// Short prints the condensed tree instead of the indented one.
	Short bool
}

// Describe compiles expr and writes its description, canonical expression and
// parse tree to out.
func Describe(out io.Writer, opts *DescribeOpts, expr string) error {
	_, mc, err := opts.setup()
	if err != nil {
		return err
	}

	tree, err := ast.Parse(expr)
	if err != nil {
		return err
	}

	m, err := mc.Compile(tree)
	if err != nil {
		return fmt.Errorf("compiling expression: %w", err)
	}

	fmt.Fprintf(out, "description: %s\n", m)
	fmt.Fprintf(out, "canonical: %s\n", ast.ToExpression(tree))

	if opts.Short {
		fmt.Fprintf(out, "tree: %s\n", ast.ToPreOrderShortString(tree))
		return nil
	}

	fmt.Fprintln(out, "tree:")
	fmt.Fprint(out, ast.ToPreOrderString(tree))
	return nil
}

// List writes every known name and its description to out.
func List(out io.Writer, opts *CommonOpts) error {
	r, _, err := opts.setup()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range r.Names() {
		m, _ := r.Lookup(name)
		fmt.Fprintf(w, "%s\t%s\n", name, m)
	}

	return w.Flush()
}
