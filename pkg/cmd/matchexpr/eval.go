package matchexpr

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/matcher/metrics"
	"github.com/opencost/matchkit/pkg/util/json"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// EvalOpts contain configuration options that can be passed to Eval.
type EvalOpts struct {
	CommonOpts

	// Parallel bounds the number of concurrent evaluations.
	Parallel int

	// Output is either OutputText or OutputJSON.
	Output string

	// Fail makes Eval return an error when any value does not match.
	Fail bool

	// ShowEvaluations adds per-leaf evaluation counts to the output.
	ShowEvaluations bool
}

// Result is the outcome of evaluating one value.
type Result struct {
	Value   int  `json:"value"`
	Matched bool `json:"matched"`
}

// Report is the JSON form of an evaluation.
type Report struct {
	Expression  string                             `json:"expression"`
	Description string                             `json:"description"`
	Results     []Result                           `json:"results"`
	Evaluations map[string]metrics.EvaluationCount `json:"evaluations,omitempty"`
}

// ParseValues converts command line arguments to integers.
func ParseValues(args []string) ([]int, error) {
	values := make([]int, 0, len(args))
	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: expected an integer", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

// Eval compiles expr and evaluates it against every value, writing the results
// to out in the order the values were given.
func Eval(ctx context.Context, out io.Writer, opts *EvalOpts, expr string, values []int) error {
	defer log.Profile(time.Now(), "eval")

	switch opts.Output {
	case OutputText, OutputJSON, "":
	default:
		return fmt.Errorf("unsupported output format %q", opts.Output)
	}

	r, mc, err := opts.setup()
	if err != nil {
		return err
	}

	m, err := mc.CompileString(expr)
	if err != nil {
		return err
	}

	names := r.Names()
	before := make(map[string]metrics.EvaluationCount, len(names))
	for _, name := range names {
		before[name] = metrics.Evaluations(name)
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	results := make([]Result, len(values))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Value: v, Matched: m.Matches(v)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report := Report{
		Expression:  expr,
		Description: m.String(),
		Results:     results,
	}

	if opts.ShowEvaluations {
		report.Evaluations = make(map[string]metrics.EvaluationCount, len(names))
		for _, name := range names {
			after := metrics.Evaluations(name)
			report.Evaluations[name] = metrics.EvaluationCount{
				Matched:   after.Matched - before[name].Matched,
				Unmatched: after.Unmatched - before[name].Unmatched,
			}
		}
	}

	if err := writeReport(out, opts.Output, report); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.Matched {
			failed++
		}
	}
	log.Infof("Evaluated %d values against %s: %d did not match", len(results), report.Description, failed)

	if opts.Fail && failed > 0 {
		return fmt.Errorf("%d of %d values did not match %s", failed, len(results), report.Description)
	}

	return nil
}

func writeReport(out io.Writer, format string, report Report) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)

	case OutputText, "":
		for _, res := range report.Results {
			if res.Matched {
				fmt.Fprintf(out, "%d: true\n", res.Value)
			} else {
				fmt.Fprintf(out, "%d: false, expected %s\n", res.Value, report.Description)
			}
		}

		if report.Evaluations != nil {
			fmt.Fprintln(out, "evaluations:")
			for _, name := range sortedKeys(report.Evaluations) {
				count := report.Evaluations[name]
				fmt.Fprintf(out, "  %s: %d matched, %d unmatched\n", name, count.Matched, count.Unmatched)
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
