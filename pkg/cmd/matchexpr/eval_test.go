package matchexpr

import (
	"bytes"
	"context"
	"testing"

	"github.com/opencost/matchkit/pkg/matcher/metrics"
	"github.com/opencost/matchkit/pkg/util/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	values, err := ParseValues([]string{"1", "-2", "+3", "0"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2, 3, 0}, values)

	_, err = ParseValues([]string{"1", "two"})
	assert.ErrorContains(t, err, `invalid value "two"`)
}

func TestEvalText(t *testing.T) {
	var buf bytes.Buffer
	err := Eval(context.Background(), &buf, &EvalOpts{Parallel: 2}, "positive and even", []int{2, 3, -4, 8})
	require.NoError(t, err)

	expected := "2: true\n" +
		"3: false, expected ( is positive and is even )\n" +
		"-4: false, expected ( is positive and is even )\n" +
		"8: true\n"
	assert.Equal(t, expected, buf.String())
}

func TestEvalJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := &EvalOpts{Output: OutputJSON}
	err := Eval(context.Background(), &buf, opts, "zero || !small", []int{0, 5, 100})
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, "zero || !small", report.Expression)
	assert.Equal(t, "( is zero or not between -9 and 9 )", report.Description)
	assert.Equal(t, []Result{
		{Value: 0, Matched: true},
		{Value: 5, Matched: false},
		{Value: 100, Matched: true},
	}, report.Results)
	assert.Nil(t, report.Evaluations)
}

func TestEvalShowEvaluations(t *testing.T) {
	var buf bytes.Buffer
	opts := &EvalOpts{Output: OutputJSON, ShowEvaluations: true, Parallel: 1}
	err := Eval(context.Background(), &buf, opts, "zero and positive", []int{1, 2, 0})
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, metrics.EvaluationCount{Matched: 1, Unmatched: 2}, report.Evaluations["zero"])
	// only reached for the one value which passed zero
	assert.Equal(t, metrics.EvaluationCount{Matched: 0, Unmatched: 1}, report.Evaluations["positive"])
	assert.Equal(t, metrics.EvaluationCount{}, report.Evaluations["even"])
}

func TestEvalShowEvaluationsText(t *testing.T) {
	var buf bytes.Buffer
	opts := &EvalOpts{ShowEvaluations: true}
	err := Eval(context.Background(), &buf, opts, "odd", []int{1})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "1: true\nevaluations:\n")
	assert.Contains(t, buf.String(), "  odd: 1 matched, 0 unmatched\n")
	assert.Contains(t, buf.String(), "  even: 0 matched, 0 unmatched\n")
}

func TestEvalMetricsConfigDisablesCounting(t *testing.T) {
	config := writeFile(t, "metrics.json", `{"disabledMetrics":["zero"]}`)

	var buf bytes.Buffer
	opts := &EvalOpts{Output: OutputJSON, ShowEvaluations: true}
	opts.MetricsConfig = config
	err := Eval(context.Background(), &buf, opts, "zero", []int{0, 1})
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, metrics.EvaluationCount{}, report.Evaluations["zero"])
	assert.Equal(t, []Result{{Value: 0, Matched: true}, {Value: 1, Matched: false}}, report.Results)
}

func TestEvalWithDefinitions(t *testing.T) {
	var buf bytes.Buffer
	opts := &EvalOpts{}
	opts.Definitions = writeFile(t, "defs.yaml", testDefinitions)

	err := Eval(context.Background(), &buf, opts, "interesting and not dozen", []int{15, 24})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "15: true\n")
	assert.Contains(t, buf.String(), "24: false, expected ( ( ( between -9 and 9 and not is negative ) or ( greater than 12 and less than 20 ) or multiple of 12 ) and not multiple of 12 )\n")
}

func TestEvalFail(t *testing.T) {
	var buf bytes.Buffer

	err := Eval(context.Background(), &buf, &EvalOpts{Fail: true}, "even", []int{2, 3})
	assert.ErrorContains(t, err, "1 of 2 values did not match is even")
	assert.Contains(t, buf.String(), "3: false, expected is even\n", "results are written before failing")

	buf.Reset()
	assert.NoError(t, Eval(context.Background(), &buf, &EvalOpts{Fail: true}, "even", []int{2, 4}))
}

func TestEvalErrors(t *testing.T) {
	cases := map[string]struct {
		opts *EvalOpts
		expr string
		err  string
	}{
		"unknown name": {
			opts: &EvalOpts{},
			expr: "prime",
			err:  `unknown matcher "prime"`,
		},
		"parse error": {
			opts: &EvalOpts{},
			expr: "even and",
			err:  "parsing expression",
		},
		"output format": {
			opts: &EvalOpts{Output: "yaml"},
			expr: "even",
			err:  `unsupported output format "yaml"`,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Eval(context.Background(), &buf, c.opts, c.expr, []int{1})
			assert.ErrorContains(t, err, c.err)
			assert.Empty(t, buf.String())
		})
	}
}

func TestEvalCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Eval(ctx, &buf, &EvalOpts{}, "even", []int{1, 2, 3})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
