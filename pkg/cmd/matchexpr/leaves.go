package matchexpr

import (
	"fmt"

	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/opencost/matchkit/pkg/matcher/metrics"
	"github.com/opencost/matchkit/pkg/matcher/registry"
	"golang.org/x/exp/constraints"
)

// GreaterThan matches values strictly greater than bound.
func GreaterThan[T constraints.Ordered](bound T) matcher.Matcher[T] {
	return matcher.NewFunc(fmt.Sprintf("greater than %v", bound), func(v T) bool {
		return v > bound
	})
}

// LessThan matches values strictly less than bound.
func LessThan[T constraints.Ordered](bound T) matcher.Matcher[T] {
	return matcher.NewFunc(fmt.Sprintf("less than %v", bound), func(v T) bool {
		return v < bound
	})
}

// Between matches values in the inclusive range [low, high].
func Between[T constraints.Ordered](low, high T) matcher.Matcher[T] {
	return matcher.NewFunc(fmt.Sprintf("between %v and %v", low, high), func(v T) bool {
		return v >= low && v <= high
	})
}

// MultipleOf matches multiples of n. Only zero is a multiple of zero.
func MultipleOf[T constraints.Integer](n T) matcher.Matcher[T] {
	return matcher.NewFunc(fmt.Sprintf("multiple of %v", n), func(v T) bool {
		if n == 0 {
			return v == 0
		}
		return v%n == 0
	})
}

// builtin leaves available to every expression
var builtins = []struct {
	name string
	m    matcher.Matcher[int]
}{
	{name: "positive", m: matcher.NewFunc("is positive", func(v int) bool { return v > 0 })},
	{name: "negative", m: matcher.NewFunc("is negative", func(v int) bool { return v < 0 })},
	{name: "zero", m: matcher.NewFunc("is zero", func(v int) bool { return v == 0 })},
	{name: "even", m: matcher.NewFunc("is even", func(v int) bool { return v%2 == 0 })},
	{name: "odd", m: matcher.NewFunc("is odd", func(v int) bool { return v%2 != 0 })},
	{name: "small", m: Between(-9, 9)},
}

// NewRegistry creates a registry holding the builtin integer leaves, each
// counted under its own name.
func NewRegistry() *registry.Registry[int] {
	r := registry.New[int]()
	for _, b := range builtins {
		r.MustRegister(b.name, metrics.Instrument(b.name, b.m))
	}
	return r
}
