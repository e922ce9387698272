package ops

import (
	"fmt"

	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/opencost/matchkit/pkg/util/typeutil"
)

// TypeMismatchError is returned when a value which does not implement the
// required matcher type is combined with And, Or or Not through the dynamic
// entry points. It is raised at combination time, before any evaluation.
type TypeMismatchError struct {
	// Index is the position of the offending operand.
	Index int

	// Got is the dynamic type of the offending operand, or "<nil>".
	Got string

	// Want is the matcher type the operand was expected to implement.
	Want string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operand %d of type %s does not implement %s", e.Index, e.Got, e.Want)
}

// AsMatcher asserts that v implements matcher.Matcher[T]. Values that only
// implement matcher.Predicate[T] are accepted and given a cached description.
func AsMatcher[T any](v any) (matcher.Matcher[T], error) {
	return asMatcherAt[T](0, v)
}

func asMatcherAt[T any](index int, v any) (matcher.Matcher[T], error) {
	switch m := v.(type) {
	case matcher.Matcher[T]:
		return m, nil
	case matcher.Predicate[T]:
		return matcher.From(m), nil
	}

	return nil, &TypeMismatchError{
		Index: index,
		Got:   typeutil.TypeFor(v),
		Want:  typeutil.TypeOf[matcher.Matcher[T]](),
	}
}

func asMatchers[T any](vs []any) ([]matcher.Matcher[T], error) {
	ms := make([]matcher.Matcher[T], 0, len(vs))
	for i, v := range vs {
		m, err := asMatcherAt[T](i, v)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// NotOf negates v, failing if v is not a matcher of T.
func NotOf[T any](v any) (matcher.Matcher[T], error) {
	m, err := AsMatcher[T](v)
	if err != nil {
		return nil, err
	}

	return Not(m), nil
}

// AndOf builds a conjunction of vs, failing on the first operand which is not
// a matcher of T.
func AndOf[T any](vs ...any) (matcher.Matcher[T], error) {
	ms, err := asMatchers[T](vs)
	if err != nil {
		return nil, err
	}

	return AllOf(ms), nil
}

// OrOf builds a disjunction of vs, failing on the first operand which is not a
// matcher of T.
func OrOf[T any](vs ...any) (matcher.Matcher[T], error) {
	ms, err := asMatchers[T](vs)
	if err != nil {
		return nil, err
	}

	return AnyOf(ms), nil
}
