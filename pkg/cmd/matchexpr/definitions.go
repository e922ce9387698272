package matchexpr

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/opencost/matchkit/pkg/matcher/compiler"
	"github.com/opencost/matchkit/pkg/matcher/metrics"
	"github.com/opencost/matchkit/pkg/matcher/registry"
	"sigs.k8s.io/yaml"
)

// Definition names a matcher, either as an expression over previously known
// names or as a numeric bound.
//
//	- name: digit
//	  expr: small and not negative
//	- name: teen
//	  greaterThan: 12
//	  lessThan: 20
type Definition struct {
	Name        string `json:"name"`
	Expression  string `json:"expr,omitempty"`
	GreaterThan *int   `json:"greaterThan,omitempty"`
	LessThan    *int   `json:"lessThan,omitempty"`
	MultipleOf  *int   `json:"multipleOf,omitempty"`
}

// build compiles the definition. Expressions may reference any name already
// in the compiler's registry.
func (d Definition) build(mc *compiler.MatchCompiler[int]) (matcher.Matcher[int], error) {
	hasBound := d.GreaterThan != nil || d.LessThan != nil || d.MultipleOf != nil

	if d.Expression != "" {
		if hasBound {
			return nil, fmt.Errorf("expr cannot be combined with bounds")
		}
		return mc.CompileString(d.Expression)
	}

	if !hasBound {
		return nil, fmt.Errorf("one of expr, greaterThan, lessThan or multipleOf is required")
	}

	var ms []matcher.Matcher[int]
	if d.GreaterThan != nil {
		ms = append(ms, GreaterThan(*d.GreaterThan))
	}
	if d.LessThan != nil {
		ms = append(ms, LessThan(*d.LessThan))
	}
	if d.MultipleOf != nil {
		ms = append(ms, MultipleOf(*d.MultipleOf))
	}

	if len(ms) == 1 {
		return ms[0], nil
	}
	return matcher.NewAnd(ms...), nil
}

// LoadDefinitions reads a YAML list of definitions from path.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}

	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing definitions %s: %w", path, err)
	}

	return defs, nil
}

// RegisterDefinitions builds the definitions in order and registers each under
// its name, so a definition may use the ones before it. All failures are
// reported; the definitions that did build stay registered.
func RegisterDefinitions(r *registry.Registry[int], defs []Definition) error {
	mc := compiler.NewMatchCompiler[int](r)

	var errs *multierror.Error
	for _, d := range defs {
		m, err := d.build(mc)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("definition %q: %w", d.Name, err))
			continue
		}

		if err := r.Register(d.Name, metrics.Instrument(d.Name, m)); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		log.Debugf("Defined %s as %s", d.Name, m)
	}

	return errs.ErrorOrNil()
}
