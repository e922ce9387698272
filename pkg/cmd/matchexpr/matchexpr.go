// Package matchexpr implements the matchexpr sub-commands, which compile
// matcher expressions over integers and evaluate or describe them.
package matchexpr

import (
	"fmt"

	"github.com/opencost/matchkit/pkg/matcher/compiler"
	"github.com/opencost/matchkit/pkg/matcher/metrics"
	"github.com/opencost/matchkit/pkg/matcher/registry"
)

// CommonOpts are shared by every sub-command.
type CommonOpts struct {
	// Definitions is an optional YAML file of named matchers.
	Definitions string

	// MetricsConfig is an optional JSON file selecting names which are not
	// counted.
	MetricsConfig string
}

// setup builds the registry of builtin and defined leaves and a compiler over
// it.
func (o *CommonOpts) setup() (*registry.Registry[int], *compiler.MatchCompiler[int], error) {
	mc, err := metrics.GetMetricsConfig(o.MetricsConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading metrics config: %w", err)
	}
	metrics.InitMatcherMetrics(nil, mc)

	r := NewRegistry()

	if o.Definitions != "" {
		defs, err := LoadDefinitions(o.Definitions)
		if err != nil {
			return nil, nil, err
		}
		if err := RegisterDefinitions(r, defs); err != nil {
			return nil, nil, fmt.Errorf("registering definitions: %w", err)
		}
	}

	return r, compiler.NewMatchCompiler[int](r), nil
}
