// Package metrics counts matcher evaluations with prometheus.
package metrics

import (
	"strconv"
	"sync"

	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var (
	once sync.Once

	disabledLock sync.RWMutex
	disabled     = map[string]struct{}{}

	// prometheus metrics
	evaluations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matchkit_matcher_evaluations_total",
		Help: "matchkit_matcher_evaluations_total Total number of matcher evaluations by result",
	}, []string{"matcher", "result"})
)

// InitMatcherMetrics registers the matcher metrics with registerer, falling
// back to the prometheus default registerer when nil. Only the first call
// registers; later calls only update the disabled set from config.
func InitMatcherMetrics(registerer prometheus.Registerer, config *MetricsConfig) {
	if config != nil {
		disabledLock.Lock()
		disabled = config.GetDisabledMetricsMap()
		disabledLock.Unlock()
	}

	once.Do(func() {
		if registerer == nil {
			registerer = prometheus.DefaultRegisterer
		}
		registerer.MustRegister(evaluations)
	})
}

func isDisabled(name string) bool {
	disabledLock.RLock()
	defer disabledLock.RUnlock()

	_, ok := disabled[name]
	return ok
}

// Instrumented wraps a matcher and counts every evaluation under its name. It
// describes itself exactly like the wrapped matcher.
type Instrumented[T any] struct {
	name    string
	matcher matcher.Matcher[T]

	matched   prometheus.Counter
	unmatched prometheus.Counter
}

// Instrument wraps m so that its evaluations are counted under name. If name
// is disabled by the metrics config, m is returned as is.
func Instrument[T any](name string, m matcher.Matcher[T]) matcher.Matcher[T] {
	if isDisabled(name) {
		log.Debugf("metrics: evaluations of %s are not counted", name)
		return m
	}

	return &Instrumented[T]{
		name:      name,
		matcher:   m,
		matched:   evaluations.WithLabelValues(name, strconv.FormatBool(true)),
		unmatched: evaluations.WithLabelValues(name, strconv.FormatBool(false)),
	}
}

// Name returns the label the evaluations are counted under.
func (i *Instrumented[T]) Name() string {
	return i.name
}

// Unwrap returns the instrumented matcher.
func (i *Instrumented[T]) Unwrap() matcher.Matcher[T] {
	return i.matcher
}

func (i *Instrumented[T]) Describe() string {
	return i.matcher.Describe()
}

func (i *Instrumented[T]) String() string {
	return i.matcher.String()
}

func (i *Instrumented[T]) Matches(value T) bool {
	result := i.matcher.Matches(value)
	if result {
		i.matched.Inc()
	} else {
		i.unmatched.Inc()
	}
	return result
}

// EvaluationCount is the number of evaluations of a named matcher by result.
type EvaluationCount struct {
	Matched   uint64 `json:"matched"`
	Unmatched uint64 `json:"unmatched"`
}

// Total returns the number of evaluations regardless of result.
func (ec EvaluationCount) Total() uint64 {
	return ec.Matched + ec.Unmatched
}

// Evaluations returns the evaluations counted so far for name.
func Evaluations(name string) EvaluationCount {
	return EvaluationCount{
		Matched:   counterValue(evaluations.WithLabelValues(name, strconv.FormatBool(true))),
		Unmatched: counterValue(evaluations.WithLabelValues(name, strconv.FormatBool(false))),
	}
}

func counterValue(c prometheus.Counter) uint64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		log.DedupedWarningf(5, "metrics: failed to read counter: %s", err)
		return 0
	}
	return uint64(m.GetCounter().GetValue())
}
