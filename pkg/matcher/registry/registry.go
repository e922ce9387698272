// Package registry holds named matchers which can be referenced from matcher
// expressions.
package registry

import (
	"sort"
	"sync"

	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/opencost/matchkit/pkg/matcher/ast"
	"github.com/opencost/matchkit/pkg/matcher/ops"
	"github.com/pkg/errors"
)

// ErrDuplicateName is returned when a name is registered twice.
var ErrDuplicateName = errors.New("matcher name already registered")

// ErrInvalidName is returned when a name could not be referenced from an
// expression.
var ErrInvalidName = errors.New("invalid matcher name")

// Registry maps names to matchers of T. It is safe for concurrent use.
type Registry[T any] struct {
	lock     sync.RWMutex
	matchers map[string]matcher.Matcher[T]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		matchers: make(map[string]matcher.Matcher[T]),
	}
}

// Register adds m under name. m may be a matcher.Matcher[T] or a
// matcher.Predicate[T]; any other value is rejected with an
// *ops.TypeMismatchError before it is stored.
func (r *Registry[T]) Register(name string, m any) error {
	if !ast.IsIdentifier(name) {
		return errors.Wrapf(ErrInvalidName, "registering %q", name)
	}

	mm, err := ops.AsMatcher[T](m)
	if err != nil {
		return errors.Wrapf(err, "registering %q", name)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.matchers[name]; ok {
		return errors.Wrapf(ErrDuplicateName, "registering %q", name)
	}

	r.matchers[name] = mm
	log.Tracef("registry: registered %s as %s", name, mm)

	return nil
}

// MustRegister is Register, panicking on error.
func (r *Registry[T]) MustRegister(name string, m any) {
	if err := r.Register(name, m); err != nil {
		panic(err)
	}
}

// Lookup returns the matcher registered under name.
func (r *Registry[T]) Lookup(name string) (matcher.Matcher[T], bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	m, ok := r.matchers[name]
	return m, ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.lock.RLock()
	names := make([]string, 0, len(r.matchers))
	for name := range r.matchers {
		names = append(names, name)
	}
	r.lock.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered matchers.
func (r *Registry[T]) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.matchers)
}
