package compiler

import (
	"fmt"
	"time"

	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/matcher"
	"github.com/opencost/matchkit/pkg/matcher/ast"
	"github.com/patrickmn/go-cache"
)

// DefaultCacheExpiration is how long a compiled expression is kept when no
// expiration is given to NewCachedCompiler.
const DefaultCacheExpiration = 5 * time.Minute

// CachedCompiler compiles expressions through a MatchCompiler and keeps the
// results, so repeated expressions share one matcher tree. Entries are keyed by
// the expression as given and by its canonical form, which lets "a && b" reuse
// the tree compiled for "a and b".
type CachedCompiler[T any] struct {
	compiler *MatchCompiler[T]
	parser   ast.FilterParser
	cache    *cache.Cache
}

// NewCachedCompiler wraps compiler with a cache whose entries expire after
// expiration. A non-positive expiration uses DefaultCacheExpiration.
func NewCachedCompiler[T any](compiler *MatchCompiler[T], expiration time.Duration) *CachedCompiler[T] {
	if expiration <= 0 {
		expiration = DefaultCacheExpiration
	}

	return &CachedCompiler[T]{
		compiler: compiler,
		parser:   ast.NewFilterParser(),
		cache:    cache.New(expiration, 2*expiration),
	}
}

// CompileString returns the matcher for expr, compiling it on a cache miss.
// Failed compilations are not cached.
func (cc *CachedCompiler[T]) CompileString(expr string) (matcher.Matcher[T], error) {
	if m, ok := cc.get(expr); ok {
		log.Tracef("compiler: cache hit for %q", expr)
		return m, nil
	}

	tree, err := cc.parser.Parse(expr)
	if err != nil {
		return nil, err
	}

	canonical := ast.ToExpression(tree)
	if m, ok := cc.get(canonical); ok {
		log.Tracef("compiler: cache hit for %q as %q", expr, canonical)
		cc.cache.SetDefault(expr, m)
		return m, nil
	}

	m, err := cc.compiler.Compile(tree)
	if err != nil {
		return nil, fmt.Errorf("compiling expression: %w", err)
	}

	cc.cache.SetDefault(canonical, m)
	cc.cache.SetDefault(expr, m)

	return m, nil
}

func (cc *CachedCompiler[T]) get(key string) (matcher.Matcher[T], bool) {
	v, ok := cc.cache.Get(key)
	if !ok {
		return nil, false
	}

	m, ok := v.(matcher.Matcher[T])
	return m, ok
}

// Len returns the number of cached entries, counting aliases separately.
func (cc *CachedCompiler[T]) Len() int {
	return cc.cache.ItemCount()
}

// Flush drops every cached matcher.
func (cc *CachedCompiler[T]) Flush() {
	cc.cache.Flush()
}
