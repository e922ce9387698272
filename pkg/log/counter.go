package log

import "sync"

// counter tracks how often each deduplicated log format has been seen.
type counter struct {
	mu   sync.Mutex
	seen map[string]int
}

func newCounter() *counter {
	return &counter{seen: map[string]int{}}
}

func (ctr *counter) count(key string) int {
	ctr.mu.Lock()
	defer ctr.mu.Unlock()
	return ctr.seen[key]
}

func (ctr *counter) delete(key string) {
	ctr.mu.Lock()
	delete(ctr.seen, key)
	ctr.mu.Unlock()
}

func (ctr *counter) increment(key string) int {
	ctr.mu.Lock()
	defer ctr.mu.Unlock()
	ctr.seen[key]++
	return ctr.seen[key]
}

// admit records one more occurrence of key and reports whether it should be
// logged under limit, and whether this occurrence is the last one logged.
func (ctr *counter) admit(key string, limit int) (ok bool, last bool) {
	n := ctr.increment(key)
	return n <= limit, n == limit
}
