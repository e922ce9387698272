package matcher

import "sync/atomic"

// Description is a write-once cell holding a matcher's description. The zero
// value is empty and ready to use. Matcher implementations embed or hold a
// Description and implement String as:
//
//	func (m *myMatcher) String() string { return m.desc.Load(m.Describe) }
//
// Once a value has been stored it never changes for the lifetime of the cell.
// Concurrent first loads may each run describe, but only one result is kept and
// every caller observes that result.
type Description struct {
	value atomic.Pointer[string]
}

// Load returns the cached description, computing it with describe on first use.
func (d *Description) Load(describe func() string) string {
	if s := d.value.Load(); s != nil {
		return *s
	}

	s := describe()
	if d.value.CompareAndSwap(nil, &s) {
		return s
	}

	// lost the race, return the published value
	return *d.value.Load()
}

// Loaded returns true once a description has been cached.
func (d *Description) Loaded() bool {
	return d.value.Load() != nil
}
