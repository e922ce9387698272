package log

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCounter_Ops(t *testing.T) {
	ctr := newCounter()

	if num := ctr.count("something"); num != 0 {
		t.Fatalf("counter: count: expected %d; found %d", 0, num)
	}

	for i := 1; i <= 25; i++ {
		if num := ctr.increment("something"); num != i {
			t.Fatalf("counter: increment: expected %d; found %d", i, num)
		}
	}

	if num := ctr.count("other"); num != 0 {
		t.Fatalf("counter: keys must be independent, found %d", num)
	}

	ctr.delete("something")
	if num := ctr.count("something"); num != 0 {
		t.Fatalf("counter: count after delete: expected %d; found %d", 0, num)
	}
}

func TestCounter_Admit(t *testing.T) {
	ctr := newCounter()

	for i := 1; i <= 5; i++ {
		ok, last := ctr.admit("key", 3)
		switch {
		case i < 3:
			if !ok || last {
				t.Fatalf("occurrence %d: expected ok and not last, got ok=%t last=%t", i, ok, last)
			}
		case i == 3:
			if !ok || !last {
				t.Fatalf("occurrence %d: expected ok and last, got ok=%t last=%t", i, ok, last)
			}
		default:
			if ok || last {
				t.Fatalf("occurrence %d: expected suppression, got ok=%t last=%t", i, ok, last)
			}
		}
	}
}

func TestCounter_Threadsafety(t *testing.T) {
	ctr := newCounter()

	var wg sync.WaitGroup
	var admitted, lasts int64

	// Run 100 goroutines, admitting 1000 times each as fast as they can
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 1; j <= 1000; j++ {
				ok, last := ctr.admit("shared", 10)
				if ok {
					atomic.AddInt64(&admitted, 1)
				}
				if last {
					atomic.AddInt64(&lasts, 1)
				}
			}
		}()
	}

	wg.Wait()

	if admitted != 10 || lasts != 1 {
		t.Fatalf("expected 10 admitted and 1 last, got %d and %d", admitted, lasts)
	}
	if num := ctr.count("shared"); num != 100*1000 {
		t.Fatalf("expected %d occurrences, got %d", 100*1000, num)
	}
}
