package lock

import (
	"runtime"
	"sync"
	"testing"
)

// TestBakeryAlternatingFairness checks that two cores alternately acquiring
// and releasing without contention each draw ticket 1: Release zeroes the
// previous holder's number, so no stale ticket raises the next one.
func TestBakeryAlternatingFairness(t *testing.T) {
	var tk BakeryTicket

	for i := 0; i < 10; i++ {
		core := i % 2
		g := tk.Acquire(core)
		if tk.number[core] != 1 {
			t.Fatalf("round %d: ticket number %d, want 1", i, tk.number[core])
		}
		g.Release()
	}
}

// TestBakeryMutualExclusion runs all bakeryCores goroutines concurrently,
// each doing repeated acquire/increment/release cycles on a shared counter,
// mirroring the spinlock stress test but through the bakery protocol.
func TestBakeryMutualExclusion(t *testing.T) {
	prev := runtime.GOMAXPROCS(bakeryCores)
	defer runtime.GOMAXPROCS(prev)

	const cycles = 20000

	var tk BakeryTicket
	var shared uint64

	var wg sync.WaitGroup
	wg.Add(bakeryCores)
	for c := 0; c < bakeryCores; c++ {
		core := c
		go func() {
			defer wg.Done()
			for i := 0; i < cycles; i++ {
				g := tk.Acquire(core)
				shared++
				g.Release()
			}
		}()
	}
	wg.Wait()

	if want := uint64(bakeryCores * cycles); shared != want {
		t.Fatalf("shared = %d, want %d", shared, want)
	}
}
