package lock

import (
	"runtime"
	"sync"
	"testing"
)

// TestSpinlockMutualExclusion runs 4 goroutines under GOMAXPROCS(4) as a
// stand-in for 4 cores, each doing 100,000 acquire/increment/release cycles
// on a single shared word guarded by one TicketSpinlock.
func TestSpinlockMutualExclusion(t *testing.T) {
	prev := runtime.GOMAXPROCS(4)
	defer runtime.GOMAXPROCS(prev)

	const cores = 4
	const cycles = 100000

	var l TicketSpinlock
	var shared uint64

	var wg sync.WaitGroup
	wg.Add(cores)
	for c := 0; c < cores; c++ {
		go func() {
			defer wg.Done()
			for i := 0; i < cycles; i++ {
				g := l.Acquire()
				shared++
				g.Release()
			}
		}()
	}
	wg.Wait()

	if want := uint64(cores * cycles); shared != want {
		t.Fatalf("shared = %d, want %d", shared, want)
	}
}

func TestSpinlockSingleAcquireRelease(t *testing.T) {
	var l TicketSpinlock
	g := l.Acquire()
	if l.word == 0 {
		t.Fatal("word not set after Acquire")
	}
	g.Release()
	if l.word != 0 {
		t.Fatal("word not cleared after Release")
	}
}
