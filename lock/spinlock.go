// Package lock implements the two mutual-exclusion primitives the core
// relies on before higher-level synchronization exists: an exclusive-monitor
// ticket-free spinlock and an N-core Lamport bakery lock. Both are RAII-style
// guards: Go has no destructors, so the guard's Release method must be called
// explicitly (typically via defer).
package lock

import "github.com/iansmith/a64fw/cpu"

// TicketSpinlock guards a single shared word with the architecture's
// exclusive-monitor instructions. Zero value is an unlocked lock.
type TicketSpinlock struct {
	word uint64
}

// SpinGuard is held while the critical section protected by a TicketSpinlock
// is active. It is not safe to move to another core; Release must run on the
// same core that acquired it.
type SpinGuard struct {
	l *TicketSpinlock
}

// Acquire blocks until the caller holds exclusive ownership of the lock's
// word. It never returns without the lock held: no timeout, no try-acquire.
//
// A relaxed load is checked first so a contended lock doesn't hammer the
// exclusive monitor while another core holds it; only once the word reads
// zero does the loop attempt the load-exclusive/store-exclusive pair that
// actually claims it.
func (l *TicketSpinlock) Acquire() *SpinGuard {
	for {
		if loadRelaxed(&l.word) != 0 {
			cpu.WaitEvent()
			continue
		}
		if tryClaim(&l.word) {
			return &SpinGuard{l: l}
		}
	}
}

// Release drops the guard, making the lock available to other cores and
// waking anyone parked in WaitEvent.
func (g *SpinGuard) Release() {
	storeRelease(&g.l.word, 0)
	cpu.DmbSt()
	cpu.SendEvent()
}
