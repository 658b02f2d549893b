package lock

import "github.com/iansmith/a64fw/cpu"

// bakeryCores is the width of the ticket arrays; it mirrors the platform's
// core count rather than importing package platform directly so lock has no
// dependency on a concrete board descriptor.
const bakeryCores = 4

// BakeryTicket is an N-core Lamport bakery lock. The zero value is a valid,
// unlocked ticket. Unlike TicketSpinlock it needs no atomic primitive: mutual
// exclusion follows from the lexicographic (number, core) tiebreak as long as
// aligned word loads/stores are single-copy atomic, which holds even on
// cores with caches/MMU disabled.
type BakeryTicket struct {
	entering [bakeryCores]bool
	number   [bakeryCores]uint64
}

// BakeryGuard is held while the critical section protected by a BakeryTicket
// is active for core Core.
type BakeryGuard struct {
	t    *BakeryTicket
	core int
}

// Acquire runs the bakery protocol for the calling core. Core identifies
// which ticket slot belongs to the caller; on real hardware this is
// cpu.AffinityLv0() by way of platform.CorePos(), passed in explicitly here
// because a host process has no equivalent of per-core affinity to read.
func (t *BakeryTicket) Acquire(core int) *BakeryGuard {
	t.entering[core] = true
	t.number[core] = 1 + t.maxNumber()
	t.entering[core] = false

	cpu.Dmb()

	for i := 0; i < bakeryCores; i++ {
		for t.entering[i] {
			cpu.WaitEvent()
		}
		for t.number[i] != 0 && less(t.number[i], i, t.number[core], core) {
			cpu.WaitEvent()
		}
	}
	return &BakeryGuard{t: t, core: core}
}

// Release drops the guard, freeing the core's ticket slot for reuse.
func (g *BakeryGuard) Release() {
	g.t.number[g.core] = 0
}

func (t *BakeryTicket) maxNumber() uint64 {
	var max uint64
	for _, n := range t.number {
		if n > max {
			max = n
		}
	}
	return max
}

// less implements the lexicographic tiebreak (number, core) < (otherNumber, otherCore).
func less(number uint64, core int, otherNumber uint64, otherCore int) bool {
	if number != otherNumber {
		return number < otherNumber
	}
	return core < otherCore
}
