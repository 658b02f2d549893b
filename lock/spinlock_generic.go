//go:build !arm64

package lock

import "sync/atomic"

// On hosts without the exclusive-monitor instructions, loadRelaxed/tryClaim/
// storeRelease are backed by sync/atomic; CAS stands in for the
// ldaxr/stlxr pair.

func loadRelaxed(word *uint64) uint64 {
	return atomic.LoadUint64(word)
}

func tryClaim(word *uint64) bool {
	return atomic.CompareAndSwapUint64(word, 0, 1)
}

func storeRelease(word *uint64, v uint64) {
	atomic.StoreUint64(word, v)
}
