// Package nocache gives each core a private, non-cacheable scratch slot for
// cross-core handshakes performed before coherent caching can be relied on.
package nocache

import (
	"unsafe"

	"github.com/iansmith/a64fw/memmap"
	"github.com/iansmith/a64fw/platform"
)

// Slot returns a pointer to T located at noCacheStart + 64 KiB*core_pos(),
// within the no_cache region the memory-map planner laid out. The caller
// must ensure sizeof(T) <= 64 KiB; there is no runtime check. Distinct cores
// read distinct slots by construction: no cross-core aliasing.
func Slot[T any](noCacheStart uint64) *T {
	return SlotForCore[T](noCacheStart, platform.CorePos())
}

// SlotForCore is Slot with the core index supplied explicitly rather than
// read from the hardware; it exists so the indexing arithmetic can be
// exercised in tests without real per-core affinity to read.
func SlotForCore[T any](noCacheStart uint64, core int) *T {
	addr := noCacheStart + uint64(core)*memmap.PageSize
	return (*T)(unsafe.Pointer(uintptr(addr)))
}
