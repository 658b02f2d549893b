package nocache

import (
	"testing"
	"unsafe"

	"github.com/iansmith/a64fw/memmap"
	"github.com/iansmith/a64fw/platform"
)

func TestSlotForCoreDistinctAddresses(t *testing.T) {
	buf := make([]byte, platform.CoreCount*memmap.PageSize)
	base := uint64(uintptr(unsafe.Pointer(&buf[0])))

	seen := map[uint64]bool{}
	for c := 0; c < platform.CoreCount; c++ {
		p := SlotForCore[uint64](base, c)
		addr := uint64(uintptr(unsafe.Pointer(p)))
		if seen[addr] {
			t.Fatalf("core %d reused address %#x", c, addr)
		}
		seen[addr] = true
	}
}

func TestSlotForCoreRoundTrip(t *testing.T) {
	buf := make([]byte, platform.CoreCount*memmap.PageSize)
	base := uint64(uintptr(unsafe.Pointer(&buf[0])))

	type handshake struct {
		ready uint64
	}

	p0 := SlotForCore[handshake](base, 0)
	p0.ready = 42
	p1 := SlotForCore[handshake](base, 1)
	p1.ready = 7

	if p0.ready != 42 {
		t.Fatalf("core 0 slot corrupted: %d", p0.ready)
	}
	if p1.ready != 7 {
		t.Fatalf("core 1 slot corrupted: %d", p1.ready)
	}
}
