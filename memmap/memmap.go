// Package memmap deterministically carves the physical region beginning at
// the linker-provided free-memory start into the sub-regions the rest of the
// core needs: no-cache scratch, firmware and kernel translation tables,
// per-core stacks, and the EL0 heap.
package memmap

import "github.com/iansmith/a64fw/diag"

// PageSize is the 64 KiB granule every region boundary is a multiple of.
const PageSize = 0x10000

const (
	ttFirmPages  = 9 // 1 L2 + 8 L3
	ttTTBR0Pages = 9 // 1 L2 + 8 L3
	ttTTBR1Pages = 5 // 1 L2 + 4 L3

	// StackPages is the per-CPU stack allotment: 32 pages = 2 MiB.
	StackPages = 32
	StackSize  = StackPages * PageSize

	heapPages = 1024 // 64 MiB
)

// Region is a half-open byte range [Start, End).
type Region struct {
	Start uint64
	End   uint64
}

// Len reports the region's size in bytes.
func (r Region) Len() uint64 { return r.End - r.Start }

// AddressMap is the single process-wide layout computed once by Plan before
// MMU enable and never mutated afterward.
type AddressMap struct {
	NoCache     Region
	TTFirm      Region
	TTEL1TTBR0  Region
	TTEL1TTBR1  Region
	StackEL1    Region // End is numerically smaller: stacks grow down.
	StackEL0    Region
	EL0Heap     Region
	ROM         Region
	SRAM        Region
	DeviceMem   Region
	StackSize   uint64
	CPUCount    int
}

// PlatformDescriptor supplies the ROM/SRAM/device ranges Plan copies
// unchanged into the resulting AddressMap; package platform satisfies it
// with its compile-time constants.
type PlatformDescriptor struct {
	RomStart, RomEnd             uint64
	SramStart, SramEnd           uint64
	DeviceMemStart, DeviceMemEnd uint64
}

// Plan deterministically carves freeStart into the layout described in the
// package doc, for a board running cpuCount cores. It performs no I/O and
// has no dependency on load order: calling it twice with identical inputs
// yields byte-identical output.
func Plan(freeStart uint64, cpuCount int, desc PlatformDescriptor) AddressMap {
	noCache := Region{freeStart, freeStart + uint64(cpuCount)*PageSize}
	ttFirm := Region{noCache.End, noCache.End + ttFirmPages*PageSize}
	ttTTBR0 := Region{ttFirm.End, ttFirm.End + ttTTBR0Pages*PageSize}
	ttTTBR1 := Region{ttTTBR0.End, ttTTBR0.End + ttTTBR1Pages*PageSize}

	perCoreStacks := uint64(cpuCount) * StackSize
	stackEL1 := Region{ttTTBR1.End + perCoreStacks, ttTTBR1.End}
	stackEL0 := Region{stackEL1.Start + perCoreStacks, stackEL1.Start}
	heap := Region{stackEL0.Start, stackEL0.Start + heapPages*PageSize}

	return AddressMap{
		NoCache:    noCache,
		TTFirm:     ttFirm,
		TTEL1TTBR0: ttTTBR0,
		TTEL1TTBR1: ttTTBR1,
		StackEL1:   stackEL1,
		StackEL0:   stackEL0,
		EL0Heap:    heap,
		ROM:        Region{desc.RomStart, desc.RomEnd},
		SRAM:       Region{desc.SramStart, desc.SramEnd},
		DeviceMem:  Region{desc.DeviceMemStart, desc.DeviceMemEnd},
		StackSize:  StackSize,
		CPUCount:   cpuCount,
	}
}

// Dump prints every computed region to w as a boot-time diagnostic.
func (m AddressMap) Dump(w diag.Writer) {
	dumpRegion(w, "no_cache", m.NoCache)
	dumpRegion(w, "tt_firm", m.TTFirm)
	dumpRegion(w, "tt_el1_ttbr0", m.TTEL1TTBR0)
	dumpRegion(w, "tt_el1_ttbr1", m.TTEL1TTBR1)
	dumpRegion(w, "stack_el1", Region{m.StackEL1.End, m.StackEL1.Start})
	dumpRegion(w, "stack_el0", Region{m.StackEL0.End, m.StackEL0.Start})
	dumpRegion(w, "el0_heap", m.EL0Heap)
	dumpRegion(w, "rom", m.ROM)
	dumpRegion(w, "sram", m.SRAM)
	dumpRegion(w, "device", m.DeviceMem)
}

func dumpRegion(w diag.Writer, name string, r Region) {
	w.Puts(name)
	w.Puts(": [")
	w.Hex(r.Start)
	w.Puts(", ")
	w.Hex(r.End)
	w.Puts(")\n")
}
