package mmufw

import (
	"unsafe"

	"github.com/iansmith/a64fw/cpu"
	"github.com/iansmith/a64fw/linker"
	"github.com/iansmith/a64fw/memmap"
	"github.com/iansmith/a64fw/pagetable"
)

const (
	firmN2, firmN3   = 1, 8
	ttbr0N2, ttbr0N3 = 1, 8
	ttbr1N2, ttbr1N3 = 1, 4
)

const (
	sramAttrs         = pagetable.AF | pagetable.SHInner | pagetable.APRWNone | pagetable.AttrIdxNormal
	normalRWNoneXNPXN = pagetable.AF | pagetable.SHInner | pagetable.APRWNone | pagetable.AttrIdxNormal | pagetable.XN | pagetable.PXN
	kernelTextAttrs   = pagetable.AF | pagetable.SHInner | pagetable.APRR | pagetable.AttrIdxNormal
	ttStorageAttrs    = pagetable.AF | pagetable.SHInner | pagetable.APRWNone | pagetable.AttrIdxNonCacheable | pagetable.XN | pagetable.PXN
	deviceAttrs       = pagetable.AF | pagetable.SHOuter | pagetable.APRWRW | pagetable.AttrIdxDeviceNGnRE | pagetable.XN | pagetable.PXN | pagetable.NS

	// normalRWRWXNPXN grants EL0 the same read/write access as EL1: used for
	// the TTBR0 regions EL0 code actually touches directly (its own data/bss,
	// stack and heap). normalRWNoneXNPXN's AP=00 denies EL0 access entirely,
	// so it stays reserved for EL1/EL2/EL3-only mappings.
	normalRWRWXNPXN = pagetable.AF | pagetable.SHInner | pagetable.APRWRW | pagetable.AttrIdxNormal | pagetable.XN | pagetable.PXN

	// ROM is read-only at every EL and not executable at EL0, but remains
	// executable at firmware privilege levels.
	romAttrs = pagetable.AF | pagetable.SHInner | pagetable.APRR | pagetable.AttrIdxNormal | pagetable.XN
)

// mapIdentity maps [r.Start, r.End) VA=PA with attrs.
func mapIdentity(t *pagetable.Table, r memmap.Region, attrs uint64) {
	for pa := r.Start; pa < r.End; pa += memmap.PageSize {
		t.Map(pa, pa, attrs)
	}
}

// mapStacksWithGuard maps each CPU's stack slice within r with attrs, except
// the first page of every slice, which is left unmapped as a guard page.
// r.End is the numerically smaller boundary (stacks grow down); slice i
// spans [r.End+i*stackSize, r.End+(i+1)*stackSize).
func mapStacksWithGuard(t *pagetable.Table, r memmap.Region, cpuCount int, stackSize uint64, attrs uint64) {
	for i := 0; i < cpuCount; i++ {
		sliceStart := r.End + uint64(i)*stackSize
		sliceEnd := sliceStart + stackSize
		for pa := sliceStart + memmap.PageSize; pa < sliceEnd; pa += memmap.PageSize {
			t.Map(pa, pa, attrs)
		}
	}
}

// BuildFirmware constructs the firmware (EL2 or EL3) identity-mapped table
// over the storage at base. sym supplies the kernel text/data boundaries and
// the firmware per-core stack end: .data/.bss stops there, and each CPU's
// firmware stack slice beyond it is mapped with its first page left as a
// guard. el must be cpu.EL2 or cpu.EL3.
func BuildFirmware(base unsafe.Pointer, addr memmap.AddressMap, sym linker.Symbols, el cpu.EL) *pagetable.Table {
	t := pagetable.New(base, firmN2, firmN3)

	mapIdentity(t, addr.ROM, romAttrs)
	mapIdentity(t, addr.SRAM, sramAttrs)
	mapIdentity(t, memmap.Region{Start: sym.RAMStart, End: sym.DataStart}, kernelTextAttrs)
	mapIdentity(t, memmap.Region{Start: sym.DataStart, End: sym.StackFirmEnd}, normalRWNoneXNPXN)
	mapIdentity(t, addr.NoCache, normalRWNoneXNPXN)
	mapIdentity(t, addr.TTFirm, ttStorageAttrs)
	mapIdentity(t, addr.TTEL1TTBR0, ttStorageAttrs)
	mapIdentity(t, addr.TTEL1TTBR1, ttStorageAttrs)
	mapIdentity(t, addr.DeviceMem, deviceAttrs)
	mapStacksWithGuard(t, memmap.Region{End: sym.StackFirmEnd}, addr.CPUCount, memmap.StackSize, normalRWNoneXNPXN)

	if el == cpu.EL2 {
		// Workaround for early exception vectors running before the
		// firmware's own identity mapping is fully in place.
		t.Map(0, 0, normalRWNoneXNPXN)
	}

	return t
}

// EL1Tables holds the kernel's TTBR0 (user-space identity) and TTBR1
// (kernel-space identity) translation tables.
type EL1Tables struct {
	TTBR0 *pagetable.Table
	TTBR1 *pagetable.Table
}

// BuildEL1 constructs the EL1 TTBR0/TTBR1 tables over the storage at
// base0/base1.
func BuildEL1(base0, base1 unsafe.Pointer, addr memmap.AddressMap, sym linker.Symbols) EL1Tables {
	ttbr0 := pagetable.New(base0, ttbr0N2, ttbr0N3)
	mapIdentity(ttbr0, memmap.Region{Start: sym.RAMStart, End: sym.DataStart}, kernelTextAttrs)
	mapIdentity(ttbr0, memmap.Region{Start: sym.DataStart, End: sym.StackFirmEnd}, normalRWRWXNPXN)
	mapStacksWithGuard(ttbr0, addr.StackEL0, addr.CPUCount, memmap.StackSize, normalRWRWXNPXN)
	mapIdentity(ttbr0, addr.EL0Heap, normalRWRWXNPXN)
	mapIdentity(ttbr0, addr.DeviceMem, deviceAttrs)

	ttbr1 := pagetable.New(base1, ttbr1N2, ttbr1N3)
	mapStacksWithGuard(ttbr1, addr.StackEL1, addr.CPUCount, memmap.StackSize, normalRWNoneXNPXN)
	mapIdentity(ttbr1, addr.TTEL1TTBR0, ttStorageAttrs)
	mapIdentity(ttbr1, addr.TTEL1TTBR1, ttStorageAttrs)

	return EL1Tables{TTBR0: ttbr0, TTBR1: ttbr1}
}
