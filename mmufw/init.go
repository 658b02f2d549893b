// Package mmufw builds the firmware (EL2/EL3) and kernel (EL1 TTBR0/TTBR1)
// translation tables and programs MAIR, TCR, TTBRn and SCTLR to enable
// translation at the appropriate Exception Level.
package mmufw

import (
	"unsafe"

	"github.com/iansmith/a64fw/cpu"
	"github.com/iansmith/a64fw/diag"
	"github.com/iansmith/a64fw/linker"
	"github.com/iansmith/a64fw/memmap"
	"github.com/iansmith/a64fw/pagetable"
)

// Firmware is the identity-mapped table active at the firmware Exception
// Level (EL2 or EL3) before the kernel's own EL1 tables take over.
type Firmware struct {
	Table *pagetable.Table
	EL    cpu.EL
}

// Init verifies the core's translation-related features, builds the
// firmware and EL1 tables over the supplied storage, and programs every
// register needed to enable translation at firmEL and at EL1.
//
// It returns ok=false without touching any register if feature detection
// fails, writing the specific reason to w.
func Init(
	w diag.Writer,
	baseFirm, base0, base1 unsafe.Pointer,
	addr memmap.AddressMap,
	sym linker.Symbols,
	firmEL cpu.EL,
) (fw Firmware, el1 EL1Tables, ok bool) {
	feat, msg, ok := DetectFeatures(cpu.MMFR0())
	if !ok {
		w.Puts(msg)
		w.Puts("\n")
		return Firmware{}, EL1Tables{}, false
	}

	firmTable := BuildFirmware(baseFirm, addr, sym, firmEL)
	tables := BuildEL1(base0, base1, addr, sym)

	ProgramFirmware(firmEL, uint64(uintptr(baseFirm)), feat.PARange)
	ProgramEL1(uint64(uintptr(base0)), uint64(uintptr(base1)), feat.PARange)

	return Firmware{Table: firmTable, EL: firmEL}, tables, true
}

// ProgramFirmware programs MAIR/TCR/TTBR0/SCTLR for el (EL2 or EL3), the
// single-TTBR variant, and enables translation.
func ProgramFirmware(el cpu.EL, tableBasePA uint64, parange uint64) {
	cpu.WriteMair(el, Mair)
	cpu.WriteTcr(el, TcrSingle(parange))
	cpu.WriteTtbr0(el, TTBR(tableBasePA))
	cpu.Dsb()
	cpu.Isb()

	cur := cpu.ReadSctlr(el)
	cpu.WriteSctlr(el, Sctlr(cur, el))
	cpu.DsbSy()
	cpu.Isb()
}

// ProgramEL1 programs MAIR/TCR/TTBR0/TTBR1/SCTLR for EL1, the dual-TTBR
// variant, and enables translation.
func ProgramEL1(tableBase0, tableBase1 uint64, parange uint64) {
	cpu.WriteMair(cpu.EL1, Mair)
	cpu.WriteTcr(cpu.EL1, TcrDual(parange))
	cpu.WriteTtbr0(cpu.EL1, TTBR(tableBase0))
	cpu.WriteTtbr1El1(TTBR(tableBase1))
	cpu.Dsb()
	cpu.Isb()

	cur := cpu.ReadSctlr(cpu.EL1)
	cpu.WriteSctlr(cpu.EL1, Sctlr(cur, cpu.EL1))
	cpu.DsbSy()
	cpu.Isb()
}

// SetRegs re-programs MAIR/TCR/TTBRn/SCTLR from already-built tables,
// without touching table memory. Slave CPUs call this instead of Init: the
// tables are shared, only each core's own register state needs setting up.
func SetRegs(fw Firmware, tables EL1Tables, baseFirm, base0, base1 unsafe.Pointer, parange uint64) {
	ProgramFirmware(fw.EL, uint64(uintptr(baseFirm)), parange)
	ProgramEL1(uint64(uintptr(base0)), uint64(uintptr(base1)), parange)
}
