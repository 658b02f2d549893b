// Package boot sequences a CPU from reset: the master core (index 0) plans
// the address map, builds and enables the MMU, brings up platform drivers
// and drops to EL1; every other core only re-programs its own MMU registers
// against the tables the master already built, then waits for work.
package boot

import (
	"unsafe"

	"github.com/iansmith/a64fw/cpu"
	"github.com/iansmith/a64fw/diag"
	"github.com/iansmith/a64fw/linker"
	"github.com/iansmith/a64fw/memmap"
	"github.com/iansmith/a64fw/mmufw"
	"github.com/iansmith/a64fw/panicking"
)

// Drivers brings up the platform-device external collaborators (clock
// tree, GIC, UART hardware) that are out of scope for this module; boot only
// depends on the interface.
type Drivers interface {
	EarlyInit()
	Init()
}

// PSCI is the power-state coordination interface, configured once by the
// master core when running at EL3.
type PSCI interface {
	Init()
}

// SecureContext configures EL3-only state before dropping to lower
// Exception Levels.
type SecureContext interface {
	InitSecure()
	InitEL2Regs()
}

// ELTransition performs the privileged drop from EL3 or EL2 down to EL1.
type ELTransition interface {
	EL3ToEL1()
	EL2ToEL1()
}

// TableStorage names where the master should build each translation table;
// the caller (the linker script, in practice) owns the backing memory.
type TableStorage struct {
	Firmware unsafe.Pointer
	TTBR0    unsafe.Pointer
	TTBR1    unsafe.Pointer
}

// Sequencer holds everything boot needs from the rest of the core and from
// the platform-device external collaborators.
type Sequencer struct {
	Writer   diag.Writer
	Drivers  Drivers
	PSCI     PSCI
	Secure   SecureContext
	ELTrans  ELTransition
	Platform memmap.PlatformDescriptor
	Linker   linker.Provider
	Storage  TableStorage
}

// State is what the master CPU computes once in Master; Slave consults it to
// re-program each other core's registers.
type State struct {
	Addr memmap.AddressMap
	Firm mmufw.Firmware
	EL1  mmufw.EL1Tables
}

// firmwareCapable reports whether el can run the firmware table-building
// path; EL1 and EL0 have already dropped below the level that can program
// TTBR0_EL2/EL3, so the master sequencer aborts instead.
func firmwareCapable(el cpu.EL) bool {
	return el == cpu.EL2 || el == cpu.EL3
}

// Master runs the full bring-up on core 0: plans the address map, builds
// and enables the MMU, brings up drivers, and (per the running Exception
// Level) drops to EL1. It returns the computed State for Slave to reuse, or
// ok=false if MMU feature detection failed.
func (s *Sequencer) Master(freeStart uint64, cpuCount int) (state State, ok bool) {
	addr := memmap.Plan(freeStart, cpuCount, s.Platform)
	addr.Dump(s.Writer)

	sym := s.Linker.Symbols()
	firmEL := cpu.CurrentEL()
	if !firmwareCapable(firmEL) {
		panicking.Panic(s.Writer, "boot.go", 92, "master entered below EL2")
	}

	firm, el1, ok := mmufw.Init(s.Writer, s.Storage.Firmware, s.Storage.TTBR0, s.Storage.TTBR1, addr, sym, firmEL)
	if !ok {
		return State{}, false
	}

	s.Drivers.EarlyInit()
	s.Drivers.Init()

	switch firmEL {
	case cpu.EL3:
		s.Secure.InitSecure()
		s.Secure.InitEL2Regs()
		s.PSCI.Init()
		s.ELTrans.EL3ToEL1()
	case cpu.EL2:
		s.Writer.Puts("WARNING: entered at EL2, skipping EL3 secure setup\n")
		s.ELTrans.EL2ToEL1()
	}

	return State{Addr: addr, Firm: firm, EL1: el1}, true
}

// Slave re-programs this core's MMU registers from the tables the master
// already built, then returns: callers park the core waiting for work.
func (s *Sequencer) Slave(state State, parange uint64) {
	mmufw.SetRegs(state.Firm, state.EL1, s.Storage.Firmware, s.Storage.TTBR0, s.Storage.TTBR1, parange)
}
