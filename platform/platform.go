// Package platform names the compile-time physical memory layout of the
// board the firmware boots on: ROM, on-chip SRAM, DRAM base and the
// memory-mapped I/O window, plus the CPU count used to size every per-core
// table and stack the rest of the core computes.
//
// These are Allwinner A64 constants, the concrete instantiation used
// throughout the rest of the module's tests and examples.
package platform

import "github.com/iansmith/a64fw/cpu"

const (
	RomStart = 0x00000000
	RomEnd   = 0x00010000

	SramStart = 0x00010000
	SramEnd   = 0x00054000

	DeviceMemStart = 0x01000000
	DeviceMemEnd   = 0x02000000

	DramBase = 0x40000000

	// CoreCount is the number of CPU cores the firmware brings up; the A64
	// is a quad-core Cortex-A53 part.
	CoreCount = 4
)

// CorePos returns a dense 0..CoreCount-1 index for the calling core, derived
// from the Aff0 field of MPIDR_EL1. It panics if the hardware reports an
// affinity outside the configured core count, since that means CoreCount is
// wrong for the board actually running.
func CorePos() int {
	return corePos(cpu.AffinityLv0())
}

func corePos(affinityLv0 uint64) int {
	if affinityLv0 >= CoreCount {
		panic("platform: affinity Aff0 out of range for CoreCount")
	}
	return int(affinityLv0)
}
