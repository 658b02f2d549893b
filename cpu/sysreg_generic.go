//go:build !arm64

package cpu

import "sync/atomic"

// fakeRegs stands in for the system register file on hosts with no MRS/MSR.
// Each slot is addressed by EL so mmufw's tests can program firmware and
// kernel state independently, exactly as the real EL2/EL3 and EL1 register
// banks are independent on hardware.
type fakeRegs struct {
	mair  [4]uint64
	tcr   [4]uint64
	ttbr0 [4]uint64
	ttbr1 uint64
	sctlr [4]uint64
}

var (
	regs  fakeRegs
	mmfr0 uint64 = 0x0000000000001124 // PARange=4 (44-bit), 64K granule supported
)

// SetTestMMFR0 overrides the value MMFR0 reports. Build-tag gated to
// non-arm64 hosts so feature-detection failure paths in the MMU initializer
// can be exercised without real hardware that lacks 64 KiB granule support.
func SetTestMMFR0(v uint64) {
	atomic.StoreUint64(&mmfr0, v)
}

func readMMFR0() uint64 {
	return atomic.LoadUint64(&mmfr0)
}

func readMair(el EL) uint64     { return regs.mair[el] }
func writeMair(el EL, v uint64) { regs.mair[el] = v }

func readTcr(el EL) uint64     { return regs.tcr[el] }
func writeTcr(el EL, v uint64) { regs.tcr[el] = v }

func readTtbr0(el EL) uint64     { return regs.ttbr0[el] }
func writeTtbr0(el EL, v uint64) { regs.ttbr0[el] = v }

func readTtbr1El1() uint64     { return regs.ttbr1 }
func writeTtbr1El1(v uint64) { regs.ttbr1 = v }

func readSctlr(el EL) uint64     { return regs.sctlr[el] }
func writeSctlr(el EL, v uint64) { regs.sctlr[el] = v }
