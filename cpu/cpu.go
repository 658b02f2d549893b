// Package cpu provides the AArch64 intrinsics the rest of the core is built
// on: barriers, the WFE/SEV event pair, and reads of the current Exception
// Level and core affinity. It holds no state and every function here must
// compile to a single architectural instruction (or a short, fixed sequence
// of them) on arm64.
//
// A pure-Go fallback (cpu_generic.go) backs every function on non-arm64
// GOARCH so the rest of the module can be built and tested on a development
// host; it is not a substitute for the real barriers and must never be
// linked into a firmware image.
package cpu

// EL identifies an AArch64 Exception Level.
type EL uint8

const (
	EL0 EL = 0
	EL1 EL = 1
	EL2 EL = 2
	EL3 EL = 3
)

// CurrentEL returns the Exception Level the calling core is executing at.
func CurrentEL() EL {
	return currentEL()
}

// AffinityLv0 returns the Aff0 field of MPIDR_EL1: a dense 0..CORE_COUNT-1
// index for the calling core on the platforms this core targets.
func AffinityLv0() uint64 {
	return affinityLv0()
}

// Dmb issues a full inner-shareable data memory barrier (dmb ish).
func Dmb() {
	dmb()
}

// DmbSt issues an inner-shareable store-store barrier (dmb ishst).
func DmbSt() {
	dmbSt()
}

// Dsb issues a full inner-shareable data synchronization barrier (dsb ish).
func Dsb() {
	dsb()
}

// DsbSy issues a system-wide data synchronization barrier (dsb sy).
func DsbSy() {
	dsbSy()
}

// Isb issues an instruction synchronization barrier.
func Isb() {
	isb()
}

// SendEvent wakes cores parked in WaitEvent (sev).
func SendEvent() {
	sendEvent()
}

// WaitEvent parks the calling core in low-power wait-for-event state until
// woken by SendEvent, an interrupt, or a debug event (wfe).
func WaitEvent() {
	waitEvent()
}
