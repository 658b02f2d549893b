//go:build !arm64

package cpu

import (
	"runtime"
	"sync/atomic"
)

// testEL lets package-level tests on non-arm64 hosts simulate running at a
// particular Exception Level; production code never touches this.
var testEL int32 = int32(EL1)

// SetTestEL overrides the value CurrentEL reports. Build-tag gated to
// non-arm64 hosts: on the real target the Exception Level is whatever the
// hardware put the core in and cannot be spoofed.
func SetTestEL(el EL) {
	atomic.StoreInt32(&testEL, int32(el))
}

func currentEL() EL {
	return EL(atomic.LoadInt32(&testEL))
}

func affinityLv0() uint64 {
	return 0
}

// The barriers and event hints have no meaningful effect on a host process;
// they are implemented as no-ops so package lock and friends can be built
// and exercised with `go test` away from real hardware. WaitEvent yields the
// goroutine instead of trapping to WFE so spin loops in tests don't starve
// the Go scheduler.
func dmb()       {}
func dmbSt()     {}
func dsb()       {}
func dsbSy()     {}
func isb()       {}
func sendEvent() {}
func waitEvent() { runtime.Gosched() }
