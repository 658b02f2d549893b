package mmufw

import (
	"testing"
	"unsafe"

	"github.com/iansmith/a64fw/cpu"
	"github.com/iansmith/a64fw/diag"
	"github.com/iansmith/a64fw/linker"
	"github.com/iansmith/a64fw/memmap"
)

func testLayout(cpuCount int) (memmap.AddressMap, linker.Fake) {
	addr := memmap.Plan(0x40080000, cpuCount, memmap.PlatformDescriptor{
		RomStart:       0,
		RomEnd:         0x10000,
		SramStart:      0x10000,
		SramEnd:        0x54000,
		DeviceMemStart: 0x01000000,
		DeviceMemEnd:   0x02000000,
	})
	sym := linker.Fake{
		RAMStart:     0x40000000,
		DataStart:    0x40010000,
		StackFirmEnd: 0x40030000,
	}
	return addr, sym
}

func allocTableStorage(pages int) unsafe.Pointer {
	buf := make([]byte, pages*memmap.PageSize)
	return unsafe.Pointer(&buf[0])
}

// TestMMUDetectFailure checks that ID_AA64MMFR0_EL1[3:0]==0 makes Init fail
// and report the specific error.
func TestMMUDetectFailure(t *testing.T) {
	defer cpu.SetTestMMFR0(0x0000000000001124)
	cpu.SetTestMMFR0(0x0000000000000000)

	addr, sym := testLayout(4)
	buf := diag.NewBuffer()

	_, _, ok := Init(buf, allocTableStorage(9), allocTableStorage(9), allocTableStorage(5), addr, linker.Symbols(sym), cpu.EL2)
	if ok {
		t.Fatal("Init succeeded with PARange=0")
	}
	if got := buf.String(); got != "ERROR: 36 bit address space not supported\n" {
		t.Fatalf("Init error message = %q", got)
	}
}

func TestMMUDetectGranuleFailure(t *testing.T) {
	defer cpu.SetTestMMFR0(0x0000000000001124)
	cpu.SetTestMMFR0(0x0000000001001124) // PARange ok, granule bit set

	addr, sym := testLayout(4)
	buf := diag.NewBuffer()

	_, _, ok := Init(buf, allocTableStorage(9), allocTableStorage(9), allocTableStorage(5), addr, linker.Symbols(sym), cpu.EL2)
	if ok {
		t.Fatal("Init succeeded with granule bit set")
	}
	if got := buf.String(); got != "ERROR: 64KiB granule not supported\n" {
		t.Fatalf("Init error message = %q", got)
	}
}

// TestGuardPages checks that the first page of every CPU's EL1 stack slice
// is left unmapped, while the page after it is mapped.
func TestGuardPages(t *testing.T) {
	defer cpu.SetTestMMFR0(0x0000000000001124)
	cpu.SetTestMMFR0(0x0000000000001124)

	const cpuCount = 4
	addr, sym := testLayout(cpuCount)
	buf := diag.NewBuffer()

	_, el1, ok := Init(buf, allocTableStorage(9), allocTableStorage(9), allocTableStorage(5), addr, linker.Symbols(sym), cpu.EL2)
	if !ok {
		t.Fatalf("Init failed: %s", buf.String())
	}

	e := addr.StackEL1.End
	for i := 0; i < cpuCount; i++ {
		guard := e + uint64(i)*memmap.StackSize
		if got := el1.TTBR1.Read(guard); got != 0 {
			t.Errorf("guard page at %#x = %#x, want 0", guard, got)
		}
		mapped := guard + memmap.PageSize
		if got := el1.TTBR1.Read(mapped); got == 0 {
			t.Errorf("page after guard at %#x is unmapped", mapped)
		}
	}
}

func TestInitEnablesTranslation(t *testing.T) {
	defer cpu.SetTestMMFR0(0x0000000000001124)
	cpu.SetTestMMFR0(0x0000000000001124)

	addr, sym := testLayout(4)
	buf := diag.NewBuffer()

	_, _, ok := Init(buf, allocTableStorage(9), allocTableStorage(9), allocTableStorage(5), addr, linker.Symbols(sym), cpu.EL2)
	if !ok {
		t.Fatalf("Init failed: %s", buf.String())
	}
	if !Enabled(cpu.EL1) {
		t.Fatal("Enabled(EL1) = false after Init")
	}
}
