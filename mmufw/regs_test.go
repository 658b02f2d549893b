package mmufw

import (
	"testing"

	"github.com/iansmith/a64fw/cpu"
)

func TestMairConstant(t *testing.T) {
	if Mair != 0x0000000000440400|0xFF {
		t.Fatalf("Mair = %#x", Mair)
	}
	if Mair != 0x00000000004404FF {
		t.Fatalf("Mair = %#x, want 0x00000000004404FF", Mair)
	}
}

func TestDetectFeatures(t *testing.T) {
	if _, _, ok := DetectFeatures(0x0); ok {
		t.Fatal("DetectFeatures(0) = ok, want failure")
	}
	f, _, ok := DetectFeatures(0x0000000000001124)
	if !ok {
		t.Fatal("DetectFeatures with PARange=4, granule ok failed")
	}
	if f.PARange != 4 {
		t.Fatalf("PARange = %d, want 4", f.PARange)
	}
	if _, msg, ok := DetectFeatures(0x0000000001001124); ok || msg == "" {
		t.Fatalf("DetectFeatures with granule bit set: ok=%v msg=%q", ok, msg)
	}
}

func TestSctlrSetsAndClearsBits(t *testing.T) {
	current := uint64(0)
	v := Sctlr(current, cpu.EL1)
	if v&sctlrM == 0 || v&sctlrC == 0 || v&sctlrI == 0 || v&sctlrDSSBS == 0 {
		t.Fatalf("Sctlr(0, EL1) = %#x, missing required set bits", v)
	}
	if v&sctlrA != 0 || v&sctlrSA != 0 || v&sctlrWXN != 0 || v&sctlrEE != 0 || v&sctlrSA0 != 0 {
		t.Fatalf("Sctlr(0, EL1) = %#x, has bits that should be clear", v)
	}

	v2 := Sctlr(0, cpu.EL2)
	if v2&sctlrSA0 != 0 {
		t.Fatalf("Sctlr(0, EL2) touched SA0, should only clear for EL1")
	}
}
