package mmufw

import "github.com/iansmith/a64fw/cpu"

// Mair is the single MAIR_ELx value shared by every EL this module
// programs: Attr0 Normal IWBWA/OWBWA, Attr1 Device-nGnRE, Attr2 Normal
// non-cacheable, matching pagetable's AttrIdx constants index-for-index.
const Mair = 0x0000000000440400 | 0xFF

const (
	tg0_64K = 0b01 << 14
	tg1_64K = 0b11 << 30

	shInner   = 0b11 << 12
	shInnerHi = 0b11 << 28

	irgnWBWA   = 0b01 << 8
	irgnWBWAHi = 0b01 << 24
	orgnWBWA   = 0b01 << 10
	orgnWBWAHi = 0b01 << 26

	t0szBits  = 22
	t1szShift = 16

	psShift  = 16
	ipsShift = 32

	// tcrRes1EL23 are the two bits TCR_EL2/TCR_EL3 define RES1 in the
	// non-E2H, single-TTBR register format this module programs.
	tcrRes1EL23 = 1<<31 | 1<<23
)

// TcrSingle builds TCR_EL2/TCR_EL3: single TTBR0, 64 KiB granule,
// inner-shareable Normal-WBWA, T0SZ=22, PS from the detected PARange.
func TcrSingle(parange uint64) uint64 {
	return t0szBits | irgnWBWA | orgnWBWA | shInner | tg0_64K | (parange << psShift) | tcrRes1EL23
}

// TcrDual builds TCR_EL1: identical attributes replicated across both
// TTBR0 and TTBR1 halves, T0SZ=T1SZ=22, IPS from the detected PARange.
//
// Unlike TCR_EL2/EL3, bits 31 and 23 are live fields here, not RES1: bit 31
// is the top bit of TG1 (already driven to 1 by tg1_64K), and bit 23 is
// EPD1, which must stay 0 or TTBR1 walks are disabled. No RES1 bits apply.
func TcrDual(parange uint64) uint64 {
	lo := uint64(t0szBits) | irgnWBWA | orgnWBWA | shInner | tg0_64K
	hi := uint64(t0szBits)<<t1szShift | irgnWBWAHi | orgnWBWAHi | shInnerHi | tg1_64K
	return lo | hi | (parange << ipsShift)
}

// TTBR builds a TTBRn_ELx value: the table base PA with CnP=1.
func TTBR(basePA uint64) uint64 {
	return basePA | 1
}

const (
	sctlrM     = 1 << 0
	sctlrA     = 1 << 1
	sctlrC     = 1 << 2
	sctlrSA    = 1 << 3
	sctlrSA0   = 1 << 4
	sctlrI     = 1 << 12
	sctlrWXN   = 1 << 19
	sctlrEE    = 1 << 25
	sctlrDSSBS = 1 << 44
)

// Sctlr computes the SCTLR_ELx value to write for enabling translation at
// el, starting from the register's current contents so reserved/implemented
// bits the hardware set at reset survive.
func Sctlr(current uint64, el cpu.EL) uint64 {
	v := current
	v |= sctlrM | sctlrC | sctlrI | sctlrDSSBS
	v &^= sctlrA | sctlrSA | sctlrWXN | sctlrEE
	if el == cpu.EL1 {
		v &^= sctlrSA0
	}
	return v
}

// Enabled reports whether translation is active at el: the M bit of
// SCTLR_ELx.
func Enabled(el cpu.EL) (on bool) {
	return cpu.ReadSctlr(el)&sctlrM != 0
}
