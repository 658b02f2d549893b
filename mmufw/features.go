package mmufw

// Features holds what DetectFeatures extracted from ID_AA64MMFR0_EL1.
type Features struct {
	PARange uint64 // field [3:0]
}

// DetectFeatures verifies the core can support this module's fixed
// translation layout: at least 36 bits of physical address space and 64 KiB
// granule support. On failure it reports which check failed via msg and
// returns ok=false; the caller must leave translation disabled.
func DetectFeatures(mmfr0 uint64) (f Features, msg string, ok bool) {
	parange := mmfr0 & 0xf
	if parange < 1 {
		return Features{}, "ERROR: 36 bit address space not supported", false
	}
	if (mmfr0>>24)&0xf != 0 {
		return Features{}, "ERROR: 64KiB granule not supported", false
	}
	return Features{PARange: parange}, "", true
}
