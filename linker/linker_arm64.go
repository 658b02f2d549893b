//go:build arm64

package linker

// linkerProvider reads section boundaries from symbols the linker script
// defines; the values themselves come from asm-declared accessors, one per
// symbol, dispatched from Go.

//go:noescape
func ramStart() uint64

//go:noescape
func dataStart() uint64

//go:noescape
func stackFirmEnd() uint64

type linkerProvider struct{}

// Script is the Provider that reads the real linker-script symbols. It must
// only be used once the image has actually been linked with the expected
// section names; there is no fallback value.
var Script Provider = linkerProvider{}

func (linkerProvider) Symbols() Symbols {
	return Symbols{
		RAMStart:     ramStart(),
		DataStart:    dataStart(),
		StackFirmEnd: stackFirmEnd(),
	}
}
