package diag

import "strconv"

// Buffer is an in-memory Writer used by tests in place of a real UART.
type Buffer struct {
	lines []byte
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Puts(s string) {
	b.lines = append(b.lines, s...)
}

func (b *Buffer) Hex(v uint64) {
	b.lines = append(b.lines, "0x"...)
	b.lines = append(b.lines, strconv.FormatUint(v, 16)...)
}

func (b *Buffer) Decimal(v uint64) {
	b.lines = append(b.lines, strconv.FormatUint(v, 10)...)
}

// String returns everything written so far.
func (b *Buffer) String() string {
	return string(b.lines)
}
