// Package diag defines the diagnostic output channel the core writes to
// during early boot, and a buffering test double standing in for the real
// UART external collaborator (out of scope per the platform-device
// boundary: the hardware register pokes that drive an actual serial port are
// never implemented here).
package diag

// Writer is the diagnostic sink every component that prints boot-time
// messages is given; nothing in the core constructs a concrete UART.
type Writer interface {
	Puts(s string)
	Hex(v uint64)
	Decimal(v uint64)
}
