// Package panicking implements the fatal-error sink every unrecoverable
// condition in the core funnels through: print a fixed "kernel panic!"
// banner plus the call site and message to the diagnostic channel, then
// halt the core forever in low-power wait-for-event state. A kernel has
// nowhere to unwind to, so there is no return from Panic.
package panicking

import "github.com/iansmith/a64fw/cpu"

// Panic writes the panic banner, file, line and msg to w, then parks the
// calling core in WaitEvent forever. It never returns.
func Panic(w Writer, file string, line int, msg string) {
	report(w, file, line, msg)
	for {
		cpu.WaitEvent()
	}
}

// report writes the banner without halting, so tests can check its output.
func report(w Writer, file string, line int, msg string) {
	w.Puts("kernel panic!\n")
	w.Puts(file)
	w.Puts(":")
	w.Decimal(uint64(line))
	w.Puts(": ")
	w.Puts(msg)
	w.Puts("\n")
}

// Writer is the minimal diagnostic surface Panic needs; diag.Writer
// satisfies it.
type Writer interface {
	Puts(s string)
	Decimal(v uint64)
}
