package panicking

import (
	"strings"
	"testing"

	"github.com/iansmith/a64fw/diag"
)

func TestReportFormatsBanner(t *testing.T) {
	buf := diag.NewBuffer()
	report(buf, "mmufw.go", 42, "36 bit address space not supported")

	out := buf.String()
	for _, want := range []string{"kernel panic!", "mmufw.go", "42", "36 bit address space not supported"} {
		if !strings.Contains(out, want) {
			t.Errorf("panic report missing %q, got %q", want, out)
		}
	}
}
