// Command memmapviz renders a planned memmap.AddressMap as a labeled PNG
// diagram: one box per region, stacked in address order, annotated with its
// name and byte range. It is a developer-facing artifact for sanity-checking
// a planned layout, not something the firmware itself runs.
package main

import (
	"flag"
	"fmt"
	"os"

	gg "github.com/fogleman/gg"

	"github.com/iansmith/a64fw/memmap"
)

const (
	boxWidth  = 640
	boxHeight = 48
	margin    = 16
	fontSize  = 14
)

type labeledRegion struct {
	name string
	r    memmap.Region
}

func regions(m memmap.AddressMap) []labeledRegion {
	return []labeledRegion{
		{"rom", m.ROM},
		{"sram", m.SRAM},
		{"device", m.DeviceMem},
		{"no_cache", m.NoCache},
		{"tt_firm", m.TTFirm},
		{"tt_el1_ttbr0", m.TTEL1TTBR0},
		{"tt_el1_ttbr1", m.TTEL1TTBR1},
		{"stack_el1", memmap.Region{Start: m.StackEL1.End, End: m.StackEL1.Start}},
		{"stack_el0", memmap.Region{Start: m.StackEL0.End, End: m.StackEL0.Start}},
		{"el0_heap", m.EL0Heap},
	}
}

func render(m memmap.AddressMap) *gg.Context {
	labels := regions(m)
	height := margin + len(labels)*(boxHeight+margin)

	ctx := gg.NewContext(boxWidth+2*margin, height)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()

	y := margin
	for i, lr := range labels {
		ctx.SetRGB(hue(i))
		ctx.DrawRectangle(float64(margin), float64(y), float64(boxWidth), float64(boxHeight))
		ctx.Fill()

		ctx.SetRGB(0, 0, 0)
		ctx.DrawRectangle(float64(margin), float64(y), float64(boxWidth), float64(boxHeight))
		ctx.Stroke()

		label := fmt.Sprintf("%-16s [%#010x, %#010x)  %d KiB", lr.name, lr.r.Start, lr.r.End, lr.r.Len()/1024)
		ctx.DrawString(label, margin+8, float64(y+boxHeight/2))

		y += boxHeight + margin
	}
	return ctx
}

// hue picks a distinct, legible fill color per region by index; plain
// round-robin is enough for the small, fixed region count this planner
// produces.
func hue(i int) (r, g, b float64) {
	palette := [][3]float64{
		{0.85, 0.90, 1.00},
		{0.90, 1.00, 0.85},
		{1.00, 0.95, 0.80},
		{1.00, 0.85, 0.85},
		{0.92, 0.85, 1.00},
	}
	c := palette[i%len(palette)]
	return c[0], c[1], c[2]
}

func main() {
	freeStart := flag.Uint64("free-start", 0x40080000, "free memory start address")
	cpuCount := flag.Int("cpu-count", 4, "number of CPU cores")
	out := flag.String("out", "memmap.png", "output PNG path")
	flag.Parse()

	desc := memmap.PlatformDescriptor{
		RomStart:       0x00000000,
		RomEnd:         0x00010000,
		SramStart:      0x00010000,
		SramEnd:        0x00054000,
		DeviceMemStart: 0x01000000,
		DeviceMemEnd:   0x02000000,
	}

	m := memmap.Plan(*freeStart, *cpuCount, desc)
	ctx := render(m)

	if err := ctx.SavePNG(*out); err != nil {
		fmt.Fprintln(os.Stderr, "memmapviz:", err)
		os.Exit(1)
	}
}
