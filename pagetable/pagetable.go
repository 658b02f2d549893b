// Package pagetable builds and manipulates two-level, 64 KiB-granule
// stage-1 translation tables: one L2 table of 8192·N2 descriptors and one L3
// table of 8192·N3 descriptors, laid out contiguously in physical memory
// with L2 first. Only the subset of table shapes this core ever builds is
// supported: a single L2 page backing up to N3 L3 pages.
package pagetable

import "unsafe"

const (
	pageSize     = 0x10000 // 64 KiB
	entriesPerL2 = pageSize / 8
	entriesPerL3 = pageSize / 8

	typeTable = 0b11 // L2 descriptor pointing at an L3 table
	typePage  = 0b11 // L3 descriptor mapping a page

	paMask = ^uint64(0xFFFF) // page-aligned PA bits
)

// Attribute bits for L3 page descriptors, bit positions fixed by the
// architecture.
const (
	XN   = 1 << 54
	PXN  = 1 << 53
	CONT = 1 << 52
	DBM  = 1 << 51
	AF   = 1 << 10
	NS   = 1 << 5

	SHOuter = 0b10 << 8
	SHInner = 0b11 << 8

	APRWNone = 0b00 << 6
	APRWRW   = 0b01 << 6
	APRNone  = 0b10 << 6
	APRR     = 0b11 << 6

	AttrIdxNormal       = 0 << 2
	AttrIdxDeviceNGnRE  = 1 << 2
	AttrIdxNonCacheable = 2 << 2
)

// Table is a two-level translation table: L2 has n2 pages' worth of
// descriptors, L3 has n3 pages' worth, both backed by a single contiguous
// slice of memory starting at a 64 KiB-aligned base.
type Table struct {
	l2 []uint64
	l3 []uint64
	n3 int
}

// New zeroes n2 pages of L2 storage and n3 pages of L3 storage located
// contiguously starting at base (L2 first), and wires every L2 slot whose
// index is below n3 to the corresponding L3 page.
//
// base must be backed by at least (n2+n3)*64KiB of writable, identity
// accessible memory; New does not allocate it.
func New(base unsafe.Pointer, n2, n3 int) *Table {
	l2n := entriesPerL2 * n2
	l3n := entriesPerL3 * n3

	l2 := unsafe.Slice((*uint64)(base), l2n)
	l3Base := unsafe.Add(base, n2*pageSize)
	l3 := unsafe.Slice((*uint64)(l3Base), l3n)

	for i := range l2 {
		l2[i] = 0
	}
	for i := range l3 {
		l3[i] = 0
	}

	t := &Table{l2: l2, l3: l3, n3: n3}

	limit := l2n
	if n3 < limit {
		limit = n3
	}
	l3PA := uint64(uintptr(l3Base))
	for i := 0; i < limit; i++ {
		t.l2[i] = (l3PA + uint64(i)*entriesPerL3*8) | typeTable
	}
	return t
}

func indices(va uint64) (l2Idx, l3Idx int) {
	return int((va >> 29) & 8191), int((va >> 16) & 8191)
}

// Map writes the L3 descriptor for va to point at pa with the given
// attribute bits OR'd with the page-type tag. It panics if va's L2 index
// falls outside the table's configured L3 capacity: this builder never
// allocates L3 pages on demand.
func (t *Table) Map(va, pa uint64, attrs uint64) {
	l2Idx, l3Idx := indices(va)
	if l2Idx >= t.n3 {
		panic("pagetable: va maps outside configured L3 capacity")
	}
	t.l3[l2Idx*entriesPerL3+l3Idx] = (pa & paMask) | attrs | typePage
}

// Unmap clears the L3 descriptor for va.
func (t *Table) Unmap(va uint64) {
	l2Idx, l3Idx := indices(va)
	if l2Idx >= t.n3 {
		panic("pagetable: va maps outside configured L3 capacity")
	}
	t.l3[l2Idx*entriesPerL3+l3Idx] = 0
}

// Read returns the raw L3 descriptor for va, for tests and diagnostics.
func (t *Table) Read(va uint64) uint64 {
	l2Idx, l3Idx := indices(va)
	if l2Idx >= t.n3 {
		panic("pagetable: va maps outside configured L3 capacity")
	}
	return t.l3[l2Idx*entriesPerL3+l3Idx]
}

// L2Entry returns the raw L2 descriptor at index i, for tests asserting the
// table-pointer invariant New establishes.
func (t *Table) L2Entry(i int) uint64 {
	return t.l2[i]
}
