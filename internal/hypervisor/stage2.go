package hypervisor

import (
	"unsafe"

	"github.com/vmsplit/icevmm/internal/diag"
	"github.com/vmsplit/icevmm/internal/palloc"
)

const entriesPerTable = 512

// table is a typed view over one page-table page: 512 raw 64-bit entries.
type table = [entriesPerTable]uint64

// Stage2 owns the guest's IPA→PA translation tree: a lazily populated
// three-level walk, per spec.md §4.3. root is the L1 table's physical
// (here, identity, pre-stage-2-enable) address.
//
// The walker itself (this file) touches no system register and is pure
// enough to unit test on any host, per spec.md §8 ("unit tests on
// portable pieces of the walker"); programming VTCR/VTTBR/MAIR and
// invalidating the TLB lives in stage2_arm64.go instead.
type Stage2 struct {
	root *table
}

// NewStage2 allocates the L1 root table from the page allocator.
func NewStage2() *Stage2 {
	root := (*table)(unsafe.Pointer(palloc.Page()))
	return &Stage2{root: root}
}

func index(ipa uint64, shift uint) int {
	return int((ipa >> shift) & (entriesPerTable - 1))
}

// walkOrAlloc returns the next-level table a TABLE descriptor at
// t[idx] points to, allocating and installing a fresh one if the slot is
// currently invalid. Once installed, a TABLE descriptor's pointee is never
// rewritten — spec.md §3's "TABLE permanence" invariant — so this never
// touches an existing TABLE entry's PA field, only its absence.
func walkOrAlloc(t *table, idx int) *table {
	pte := Decode(t[idx], false)
	switch pte.Kind {
	case KindTable:
		return (*table)(unsafe.Pointer(uintptr(pte.PA)))
	case KindInvalid:
		next := (*table)(unsafe.Pointer(palloc.Page()))
		t[idx] = Encode(PTE{Kind: KindTable, PA: uint64(uintptr(unsafe.Pointer(next)))})
		return next
	default:
		diag.Fatal("stage2: walkOrAlloc hit a non-table, non-invalid entry")
		return nil
	}
}

// Map installs a 4 KiB IPA→PA mapping with the given attributes,
// allocating any missing L1/L2 intermediate tables along the way, per
// spec.md §4.3. Calling Map twice with the same arguments is idempotent:
// the L3 PAGE descriptor is simply re-encoded to the same bits and no new
// intermediate table is allocated on the second call, since walkOrAlloc
// only allocates when it finds an invalid slot.
func (s *Stage2) Map(ipa, pa uint64, attr Attr) {
	l1 := index(ipa, 30)
	l2 := index(ipa, 21)
	l3 := index(ipa, 12)

	l2Table := walkOrAlloc(s.root, l1)
	l3Table := walkOrAlloc(l2Table, l2)

	l3Table[l3] = Encode(PTE{Kind: KindPage, PA: pa, Attr: attr})
}

// Lookup walks the tree without allocating, returning the PTE installed
// at the given IPA's L3 slot (or an Invalid PTE if any level along the
// path is unpopulated). Used by tests to verify Map's round trip and by
// nothing in the hot path — the hot path never needs to read back what it
// just wrote.
func (s *Stage2) Lookup(ipa uint64) PTE {
	l1 := index(ipa, 30)
	l2 := index(ipa, 21)
	l3 := index(ipa, 12)

	p1 := Decode(s.root[l1], false)
	if p1.Kind != KindTable {
		return PTE{Kind: KindInvalid}
	}
	l2Table := (*table)(unsafe.Pointer(uintptr(p1.PA)))

	p2 := Decode(l2Table[l2], false)
	if p2.Kind != KindTable {
		return PTE{Kind: KindInvalid}
	}
	l3Table := (*table)(unsafe.Pointer(uintptr(p2.PA)))

	return Decode(l3Table[l3], true)
}

// MapRegion maps a whole region at 4 KiB granularity, honoring
// non-overlap at the caller's level (spec.md §3's region invariant).
func (s *Stage2) MapRegion(ipaBase, paBase, size uint64, attr Attr) {
	for off := uint64(0); off < size; off += palloc.PageSize {
		s.Map(ipaBase+off, paBase+off, attr)
	}
}

// RootPA returns the physical address of the L1 root, for VTTBR_EL2.
func (s *Stage2) RootPA() uint64 {
	return uint64(uintptr(unsafe.Pointer(s.root)))
}
