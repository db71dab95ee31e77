package hypervisor

import (
	"testing"
	"unsafe"

	"github.com/vmsplit/icevmm/internal/palloc"
)

var walkerBacking [256 * palloc.PageSize]byte

func freshArena(t *testing.T) {
	t.Helper()
	raw := uintptr(unsafe.Pointer(&walkerBacking[0]))
	base := (raw + palloc.PageSize - 1) &^ (palloc.PageSize - 1)
	if base%palloc.PageSize != 0 {
		t.Fatalf("walker test backing not page aligned")
	}
	palloc.Init(base, raw+uintptr(len(walkerBacking)))
}

func TestStage2MapRoundTrip(t *testing.T) {
	freshArena(t)
	s2 := NewStage2()

	ipa := uint64(0x40001000)
	pa := uint64(0x80002000)
	attr := Attr{MemAttrIdx: MairIdxNormal, AP: S2APReadWrite, SH: ShInner}

	s2.Map(ipa, pa, attr)

	got := s2.Lookup(ipa)
	if got.Kind != KindPage {
		t.Fatalf("Lookup kind = %v, want KindPage", got.Kind)
	}
	if got.PA != pa {
		t.Fatalf("Lookup PA = %#x, want %#x", got.PA, pa)
	}
	if got.Attr != attr {
		t.Fatalf("Lookup Attr = %+v, want %+v", got.Attr, attr)
	}
}

func TestStage2MapIdempotent(t *testing.T) {
	freshArena(t)
	s2 := NewStage2()

	ipa := uint64(0x40003000)
	pa := uint64(0x80004000)
	attr := Attr{MemAttrIdx: MairIdxDevice, AP: S2APReadWrite, SH: ShInner}

	s2.Map(ipa, pa, attr)
	l1 := Decode(s2.root[index(ipa, 30)], false)

	s2.Map(ipa, pa, attr) // second call: must not allocate a new L2 table
	l1Again := Decode(s2.root[index(ipa, 30)], false)

	if l1.PA != l1Again.PA {
		t.Fatalf("second Map call allocated a new L2 table: %#x != %#x", l1.PA, l1Again.PA)
	}

	got := s2.Lookup(ipa)
	if got.Kind != KindPage || got.PA != pa {
		t.Fatalf("Lookup after repeat Map = %+v, want PA %#x", got, pa)
	}
}

func TestStage2TablePermanence(t *testing.T) {
	freshArena(t)
	s2 := NewStage2()

	// Two IPAs sharing an L1 entry but landing in different L2 slots.
	ipaA := uint64(0x40000000)
	ipaB := uint64(0x40200000)
	attr := Attr{MemAttrIdx: MairIdxNormal, AP: S2APReadWrite, SH: ShInner}

	s2.Map(ipaA, 0x90000000, attr)
	l1First := s2.root[index(ipaA, 30)]

	s2.Map(ipaB, 0x91000000, attr)
	l1Second := s2.root[index(ipaB, 30)]

	if l1First != l1Second {
		t.Fatalf("L1 TABLE descriptor changed after mapping a sibling L2 entry: %#x != %#x", l1First, l1Second)
	}

	if got := s2.Lookup(ipaA); got.PA != 0x90000000 {
		t.Fatalf("first mapping disturbed: got PA %#x", got.PA)
	}
}

func TestStage2MapRegion(t *testing.T) {
	freshArena(t)
	s2 := NewStage2()

	attr := Attr{MemAttrIdx: MairIdxNormal, AP: S2APReadWrite, SH: ShInner}
	base := uint64(0x40000000)
	size := uint64(3 * palloc.PageSize)

	s2.MapRegion(base, base, size, attr)

	for off := uint64(0); off < size; off += palloc.PageSize {
		got := s2.Lookup(base + off)
		if got.Kind != KindPage || got.PA != base+off {
			t.Fatalf("offset %#x: got %+v", off, got)
		}
	}
}

func TestPTEEncodeDecodeRoundTrip(t *testing.T) {
	cases := []PTE{
		{Kind: KindInvalid},
		{Kind: KindTable, PA: 0x41000000},
		{Kind: KindBlock, PA: 0x40000000, Attr: Attr{MemAttrIdx: MairIdxNormal, AP: 0, SH: ShInner}},
		{Kind: KindPage, PA: 0x42003000, Attr: Attr{MemAttrIdx: MairIdxDevice, AP: S2APReadWrite, SH: ShInner}},
	}
	for _, want := range cases {
		raw := Encode(want)
		got := Decode(raw, want.Kind == KindPage || want.Kind == KindInvalid)
		if want.Kind == KindInvalid {
			if got.Kind != KindInvalid {
				t.Fatalf("Decode(Encode(%+v)) = %+v", want, got)
			}
			continue
		}
		if got != want {
			t.Fatalf("Decode(Encode(%+v)) = %+v", want, got)
		}
	}
}
