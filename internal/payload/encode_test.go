package payload

import (
	"encoding/binary"
	"testing"
)

func TestMovz32Encoding(t *testing.T) {
	// "movz w2, #0x47" is a well-known constant in AArch64 bring-up code.
	if got := movz32(2, 0x47); got != 0x528008e2 {
		t.Fatalf("movz32(2, 0x47) = %#x, want 0x528008e2", got)
	}
}

func TestMovz64WithShift(t *testing.T) {
	got := movz64(1, 0x0900, 16)
	wantBase := uint32(0xd2800000)
	wantHw := uint32(1) << 21 // shift 16 -> hw field 1
	wantImm := uint32(0x0900) << 5
	wantRd := uint32(1)
	want := wantBase | wantHw | wantImm | wantRd
	if got != want {
		t.Fatalf("movz64(1, 0x0900, 16) = %#x, want %#x", got, want)
	}
}

func TestMovk64Encoding(t *testing.T) {
	got := movk64(5, 0xdead, 16)
	want := uint32(0xf2800000) | (uint32(1) << 21) | (uint32(0xdead) << 5) | 5
	if got != want {
		t.Fatalf("movk64(5, 0xdead, 16) = %#x, want %#x", got, want)
	}
}

func TestStrbAndLdrbEncodeDistinctLoadBit(t *testing.T) {
	st := strbImm(2, 1)
	ld := ldrbImm(0, 1)
	if st&(1<<22) != 0 {
		t.Fatalf("strbImm must not set the load bit: %#x", st)
	}
	if ld&(1<<22) == 0 {
		t.Fatalf("ldrbImm must set the load bit: %#x", ld)
	}
}

func TestHvcImm(t *testing.T) {
	if got := hvc(0); got != 0xd4000002 {
		t.Fatalf("hvc(0) = %#x, want 0xd4000002", got)
	}
}

func TestAssembleLittleEndian(t *testing.T) {
	out := assemble([]uint32{0x11223344})
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}
	if got := binary.LittleEndian.Uint32(out); got != 0x11223344 {
		t.Fatalf("round trip = %#x, want 0x11223344", got)
	}
}

func TestE1HelloHVCLength(t *testing.T) {
	if got := len(E1HelloHVC()); got != 5*4 {
		t.Fatalf("E1HelloHVC length = %d, want %d", got, 5*4)
	}
}

func TestE4SchedulerPreemptionSetsX5(t *testing.T) {
	insns := E4SchedulerPreemption()
	if len(insns) != 3*4 {
		t.Fatalf("E4SchedulerPreemption length = %d, want %d", len(insns), 3*4)
	}
	// First word must be the movz into x5 with a zero shift field.
	first := binary.LittleEndian.Uint32(insns[0:4])
	if first&(0x3<<21) != 0 {
		t.Fatalf("first movz must use shift 0, got hw bits %#x", first&(0x3<<21))
	}
}
