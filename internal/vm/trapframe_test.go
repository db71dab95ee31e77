package vm

import (
	"testing"
	"unsafe"
)

// TestRegsLayout pins Regs' size and field offsets to the values
// worldswitch_arm64.s and internal/boot's vector entries are written
// against — spec.md §8 property 5 ("trap-frame layout"), checked here at
// the struct level since the assembly side can only be exercised under
// QEMU.
func TestRegsLayout(t *testing.T) {
	var r Regs

	if off := unsafe.Offsetof(r.X); off != regsXOffset {
		t.Fatalf("X offset = %d, want %d", off, regsXOffset)
	}
	if off := unsafe.Offsetof(r.SPEL1); off != regsSPEL1Offset {
		t.Fatalf("SPEL1 offset = %d, want %d", off, regsSPEL1Offset)
	}
	if off := unsafe.Offsetof(r.ELREL2); off != regsELROffset {
		t.Fatalf("ELREL2 offset = %d, want %d", off, regsELROffset)
	}
	if off := unsafe.Offsetof(r.SPSREL2); off != regsSPSROffset {
		t.Fatalf("SPSREL2 offset = %d, want %d", off, regsSPSROffset)
	}
	if sz := unsafe.Sizeof(r); sz != RegsSize {
		t.Fatalf("sizeof(Regs) = %d, want %d", sz, RegsSize)
	}
}

// TestRegsXRoundTrip covers the C-side half of property 5: writing known
// values into X[0..30] and reading them back through the same struct.
func TestRegsXRoundTrip(t *testing.T) {
	var r Regs
	for i := range r.X {
		r.X[i] = uint64(i)*0x1111111111 + 1
	}
	for i := range r.X {
		want := uint64(i)*0x1111111111 + 1
		if r.X[i] != want {
			t.Fatalf("X[%d] = %#x, want %#x", i, r.X[i], want)
		}
	}
}
