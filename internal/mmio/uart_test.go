package mmio

import (
	"testing"

	"github.com/vmsplit/icevmm/internal/vm"
)

func esrFor(rt uint32, write bool) uint64 {
	esr := uint64(rt&0x1f) << 5
	if write {
		esr |= 1 << 6
	}
	return esr
}

func TestApplyWrite(t *testing.T) {
	var regs vm.Regs
	regs.X[3] = 0xdeadbe47 // low byte 0x47 ('G')
	regs.ELREL2 = 0x40001000

	var got byte
	apply(&regs, esrFor(3, true), func(b byte) { got = b })

	if got != 0x47 {
		t.Fatalf("wrote byte %#x, want 0x47", got)
	}
	if regs.ELREL2 != 0x40001004 {
		t.Fatalf("ELREL2 = %#x, want advance by 4", regs.ELREL2)
	}
}

func TestApplyRead(t *testing.T) {
	var regs vm.Regs
	regs.X[5] = 0xffffffffffffffff
	regs.ELREL2 = 0x40002000

	called := false
	apply(&regs, esrFor(5, false), func(b byte) { called = true })

	if called {
		t.Fatalf("putByte must not be called on a read")
	}
	if regs.X[5] != 0 {
		t.Fatalf("X[5] = %#x, want 0 after an emulated read", regs.X[5])
	}
	if regs.ELREL2 != 0x40002004 {
		t.Fatalf("ELREL2 = %#x, want advance by 4", regs.ELREL2)
	}
}

func TestApplyZeroRegisterWrite(t *testing.T) {
	var regs vm.Regs
	got := byte(0xff)
	apply(&regs, esrFor(31, true), func(b byte) { got = b })
	if got != 0 {
		t.Fatalf("write from xzr sent %#x, want 0", got)
	}
}

func TestMatchesUART(t *testing.T) {
	if !MatchesUART(UARTAddr) {
		t.Fatalf("MatchesUART(UARTAddr) = false")
	}
	if MatchesUART(0x0a000000) {
		t.Fatalf("MatchesUART(0x0a000000) = true, want false")
	}
}
