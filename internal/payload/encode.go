// Package payload builds the tiny AArch64 guest binaries used as test
// fixtures for spec.md §8's end-to-end scenarios (E1-E4). The original
// project never embedded a payload beyond a placeholder symbol
// (original_source/src/main.c's `extern char _guest_payload[]`); this
// package supplies the concrete bytes a real build would link in,
// hand-encoded rather than dependent on an external assembler, so the
// whole repository stays buildable with nothing but `go build`.
package payload

import "encoding/binary"

// Instruction encoders for the handful of AArch64 opcodes the scenario
// payloads need. Each returns the 32-bit little-endian instruction word;
// bit layouts are architectural (ARMv8-A DDI0487), not invented.

func movz32(rd uint32, imm16 uint32) uint32 {
	return 0x52800000 | (imm16&0xffff)<<5 | (rd & 0x1f)
}

func movz64(rd uint32, imm16 uint32, shift uint32) uint32 {
	return 0xd2800000 | (shift/16&0x3)<<21 | (imm16&0xffff)<<5 | (rd & 0x1f)
}

func movk64(rd uint32, imm16 uint32, shift uint32) uint32 {
	return 0xf2800000 | (shift/16&0x3)<<21 | (imm16&0xffff)<<5 | (rd & 0x1f)
}

func strbImm(rt, rn uint32) uint32 {
	return 0x39000000 | (rn&0x1f)<<5 | (rt & 0x1f)
}

func ldrbImm(rt, rn uint32) uint32 {
	return 0x39400000 | (rn&0x1f)<<5 | (rt & 0x1f)
}

func hvc(imm16 uint32) uint32 {
	return 0xd4000002 | (imm16&0xffff)<<5
}

// branchToSelf encodes "b ." — an unconditional branch with a zero
// offset, used to park a scenario after its interesting work is done.
func branchToSelf() uint32 {
	return 0x14000000
}

// assemble packs a sequence of instruction words into a little-endian
// byte slice, the form CreateGuestVM's payload copy expects.
func assemble(insns []uint32) []byte {
	out := make([]byte, 4*len(insns))
	for i, w := range insns {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
