// Package hypervisor builds and programs the hypervisor's own stage-1
// translation (identity-mapped, normal-memory, cached) and the stage-2
// translation the guest runs under. It is grounded on the original
// prototype's s1_mmu_init/s2_mmu_init (original_source/src/main.c) and on
// the register-shim pattern in other_examples/511e2eb1_usbarmory-tamago__arm64-mmu.go.go,
// restructured per spec.md's design note (§9) that page-table entries
// should be a tagged union — {Invalid, Table, Block, Page} — with
// explicit encode/decode, instead of raw words scattered with bit macros
// the way the original C and the teacher's core_engine/hypervisor/paging.go
// (32-bit x86 PDE/PTE helpers) both do it.
package hypervisor

// Stage-2 and stage-1 share the same low-bit encoding for VALID/TABLE
// (ARMv8-A table D5-15): bit 0 is VALID, bit 1 distinguishes TABLE (1)
// from BLOCK (0) at L1/L2, or PAGE (1) from reserved (0) at L3.
const (
	bitValid = 1 << 0
	bitTable = 1 << 1

	paAddrMask = 0x0000fffffffff000 // bits [47:12]

	bitAF      = 1 << 10
	shiftMAIdx = 2
	shiftAP    = 6
	shiftSH    = 8
)

// PTEKind tags which of the four entry shapes a PTE value decodes to.
type PTEKind int

const (
	KindInvalid PTEKind = iota
	KindTable
	KindBlock
	KindPage
)

// PTE is the decoded, typed form of a 64-bit page-table entry. Encode/
// Decode are the single source of truth for the wire layout; nothing else
// in this package hand-rolls the bit positions.
type PTE struct {
	Kind PTEKind
	PA   uint64 // physical address field, bits [47:12], valid for Table/Block/Page
	Attr Attr   // attribute bundle, valid for Block/Page
}

// Attr is the packed stage-1/stage-2 attribute bundle spec.md §4.3
// describes: memory-attribute index, access permission, and
// shareability. The access flag is always set by Encode, per spec.md's
// invariant that AF is always asserted on installed entries.
type Attr struct {
	MemAttrIdx uint8 // index into MAIR_EL2 / MAIR at this stage
	AP         uint8 // access permission field (2 bits)
	SH         uint8 // shareability field (2 bits)
}

// Encode packs a PTE into its 64-bit wire representation.
func Encode(p PTE) uint64 {
	switch p.Kind {
	case KindInvalid:
		return 0
	case KindTable:
		return (p.PA & paAddrMask) | bitTable | bitValid
	case KindBlock:
		return (p.PA & paAddrMask) | attrBits(p.Attr) | bitAF | bitValid
	case KindPage:
		return (p.PA & paAddrMask) | attrBits(p.Attr) | bitAF | bitTable | bitValid
	default:
		return 0
	}
}

func attrBits(a Attr) uint64 {
	return uint64(a.MemAttrIdx&0x7)<<shiftMAIdx | uint64(a.AP&0x3)<<shiftAP | uint64(a.SH&0x3)<<shiftSH
}

// Decode unpacks a 64-bit wire entry at a given table level (1 or 2 vs 3)
// back into a PTE. level3 distinguishes TABLE (L1/L2) from PAGE (L3),
// since both set bit 1 but mean different things at different levels.
func Decode(raw uint64, level3 bool) PTE {
	if raw&bitValid == 0 {
		return PTE{Kind: KindInvalid}
	}
	pa := raw & paAddrMask
	isTableBit := raw&bitTable != 0
	attr := Attr{
		MemAttrIdx: uint8((raw >> shiftMAIdx) & 0x7),
		AP:         uint8((raw >> shiftAP) & 0x3),
		SH:         uint8((raw >> shiftSH) & 0x3),
	}
	switch {
	case level3 && isTableBit:
		return PTE{Kind: KindPage, PA: pa, Attr: attr}
	case level3:
		return PTE{Kind: KindInvalid}
	case isTableBit:
		return PTE{Kind: KindTable, PA: pa}
	default:
		return PTE{Kind: KindBlock, PA: pa, Attr: attr}
	}
}

// Memory attribute indices shared by stage-1 and stage-2 MAIR programming,
// per spec.md §6 ("MAIR attribute indices (both stages)").
const (
	MairIdxDevice = 0
	MairIdxNormal = 1
)

// MairDeviceNormal packs the two-entry MAIR value spec.md §4.2/§4.3
// describe: ATTR0 = 0x04 (device-nGnRE), ATTR1 = 0xFF (normal WB
// inner/outer, RA/WA).
func MairDeviceNormal() uint64 {
	const attr0Device = 0x04
	const attr1NormalWB = 0xff
	return uint64(attr1NormalWB)<<8 | uint64(attr0Device)
}

// Stage-2 access-permission and shareability encodings used throughout
// this package (ARMv8-A stage-2 descriptor format).
const (
	S2APReadWrite = 0b11
	ShInner       = 0b11
)
