package hypervisor

import (
	"unsafe"

	"github.com/vmsplit/icevmm/internal/armreg"
	"github.com/vmsplit/icevmm/internal/diag"
)

func tableAddr(t *[512]uint64) uintptr {
	return uintptr(unsafe.Pointer(t))
}

// s1L1Table is the hypervisor's own L1 block-descriptor table: three 1 GiB
// entries, identity-mapping the first 3 GiB of physical address space per
// spec.md §4.2. It is a static array, not a palloc'd page — the
// hypervisor's stage-1 tables exist before the page allocator is even
// initialized (Stage1Init runs first in Boot, per the §9 Open Question
// resolution that stage-1 must precede stage-2). linker.ld places the BSS
// symbol backing this array on a 4 KiB boundary (its size, 512*8 bytes,
// is exactly one page), the same way the original prototype's
// `__attribute__((aligned(4096)))` s1_l1_tbl does.
var s1L1Table [512]uint64

const (
	s1BlockDevice = 0x0000_0000 // block 0: device-nGnRE, covers the PL011 at 0x09000000
	s1BlockNorm1  = 0x4000_0000 // block 1: normal WB — the hypervisor's own image lives here
	s1BlockNorm2  = 0x8000_0000 // block 2: normal WB

	s1TCRT0SZ = 25 // 39-bit input address space
	s1TCRPS40 = 2 << 16
	s1TCRTG4K = 0 << 14
	s1TCRSHIS = 3 << 12
	s1TCROrgnWB = 1 << 10
	s1TCRIrgnWB = 1 << 8

	sctlrM = 1 << 0
	sctlrC = 1 << 2
	sctlrI = 1 << 12
)

// Stage1Init identity-maps the first three 1 GiB blocks of physical
// address space for the hypervisor itself, programs MAIR/TCR, installs
// TTBR0_EL2, and enables the stage-1 MMU with caches on, per spec.md §4.2.
// This must run before any stage-2 work so the hypervisor executes from
// cached normal memory while it builds the guest's tables.
func Stage1Init() {
	s1L1Table[0] = Encode(PTE{Kind: KindBlock, PA: s1BlockDevice, Attr: Attr{
		MemAttrIdx: MairIdxDevice, AP: 0, SH: ShInner,
	}})
	s1L1Table[1] = Encode(PTE{Kind: KindBlock, PA: s1BlockNorm1, Attr: Attr{
		MemAttrIdx: MairIdxNormal, AP: 0, SH: ShInner,
	}})
	s1L1Table[2] = Encode(PTE{Kind: KindBlock, PA: s1BlockNorm2, Attr: Attr{
		MemAttrIdx: MairIdxNormal, AP: 0, SH: ShInner,
	}})

	armreg.SetMairEL2(MairDeviceNormal())

	tcr := uint64(s1TCRT0SZ) | s1TCRPS40 | s1TCRTG4K | s1TCRSHIS | s1TCROrgnWB | s1TCRIrgnWB
	armreg.SetTcrEL2(tcr)

	armreg.SetTtbr0EL2(uint64(tableAddr(&s1L1Table)))
	armreg.Dsb()
	armreg.Isb()

	sctlr := armreg.SctlrEL2()
	sctlr |= sctlrM | sctlrI | sctlrC
	armreg.SetSctlrEL2(sctlr)
	armreg.Isb()

	diag.Puts(diag.BannerS1Ready)
}
