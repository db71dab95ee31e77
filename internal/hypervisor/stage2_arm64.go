package hypervisor

import (
	"github.com/vmsplit/icevmm/internal/armreg"
	"github.com/vmsplit/icevmm/internal/diag"
)

const (
	s2TCRT0SZ   = 24 // 40-bit IPA
	s2TCRPS40   = 2 << 16
	s2TCRTG4K   = 0 << 14
	s2TCRSL0L1  = 1 << 6 // start the walk at L1 so the 3-level tree covers the IPA span
	s2TCROrgnWB = 1 << 10
	s2TCRIrgnWB = 1 << 8
	s2TCRSHIS   = 3 << 12
)

// MMUInit programs MAIR/VTCR/VTTBR for the stage-2 translation this
// Stage2 tree backs and invalidates the stage-2 TLB, per spec.md §4.3's
// s2_mmu_init contract. Must run after every region this VM declares has
// already been mapped via MapRegion/Map.
func (s *Stage2) MMUInit() {
	armreg.SetMairEL2(MairDeviceNormal())

	vtcr := uint64(s2TCRT0SZ) | s2TCRPS40 | s2TCRTG4K | s2TCRSL0L1 | s2TCROrgnWB | s2TCRIrgnWB | s2TCRSHIS
	armreg.SetVtcrEL2(vtcr)
	armreg.SetVttbrEL2(s.RootPA())

	armreg.TlbiVmalle1()
	diag.Puts(diag.BannerS2Ready)
}
