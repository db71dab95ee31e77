package vm

import (
	"unsafe"

	"github.com/vmsplit/icevmm/internal/diag"
	"github.com/vmsplit/icevmm/internal/hypervisor"
	"github.com/vmsplit/icevmm/internal/palloc"
	"github.com/vmsplit/icevmm/internal/uartdrv"
)

const (
	// MaxMemRegions carries original_source/include/vm.h's MAX_MEM_REGS
	// forward (spec.md doesn't name a limit beyond "declared regions");
	// only two slots are populated by CreateGuestVM today.
	MaxMemRegions = 16

	// MaxVCPUs is spec.md §4.8's scheduler capacity (the original's
	// vm.h caps at 1; spec.md explicitly widens this for round-robin
	// fairness testing).
	MaxVCPUs = 8
)

// MemRegion is one of a VM's declared IPA ranges, per spec.md §3.
// Regions are non-overlapping in IPA by construction (CreateGuestVM is
// the only region producer today).
type MemRegion struct {
	IPA, PA, Size uint64
	Attr          hypervisor.Attr

	// Emulated marks a region that is declared for bookkeeping but
	// deliberately never installed into the stage-2 tree: every guest
	// access to it must take a stage-2 fault so internal/mmio's
	// data-abort path gets to emulate it (spec.md §4.7). The UART page
	// is the only such region.
	Emulated bool
}

// VCPUState is a vCPU's scheduling state (spec.md §3).
type VCPUState int

const (
	StateBlocked  VCPUState = iota // never entered by this core's sources; slot reserved for future use
	StateRunnable                  // in the scheduler's rotation, not currently on the core
	StateRunning                   // currently executing; at most one per physical core (spec.md §3 invariant)
)

// VCPU is one virtual CPU: its saved register context and its
// scheduling state. VM is a back-reference to the owning VM, set once at
// construction and never reassigned.
type VCPU struct {
	ID    uint32
	Regs  Regs
	State VCPUState
	VM    *VM
}

// VM is a single guest: its declared regions and its vCPU set. This core
// supports one VM instance; a global stage-2 root is acceptable per
// spec.md §3, but Stage2 is still owned here rather than package-level,
// so a test can construct more than one VM in isolation.
type VM struct {
	VMID       uint32
	Regions    [MaxMemRegions]MemRegion
	NumRegions int
	VCPUs      [MaxVCPUs]*VCPU
	NumVCPUs   int
	Stage2     *hypervisor.Stage2
}

// Config parameterizes CreateGuestVM. internal/boot supplies these from
// compile-time constants (there is no argv at EL2); cmd/iceqemu has no
// flags that reach this struct.
type Config struct {
	VMID     uint32
	NumVCPUs int    // 1..MaxVCPUs
	MemBase  uint64 // guest IPA base of the normal region (spec.md §4.4 default 0x40000000)
	MemSize  uint64 // rounded up to a page multiple
	Payload  []byte // copied into the front of the normal region's backing

	// InitialSP is spec.md §9 Open Question (iv)'s extension point: the
	// spec leaves SP_EL1 to the guest, but a test fixture reproducing
	// the original's concrete sp_el1=0x40080000 can set this without
	// the hypervisor itself assuming a value.
	InitialSP uint64
}

func (v *VM) addRegion(r MemRegion) {
	if v.NumRegions >= MaxMemRegions {
		diag.Fatal("vm: region table exhausted")
	}
	v.Regions[v.NumRegions] = r
	v.NumRegions++
}

// allocRegion hands back palloc.Page()-backed, page-aligned, contiguous
// storage for a region of the given size. Contiguity holds because
// palloc is a bump allocator and nothing else runs between these calls;
// CreateGuestVM is the only caller.
func allocRegion(size uint64) uint64 {
	pages := (size + palloc.PageSize - 1) / palloc.PageSize
	base := palloc.Page()
	for i := uint64(1); i < pages; i++ {
		palloc.Page()
	}
	return uint64(base)
}

func copyPayload(basePA uint64, payload []byte) {
	if len(payload) == 0 {
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(basePA))), len(payload))
	copy(dst, payload)
}

// CreateGuestVM builds the guest described by cfg: a non-mapped,
// emulated UART region at IPA 0x09000000, a stage-2-backed normal-memory
// region at cfg.MemBase, the payload copied into its front, and
// cfg.NumVCPUs vCPUs with the primary entering at cfg.MemBase per
// spec.md §4.4. It is fatal-on-error, matching the rest of the
// freestanding core (spec.md §7): there is no caller left to hand a
// construction failure to once boot has gotten this far.
func CreateGuestVM(cfg Config) *VM {
	if cfg.NumVCPUs < 1 || cfg.NumVCPUs > MaxVCPUs {
		diag.Fatal("vm: CreateGuestVM: NumVCPUs out of range")
	}

	v := &VM{VMID: cfg.VMID, Stage2: hypervisor.NewStage2()}

	v.addRegion(MemRegion{
		IPA:      uint64(uartdrv.DataRegAddr),
		PA:       uint64(uartdrv.DataRegAddr),
		Size:     palloc.PageSize,
		Attr:     hypervisor.Attr{MemAttrIdx: hypervisor.MairIdxDevice, AP: hypervisor.S2APReadWrite, SH: hypervisor.ShInner},
		Emulated: true,
	})

	normAttr := hypervisor.Attr{MemAttrIdx: hypervisor.MairIdxNormal, AP: hypervisor.S2APReadWrite, SH: hypervisor.ShInner}
	backingPA := allocRegion(cfg.MemSize)
	v.addRegion(MemRegion{IPA: cfg.MemBase, PA: backingPA, Size: cfg.MemSize, Attr: normAttr})
	v.Stage2.MapRegion(cfg.MemBase, backingPA, cfg.MemSize, normAttr)

	copyPayload(backingPA, cfg.Payload)

	for i := 0; i < cfg.NumVCPUs; i++ {
		vcpu := &VCPU{ID: uint32(i), VM: v, State: StateRunnable}
		if i == 0 {
			vcpu.Regs.ELREL2 = cfg.MemBase
			vcpu.Regs.SPSREL2 = spsrEL1hMasked
			vcpu.Regs.SPEL1 = cfg.InitialSP
		}
		v.VCPUs[i] = vcpu
	}
	v.NumVCPUs = cfg.NumVCPUs

	diag.Puts(diag.BannerVMReady)
	return v
}
