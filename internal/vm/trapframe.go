// Package vm describes a guest virtual machine: its declared memory
// regions, its vCPUs, and the register context ("trap frame") that
// world-switch assembly saves and restores across every EL2/EL1
// transition. It is grounded on original_source/src/vm.h's vcpu_regs_t/
// vcpu_t/vm_t trio and on the teacher's VirtualMachine/VCPU split
// (core_engine/hypervisor), generalized per spec.md §4.4 (up to
// MaxVCPUs vCPUs, up to MaxMemRegions regions instead of one of each).
package vm

// Regs is a vCPU's saved register context: x0-x30, the guest-EL1 stack
// pointer, the exception link register, and the saved program status.
// Field order is load-bearing (spec.md §4.5, §9 "Trap frame layout
// coupling") — it is read and written by worldswitch_arm64.s and by the
// vector entries in internal/boot, neither of which can be reordered
// independently of this struct. X[9] in particular is restored last by
// VcpuRun (worldswitch_arm64.s), since R9 holds the frame pointer during
// the rest of the restore; that detail lives in the assembly, not here.
type Regs struct {
	X       [31]uint64 // x0-x30
	SPEL1   uint64     // guest EL1 stack pointer
	ELREL2  uint64     // exception link register, the guest's resume PC
	SPSREL2 uint64     // saved program status at the point of exception/launch
}

// Byte offsets of each Regs field, matching the field order above exactly.
// worldswitch_arm64.s and internal/boot's vector entries hard-code the same
// offsets as literals, so trapframe_test.go pins these values: a reordering
// here is caught there rather than silently desyncing the assembly.
const (
	regsXOffset     = 0
	regsSPEL1Offset = 31 * 8
	regsELROffset   = regsSPEL1Offset + 8
	regsSPSROffset  = regsELROffset + 8
	// RegsSize is the full frame size in bytes: 34 64-bit words.
	RegsSize = regsSPSROffset + 8
)

// spsrEL1hMasked is EL1h (SP_EL1) with all DAIF interrupts masked,
// PSTATE.M[4:0] = 0b00101 | (D|A|I|F masked) = 0x3C5 — spec.md §9 Open
// Question (iii), resolved in favor of the masked encoding.
const spsrEL1hMasked = 0x3c5
