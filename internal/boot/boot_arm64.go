// Package boot wires together everything internal/armreg,
// internal/hypervisor, internal/vm, internal/trap, internal/mmio,
// internal/sched, and internal/timer provide, in the order
// original_source/src/main.c's main() does: confirm EL2, bring up
// stage-1, construct the guest, bring up stage-2, start the scheduler.
// It also owns the exception vector table and reset vector, the two
// pieces of assembly spec.md §1 calls out as external collaborators
// rather than core engineering.
package boot

import (
	"unsafe"

	"github.com/vmsplit/icevmm/internal/armreg"
	"github.com/vmsplit/icevmm/internal/diag"
	"github.com/vmsplit/icevmm/internal/hypervisor"
	"github.com/vmsplit/icevmm/internal/palloc"
	"github.com/vmsplit/icevmm/internal/sched"
	"github.com/vmsplit/icevmm/internal/timer"
	"github.com/vmsplit/icevmm/internal/trap"
	"github.com/vmsplit/icevmm/internal/vm"
)

// HCR_EL2 program, per spec.md §6: AArch64 EL1 (RW), stage-2 on (VM),
// IRQs routed to EL2 (IMO) so the virtual timer tick lands in this
// core's own IRQ vector rather than the guest's.
const (
	hcrRW  = 1 << 31
	hcrVM  = 1 << 0
	hcrIMO = 1 << 4

	// guestMemBase/guestMemSize are cmd/icevmm's fixed, compile-time
	// configuration (there is no argv at EL2, per spec.md §1's ambient
	// configuration note) — the one VM this core boots gets a 64 KiB
	// normal-memory region at the guest entry IPA spec.md §4.4 names.
	guestMemBase = 0x40000000
	guestMemSize = 16 * palloc.PageSize

	// arenaSize bounds the page allocator for this fixed configuration;
	// exhaustion past this is fatal, per spec.md §4.1.
	arenaSize = 64 * 1024 * 1024
)

// scheduler is the single run queue for this core's lifetime, per
// spec.md §9's "global mutable state" note — one controlled slot,
// touched only with interrupts masked at EL2, which holds throughout.
var scheduler = sched.New()

// Linker-symbol address helpers, implemented in boot_arm64.s. Their
// names mirror the symbols spec.md §6 lists as linker-exported
// (__exception_vectors, __bss_end, _guest_bin_start, _guest_bin_end).
func exceptionVectorsAddr() uintptr
func bssEndAddr() uintptr
func guestBinStartAddr() uintptr
func guestBinEndAddr() uintptr

// Boot is the hypervisor's entry point, tail-called from start_arm64.s
// once the stack is live and BSS is zeroed. It never returns.
func Boot() {
	diag.Puts(diag.BannerMeows)

	if el := armreg.CurrentEL(); el != 2 {
		diag.Puts("icevmm: not running at EL2, halting\n")
		diag.Hang()
	}
	diag.Puts(diag.BannerEL2)

	armreg.SetVbarEL2(uint64(exceptionVectorsAddr()))
	armreg.SetHcrEL2(hcrRW | hcrVM | hcrIMO)
	armreg.SetCptrEL2(0)

	diag.Puts(diag.BannerS1Enable)
	hypervisor.Stage1Init()

	arenaBase := bssEndAddr()
	palloc.Init(arenaBase, arenaBase+arenaSize)

	guest := vm.CreateGuestVM(vm.Config{
		VMID:     1,
		NumVCPUs: 1,
		MemBase:  guestMemBase,
		MemSize:  guestMemSize,
		Payload:  guestPayload(),
	})

	diag.Puts(diag.BannerS2Enable)
	guest.Stage2.MMUInit()

	timer.Init()

	for i := 0; i < guest.NumVCPUs; i++ {
		scheduler.Add(guest.VCPUs[i])
	}

	diag.Puts(diag.BannerRunVM)
	// No prior vCPU to save context for — this is the very first pick.
	scheduler.Schedule(&vm.Regs{})
}

// guestPayload views the linker-embedded guest binary (spec.md §6) as a
// byte slice, without copying it; CreateGuestVM does the one real copy,
// into the guest's backing pages.
func guestPayload() []byte {
	start, end := guestBinStartAddr(), guestBinEndAddr()
	if end <= start {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(start)), int(end-start))
}

// syncTrapEntry is the landing point for every synchronous-exception
// vector entry (vectors_arm64.s), called with regs pointing at the frame
// just saved. It dispatches the trap, then resumes the same vCPU —
// vm.VcpuRun erets and never returns, so this function's "return" is
// purely a type-checking fiction; control never comes back to the
// vector stub that called it.
func syncTrapEntry(regs *vm.Regs) {
	trap.Dispatch(regs)
	vm.VcpuRun(regs)
}

// irqTrapEntry is the landing point for the IRQ vector entries — in
// this design, exclusively the virtual timer tick. It reloads the
// countdown first (timer.Rearm; CNTV_TVAL_EL0 stays expired otherwise,
// so skipping this re-takes the IRQ on the very next eret) and then
// hands the saved frame to the scheduler, which is itself the thing
// that calls vcpu_run; same non-returning contract as syncTrapEntry.
func irqTrapEntry(regs *vm.Regs) {
	timer.Rearm()
	scheduler.Schedule(regs)
}
