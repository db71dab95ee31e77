package timer

import "github.com/vmsplit/icevmm/internal/armreg"

// cntfrq is CNTFRQ_EL0 as read once at Init, cached so Rearm doesn't
// need to re-read a register the architecture guarantees is fixed at
// reset.
var cntfrq uint64

// Init programs the virtual timer for a 10 ms tick and enables it, per
// spec.md §4.9. HCR_EL2's IMO bit (programmed in internal/boot alongside
// RW/VM) routes the resulting interrupt to EL2 so every tick lands in
// the IRQ vector, which calls the scheduler.
func Init() {
	cntfrq = armreg.CntfrqEL0()
	armreg.SetCntvTvalEL0(TickValue(cntfrq))
	armreg.SetCntvCtlEL0(CntvCtlEnable)
}

// Rearm reloads CNTV_TVAL_EL0 for the next 10 ms tick. CNTV_TVAL_EL0 is
// a decrementing countdown: once it reaches zero the interrupt condition
// latches and stays asserted until the register is reloaded, so the IRQ
// vector (internal/boot's irqTrapEntry) must call this on every tick
// before erets back into a guest — otherwise the same expired countdown
// re-takes the IRQ immediately and the guest never resumes.
func Rearm() {
	armreg.SetCntvTvalEL0(TickValue(cntfrq))
}
