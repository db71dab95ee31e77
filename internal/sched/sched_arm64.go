package sched

import "github.com/vmsplit/icevmm/internal/vm"

// Schedule is the full spec.md §4.8 sched(regs) rendezvous: pick() saves
// the outgoing frame and chooses the next RUNNABLE vCPU, then vcpu_run
// hands control to it. Called from the timer IRQ vector (internal/boot)
// and from the initial boot path to start the first vCPU. Never returns.
func (s *Scheduler) Schedule(outgoing *vm.Regs) {
	next := s.pick(outgoing)
	vm.VcpuRun(&next.Regs)
}
