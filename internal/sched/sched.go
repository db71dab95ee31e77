// Package sched implements the round-robin vCPU scheduler of spec.md
// §4.8, grounded on original_source/src/sched.c's sched_init/
// sched_add_vcpu/sched trio. The rendezvous logic (choosing the next
// RUNNABLE vCPU, saving the outgoing frame) is portable and tested here
// directly; only the final "hand control to it" step needs the arm64
// world-switch and lives in sched_arm64.go.
package sched

import (
	"github.com/vmsplit/icevmm/internal/diag"
	"github.com/vmsplit/icevmm/internal/vm"
)

// Scheduler holds the run queue: up to vm.MaxVCPUs vCPU pointers, a
// count, and the index of the vCPU that last ran (-1 before the first
// pick), matching sched.c's static state exactly (spec.md §9 "Global
// mutable state" — this repo keeps it as a value the caller owns rather
// than a package-level singleton, so tests can run more than one
// scheduler in isolation).
type Scheduler struct {
	vcpus   [vm.MaxVCPUs]*vm.VCPU
	count   int
	current int
}

// New returns a scheduler with no vCPUs registered, mirroring sched_init().
func New() *Scheduler {
	return &Scheduler{current: -1}
}

// Add appends v to the run queue and marks it RUNNABLE, mirroring
// sched_add_vcpu(). Fatal if the table is already full — this core's
// vCPU count is fixed at VM-construction time, so this should never
// trigger outside a test.
func (s *Scheduler) Add(v *vm.VCPU) {
	if s.count >= vm.MaxVCPUs {
		diag.Fatal("sched: vCPU table full")
	}
	v.State = vm.StateRunnable
	s.vcpus[s.count] = v
	s.count++
}

// Count reports how many vCPUs are registered.
func (s *Scheduler) Count() int {
	return s.count
}

// pick is the portable half of sched(regs): if the outgoing vCPU is
// still RUNNING, its frame is copied back into its own Regs and it is
// marked RUNNABLE again (step 1); the run index advances modulo count
// (step 2); the newly selected vCPU is marked RUNNING (step 3). The
// caller (Schedule, in sched_arm64.go) is responsible for the final
// vcpu_run step this function deliberately does not take, so the
// selection logic can be driven from a test without real hardware.
func (s *Scheduler) pick(outgoing *vm.Regs) *vm.VCPU {
	if s.count == 0 {
		diag.Fatal("sched: pick called with no vCPUs registered")
	}
	if s.current >= 0 {
		cur := s.vcpus[s.current]
		if cur.State == vm.StateRunning {
			cur.Regs = *outgoing
			cur.State = vm.StateRunnable
		}
	}
	s.current = (s.current + 1) % s.count
	next := s.vcpus[s.current]
	next.State = vm.StateRunning

	diag.Puts("icevmm: scheduling vcpu=")
	diag.PutUint(next.ID)
	diag.Puts("\n")

	return next
}
