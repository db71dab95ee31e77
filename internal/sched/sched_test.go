package sched

import (
	"testing"

	"github.com/vmsplit/icevmm/internal/vm"
)

// TestSchedulerRoundRobinFairness is spec.md §8 property 8: with two
// runnable vCPUs and a periodic tick, the sequence of RUNNING vCPUs
// alternates A, B, A, B, ...
func TestSchedulerRoundRobinFairness(t *testing.T) {
	s := New()
	a := &vm.VCPU{ID: 0}
	b := &vm.VCPU{ID: 1}
	s.Add(a)
	s.Add(b)

	want := []uint32{0, 1, 0, 1, 0, 1}
	var outgoing vm.Regs
	for i, wantID := range want {
		picked := s.pick(&outgoing)
		if picked.ID != wantID {
			t.Fatalf("tick %d: picked vCPU %d, want %d", i, picked.ID, wantID)
		}
		if picked.State != vm.StateRunning {
			t.Fatalf("tick %d: picked vCPU state = %v, want StateRunning", i, picked.State)
		}
	}
}

func TestSchedulerPreemptionPreservesContext(t *testing.T) {
	s := New()
	a := &vm.VCPU{ID: 0}
	b := &vm.VCPU{ID: 1}
	s.Add(a)
	s.Add(b)

	s.pick(&vm.Regs{}) // selects a

	var outgoing vm.Regs
	outgoing.X[5] = 0xdeadbeef
	s.pick(&outgoing) // preempts a (saving outgoing into a.Regs), selects b

	if a.State != vm.StateRunnable {
		t.Fatalf("preempted vCPU state = %v, want StateRunnable", a.State)
	}
	if a.Regs.X[5] != 0xdeadbeef {
		t.Fatalf("preempted vCPU lost context: X[5] = %#x, want 0xdeadbeef", a.Regs.X[5])
	}

	s.pick(&vm.Regs{}) // preempts b, selects a again
	if a.State != vm.StateRunning {
		t.Fatalf("vCPU a should be RUNNING on its next quantum")
	}
	if a.Regs.X[5] != 0xdeadbeef {
		t.Fatalf("vCPU a's context changed across quanta: X[5] = %#x", a.Regs.X[5])
	}
}

func TestSchedulerFatalWithNoVCPUs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected pick() to halt with no vCPUs registered")
		}
	}()
	s := New()
	s.pick(&vm.Regs{})
}
