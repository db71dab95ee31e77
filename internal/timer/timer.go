// Package timer programs the architected virtual countdown timer, per
// spec.md §4.9. Grounded on original_source/src/timer.c's timer_init:
// read CNTFRQ_EL0, derive a 10ms tick, arm CNTV_TVAL_EL0, enable via
// CNTV_CTL_EL0. The tick divisor is the one piece of arithmetic worth
// keeping portable (it is pure, and was wrong in an earlier revision of
// the original per original_source's history), so it lives here rather
// than folded into the arm64-only Init in timer_arm64.go.
package timer

// TickDivisor is how CNTFRQ_EL0 (ticks per second) is divided to produce
// a 10 ms countdown value, per spec.md §4.9.
const TickDivisor = 100

// TickValue returns the CNTV_TVAL_EL0 countdown for a given counter
// frequency.
func TickValue(cntfrq uint64) uint64 {
	return cntfrq / TickDivisor
}

// CntvCtlEnable is the CNTV_CTL_EL0 value that arms the timer with its
// interrupt unmasked.
const CntvCtlEnable = 1
