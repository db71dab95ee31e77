package payload

// These build the four end-to-end scenario payloads spec.md §8
// describes. A real boot links a guest binary in via the
// `_guest_bin_start`/`_guest_bin_end` linker symbols (spec.md §6) —
// internal/boot reads between those symbols directly and never imports
// this package. This package exists so cmd/iceqemu can produce one of
// these scenario binaries for an integration run without a
// cross-compiled guest image on disk.

const (
	uartLow16  = 0x0900 // upper half of 0x09000000, the emulated UART page
	unkLow16   = 0x0a00 // upper half of 0x0a000000, a data abort target with no MMIO handler
	registerX1 = 1
	registerX2 = 2
	registerX5 = 5
)

// E1HelloHVC is spec.md §8's "hello HVC" scenario: write 'G' to the
// UART, issue an HVC, then park. Expected host-observable behavior: 'G'
// appears on the UART, one HVC trap is logged, and the hypervisor does
// not halt.
func E1HelloHVC() []byte {
	return assemble([]uint32{
		movz32(registerX2, 'G'),
		movz64(registerX1, uartLow16, 16),
		strbImm(registerX2, registerX1),
		hvc(0),
		branchToSelf(),
	})
}

// E2MMIORead is spec.md §8's "stage-2 fault is MMIO on UART" scenario: a
// load from the UART page must return zero into the destination
// register and advance ELR_EL2 by 4, without halting.
func E2MMIORead() []byte {
	return assemble([]uint32{
		movz64(registerX1, uartLow16, 16),
		ldrbImm(0, registerX1),
		branchToSelf(),
	})
}

// E3FatalUnknownMMIO is spec.md §8's "stage-2 fault to unknown address
// is fatal" scenario: a store to an IPA with no declared region must
// halt the hypervisor via internal/trap's fatal path (diag.Fatal), never
// reaching the trailing branch.
func E3FatalUnknownMMIO() []byte {
	return assemble([]uint32{
		movz64(registerX1, unkLow16, 16),
		movz32(registerX2, 0x99),
		strbImm(registerX2, registerX1),
		branchToSelf(),
	})
}

// E4SchedulerPreemption is spec.md §8's "scheduler preemption preserves
// context" scenario: write 0xDEADBEEF into x5 and loop forever, so a
// timer-driven preemption and resumption can be observed to leave x5
// unchanged.
func E4SchedulerPreemption() []byte {
	return assemble([]uint32{
		movz64(registerX5, 0xbeef, 0),
		movk64(registerX5, 0xdead, 16),
		branchToSelf(),
	})
}
