// Package trap classifies and routes synchronous exceptions taken from
// EL1, per spec.md §4.6. It is grounded on original_source/src/main.c's
// handle_trap/trap_dump/esr_ec_str trio, split the way the teacher
// splits decode from dispatch (core_engine/cpu's opcode-table style):
// ecName and classify are pure decode, portable and unit-testable;
// Dispatch (trap_arm64.go) is the half that actually reads ESR_EL2/
// FAR_EL2 and mutates a live trap frame.
package trap

// Exception classes this dispatcher cares about, plus the ones
// original_source/src/main.c's esr_ec_str names but never dispatches on
// (SVC64, SMC64) — kept here so the fatal path's diagnostic dump matches
// the original's decode table in full, per SPEC_FULL.md §5.
const (
	ECUnknown   = 0x00
	ECWFIWFE    = 0x01
	ECSVC64     = 0x15
	ECHVC64     = 0x16
	ECSMC64     = 0x17
	ECSysReg    = 0x18
	ECInstAbort = 0x20
	ECDataAbort = 0x24
)

func ecName(ec uint32) string {
	switch ec {
	case ECUnknown:
		return "Unknown"
	case ECWFIWFE:
		return "WFI/WFE"
	case ECSVC64:
		return "SVC (AArch64)"
	case ECHVC64:
		return "HVC (AArch64)"
	case ECSMC64:
		return "SMC (AArch64)"
	case ECSysReg:
		return "MSR/MRS (sysreg)"
	case ECInstAbort:
		return "Instruction Abort (EL1)"
	case ECDataAbort:
		return "Data Abort (EL1)"
	default:
		return "Unhandled/Unknown EC"
	}
}

// classify splits a raw ESR_EL2 value into its exception class and
// instruction-specific syndrome, per spec.md §4.6.
func classify(esr uint64) (ec uint32, iss uint32) {
	ec = uint32((esr >> 26) & 0x3f)
	iss = uint32(esr & 0x01ffffff)
	return ec, iss
}
