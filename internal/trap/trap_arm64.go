package trap

import (
	"github.com/vmsplit/icevmm/internal/armreg"
	"github.com/vmsplit/icevmm/internal/diag"
	"github.com/vmsplit/icevmm/internal/mmio"
	"github.com/vmsplit/icevmm/internal/vm"
)

// Dispatch is called by internal/boot's synchronous-exception vector
// entries with regs pointing at the frame just saved for the trapping
// vCPU. It reads ESR_EL2/FAR_EL2, logs the per-trap line
// original_source/src/main.c always prints before deciding anything
// (SPEC_FULL.md §5), and either mutates regs (HVC, MMIO) so the vector
// epilogue's vcpu_run resumes the same vCPU, or halts via diag.Fatal —
// there is no propagation path out of EL2, per spec.md §7.
func Dispatch(regs *vm.Regs) {
	esr := armreg.EsrEL2()
	ec, iss := classify(esr)
	diag.Trace("trap dispatch entry")
	diag.TraceHex64("ISS", uint64(iss))

	diag.Puts("icevmm: trap:\n  ESR_EL2[")
	diag.PutHex64(esr)
	diag.Puts("]\n  reason: ")
	diag.Puts(ecName(ec))
	diag.Puts("\n  EC: 0x")
	diag.PutHex8(uint8(ec))
	diag.Puts("\n  ISS: 0x")
	diag.PutHex64(uint64(iss))
	diag.Puts("\n")

	switch ec {
	case ECHVC64:
		diag.Puts("icevmm: guest called HVC (handled)\n")
		regs.ELREL2 += 4

	case ECDataAbort:
		far := armreg.FarEL2()
		diag.Puts("  FAR_EL2: 0x")
		diag.PutHex64(far)
		diag.Puts("\n")
		if !mmio.Handle(regs, far) {
			diag.Fatal("trap: data abort to unmapped address")
		}

	case ECInstAbort:
		far := armreg.FarEL2()
		diag.Puts("  FAR_EL2: 0x")
		diag.PutHex64(far)
		diag.Puts("\n")
		// spec.md §9 Open Question (ii): instruction abort only
		// delegates to MMIO for the exact UART address, never as a
		// blanket fallthrough.
		if !mmio.MatchesUART(far) || !mmio.Handle(regs, far) {
			diag.Fatal("trap: instruction abort (not implemented)")
		}

	case ECSysReg:
		diag.Fatal("trap: sysreg trap (not implemented)")

	case ECWFIWFE:
		diag.Fatal("trap: wfi/wfe (not implemented)")

	default:
		diag.Fatal("trap: unhandled EC")
	}
}
