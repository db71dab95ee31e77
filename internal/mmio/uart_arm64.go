package mmio

import (
	"github.com/vmsplit/icevmm/internal/armreg"
	"github.com/vmsplit/icevmm/internal/uartdrv"
	"github.com/vmsplit/icevmm/internal/vm"
)

// Handle emulates the stage-2 abort at far, per spec.md §4.7, using the
// live ESR_EL2 value and the real UART byte sink. It reports false
// without touching regs when far isn't the UART data register address.
func Handle(regs *vm.Regs, far uint64) bool {
	if !MatchesUART(far) {
		return false
	}
	apply(regs, armreg.EsrEL2(), uartdrv.PutByte)
	return true
}
