// Package armreg provides typed accessors for the EL2 system registers and
// barrier instructions the hypervisor depends on. Each register gets one
// read and/or write function; the mechanism (an MRS/MSR pair) lives in the
// matching .s file, never inlined here, so the Go side stays a place to
// read a register's name, not its encoding.
//
// Modeled on github.com/usbarmory/tamago's internal/reg package: a typed
// Go function declared with no body, backed by a tiny assembly stub.
package armreg

// CurrentEL returns the current exception level, shifted right by 2
// (CurrentEL[3:2]), so callers compare against 1, 2 or 3 directly.
func CurrentEL() uint64

// SctlrEL2 reads the EL2 system control register.
func SctlrEL2() uint64

// SetSctlrEL2 writes the EL2 system control register.
func SetSctlrEL2(val uint64)

// HcrEL2 reads the EL2 hypervisor configuration register.
func HcrEL2() uint64

// SetHcrEL2 writes the EL2 hypervisor configuration register.
func SetHcrEL2(val uint64)

// SetCptrEL2 writes the EL2 architectural feature trap register.
func SetCptrEL2(val uint64)

// SetVbarEL2 writes the EL2 vector base address register.
func SetVbarEL2(val uint64)

// SetTcrEL2 writes the EL2 stage-1 translation control register.
func SetTcrEL2(val uint64)

// SetTtbr0EL2 writes the EL2 stage-1 translation table base register.
func SetTtbr0EL2(val uint64)

// SetMairEL2 writes the EL2 memory attribute indirection register.
func SetMairEL2(val uint64)

// SetVttbrEL2 writes the stage-2 translation table base register.
func SetVttbrEL2(val uint64)

// SetVtcrEL2 writes the stage-2 translation control register.
func SetVtcrEL2(val uint64)

// EsrEL2 reads the EL2 exception syndrome register.
func EsrEL2() uint64

// FarEL2 reads the EL2 fault address register.
func FarEL2() uint64

// CntfrqEL0 reads the counter-timer frequency register.
func CntfrqEL0() uint64

// SetCntvTvalEL0 writes the virtual timer countdown value register.
func SetCntvTvalEL0(val uint64)

// SetCntvCtlEL0 writes the virtual timer control register.
func SetCntvCtlEL0(val uint64)
