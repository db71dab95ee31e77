package armreg

// Dsb issues a full-system data synchronisation barrier. Contractually
// required after any stage-1/stage-2 translation-table or system-register
// change, per spec.md §5, before any dependent access.
func Dsb()

// Isb issues an instruction synchronisation barrier.
func Isb()

// TlbiVmalle1 invalidates all stage-1 and stage-2 TLB entries for the
// current VMID at EL1. Required after any stage-2 table mutation visible
// to the guest.
func TlbiVmalle1()
