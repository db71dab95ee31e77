package diag

// Hang parks the core in a wfe loop forever. Implemented in hang_arm64.s.
func Hang()
