//go:build icevmm_trace

package diag

// Trace prints msg when the image is built with -tags icevmm_trace, the
// freestanding equivalent of the teacher's `if vm.Debug { log.Printf(...) }`
// call sites in core_engine/vcpu.go.
func Trace(msg string) {
	Puts("icevmm: trace: ")
	Puts(msg)
	Puts("\n")
}

// TraceHex64 prints "label: 0x...." when trace-built.
func TraceHex64(label string, n uint64) {
	Puts("icevmm: trace: ")
	Puts(label)
	Puts(": ")
	PutHex64(n)
	Puts("\n")
}
