//go:build !icevmm_trace

package diag

// Trace is a no-op in default builds. The teacher gates its debug logging
// behind a VirtualMachine.Debug bool checked at every call site; a
// freestanding image pays for that branch (and for the call itself, since
// inlining across the trace/no-trace variants isn't guaranteed) on every
// trap, so the equivalent gate here is a build tag instead: the
// icevmm_trace build carries the call, the default build compiles it away.
func Trace(msg string) {}

// TraceHex64 is the Trace-gated sibling of PutHex64.
func TraceHex64(label string, n uint64) {}
