//go:build !arm64

package diag

// Hang stands in for the arm64 wfe-loop on any host running `go test`
// against the portable packages (palloc, the stage-2 walker, the
// scheduler). There is no hardware to halt here, so this panics instead —
// the same "_unsupported" pattern iansmith-mazarin uses for code that only
// makes sense on the target board (see its arch_unsupported.go /
// platform_unsupported.go).
func Hang() {
	panic("icevmm: halted")
}
