// Package palloc implements the hypervisor's sole memory allocator: a
// monotonic bump arena over zeroed 4 KiB pages. spec.md §4.1 forbids
// freeing; this mirrors original_source/src/mm.c's palloc_init/palloc
// pair and the teacher's absence-of-GC philosophy in spirit (the teacher
// runs on a host with a real allocator, but the pattern of "one cursor,
// one monotonic bump, zero the result" is the same one mazboot/tamago use
// for their own bare-metal arenas).
package palloc

import (
	"unsafe"

	"github.com/vmsplit/icevmm/internal/diag"
)

// PageSize is the page granule this hypervisor operates on throughout:
// stage-1 blocks aside, every stage-2 mapping and every table the walker
// allocates is exactly one page.
const PageSize = 4096

// arena is the bump allocator's state: a single cursor and an end bound.
// There is exactly one arena for the lifetime of the hypervisor (spec.md
// §9, "Global mutable state"); it is never reset.
var arena struct {
	next uintptr
	end  uintptr
}

// Init anchors the arena at the first 4 KiB-aligned address at or above
// base (the hypervisor's reserved stack top, per spec.md §4.1) and bounds
// it at end (exclusive). Must be called exactly once, before the first
// Page call.
func Init(base, end uintptr) {
	aligned := base
	if aligned%PageSize != 0 {
		aligned = (aligned + PageSize - 1) &^ (PageSize - 1)
	}
	arena.next = aligned
	arena.end = end
}

// Page returns a pointer to a freshly zeroed 4 KiB page and advances the
// arena. Exhaustion is fatal: spec.md §4.1 treats it as a hypervisor error
// with no recovery path, since every caller (stage-2 walker, guest memory
// backing) assumes the allocation cannot fail.
func Page() uintptr {
	if arena.next == 0 {
		diag.Fatal("palloc: arena not initialized")
	}
	if arena.next+PageSize > arena.end {
		diag.Fatal("palloc: arena exhausted")
	}
	p := arena.next
	arena.next += PageSize
	zero(p)
	return p
}

func zero(p uintptr) {
	words := (*[PageSize / 8]uint64)(unsafe.Pointer(p))
	for i := range words {
		words[i] = 0
	}
}
