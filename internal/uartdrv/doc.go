// Package uartdrv is the debug UART byte sink: a PL011 data-register poke,
// nothing more. spec.md §1 calls this an external collaborator ("a simple
// byte sink") and out of scope for the hypervisor's core engineering, so
// it stays intentionally trivial — no FIFO status polling, no baud setup
// (QEMU's firmware already configured the PL011 before the hypervisor's
// reset vector runs).
//
// pl011_arm64.go pokes the real data register; sink_stub.go stands in for
// any other GOARCH so the portable packages that log through diag (which
// logs through this package) still build and run under `go test` on a
// developer's machine, the same board-variant split iansmith-mazarin uses
// (framebuffer_qemu.go vs. framebuffer_rpi.go vs. framebuffer_text.go).
package uartdrv

// DataRegAddr is the PL011 UART0 data register on the QEMU virt machine,
// per spec.md §6 ("Device surface").
const DataRegAddr uintptr = 0x09000000
