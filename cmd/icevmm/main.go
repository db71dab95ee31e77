// Command icevmm is the freestanding hypervisor image. It never runs as
// a normal Go program: the platform linker (internal/boot/linker.ld)
// sets the image's entry point to _start (internal/boot/start_arm64.s),
// which sets up a stack, zeroes BSS, and tail-calls boot.Boot directly —
// main below never executes and exists only so this package satisfies
// `go build`'s requirement that a command have a main function. QEMU's
// `-kernel` loader never heard of main.main.
package main

import "github.com/vmsplit/icevmm/internal/boot"

func main() {
	boot.Boot()
}
