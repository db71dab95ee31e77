// Package diag is the hypervisor's only diagnostic surface: a hand-rolled,
// non-allocating replacement for the teacher's log.Printf/fmt.Errorf style
// logging. spec.md §9 mandates "no heap, no runtime" for the EL2 core, and
// fmt/log both allocate and pull in runtime/reflect machinery that doesn't
// exist this early in boot — see DESIGN.md for why this is the one place
// in the repo that does not reach for a library. The original prototype's
// uart_puts/uart_put_hex pair (original_source/src/main.c, src/uart.c) is
// the direct ancestor of Puts/PutHex64 below.
package diag

import "github.com/vmsplit/icevmm/internal/uartdrv"

// Boot banners, carried verbatim in spirit from original_source/src/main.c
// so the diagnostic transcript a reader sees on a serial console still
// reads the way the project's history would lead them to expect.
const (
	BannerMeows    = "\nicevmm: distant meows from baremetal aarch64 !!!\n"
	BannerEL2      = "icevmm: running in EL2\n"
	BannerS1Enable = "icevmm: enabling S1 MMU...\n"
	BannerS1Ready  = "icevmm: S1 MMU enabled !!!\n"
	BannerVMReady  = "icevmm: guest created.\n"
	BannerS2Enable = "icevmm: enabling S2 MMU...\n"
	BannerS2Ready  = "icevmm: S2 MMU enabled !!!\n"
	BannerRunVM    = "icevmm: running vm...\n"
)

const hexDigits = "0123456789abcdef"

// Puts writes s to the debug UART.
func Puts(s string) {
	uartdrv.PutString(s)
}

// PutHex64 writes n as a "0x"-prefixed, zero-padded 16-digit hex string,
// mirroring original_source/src/main.c's uart_put_hex.
func PutHex64(n uint64) {
	uartdrv.PutString("0x")
	for shift := 60; shift >= 0; shift -= 4 {
		uartdrv.PutByte(hexDigits[(n>>uint(shift))&0xf])
	}
}

// PutHex8 writes the low byte of n as two hex digits, no prefix — used for
// compact exception-class dumps.
func PutHex8(n uint8) {
	uartdrv.PutByte(hexDigits[(n>>4)&0xf])
	uartdrv.PutByte(hexDigits[n&0xf])
}

// PutUint writes n in decimal, smallest first approach avoided: no
// allocation is available, so digits are produced into a fixed buffer.
func PutUint(n uint32) {
	var buf [10]byte
	i := len(buf)
	if n == 0 {
		uartdrv.PutByte('0')
		return
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	for ; i < len(buf); i++ {
		uartdrv.PutByte(buf[i])
	}
}

// Fatal prints a diagnostic line and halts the core forever. This is the
// freestanding analogue of the teacher's returned errors: once the MMU is
// being configured there is no caller left to hand an error to, so
// spec.md §7 makes every unrecovered condition fatal by design.
func Fatal(msg string) {
	Puts("icevmm: FATAL: ")
	Puts(msg)
	Puts("\n")
	Hang()
}

// Hang parks the core in a wfe loop forever on arm64 (hang_arm64.s) and
// panics as a host-test stand-in everywhere else (hang_stub.go).
