package uartdrv

import "unsafe"

// PutByte writes a single byte to the UART data register. '\n' is
// expanded to "\r\n", matching the original prototype's uart_putc and
// spec.md's guest-visible contract.
func PutByte(c byte) {
	reg := (*uint32)(unsafe.Pointer(DataRegAddr))
	if c == '\n' {
		*reg = uint32('\r')
	}
	*reg = uint32(c)
}

// PutString writes each byte of s to the UART in order.
func PutString(s string) {
	for i := 0; i < len(s); i++ {
		PutByte(s[i])
	}
}
