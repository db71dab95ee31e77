// Package hostrun is the host-side half of this repository: the pieces
// that run as an ordinary Go program on the operator's machine rather
// than freestanding inside the guest. It launches QEMU with the
// freestanding icevmm image as its `-kernel`, puts the host terminal in
// raw mode for the duration (QEMU's `-serial stdio` needs the host's
// own tty out of cooked mode or keystrokes get line-buffered and
// signal characters get eaten by the host shell before QEMU ever sees
// them), and forwards SIGINT/SIGTERM to QEMU's process group so a
// Ctrl-C during a session stops QEMU instead of orphaning it.
package hostrun

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Console puts the host terminal into raw mode for the lifetime of a
// QEMU session and restores it afterward. Grounded on the same
// term.MakeRaw/term.Restore pairing used for an emulator's serial
// console, generalized here to the simpler case of a pure passthrough
// (icevmm's own UART emulation, not this package, is what interprets
// the byte stream — hostrun only needs the pipe to stay transparent).
type Console struct {
	fd    int
	state *term.State
}

// NewConsole puts stdin into raw mode, if it is a terminal. Non-TTY
// stdin (piping scenario payloads through a test harness, say) is not
// an error: Launch still works, it just can't be interrupted by a raw
// keypress.
func NewConsole() (*Console, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return &Console{fd: -1}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("hostrun: raw mode: %w", err)
	}

	return &Console{fd: fd, state: state}, nil
}

// Restore returns the terminal to the state it was in before NewConsole.
// Safe to call on a non-TTY console; a no-op there.
func (c *Console) Restore() {
	if c.state == nil {
		return
	}
	_ = term.Restore(c.fd, c.state)
}
