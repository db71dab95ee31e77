// Command iceqemu launches the icevmm freestanding image under QEMU.
// It is host-side tooling only — none of this package's code ever runs
// inside the hypervisor; it exists to save an operator from retyping
// QEMU's flags by hand and to optionally substitute one of
// internal/payload's scenario binaries for a guest image during a
// manual end-to-end check.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vmsplit/icevmm/internal/hostrun"
	"github.com/vmsplit/icevmm/internal/payload"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("iceqemu", flag.ContinueOnError)

	qemuBin := fs.String("qemu", "qemu-system-aarch64", "QEMU binary to launch")
	image := fs.String("image", "", "path to the icevmm image (cmd/icevmm build output)")
	scenario := fs.String("scenario", "", "write a built-in guest scenario (e1-hvc, e2-mmio-read, e3-fatal-mmio, e4-preempt) to -guest-out and exit")
	guestOut := fs.String("guest-out", "", "output path for -scenario")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *scenario != "" {
		return writeScenario(*scenario, *guestOut)
	}

	if *image == "" {
		fmt.Fprintln(os.Stderr, "iceqemu: -image is required")
		return 2
	}

	console, err := hostrun.NewConsole()
	if err != nil {
		fmt.Fprintln(os.Stderr, "iceqemu:", err)
		return 1
	}
	defer console.Restore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = hostrun.Launch(ctx, hostrun.Config{
		QEMUBin:   *qemuBin,
		ImagePath: *image,
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "iceqemu:", err)
		return 1
	}

	return 0
}

func writeScenario(name, out string) int {
	if out == "" {
		fmt.Fprintln(os.Stderr, "iceqemu: -guest-out is required with -scenario")
		return 2
	}

	var bin []byte
	switch name {
	case "e1-hvc":
		bin = payload.E1HelloHVC()
	case "e2-mmio-read":
		bin = payload.E2MMIORead()
	case "e3-fatal-mmio":
		bin = payload.E3FatalUnknownMMIO()
	case "e4-preempt":
		bin = payload.E4SchedulerPreemption()
	default:
		fmt.Fprintf(os.Stderr, "iceqemu: unknown scenario %q\n", name)
		return 2
	}

	if err := os.WriteFile(out, bin, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "iceqemu:", err)
		return 1
	}

	return 0
}
