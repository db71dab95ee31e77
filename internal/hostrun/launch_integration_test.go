//go:build integration

// This test spawns a real qemu-system-aarch64 and is excluded from the
// default `go test ./...` run; it needs the emulator installed and a
// built icevmm image, neither of which belong in a unit test run.
package hostrun

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLaunchRunsAndCanBeCancelled(t *testing.T) {
	qemu := os.Getenv("ICEVMM_QEMU_BIN")
	image := os.Getenv("ICEVMM_TEST_IMAGE")
	if qemu == "" || image == "" {
		t.Skip("set ICEVMM_QEMU_BIN and ICEVMM_TEST_IMAGE to run this test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Launch(ctx, Config{QEMUBin: qemu, ImagePath: image})
	if err != context.DeadlineExceeded && err != nil {
		t.Fatalf("Launch returned unexpected error: %v", err)
	}
}
