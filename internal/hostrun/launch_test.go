package hostrun

import "testing"

func TestConfigArgsIncludesSerialStdio(t *testing.T) {
	cfg := Config{QEMUBin: "qemu-system-aarch64", ImagePath: "/tmp/icevmm.elf"}
	args := cfg.args()

	found := false
	for i, a := range args {
		if a == "-serial" && i+1 < len(args) && args[i+1] == "stdio" {
			found = true
		}
	}
	if !found {
		t.Fatalf("args missing -serial stdio: %v", args)
	}
}

func TestConfigArgsDefaultsMachineAndCPU(t *testing.T) {
	cfg := Config{QEMUBin: "qemu-system-aarch64", ImagePath: "/tmp/icevmm.elf"}
	args := cfg.args()

	want := map[string]string{"-M": "virt,virtualization=on", "-cpu": "cortex-a57", "-kernel": "/tmp/icevmm.elf"}
	for i, a := range args {
		if want[a] != "" && i+1 < len(args) && args[i+1] != want[a] {
			t.Fatalf("flag %s = %s, want %s", a, args[i+1], want[a])
		}
	}
}

func TestLaunchRejectsMissingFields(t *testing.T) {
	if err := Launch(nil, Config{}); err == nil {
		t.Fatal("expected error for empty Config")
	}
}
