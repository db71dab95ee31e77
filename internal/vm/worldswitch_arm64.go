package vm

// VcpuRun restores a complete vCPU register context from regs — x0-x30,
// SP_EL1, ELR_EL2, SPSR_EL2 — and erets into EL1 at the guest PC,
// per spec.md §4.5 steps 1-3. It never returns to its caller: control
// resumes in this function only by a fresh call, made from two call
// sites: internal/sched's Schedule, which "calls vcpu_run(next)" after
// picking a vCPU (this is also how internal/boot makes the first launch),
// and internal/boot's syncTrapEntry, re-entering the vCPU that was just
// trapped out of. Both share this one restore path rather than
// duplicating it, since the steps are identical regardless of why the
// frame is being loaded.
func VcpuRun(regs *Regs)
