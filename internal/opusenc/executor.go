package opusenc

import (
	"bytes"
	"os/exec"
)

// Runner executes the external encoder. It is shared by all workers; the
// only shared state it touches is Procs, which does its own locking.
type Runner struct {
	Bin     string
	Bitrate string
	Procs   *ProcSet
}

// NewRunner builds a Runner bound to the given binary and bitrate.
func NewRunner(bin, bitrate string, procs *ProcSet) *Runner {
	return &Runner{Bin: bin, Bitrate: bitrate, Procs: procs}
}

// Encode transcodes src into dest, blocking until the encoder exits.
// Output is discarded on success; stderr is captured and returned inside
// [ExitError] on failure. The process is registered in Procs for the whole
// time it is alive, so a concurrent DrainAll can terminate it; the wait
// itself happens outside any lock.
func (r *Runner) Encode(src, dest string) error {
	args := BuildArgs(r.Bitrate, src, dest)
	cmd := exec.Command(r.Bin, args...)

	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return &StartError{Bin: r.Bin, Err: err}
	}
	r.Procs.Add(cmd)

	err := cmd.Wait()
	r.Procs.Remove(cmd)

	if err != nil {
		code := -1
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		}
		return &ExitError{Code: code, Stderr: stderr.String()}
	}
	return nil
}
