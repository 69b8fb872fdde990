package opusenc

import (
	"os/exec"
	"testing"
	"time"
)

func TestProcSet_AddRemove(t *testing.T) {
	s := NewProcSet()

	cmd := exec.Command("sleep", "0.05")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	s.Add(cmd)
	if s.Len() != 1 {
		t.Fatalf("Len after Add = %d, want 1", s.Len())
	}

	if err := cmd.Wait(); err != nil {
		t.Fatal(err)
	}
	s.Remove(cmd)
	if s.Len() != 0 {
		t.Errorf("Len after Remove = %d, want 0", s.Len())
	}
}

func TestProcSet_DrainAllTerminates(t *testing.T) {
	s := NewProcSet()

	// The worker side: a long-running process whose wait removes it from
	// the set, as Runner.Encode does.
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	s.Add(cmd)

	waited := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		s.Remove(cmd)
		waited <- err
	}()

	start := time.Now()
	s.DrainAll(2 * time.Second)
	elapsed := time.Since(start)

	select {
	case err := <-waited:
		if err == nil {
			t.Error("terminated process should report a wait error")
		}
	case <-time.After(time.Second):
		t.Fatal("worker wait did not return after drain")
	}

	if s.Len() != 0 {
		t.Errorf("Len after drain = %d, want 0", s.Len())
	}
	// sleep dies on SIGTERM, so the grace period should not be consumed.
	if elapsed > time.Second {
		t.Errorf("drain took %v, expected prompt SIGTERM exit", elapsed)
	}
}

func TestProcSet_AddWhileDraining(t *testing.T) {
	s := NewProcSet()
	s.DrainAll(time.Second) // empty set; flips the draining flag

	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	s.Add(cmd) // must be terminated immediately

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		s.Remove(cmd)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("process added during drain was not terminated")
	}
}

func TestProcSet_DrainAllEmpty(t *testing.T) {
	s := NewProcSet()
	start := time.Now()
	s.DrainAll(5 * time.Second)
	if time.Since(start) > time.Second {
		t.Error("draining an empty set should return immediately")
	}
}
