package opusenc

import (
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// ProcSet tracks the currently-running encoder processes. A process is a
// member exactly between its successful start and the completion of its
// wait. The lock guards only membership bookkeeping — never the blocking
// wait itself — so process starts are not serialized.
type ProcSet struct {
	mu       sync.Mutex
	live     map[*exec.Cmd]chan struct{} // closed by Remove once the process is reaped
	draining bool
}

// NewProcSet returns an empty set.
func NewProcSet() *ProcSet {
	return &ProcSet{live: make(map[*exec.Cmd]chan struct{})}
}

// Add registers a started process. If a drain is already in progress the
// process is sent SIGTERM immediately, closing the race between a worker
// starting an encoder and the coordinator terminating the batch.
func (s *ProcSet) Add(cmd *exec.Cmd) {
	s.mu.Lock()
	s.live[cmd] = make(chan struct{})
	draining := s.draining
	s.mu.Unlock()

	if draining && cmd.Process != nil {
		_ = cmd.Process.Signal(syscall.SIGTERM)
	}
}

// Remove deregisters a process whose wait has completed.
func (s *ProcSet) Remove(cmd *exec.Cmd) {
	s.mu.Lock()
	done := s.live[cmd]
	delete(s.live, cmd)
	s.mu.Unlock()

	if done != nil {
		close(done)
	}
}

// Len returns the number of live processes.
func (s *ProcSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// DrainAll terminates every live process: SIGTERM first, then SIGKILL for
// anything still alive after the grace period. Grace waits run concurrently
// so the total bound is one grace period, not one per process. DrainAll
// returns only when every process it saw has been reaped; processes added
// while draining are terminated by Add.
func (s *ProcSet) DrainAll(grace time.Duration) {
	s.mu.Lock()
	s.draining = true
	snapshot := make(map[*exec.Cmd]chan struct{}, len(s.live))
	for cmd, done := range s.live {
		snapshot[cmd] = done
	}
	s.mu.Unlock()

	for cmd := range snapshot {
		if cmd.Process != nil {
			_ = cmd.Process.Signal(syscall.SIGTERM)
		}
	}

	var wg sync.WaitGroup
	for cmd, done := range snapshot {
		wg.Add(1)
		go func(cmd *exec.Cmd, done chan struct{}) {
			defer wg.Done()
			select {
			case <-done:
			case <-time.After(grace):
				if cmd.Process != nil {
					_ = cmd.Process.Kill()
				}
				<-done
			}
		}(cmd, done)
	}
	wg.Wait()
}
