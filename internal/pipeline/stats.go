package pipeline

import (
	"time"

	"github.com/opusmill/opusmill/internal/plan"
)

// Outcome classifies what happened to one job. The enumeration is closed:
// every job ends in exactly one of these states.
type Outcome int

const (
	Success Outcome = iota
	Failed
	Skipped
	DryRun
)

// String returns the label used in logs and the summary table.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	case DryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// Tally counts outcomes. Only the collector writes to it.
type Tally map[Outcome]int

// Total returns the number of jobs accounted for.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Result is the record one worker produces for one job.
type Result struct {
	Job      plan.Job
	Outcome  Outcome
	Err      error
	SrcBytes int64
	DstBytes int64
	Elapsed  time.Duration
}

// RunStats aggregates a whole batch: one tally per job kind plus byte and
// timing totals. Written only by the collector, read after Run returns.
type RunStats struct {
	TotalJobs        int
	Transcodes       Tally
	Copies           Tally
	TotalInputBytes  int64
	TotalOutputBytes int64
	Elapsed          time.Duration
	Interrupted      bool
}

// NewRunStats returns RunStats with initialized tallies.
func NewRunStats() RunStats {
	return RunStats{Transcodes: Tally{}, Copies: Tally{}}
}

// Combined merges both tallies into one outcome count.
func (s *RunStats) Combined() Tally {
	out := Tally{}
	for o, c := range s.Transcodes {
		out[o] += c
	}
	for o, c := range s.Copies {
		out[o] += c
	}
	return out
}

// SpaceSaved returns the aggregate byte difference between sources and
// outputs for successful transcodes. Positive means outputs are smaller.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// record folds one result into the stats.
func (s *RunStats) record(res Result) {
	switch res.Job.Kind {
	case plan.Transcode:
		s.Transcodes[res.Outcome]++
	case plan.Copy:
		s.Copies[res.Outcome]++
	}
	if res.Outcome == Success {
		s.TotalInputBytes += res.SrcBytes
		s.TotalOutputBytes += res.DstBytes
	}
}
