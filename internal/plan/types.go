// Package plan defines the unit of work (Job) and the pure decisions made
// about each discovered file: where its output lives and whether that
// output is already up to date.
package plan

// Kind says what a worker does with a Job.
type Kind int

const (
	// Transcode runs the external encoder to produce a compressed copy.
	Transcode Kind = iota
	// Copy mirrors the file into the destination tree unchanged.
	Copy
)

// String returns the lowercase label used in logs.
func (k Kind) String() string {
	switch k {
	case Transcode:
		return "transcode"
	case Copy:
		return "copy"
	default:
		return "unknown"
	}
}

// Job maps one source file to one destination file. Jobs are built once
// during discovery, never mutated, and consumed by exactly one worker.
type Job struct {
	Source string
	Dest   string
	Kind   Kind
}
