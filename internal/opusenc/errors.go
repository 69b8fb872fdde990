package opusenc

import "fmt"

// StartError means the encoder process could not be launched at all
// (binary missing, permission denied).
type StartError struct {
	Bin string
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Bin, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// ExitError means the encoder ran but exited non-zero (or was terminated).
// Stderr holds the captured diagnostic output.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("encoder exited with code %d", e.Code)
}
