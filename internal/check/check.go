// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for the external encoder binary.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/opusmill/opusmill/internal/config"
)

// ErrEncoderNotFound is returned by CheckDeps when the encoder binary is
// missing from PATH. Wrapped with the binary name for the user-facing message.
var ErrEncoderNotFound = errors.New("encoder not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: encoder availability and
// version. Informational only — it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	path, err := exec.LookPath(cfg.EncoderBin)
	if err != nil {
		log.Error("%s not found on PATH (install opus-tools?)", cfg.EncoderBin)
		return
	}
	log.Success("%s: %s", cfg.EncoderBin, path)

	out, err := exec.Command(cfg.EncoderBin, "--version").CombinedOutput()
	if err != nil {
		log.Warn("%s found but --version failed: %v", cfg.EncoderBin, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Info("Version: %s", firstLine)
}

// CheckDeps is the pre-run validation: the encoder binary must be on PATH.
// Runs before any job is scheduled so a missing binary aborts the whole run
// instead of failing every file individually.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.EncoderBin); err != nil {
		return fmt.Errorf("%w: %s", ErrEncoderNotFound, cfg.EncoderBin)
	}
	return nil
}
