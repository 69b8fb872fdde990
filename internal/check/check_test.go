package check

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/opusmill/opusmill/internal/config"
)

func TestCheckDeps_EncoderPresent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EncoderBin = "sh" // always on PATH in the test environment

	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("CheckDeps: %v", err)
	}
}

func TestCheckDeps_EncoderMissing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EncoderBin = filepath.Join(t.TempDir(), "definitely-not-installed")

	err := CheckDeps(&cfg)
	if !errors.Is(err, ErrEncoderNotFound) {
		t.Errorf("error = %v, want ErrEncoderNotFound", err)
	}
}
