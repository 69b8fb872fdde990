// Command opusmill is the CLI entrypoint for the opusmill batch transcoder.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the transcode/copy pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/opusmill/opusmill/internal/check"
	"github.com/opusmill/opusmill/internal/config"
	"github.com/opusmill/opusmill/internal/display"
	"github.com/opusmill/opusmill/internal/logging"
	"github.com/opusmill/opusmill/internal/opusenc"
	"github.com/opusmill/opusmill/internal/pipeline"
)

// drainGrace is how long a terminated encoder gets to exit before it is killed.
const drainGrace = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "opusmill: %v\n", err)
		return 2
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "opusmill: %v\n", err)
		return 2
	}

	// The destination directory holds the run logs, so it is created
	// before the logger opens its file sinks.
	if !cfg.CheckOnly {
		if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "opusmill: cannot create destination directory: %v\n", err)
			return 2
		}
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opusmill: %v\n", err)
		return 2
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// Resolve and validate paths: source must exist, and the destination
	// must not be inside the source (prevents recursive discovery of our
	// own output).
	sourceAbs, err := absPath(cfg.SourceDir)
	if err != nil {
		log.Error("Source not found: %s", cfg.SourceDir)
		return 2
	}
	destAbs, err := absPath(cfg.DestDir)
	if err != nil {
		log.Error("Cannot resolve destination path: %s", cfg.DestDir)
		return 2
	}
	if err := cfg.ValidatePaths(sourceAbs, destAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose a destination outside: %s", cfg.SourceDir)
		return 2
	}

	log.Info("=== opusmill v%s ===", config.Version())

	// Fail fast if the encoder binary is unavailable; dry runs never
	// invoke it, so they proceed regardless.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 2
		}
	}

	// Phase 3: Signal handling — on SIGINT/SIGTERM cancel the context so
	// no new jobs are claimed, then terminate every live encoder process
	// (graceful first, killed after the grace period).
	procs := opusenc.NewProcSet()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping new jobs and terminating encoders…")
		cancel()
		procs.DrainAll(drainGrace)
	}()

	// Phase 4: Run pipeline (discover → map → schedule → execute).
	stats := pipeline.Run(ctx, &cfg, log, procs)

	if stats.Interrupted {
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of source vs destination directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
