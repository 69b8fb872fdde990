package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/opusmill/opusmill/internal/config"
	"github.com/opusmill/opusmill/internal/display"
	"github.com/opusmill/opusmill/internal/logging"
	"github.com/opusmill/opusmill/internal/opusenc"
	"github.com/opusmill/opusmill/internal/plan"
)

// Run is the top-level batch entry point. It discovers files, builds jobs,
// fans them out across the worker pool, and returns aggregate stats. The
// calling goroutine acts as the collector, folding every Result exactly
// once; procs is shared with the interrupt handler so in-flight encoders
// can be terminated.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, procs *opusenc.ProcSet) RunStats {
	start := time.Now()
	stats := NewRunStats()

	transcodables, passthrough, err := Discover(cfg.SourceDir, cfg.SourceExt)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats
	}

	jobs := buildJobs(cfg, log, &stats, transcodables, passthrough)
	stats.TotalJobs = len(jobs) + stats.Combined().Total()

	workers := cfg.Jobs
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	logBatchHeader(cfg, log, len(transcodables), len(passthrough), workers)

	if len(jobs) > 0 {
		runner := opusenc.NewRunner(cfg.EncoderBin, cfg.Bitrate, procs)
		collect(ctx, cfg, log, runner, jobs, workers, &stats)
	}

	stats.Interrupted = ctx.Err() != nil
	stats.Elapsed = time.Since(start)
	logSummary(cfg, log, &stats)
	return stats
}

// buildJobs resolves destination paths for every discovered file. A path
// mapping failure is contained to that file: it is tallied as failed right
// here and never reaches the pool.
func buildJobs(cfg *config.Config, log *logging.Logger, stats *RunStats, transcodables, passthrough []string) []plan.Job {
	jobs := make([]plan.Job, 0, len(transcodables)+len(passthrough))
	add := func(src string, kind plan.Kind) {
		j, err := plan.NewJob(src, cfg.SourceDir, cfg.DestDir, kind, cfg.TargetExt)
		if err != nil {
			log.Error("Cannot map path for %s: %v", src, err)
			stats.record(Result{Job: plan.Job{Source: src, Kind: kind}, Outcome: Failed, Err: err})
			return
		}
		jobs = append(jobs, j)
	}
	for _, src := range transcodables {
		add(src, plan.Transcode)
	}
	for _, src := range passthrough {
		add(src, plan.Copy)
	}
	return jobs
}

// collect runs the pool and folds results. One dispatcher feeds the shared
// job channel and converts undispatched jobs into skipped results once the
// context is cancelled; W workers pull and process. The channel of results
// closes when dispatcher and workers are done, guaranteeing exactly one
// Result per job.
func collect(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	runner *opusenc.Runner,
	jobs []plan.Job,
	workers int,
	stats *RunStats,
) {
	jobCh := make(chan plan.Job)
	results := make(chan Result)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobCh)
		for _, j := range jobs {
			select {
			case <-ctx.Done():
				results <- Result{Job: j, Outcome: Skipped}
			case jobCh <- j:
			}
		}
	}()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				results <- process(ctx, cfg, runner, j)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	done, total := 0, len(jobs)
	for res := range results {
		done++
		stats.record(res)
		logResult(cfg, log, res, done, total)
	}
}

// process handles one job inside a worker: cancellation gate, freshness
// gate, dry-run gate, then the actual transcode or copy. Errors are
// converted to outcomes here and never escape the worker.
func process(ctx context.Context, cfg *config.Config, runner *opusenc.Runner, j plan.Job) Result {
	if ctx.Err() != nil {
		return Result{Job: j, Outcome: Skipped}
	}
	if plan.Fresh(j.Source, j.Dest) {
		return Result{Job: j, Outcome: Skipped}
	}
	if cfg.DryRun {
		return Result{Job: j, Outcome: DryRun}
	}

	if err := os.MkdirAll(filepath.Dir(j.Dest), 0o755); err != nil {
		return Result{Job: j, Outcome: Failed, Err: err}
	}

	start := time.Now()
	var dstBytes int64
	var err error
	switch j.Kind {
	case plan.Transcode:
		err = runner.Encode(j.Source, j.Dest)
	case plan.Copy:
		dstBytes, err = copyFile(j.Source, j.Dest)
	}
	if err != nil {
		// A half-written output would otherwise look fresh on the next run.
		os.Remove(j.Dest)
		return Result{Job: j, Outcome: Failed, Err: err, Elapsed: time.Since(start)}
	}

	var srcBytes int64
	if fi, serr := os.Stat(j.Source); serr == nil {
		srcBytes = fi.Size()
	}
	if j.Kind == plan.Transcode {
		if fi, serr := os.Stat(j.Dest); serr == nil {
			dstBytes = fi.Size()
		}
	}
	return Result{Job: j, Outcome: Success, SrcBytes: srcBytes, DstBytes: dstBytes, Elapsed: time.Since(start)}
}

// --- Logging helpers ---

func logResult(cfg *config.Config, log *logging.Logger, res Result, done, total int) {
	base := filepath.Base(res.Job.Source)
	switch res.Outcome {
	case Success:
		if res.Job.Kind == plan.Transcode {
			log.Success("[%d/%d] Transcoded %s (%s -> %s, %s)",
				done, total, base,
				display.FormatBytes(res.SrcBytes), display.FormatBytes(res.DstBytes),
				display.FormatDuration(res.Elapsed))
		} else {
			log.Success("[%d/%d] Copied %s (%s)", done, total, base, display.FormatBytes(res.DstBytes))
		}
	case Failed:
		log.Error("[%d/%d] Failed to %s %s: %v", done, total, res.Job.Kind, base, res.Err)
		logEncoderStderr(log, res.Err)
	case Skipped:
		log.Debug(cfg.Verbose, "[%d/%d] Skipped %s", done, total, base)
	case DryRun:
		log.Info("[%d/%d] [DRY] Would %s %s -> %s", done, total, res.Job.Kind, base, res.Job.Dest)
	}
}

// logEncoderStderr surfaces the tail of the encoder's stderr on failure.
func logEncoderStderr(log *logging.Logger, err error) {
	var ee *opusenc.ExitError
	if !errors.As(err, &ee) || ee.Stderr == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(ee.Stderr), "\n")
	start := 0
	if len(lines) > 10 {
		start = len(lines) - 10
	}
	log.Error("Last encoder output:")
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

func logBatchHeader(cfg *config.Config, log *logging.Logger, transcodables, passthrough, workers int) {
	log.Info("Run %s", log.RunID())
	log.Info("Source:  %s", cfg.SourceDir)
	log.Info("Dest:    %s", cfg.DestDir)
	log.Info("Bitrate: %s (%s)", cfg.Bitrate, cfg.EncoderBin)
	log.Info("Found %d %s file(s), %d pass-through file(s)", transcodables, cfg.SourceExt, passthrough)
	if workers == 1 {
		log.Info("Workers: 1 (sequential)")
	} else {
		log.Info("Workers: %d", workers)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}
	log.Info("")
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	if stats.Interrupted {
		log.Warn("Run interrupted — partial results below")
	}

	logTallyTable(log, "Transcode summary", stats.Transcodes)
	logTallyTable(log, "Copy summary", stats.Copies)

	log.Info("  Total jobs: %d", stats.TotalJobs)
	log.Info("  Elapsed: %s", display.FormatDuration(stats.Elapsed))

	if cfg.DryRun {
		log.Info("  Space delta: n/a (dry run)")
	} else if stats.TotalInputBytes > 0 {
		saved := stats.SpaceSaved()
		if saved >= 0 {
			log.Success("  Space saved: %s (input %s -> output %s)",
				display.FormatBytes(saved),
				display.FormatBytes(stats.TotalInputBytes),
				display.FormatBytes(stats.TotalOutputBytes))
		} else {
			log.Warn("  Space saved: %s (overall output is larger)",
				display.FormatBytesWithSign(saved))
		}
	}

	if log.MainLogPath() != "" {
		log.Info("  Main log:  %s", log.MainLogPath())
		log.Info("  Error log: %s", log.ErrorLogPath())
	}
}

func logTallyTable(log *logging.Logger, title string, t Tally) {
	log.Info("%s:", title)
	for _, o := range []Outcome{Success, Failed, Skipped, DryRun} {
		log.Info("  %-8s %d", o.String(), t[o])
	}
}
