// Package pipeline orchestrates file discovery, the worker pool, per-job
// outcome collection, and batch summary reporting.
//
// Run fans jobs out across a fixed pool of workers pulling from a shared
// channel. Each job yields exactly one Result; a single collector goroutine
// (the Run caller itself) folds Results into the RunStats tallies, so the
// counters need no lock. Cancellation stops the dispatcher, which accounts
// for every undispatched job as skipped — the tally always covers the full
// job list.
package pipeline
