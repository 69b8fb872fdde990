// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	SourceDir string
	DestDir   string

	// Encoder settings.
	EncoderBin string // Default: "opusenc".
	Bitrate    string // Default: "192k". Must match ^[0-9]+k$.

	// File classification.
	SourceExt string // Default: ".flac". Matched case-insensitively.
	TargetExt string // Default: ".opus".

	// Scheduling.
	Jobs int // Worker count. 0 = auto-detect from CPU count.

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogDir    string    // Run log directory. Empty = DestDir.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// bitrateRe is the accepted bitrate shape: digits followed by a literal "k".
var bitrateRe = regexp.MustCompile(`^[0-9]+k$`)

// DefaultConfig returns a Config with defaults matching the original
// flac-to-opus workflow: 192k Opus output, auto-detected parallelism.
func DefaultConfig() Config {
	return Config{
		EncoderBin: "opusenc",
		Bitrate:    "192k",
		SourceExt:  ".flac",
		TargetExt:  ".opus",
		Jobs:       0,
		DryRun:     false,
		Verbose:    false,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks bitrate shape, extensions, worker count, and color mode.
// When not in CheckOnly mode it also requires both directory paths.
// Any error here is fatal: nothing has been scheduled yet and the caller
// aborts before touching the filesystem.
func (c *Config) Validate() error {
	if !bitrateRe.MatchString(c.Bitrate) {
		return fmt.Errorf("invalid bitrate %q (expected something like '192k')", c.Bitrate)
	}
	if c.EncoderBin == "" {
		return errors.New("encoder binary must not be empty")
	}
	if err := validateExt(c.SourceExt, "source"); err != nil {
		return err
	}
	if err := validateExt(c.TargetExt, "target"); err != nil {
		return err
	}
	if strings.EqualFold(c.SourceExt, c.TargetExt) {
		return fmt.Errorf("source and target extensions must differ (both %q)", c.SourceExt)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0 (0 = auto), got %d", c.Jobs)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.SourceDir == "" || c.DestDir == "" {
		return errors.New("need exactly source_dir and dest_dir")
	}
	return nil
}

// validateExt requires an extension with a leading dot and no path
// separators or further dots, e.g. ".flac".
func validateExt(ext, which string) error {
	if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("invalid %s extension %q (expected e.g. '.flac')", which, ext)
	}
	if strings.ContainsAny(ext[1:], "./\\") {
		return fmt.Errorf("invalid %s extension %q", which, ext)
	}
	return nil
}

// ValidatePaths ensures the resolved destination directory is not inside
// (or equal to) the resolved source directory. This prevents the pipeline
// from discovering its own output files. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(sourceAbs, destAbs string) error {
	sep := string(filepath.Separator)
	if destAbs == sourceAbs || strings.HasPrefix(destAbs+sep, sourceAbs+sep) {
		return errors.New("destination directory must not be inside source directory")
	}
	return nil
}
