package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into encoding, scheduling, behavior, display, and utility.
// Override flags (e.g. --no-color) are captured as bools and applied after
// Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// version is shown in --version and help; override at build time with -ldflags "-X ...config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. A --config file, when given, is loaded before the remaining flag
// values are applied, so explicit flags win over file values.
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("opusmill", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var over overrideFlags

	defineEncodingFlags(fs, cfg)
	defineSchedulingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &over)
	defineUtilityFlags(fs, cfg, &over)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if over.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if over.showVersion {
		fmt.Fprintln(os.Stdout, "opusmill v"+version)
		os.Exit(0)
	}

	if over.configFile != "" {
		// Load the file onto a fresh copy of the defaults, then replay the
		// explicitly-set flags on top so the precedence is
		// defaults < file < flags.
		fileCfg := *cfg
		if err := LoadFile(&fileCfg, over.configFile); err != nil {
			return err
		}
		applyFileUnderFlags(cfg, &fileCfg, fs)
	}

	applyOverrideFlags(cfg, &over)

	return parsePositionalArgs(fs, cfg)
}

// overrideFlags holds flags that are applied after Parse rather than bound
// directly to Config fields.
type overrideFlags struct {
	forceColor  bool
	noColor     bool
	configFile  string
	showVersion bool
	showHelp    bool
}

// defineEncodingFlags registers -b/--bitrate, --encoder, --source-ext, --target-ext.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Bitrate, "bitrate", cfg.Bitrate, "Opus bitrate, e.g. 192k")
	fs.StringVar(&cfg.Bitrate, "b", cfg.Bitrate, "Same as --bitrate")
	fs.StringVar(&cfg.EncoderBin, "encoder", cfg.EncoderBin, "Encoder binary to invoke")
	fs.StringVar(&cfg.SourceExt, "source-ext", cfg.SourceExt, "Extension of files to transcode")
	fs.StringVar(&cfg.TargetExt, "target-ext", cfg.TargetExt, "Extension for transcoded output")
}

// defineSchedulingFlags registers -j/--jobs.
func defineSchedulingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Parallel workers (0 = auto-detect CPUs)")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "Same as --jobs")
}

// defineBehaviorFlags registers -d/--dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not transcode or copy")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log-dir.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, o *overrideFlags) {
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogDir, "log-dir", "", "Directory for run logs (default: dest_dir)")
}

// defineUtilityFlags registers --config, --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, o *overrideFlags) {
	fs.StringVar(&o.configFile, "config", "", "YAML config file")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&o.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&o.showHelp, "h", false, "Same as --help")
}

// applyFileUnderFlags merges fileCfg into cfg, then re-applies every flag
// the user explicitly set so the CLI keeps the last word.
func applyFileUnderFlags(cfg *Config, fileCfg *Config, fs *flag.FlagSet) {
	*cfg = *fileCfg
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bitrate", "b":
			cfg.Bitrate = f.Value.String()
		case "encoder":
			cfg.EncoderBin = f.Value.String()
		case "source-ext":
			cfg.SourceExt = f.Value.String()
		case "target-ext":
			cfg.TargetExt = f.Value.String()
		case "jobs", "j":
			fmt.Sscanf(f.Value.String(), "%d", &cfg.Jobs)
		case "dry-run", "d":
			cfg.DryRun = f.Value.String() == "true"
		case "verbose", "v":
			cfg.Verbose = f.Value.String() == "true"
		case "log-dir":
			cfg.LogDir = f.Value.String()
		}
	})
}

// applyOverrideFlags copies override flag values into cfg.
func applyOverrideFlags(cfg *Config, o *overrideFlags) {
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets SourceDir and DestDir from the two positional args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly source_dir and dest_dir")
	}
	cfg.SourceDir = NormalizeDirArg(args[0])
	cfg.DestDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "opusmill v" + version + " — batch lossless-to-Opus transcoder"},
		{"", ""},
		{"  opusmill [OPTIONS] <source_dir> <dest_dir>", ""},
		{"", ""},
		{"Encoding", ""},
		{"  -b, --bitrate <rate>", "Opus bitrate (default: 192k)"},
		{"  --encoder <binary>", "Encoder binary (default: opusenc)"},
		{"  --source-ext <.ext>", "Extension to transcode (default: .flac)"},
		{"  --target-ext <.ext>", "Output extension (default: .opus)"},
		{"", ""},
		{"Scheduling", ""},
		{"  -j, --jobs <n>", "Parallel workers (default: auto-detect CPUs)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not transcode or copy"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  --log-dir <path>", "Directory for run logs (default: dest_dir)"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file"},
		{"  -c, --check", "System diagnostics (encoder availability)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// Version returns the build version string for banner/header logging.
func Version() string { return strings.TrimSpace(version) }
