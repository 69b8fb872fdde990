package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/music/library", "/music/library"},
		{"single trailing slash", "/music/library/", "/music/library"},
		{"multiple trailing slashes", "/music/library///", "/music/library"},
		{"root path", "/", "/"},
		{"relative path", "out", "out"},
		{"relative with slash", "out/", "out"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Bitrate(t *testing.T) {
	tests := []struct {
		name    string
		bitrate string
		wantErr bool
	}{
		{"plain kbps", "192k", false},
		{"low rate", "64k", false},
		{"high rate", "510k", false},
		{"missing suffix", "192", true},
		{"uppercase suffix", "192K", true},
		{"letters only", "abc", true},
		{"trailing garbage", "192kbps", true},
		{"empty", "", true},
		{"suffix only", "k", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.Bitrate = tt.bitrate
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Extensions(t *testing.T) {
	tests := []struct {
		name      string
		sourceExt string
		targetExt string
		wantErr   bool
	}{
		{"defaults", ".flac", ".opus", false},
		{"custom pair", ".wav", ".ogg", false},
		{"missing dot", "flac", ".opus", true},
		{"dot only", ".", ".opus", true},
		{"embedded separator", ".fl/ac", ".opus", true},
		{"same extension", ".opus", ".opus", true},
		{"same ignoring case", ".FLAC", ".flac", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.SourceExt = tt.sourceExt
			cfg.TargetExt = tt.targetExt
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Jobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true

	cfg.Jobs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject negative jobs")
	}
	for _, n := range []int{0, 1, 16} {
		cfg.Jobs = n
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with jobs=%d: %v", n, err)
		}
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = false
	cfg.SourceDir = ""
	cfg.DestDir = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when paths are empty and CheckOnly is false")
	}

	cfg.SourceDir = "/in"
	cfg.DestDir = "/out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		dest    string
		wantErr bool
	}{
		{"separate directories", "/music/in", "/music/out", false},
		{"dest equals source", "/music/lib", "/music/lib", true},
		{"dest inside source", "/music/lib", "/music/lib/opus", true},
		{"dest is parent of source", "/music/lib/sub", "/music/lib", false},
		{"similar prefix not nested", "/music/library", "/music/library2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ValidatePaths(tt.source, tt.dest)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%q, %q) error = %v, wantErr %v",
					tt.source, tt.dest, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.EncoderBin != "opusenc" {
		t.Errorf("default EncoderBin = %q, want opusenc", cfg.EncoderBin)
	}
	if cfg.Bitrate != "192k" {
		t.Errorf("default Bitrate = %q, want 192k", cfg.Bitrate)
	}
	if cfg.SourceExt != ".flac" || cfg.TargetExt != ".opus" {
		t.Errorf("default extensions = %q -> %q, want .flac -> .opus", cfg.SourceExt, cfg.TargetExt)
	}
	if cfg.Jobs != 0 {
		t.Errorf("default Jobs = %d, want 0 (auto)", cfg.Jobs)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want auto", cfg.ColorMode)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opusmill.yaml")
	content := "bitrate: 128k\njobs: 3\ndry_run: true\nsource_ext: .wav\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Bitrate != "128k" {
		t.Errorf("Bitrate = %q, want 128k", cfg.Bitrate)
	}
	if cfg.Jobs != 3 {
		t.Errorf("Jobs = %d, want 3", cfg.Jobs)
	}
	if !cfg.DryRun {
		t.Error("DryRun should be true")
	}
	if cfg.SourceExt != ".wav" {
		t.Errorf("SourceExt = %q, want .wav", cfg.SourceExt)
	}
	// Unset keys keep their defaults.
	if cfg.TargetExt != ".opus" {
		t.Errorf("TargetExt = %q, want default .opus", cfg.TargetExt)
	}
	if cfg.EncoderBin != "opusenc" {
		t.Errorf("EncoderBin = %q, want default opusenc", cfg.EncoderBin)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("bitrte: 128k\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("LoadFile should reject unknown keys")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile should fail for a missing file")
	}
}

func TestLoadFile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Errorf("LoadFile on empty file: %v", err)
	}
	if cfg.Bitrate != "192k" {
		t.Errorf("empty file should leave defaults, Bitrate = %q", cfg.Bitrate)
	}
}
