package config

// This file implements the optional YAML config file (--config). File values
// sit between DefaultConfig and CLI flags: flags always win because they are
// parsed afterwards and mutate cfg directly.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the user-settable subset of Config. Pointer fields
// distinguish "absent" from zero values so the file can't accidentally
// clear a default.
type fileConfig struct {
	Encoder   *string `yaml:"encoder"`
	Bitrate   *string `yaml:"bitrate"`
	SourceExt *string `yaml:"source_ext"`
	TargetExt *string `yaml:"target_ext"`
	Jobs      *int    `yaml:"jobs"`
	DryRun    *bool   `yaml:"dry_run"`
	Verbose   *bool   `yaml:"verbose"`
	Color     *string `yaml:"color"`
	LogDir    *string `yaml:"log_dir"`
}

// LoadFile reads a YAML config file and applies the fields it sets onto cfg.
// Unknown keys are rejected so typos surface instead of being ignored.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Encoder != nil {
		cfg.EncoderBin = *fc.Encoder
	}
	if fc.Bitrate != nil {
		cfg.Bitrate = *fc.Bitrate
	}
	if fc.SourceExt != nil {
		cfg.SourceExt = *fc.SourceExt
	}
	if fc.TargetExt != nil {
		cfg.TargetExt = *fc.TargetExt
	}
	if fc.Jobs != nil {
		cfg.Jobs = *fc.Jobs
	}
	if fc.DryRun != nil {
		cfg.DryRun = *fc.DryRun
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Color != nil {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
	if fc.LogDir != nil {
		cfg.LogDir = *fc.LogDir
	}
	return nil
}
