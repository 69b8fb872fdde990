package display

import (
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBytesWithSign(t *testing.T) {
	if got := FormatBytesWithSign(1024); got != "+ 1.0 KiB" {
		t.Errorf("positive: %q", got)
	}
	if got := FormatBytesWithSign(-1024); got != "- 1.0 KiB" {
		t.Errorf("negative: %q", got)
	}
	if got := FormatBytesWithSign(0); got != "0 B" {
		t.Errorf("zero: %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{4200 * time.Millisecond, "4.2s"},
		{192 * time.Second, "3m12s"},
		{64 * time.Minute, "1h04m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
