package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestStampPath(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"txt extension", "result.txt", "result_260829_140509.txt"},
		{"other extension", "out.log", "out_260829_140509.log"},
		{"no extension", "result", "result_260829_140509.txt"},
		{"nested path", "out/dir/result.txt", "out/dir/result_260829_140509.txt"},
		{"multiple dots", "a.b.txt", "a.b_260829_140509.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stampPath(tt.path, now); got != tt.want {
				t.Errorf("stampPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestStampPathDistinguishesRuns(t *testing.T) {
	a := stampPath("result.txt", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := stampPath("result.txt", time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC))
	if a == b {
		t.Errorf("consecutive runs produced the same path %q", a)
	}
}

func TestRunMissingInput(t *testing.T) {
	var stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope.pdf")

	if code := run([]string{missing}, &stderr); code != exitInputNotFound {
		t.Errorf("exit code = %d, want %d", code, exitInputNotFound)
	}
	if stderr.Len() == 0 {
		t.Error("expected an error message on stderr")
	}
}

func TestRunBadFlag(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"-nonsense"}, &stderr); code != exitDecodeFailed {
		t.Errorf("exit code = %d, want %d", code, exitDecodeFailed)
	}
}
