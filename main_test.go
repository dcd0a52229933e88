package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"project/target-expander/target"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(append([]string{"target-expander"}, args...), &out)
	return out.String(), err
}

func TestRunPlain(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "range then comma list kept verbatim",
			args: []string{"-t", "192.168.1.1-3:22", "-t", "cnn.com, 10.0.0.0/31"},
			want: "192.168.1.1:22\n192.168.1.2:22\n192.168.1.3:22\ncnn.com\n10.0.0.0/31\n",
		},
		{
			name: "cidr expanded",
			args: []string{"-t", "10.0.0.0/31"},
			want: "10.0.0.0\n10.0.0.1\n",
		},
		{
			name: "single targets",
			args: []string{"-t", "8.8.8.8:53", "-t", "www.google.com"},
			want: "8.8.8.8:53\nwww.google.com\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runArgs(t, tt.args...)
			if err != nil {
				t.Fatalf("run returned error: %v", err)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRunSortUnique(t *testing.T) {
	out, err := runArgs(t, "-s", "-t", "www.google.com, 10.0.0.2, 10.0.0.1, 10.0.0.2")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if want := "10.0.0.1\n10.0.0.2\nwww.google.com\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunUniqueKeepsOrder(t *testing.T) {
	out, err := runArgs(t, "-u", "-t", "b.example, a.example, b.example")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if want := "b.example\na.example\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	targets := filepath.Join(dir, "targets.txt")
	if err := os.WriteFile(targets, []byte("# ptr test\n10.0.0.1\ncnn.com,\n"), 0o600); err != nil {
		t.Fatalf("failed to write targets: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "format: ptr\nexpressions:\n  - \"@" + targets + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, err := runArgs(t, "-c", cfgPath)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if want := "1.0.0.10.in-addr.arpa.\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunSegments(t *testing.T) {
	out, err := runArgs(t, "-f", "segments", "-t", "10.0.0.0/30")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if want := "10.0.0.0,10.0.0.1,10.0.0.2,10.0.0.3\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := runArgs(t, "-t", "192.168.1.5-1"); !errors.Is(err, target.ErrDescendingRange) {
		t.Fatalf("run returned %v, want ErrDescendingRange", err)
	}
	if _, err := runArgs(t, "-t", "not a valid anything"); !errors.Is(err, target.ErrUnrecognized) {
		t.Fatalf("run returned %v, want ErrUnrecognized", err)
	}
	if _, err := runArgs(t, "-m", "16", "-t", "10.0.0.0/24"); !errors.Is(err, target.ErrExpansionLimit) {
		t.Fatalf("run returned %v, want ErrExpansionLimit", err)
	}
	if _, err := runArgs(t); !errors.Is(err, errNoExpressions) {
		t.Fatalf("run returned %v, want errNoExpressions", err)
	}
	if _, err := runArgs(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "-t", "10.0.0.1"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("run returned %v, want os.ErrNotExist", err)
	}
}

func TestRunNoLimit(t *testing.T) {
	out, err := runArgs(t, "-m", "16", "-n", "-t", "10.0.0.0/24")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if got := strings.Count(out, "\n"); got != 256 {
		t.Fatalf("output has %d lines, want 256", got)
	}
}

func TestCheckTargets(t *testing.T) {
	if got := checkTargets([]string{"10.0.0.1", "cnn.com:80", "bad target", "::1"}); got != 1 {
		t.Fatalf("checkTargets() = %d, want 1", got)
	}
}
