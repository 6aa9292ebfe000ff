package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for s, want := range tests {
		have, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
			continue
		}
		if have != want {
			t.Errorf("ParseLevel(%q): have %v, want %v", s, have, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}

func TestNewWithLogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "langbench.log")

	log, closer, err := New(&buf, slog.LevelInfo, path)
	if err != nil {
		t.Fatal(err)
	}
	log.With("program", "nbody-1.c").Info("series written", "runs", 3)
	log.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, out := range []string{buf.String(), string(data)} {
		if !strings.Contains(out, `msg="series written" program=nbody-1.c runs=3`) {
			t.Errorf("unexpected log output: %q", out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("debug record leaked: %q", out)
		}
	}
}
