package benv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/VKCOM/langbench/internal/config"
)

func TestString(t *testing.T) {
	t.Setenv("LANGBENCH_TEST_STRING", "value")
	if have := String("LANGBENCH_TEST_STRING", "default"); have != "value" {
		t.Errorf("have %q, want %q", have, "value")
	}
	t.Setenv("LANGBENCH_TEST_STRING", "")
	if have := String("LANGBENCH_TEST_STRING", "default"); have != "default" {
		t.Errorf("empty value: have %q, want %q", have, "default")
	}
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("LANGBENCH_TEST_BOOL", "true")
	t.Setenv("LANGBENCH_TEST_INT", "12")
	if !Bool("LANGBENCH_TEST_BOOL", false) {
		t.Errorf("expected true")
	}
	if have := Int("LANGBENCH_TEST_INT", 1); have != 12 {
		t.Errorf("have %d, want 12", have)
	}

	t.Setenv("LANGBENCH_TEST_BOOL", "maybe")
	t.Setenv("LANGBENCH_TEST_INT", "twelve")
	if !Bool("LANGBENCH_TEST_BOOL", true) {
		t.Errorf("malformed bool must keep the default")
	}
	if have := Int("LANGBENCH_TEST_INT", 1); have != 1 {
		t.Errorf("malformed int: have %d, want 1", have)
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv(ConfigVar, "")
	if have := ConfigFile(); have != config.DefaultFilename {
		t.Errorf("have %q, want %q", have, config.DefaultFilename)
	}
	t.Setenv(ConfigVar, "/etc/langbench.yaml")
	if have := ConfigFile(); have != "/etc/langbench.yaml" {
		t.Errorf("have %q", have)
	}
}

func TestFindMakeBinary(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "mymake")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv(MakeVar, fake)
	if have := FindMakeBinary(); have != fake {
		t.Errorf("have %q, want %q", have, fake)
	}
}
