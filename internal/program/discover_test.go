package program

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/VKCOM/langbench/internal/config"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func programNames(programs []Program) []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name()
	}
	return names
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nbody := filepath.Join(root, "nbody")
	fasta := filepath.Join(root, "fasta")

	touch(t, filepath.Join(nbody, "nbody-2.rs"))
	touch(t, filepath.Join(nbody, "nbody-1.c"))
	touch(t, filepath.Join(nbody, "benchmarks.yaml"))
	touch(t, filepath.Join(nbody, "README.md"))
	touch(t, filepath.Join(nbody, "nbody-3.go"))
	touch(t, filepath.Join(nbody, "sub", "nested-1.c"))
	extra := touch(t, filepath.Join(fasta, "fasta-1.zig"))
	touch(t, filepath.Join(fasta, "fasta-2.zig"))

	filters := config.Filters{
		Directories: []string{nbody},
		Include:     []string{extra},
		Exclude:     []string{filepath.Join(nbody, "nbody-3.go")},
		Ignore:      []string{".md"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	programs, err := Discover(filters, log)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"fasta-1.zig", "nbody-1.c", "nbody-2.rs"}
	if diff := cmp.Diff(want, programNames(programs)); diff != "" {
		t.Errorf("programs mismatch (-want +have):\n%s", diff)
	}
}

func TestDiscoverDeduplicates(t *testing.T) {
	root := t.TempDir()
	path := touch(t, filepath.Join(root, "fannkuch-1.cpp"))

	filters := config.Filters{
		Directories: []string{root},
		Include:     []string{path},
	}
	programs, err := Discover(filters, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if len(programs) != 1 {
		t.Errorf("expected one program, have %v", programNames(programs))
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	filters := config.Filters{
		Directories: []string{filepath.Join(t.TempDir(), "missing")},
	}
	if _, err := Discover(filters, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Errorf("expected an error for a missing directory")
	}
}
