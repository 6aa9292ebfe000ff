package sweep

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSysFile(t *testing.T, root, path, contents string) {
	t.Helper()
	full := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckIssues(t *testing.T) {
	root := t.TempDir()
	if issues := checkIssues(root); len(issues) != 0 {
		t.Errorf("expected no issues, have %v", issues)
	}

	writeSysFile(t, root, "sys/devices/system/cpu/intel_pstate/no_turbo", "0\n")
	writeSysFile(t, root, "sys/devices/system/cpu/cpu0/cpufreq/scaling_governor", "performance\n")
	writeSysFile(t, root, "sys/devices/system/cpu/cpu1/cpufreq/scaling_governor", "powersave\n")

	issues := checkIssues(root)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, have %v", issues)
	}
	if !strings.HasPrefix(issues[0], "cpu boost is not disabled") {
		t.Errorf("unexpected boost issue: %q", issues[0])
	}
	if !strings.Contains(issues[1], `"powersave"`) {
		t.Errorf("unexpected governor issue: %q", issues[1])
	}
}
