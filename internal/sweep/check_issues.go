package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/VKCOM/langbench/internal/fileutil"
)

// checkIssues reports host settings that make timings noisy. root is the
// filesystem root, "/" outside of tests.
func checkIssues(root string) []string {
	var issues []string

	cpuBoostVariants := []struct {
		path    string
		enabled string
	}{
		{"sys/devices/system/cpu/intel_pstate/no_turbo", "0"},
		{"sys/devices/system/cpu/cpufreq/boost", "1"},
	}

	for _, boost := range cpuBoostVariants {
		path := filepath.Join(root, boost.path)
		if fileutil.FileExists(path) {
			data, err := os.ReadFile(path)
			if err == nil && strings.TrimSpace(string(data)) == boost.enabled {
				issues = append(issues, fmt.Sprintf("cpu boost is not disabled (%s)", path))
				break
			}
		}
	}

	governors, _ := filepath.Glob(filepath.Join(root, "sys/devices/system/cpu/cpu[0-9]*/cpufreq/scaling_governor"))
	sort.Strings(governors)
	for _, path := range governors {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if governor := strings.TrimSpace(string(data)); governor != "performance" {
			issues = append(issues, fmt.Sprintf("cpu scaling governor is %q, not \"performance\" (%s)", governor, path))
			break
		}
	}

	return issues
}
