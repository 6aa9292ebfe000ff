package measure

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRunResultDerivedTimes(t *testing.T) {
	r := RunResult{
		RunTime:     1500 * time.Millisecond,
		UserCPUTime: 700 * time.Millisecond,
		SysCPUTime:  50 * time.Millisecond,
	}

	if have, want := r.TotalCPUTime(), 750*time.Millisecond; have != want {
		t.Errorf("TotalCPUTime() = %v, want %v", have, want)
	}

	tests := []struct {
		name string
		have float64
		want float64
	}{
		{"RunTimeMs", r.RunTimeMs(), 1500},
		{"RunTimeSeconds", r.RunTimeSeconds(), 1.5},
		{"CPUTimeMs", r.CPUTimeMs(), 750},
		{"CPUTimeSeconds", r.CPUTimeSeconds(), 0.75},
	}
	for _, test := range tests {
		if test.have != test.want {
			t.Errorf("%s() = %v, want %v", test.name, test.have, test.want)
		}
	}
}

func TestUnitConversions(t *testing.T) {
	d := 2*time.Second + 250*time.Millisecond
	if have := FromMilliseconds(Milliseconds(d)); have != d {
		t.Errorf("FromMilliseconds(Milliseconds(%v)) = %v", d, have)
	}
	if have := FromSeconds(Seconds(d)); have != d {
		t.Errorf("FromSeconds(Seconds(%v)) = %v", d, have)
	}
	if have := Milliseconds(1234567 * time.Nanosecond); have != 1.234567 {
		t.Errorf("Milliseconds(1234567ns) = %v, want 1.234567", have)
	}
}

func TestRunResultJSON(t *testing.T) {
	r := RunResult{
		Index:       2,
		Input:       1000,
		RunTime:     52 * time.Millisecond,
		UserCPUTime: 40 * time.Millisecond,
		SysCPUTime:  2 * time.Millisecond,
		MaxRSS:      2048,
		ExitCode:    137,
		Status:      StatusTimedOut,
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{`"total_cpu_time":42000000`, `"run_time":52000000`, `"status":"timed_out"`} {
		if !strings.Contains(string(data), part) {
			t.Errorf("%s does not contain %s", data, part)
		}
	}

	var decoded RunResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r, decoded, cmpopts.IgnoreFields(RunResult{}, "StartTime", "StopTime")); diff != "" {
		t.Errorf("decoded result mismatch (-want +have):\n%s", diff)
	}
}

func TestStatusUnmarshalUnknown(t *testing.T) {
	var s Status
	if err := s.UnmarshalText([]byte("exploded")); err == nil {
		t.Error("expected error for unknown status")
	}
}
