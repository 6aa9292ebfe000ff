// Package report writes sweep results to disk and renders them for
// people, benchstat and Prometheus.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/VKCOM/langbench/internal/fileutil"
	"github.com/VKCOM/langbench/internal/program"
	"github.com/VKCOM/langbench/internal/series"
)

// Layout of an output directory.
const (
	ResultsDir      = "results"
	SummaryFilename = "summary.json"
)

// SeriesFilename names the file of one series, e.g. nbody-1.c.1000.json.
func SeriesFilename(r *series.Result) string {
	return fmt.Sprintf("%s.%s.json", r.Bench, program.FormatInput(r.Input))
}

// WriteSeries stores r under dir and returns the file path.
func WriteSeries(dir string, r *series.Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", r.Bench, err)
	}
	path := filepath.Join(dir, SeriesFilename(r))
	if err := fileutil.WriteFile(path, append(data, '\n')); err != nil {
		return "", err
	}
	return path, nil
}

// LoadSeriesFile decodes one series file. The statistics are recomputed
// from the stored runs rather than trusted.
func LoadSeriesFile(path string) (*series.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r series.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	r.Rebuild()
	return &r, nil
}

// LoadSeries decodes every series file directly inside dir, ordered by
// file name.
func LoadSeries(dir string) ([]*series.Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || e.Name() == SummaryFilename {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	results := make([]*series.Result, 0, len(names))
	for _, name := range names {
		r, err := LoadSeriesFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func WriteSummary(path string, s *series.Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return fileutil.WriteFile(path, append(data, '\n'))
}

func LoadSummary(path string) (*series.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s series.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &s, nil
}
