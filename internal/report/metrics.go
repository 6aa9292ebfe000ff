package report

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/VKCOM/langbench/internal/measure"
	"github.com/VKCOM/langbench/internal/series"
)

type seriesMetrics struct {
	runTime  *prometheus.GaugeVec
	cpuTime  *prometheus.GaugeVec
	maxRSS   *prometheus.GaugeVec
	runs     *prometheus.GaugeVec
	failures *prometheus.GaugeVec
	timeOuts *prometheus.GaugeVec
}

var (
	seriesLabels = []string{"bench", "language", "input"}
	statLabels   = []string{"bench", "language", "input", "stat"}
)

func newSeriesMetrics(reg prometheus.Registerer) *seriesMetrics {
	m := &seriesMetrics{
		runTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "langbench",
			Name:      "run_time_seconds",
			Help:      "Wall-clock time of a benchmark series by statistic.",
		}, statLabels),
		cpuTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "langbench",
			Name:      "cpu_time_seconds",
			Help:      "User plus system CPU time of a benchmark series by statistic.",
		}, statLabels),
		maxRSS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "langbench",
			Name:      "max_rss_bytes",
			Help:      "Peak resident set size over the runs of a series.",
		}, seriesLabels),
		runs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "langbench",
			Name:      "runs",
			Help:      "Number of runs in a series.",
		}, seriesLabels),
		failures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "langbench",
			Name:      "failed_runs",
			Help:      "Number of failed runs in a series.",
		}, seriesLabels),
		timeOuts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "langbench",
			Name:      "timed_out_runs",
			Help:      "Number of runs killed at their deadline.",
		}, seriesLabels),
	}
	reg.MustRegister(m.runTime, m.cpuTime, m.maxRSS, m.runs, m.failures, m.timeOuts)
	return m
}

func (m *seriesMetrics) observe(r *series.Result) {
	labels := prometheus.Labels{
		"bench":    r.Bench,
		"language": r.Language,
		"input":    strconv.FormatFloat(r.Input, 'f', -1, 64),
	}
	stat := func(name string) prometheus.Labels {
		l := prometheus.Labels{"stat": name}
		for k, v := range labels {
			l[k] = v
		}
		return l
	}

	m.runTime.With(stat("avg")).Set(r.AverageRunTime / 1e9)
	m.runTime.With(stat("min")).Set(measure.Seconds(r.MinimumRunTime))
	m.runTime.With(stat("max")).Set(measure.Seconds(r.MaximumRunTime))
	m.cpuTime.With(stat("avg")).Set(r.AverageCPUTime / 1e9)
	m.cpuTime.With(stat("min")).Set(measure.Seconds(r.MinimumCPUTime))
	m.cpuTime.With(stat("max")).Set(measure.Seconds(r.MaximumCPUTime))
	m.maxRSS.With(labels).Set(float64(r.PeakRSS() * 1024))
	m.runs.With(labels).Set(float64(r.Len()))
	m.failures.With(labels).Set(float64(r.Failures()))
	m.timeOuts.With(labels).Set(float64(r.TimeOuts()))
}

// NewMetricsRegistry returns a registry holding gauges for results.
func NewMetricsRegistry(results []*series.Result) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	m := newSeriesMetrics(reg)
	for _, r := range results {
		m.observe(r)
	}
	return reg
}

// WriteMetrics writes results in the Prometheus text format to path, ready
// for the node exporter textfile collector.
func WriteMetrics(path string, results []*series.Result) error {
	return prometheus.WriteToTextfile(path, NewMetricsRegistry(results))
}
