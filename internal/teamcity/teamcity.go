// Package teamcity prints TeamCity service messages for a sweep.
package teamcity

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type Logger struct {
	writer io.Writer
}

func NewLogger(writer io.Writer) *Logger {
	return &Logger{writer: writer}
}

var escaper = strings.NewReplacer(
	"|", "||",
	"'", "|'",
	"[", "|[",
	"]", "|]",
	"\n", "|n",
	"\r", "|r",
)

func escape(s string) string {
	return escaper.Replace(s)
}

func (l *Logger) TestSuiteStarted(name string) {
	fmt.Fprintf(l.writer, "##teamcity[testSuiteStarted name='%s']\n", escape(name))
}

func (l *Logger) TestSuiteFinished(name string, duration time.Duration) {
	fmt.Fprintf(l.writer, "##teamcity[testSuiteFinished name='%s' duration='%d']\n", escape(name), duration.Milliseconds())
}

func (l *Logger) TestStarted(name string) {
	fmt.Fprintf(l.writer, "##teamcity[testStarted name='%s']\n", escape(name))
}

func (l *Logger) TestFailed(name, message string) {
	fmt.Fprintf(l.writer, "##teamcity[testFailed name='%s' message='%s']\n", escape(name), escape(message))
}

// TestFinished reports a measured run; duration is its wall-clock time.
func (l *Logger) TestFinished(name string, duration time.Duration) {
	fmt.Fprintf(l.writer, "##teamcity[testFinished name='%s' duration='%d']\n", escape(name), duration.Milliseconds())
}

// BuildStatistic publishes a numeric value for TeamCity charts.
func (l *Logger) BuildStatistic(key string, value float64) {
	fmt.Fprintf(l.writer, "##teamcity[buildStatisticValue key='%s' value='%g']\n", escape(key), value)
}
