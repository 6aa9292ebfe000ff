package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/VKCOM/langbench/internal/logging"
)

const (
	progressDoneRune    = "█"
	progressPendingRune = "░"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func printProgress(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	msg = truncateLine(msg, terminalWidth()-1)
	fmt.Fprintf(os.Stderr, "\033[2K\r%s", msg)
}

// truncateLine keeps at most width runes of msg.
func truncateLine(msg string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(msg) <= width {
		return msg
	}
	return string([]rune(msg)[:width])
}

func flushProgress() {
	if isTerminal(os.Stderr) {
		printProgress("")
	}
}

// printProgressBar draws `line ████░░░░ ETA 00:01:05` across the terminal.
func printProgressBar(line string, progress float64, eta time.Duration) {
	if !isTerminal(os.Stderr) {
		return
	}
	width := terminalWidth() - len(line) - 2 - 12
	if width < 0 {
		width = 0
	}
	done := int(progress * float64(width))
	bar := strings.Repeat(progressDoneRune, done) + strings.Repeat(progressPendingRune, width-done)

	eta = eta.Round(time.Second)
	fmt.Fprintf(os.Stderr, "\033[2K\r%s %s ETA %02d:%02d:%02d", line, color.CyanString(bar),
		int64(eta.Hours()), int64(eta.Minutes())%60, int64(eta.Seconds())%60)
}

// notifyContext is cancelled on the first SIGINT or SIGTERM so the running
// benchmark is killed and the finished results are kept.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

type logFlags struct {
	level string
	file  string
}

func addLogFlags(fs *flag.FlagSet) *logFlags {
	f := &logFlags{}
	fs.StringVar(&f.level, "loglevel", "warn",
		`log level: debug, info, warn, error`)
	fs.StringVar(&f.file, "logfile", "",
		`also append logs to this file`)
	return f
}

func (f *logFlags) logger() (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(f.level)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(os.Stderr, level, f.file)
}
