// Package program finds benchmark sources, builds them with an external
// make tool and turns the executables into commands.
package program

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Program is a single benchmark source file, e.g. programs/nbody/nbody-1.c.
type Program struct {
	path string
	lang Language
}

// New resolves path and detects its language from the suffix.
func New(path string) (Program, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Program{}, err
	}
	if _, err := os.Stat(abs); err != nil {
		return Program{}, err
	}
	lang, err := ParseLanguage(filepath.Ext(abs))
	if err != nil {
		return Program{}, fmt.Errorf("%s: %w", abs, err)
	}
	return Program{path: abs, lang: lang}, nil
}

func (p Program) Path() string       { return p.path }
func (p Program) Name() string       { return filepath.Base(p.path) }
func (p Program) Language() Language { return p.lang }
func (p Program) Target() string     { return TargetOf(p.Name()) }
func (p Program) RunTarget() string  { return p.Name() + "_run" }
func (p Program) String() string     { return p.Name() }

// TargetOf returns the benchmark a program file implements: the part of
// its name before the first dash, e.g. "nbody" for "nbody-3.rs".
func TargetOf(name string) string {
	if target, _, ok := strings.Cut(name, "-"); ok {
		return target
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
