package program

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/VKCOM/langbench/internal/config"
	"github.com/VKCOM/langbench/internal/fileutil"
)

// BuildResult describes a built program.
type BuildResult struct {
	Executable string
	Workdir    string
}

// MakeBuilder builds programs by running `make <name>_run` against the
// configured makefile inside a per-program build directory.
//
// The language's build tool and flags reach make through the <LANG>_TOOL
// and <LANG>_OPTS variables of the child environment.
type MakeBuilder struct {
	MakeCommand string
	BuildDir    string
	Config      *config.Config
}

func (b *MakeBuilder) Build(ctx context.Context, p Program) (*BuildResult, error) {
	lang := p.Language().String()
	tool, err := b.Config.Tool(lang)
	if err != nil {
		return nil, err
	}

	makefile, err := filepath.Abs(b.Config.Makefile())
	if err != nil {
		return nil, err
	}
	if !fileutil.FileExists(makefile) {
		return nil, fmt.Errorf("makefile %s does not exist", makefile)
	}

	workdir := filepath.Join(b.BuildDir, p.Name())
	if err := os.RemoveAll(workdir); err != nil {
		return nil, err
	}
	if err := fileutil.MkdirAll(workdir); err != nil {
		return nil, err
	}
	if err := fileutil.CopyFile(p.Path(), filepath.Join(workdir, p.Name())); err != nil {
		return nil, err
	}
	if err := fileutil.CopyFile(makefile, filepath.Join(workdir, filepath.Base(makefile))); err != nil {
		return nil, err
	}

	makeCommand := b.MakeCommand
	if makeCommand == "" {
		makeCommand = "make"
	}
	prefix := p.Language().envPrefix()
	buildCommand := exec.CommandContext(ctx, makeCommand,
		"--makefile", filepath.Base(makefile),
		p.RunTarget())
	buildCommand.Dir = workdir
	buildCommand.Env = append(os.Environ(),
		prefix+"_TOOL="+tool,
		prefix+"_OPTS="+b.Config.ToolOptions(lang))
	out, err := buildCommand.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %s", makeCommand, err, out)
	}

	executable := filepath.Join(workdir, p.RunTarget())
	if !fileutil.FileExists(executable) {
		return nil, fmt.Errorf("%s did not produce %s", makeCommand, executable)
	}
	return &BuildResult{Executable: executable, Workdir: workdir}, nil
}
