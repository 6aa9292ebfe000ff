// Package benv resolves langbench settings that come from the environment.
package benv

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/VKCOM/langbench/internal/config"
	"github.com/VKCOM/langbench/internal/fileutil"
)

// Variables read by langbench.
const (
	ConfigVar = "LANGBENCH_CONFIG"
	MakeVar   = "LANGBENCH_MAKE"
	OutputVar = "LANGBENCH_OUTPUT"
)

// Vars lists every variable printed by `langbench env`.
var Vars = []string{ConfigVar, MakeVar, OutputVar}

// DefaultOutputDir is used when neither a flag nor LANGBENCH_OUTPUT is set.
const DefaultOutputDir = "output"

func String(name, defaultValue string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return defaultValue
}

func Bool(name string, defaultValue bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func Int(name string, defaultValue int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// ConfigFile returns the config path from LANGBENCH_CONFIG or the default
// file name in the working directory.
func ConfigFile() string {
	return String(ConfigVar, config.DefaultFilename)
}

func OutputDir() string {
	return String(OutputVar, DefaultOutputDir)
}

// FindMakeBinary returns LANGBENCH_MAKE when it names an existing file,
// then the first make found in PATH. It returns "" if there is none.
func FindMakeBinary() string {
	if envMake := os.Getenv(MakeVar); envMake != "" {
		if fileutil.FileExists(envMake) {
			return envMake
		}
		if path, err := exec.LookPath(envMake); err == nil {
			return path
		}
	}
	for _, name := range []string{"make", "gmake"} {
		if path, err := exec.LookPath(name); err == nil && path != "" {
			return path
		}
	}
	return ""
}
