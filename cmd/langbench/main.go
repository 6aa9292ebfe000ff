package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cespare/subcmd"

	"github.com/VKCOM/langbench/internal/benv"
)

// Build* variables are initialized during the build via -ldflags.
var (
	BuildVersion string
	BuildTime    string
	BuildOSUname string
	BuildCommit  string
)

func main() {
	log.SetFlags(0)

	cmds := []subcmd.Command{
		{
			Name:        "run",
			Description: "build the configured programs and measure them over their inputs",
			Do:          runMain,
		},

		{
			Name:        "measure",
			Description: "measure a single command several times",
			Do:          measureMain,
		},

		{
			Name:        "benchstat",
			Description: "compute and compare statistics about benchmark results",
			Do:          benchstatMain,
		},

		{
			Name:        "compare",
			Description: "compare the results of two languages with benchstat",
			Do:          compareMain,
		},

		{
			Name:        "clean",
			Description: "remove generated programs, dependencies and results",
			Do:          cleanMain,
		},

		{
			Name:        "env",
			Description: "print langbench-related env variables",
			Do:          envMain,
		},

		{
			Name:        "version",
			Description: "print langbench version info",
			Do:          versionMain,
		},
	}

	subcmd.Run(cmds)
}

func versionMain(args []string) {
	if BuildCommit == "" {
		fmt.Printf("langbench built without version info\n")
	} else {
		fmt.Printf("langbench version %s\nbuilt on: %s\nos: %s\ncommit: %s\n",
			BuildVersion, BuildTime, BuildOSUname, BuildCommit)
	}
}

func envMain(args []string) {
	for _, name := range benv.Vars {
		v := os.Getenv(name)
		fmt.Printf("%s=%q\n", name, v)
	}
}

func runMain(args []string) {
	if err := cmdRun(args); err != nil {
		log.Fatalf("langbench run: error: %v", err)
	}
}

func measureMain(args []string) {
	if err := cmdMeasure(args); err != nil {
		log.Fatalf("langbench measure: error: %v", err)
	}
}

func benchstatMain(args []string) {
	if err := cmdBenchstat(args); err != nil {
		log.Fatalf("langbench benchstat: error: %v", err)
	}
}

func compareMain(args []string) {
	if err := cmdCompare(args); err != nil {
		log.Fatalf("langbench compare: error: %v", err)
	}
}

func cleanMain(args []string) {
	if err := cmdClean(args); err != nil {
		log.Fatalf("langbench clean: error: %v", err)
	}
}
