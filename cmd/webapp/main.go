// Package main provides the CLI for go-webapp templates.
//
// Usage:
//
//	webapp check [file...]    Mount templates headlessly and report cycles
//	webapp gen [options] file Generate typed attribute accessors
//	webapp demo               Scroll a virtual list sized to the terminal
//	webapp help               Show help
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `webapp - template tooling for go-webapp element trees

Usage:
  webapp <command> [options] [file...]

Commands:
  check       Mount templates into a memory backend and report dependency cycles
  gen         Generate typed attribute accessors from a fields or templates file
  demo        Build a virtual list sized to the terminal and scroll through it
  version     Print version information
  help        Show this help message

Examples:
  webapp check ui.yaml                          Check every template in ui.yaml
  webapp check -v ui.yaml                       Also print the mounted tree
  webapp gen -type Element -pkg webapp attrs.yaml
  webapp gen -type Row -pkg ui -wrap -template row -o row_gen.go ui.yaml
  webapp demo -rows 1000 -steps 5

Environment:
  WEBAPP_LOG_LEVEL   error, info, debug or trace (default info)
  WEBAPP_DEBUG       write the log to this file
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		if err := runCheck(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "gen", "generate":
		if err := runGen(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "demo":
		if err := runDemo(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("webapp version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
