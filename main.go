// Command nbvet runs, lints and verifies Jupyter notebooks for CI.
//
// Usage:
//
//	nbvet run FILE...     execute each notebook, report captured failures
//	nbvet lint FILE...    style-check the code cells, ignoring E/W classes
//	nbvet verify FILE...  check imports resolve and links/images are alive
//
// Exit status is 1 if any notebook fails its subcommand's criterion, else 0.
// For verify, dead hyperlinks alone are reported but do not fail the build;
// missing modules and dead images do.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	os.Exit(dispatch(context.Background(), os.Args[1:]))
}

// dispatch maps a subcommand invocation to a process exit code.
func dispatch(ctx context.Context, args []string) int {
	if len(args) < 2 {
		usage()
		return 1
	}
	cmd, files := args[0], args[1:]
	switch cmd {
	case "run":
		if runBatch(ctx, os.Stdout, nbconvertEngine{}, files) {
			return 0
		}
		return 1
	case "lint":
		ok, err := lintBatch(ctx, os.Stdout, nbconvertExporter{}, flake8Runner{}, files)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if ok {
			return 0
		}
		return 1
	case "verify":
		deps := verifyDeps{
			Exporter: nbconvertExporter{},
			Modules:  newPythonRegistry(),
			URLs:     newHTTPProber(),
		}
		ok, err := verifyBatch(ctx, os.Stdout, deps, files)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if ok {
			return 0
		}
		return 1
	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: nbvet <command> FILE...

commands:
  run     execute each notebook and report failures
  lint    style-check code cells (E/W classes ignored)
  verify  check imports, hyperlinks and images`)
}
