package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// nbconvertEngine executes notebooks through jupyter nbconvert's execute
// pipeline. The run is capped at executeTimeout; on timeout nbconvert's own
// failure path reports the interrupted cell, which we surface as the trace.
type nbconvertEngine struct{}

func (nbconvertEngine) Execute(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, executeTimeout)
	defer cancel()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	var trace bytes.Buffer
	cmd := exec.CommandContext(ctx, jupyterBin,
		"nbconvert", "--to", "notebook", "--execute", "--stdout", "--log-level", "ERROR", abs)
	// Notebooks read data files relative to their own directory.
	cmd.Dir = filepath.Dir(abs)
	cmd.Stdout = io.Discard
	cmd.Stderr = &trace
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w\n%s", err, strings.TrimSpace(trace.String()))
	}
	return nil
}

// runBatch executes each notebook in order, printing PASS or FAIL plus the
// captured trace. A failing notebook never stops the batch; the return value
// reports whether every notebook executed cleanly.
func runBatch(ctx context.Context, w io.Writer, engine Engine, files []string) bool {
	ok := true
	for _, f := range files {
		if err := engine.Execute(ctx, f); err != nil {
			fmt.Fprintf(w, "FAIL: %s\n%s\n", f, indent(err.Error()))
			ok = false
			continue
		}
		fmt.Fprintf(w, "PASS: %s\n", f)
	}
	return ok
}

// indent prefixes every line of s so traces group under their FAIL line.
func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
