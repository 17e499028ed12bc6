package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// nbconvertExporter shells out to jupyter nbconvert. Exporter errors are
// surfaced unchanged to the caller; there is no local recovery.
type nbconvertExporter struct{}

func (nbconvertExporter) Script(ctx context.Context, path string) (string, error) {
	return nbconvert(ctx, path, "--to", "script")
}

func (nbconvertExporter) HTML(ctx context.Context, path string) (string, error) {
	// The basic template keeps the rendering minimal: markdown, code and
	// cached outputs, without the full page chrome.
	return nbconvert(ctx, path, "--to", "html", "--template", "basic")
}

func nbconvert(ctx context.Context, path string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	full := append([]string{"nbconvert", "--stdout", "--log-level", "ERROR"}, args...)
	full = append(full, path)

	var out, errOut bytes.Buffer
	cmd := exec.CommandContext(ctx, jupyterBin, full...)
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("nbconvert %s: %w: %s", path, err, strings.TrimSpace(errOut.String()))
	}
	return out.String(), nil
}
