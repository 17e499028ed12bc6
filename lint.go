package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// flake8Runner invokes the external style checker on a generated program
// file. Classes listed in lintIgnores are suppressed.
type flake8Runner struct{}

func (flake8Runner) Lint(ctx context.Context, path string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, flake8Bin, "--ignore="+lintIgnores, path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Nonzero exit with diagnostics is a lint failure, not an error.
			return string(out), true, nil
		}
		return "", false, fmt.Errorf("flake8 %s: %w", path, err)
	}
	return string(out), false, nil
}

// stripMagics blanks timing magic directives out of every code cell so the
// script export stays syntactically valid. Only cells[].source is touched;
// the rest of the document passes through untouched.
func stripMagics(raw []byte) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}
	cells, _ := doc["cells"].([]any)
	for _, c := range cells {
		cell, ok := c.(map[string]any)
		if !ok || cell["cell_type"] != "code" {
			continue
		}
		switch src := cell["source"].(type) {
		case string:
			cell["source"] = reTimingMagic.ReplaceAllString(src, "")
		case []any:
			for i, line := range src {
				if s, ok := line.(string); ok {
					src[i] = reTimingMagic.ReplaceAllString(s, "")
				}
			}
		}
	}
	return json.Marshal(doc)
}

// lintNotebook strips magics, exports the notebook to a throwaway script and
// runs the style checker over it. Both temporary files are removed before
// returning. The reported output has the temporary filename prefix stripped
// from each diagnostic line.
func lintNotebook(ctx context.Context, exp Exporter, linter LintRunner, path string) (string, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	cleaned, err := stripMagics(raw)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", path, err)
	}

	tmpNB, err := os.CreateTemp("", "nbvet-*.ipynb")
	if err != nil {
		return "", false, err
	}
	defer func() { _ = os.Remove(tmpNB.Name()) }()
	if _, err := tmpNB.Write(cleaned); err != nil {
		_ = tmpNB.Close()
		return "", false, err
	}
	if err := tmpNB.Close(); err != nil {
		return "", false, err
	}

	src, err := exp.Script(ctx, tmpNB.Name())
	if err != nil {
		return "", false, err
	}
	tmpPy := strings.TrimSuffix(tmpNB.Name(), ".ipynb") + ".py"
	if err := os.WriteFile(tmpPy, []byte(src), 0o600); err != nil {
		return "", false, err
	}
	defer func() { _ = os.Remove(tmpPy) }()

	out, failed, err := linter.Lint(ctx, tmpPy)
	if err != nil {
		return "", false, err
	}
	return stripPathPrefix(out, tmpPy), failed, nil
}

// stripPathPrefix removes the "<path>:" prefix flake8 puts on every
// diagnostic line, leaving "line:col: code message".
func stripPathPrefix(out, path string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, path+":")
	}
	return strings.Join(lines, "\n")
}

// lintBatch lints each notebook in order; failures never stop the batch.
func lintBatch(ctx context.Context, w io.Writer, exp Exporter, linter LintRunner, files []string) (bool, error) {
	ok := true
	for _, f := range files {
		out, failed, err := lintNotebook(ctx, exp, linter, f)
		if err != nil {
			return false, fmt.Errorf("lint %s: %w", f, err)
		}
		if failed {
			fmt.Fprintf(w, "FAIL: %s\n%s\n", f, indent(out))
			ok = false
			continue
		}
		fmt.Fprintf(w, "PASS: %s\n", f)
	}
	return ok, nil
}
