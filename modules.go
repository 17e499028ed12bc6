package main

import (
	"context"
	"os/exec"
)

// pythonRegistry probes module availability by attempting a live import in
// the interpreter the notebooks run under. Any load failure counts as "not
// present": the probe does not distinguish a missing module from one whose
// import itself raises.
type pythonRegistry struct {
	python string // interpreter binary, e.g. "python"
}

func newPythonRegistry() pythonRegistry {
	return pythonRegistry{python: pythonBin}
}

func (r pythonRegistry) Resolve(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, moduleProbeTimeout)
	defer cancel()

	// The import happens in a throwaway interpreter, so a successful probe
	// leaves nothing loaded in this process.
	cmd := exec.CommandContext(ctx, r.python, "-c", "import "+name)
	return cmd.Run() == nil
}
