package main

import "context"

// Exporter renders a notebook into derived textual forms. Production code
// delegates to nbconvert; tests substitute in-memory fakes.
type Exporter interface {
	// Script returns the notebook's code cells concatenated, in cell order,
	// as a single program text.
	Script(ctx context.Context, path string) (string, error)
	// HTML returns a static HTML rendering of the full notebook.
	HTML(ctx context.Context, path string) (string, error)
}

// ModuleRegistry answers whether a module name resolves in the runtime
// environment the notebooks execute in.
type ModuleRegistry interface {
	Resolve(ctx context.Context, name string) bool
}

// URLProber answers whether a URL currently resolves to a successful response.
type URLProber interface {
	Reachable(ctx context.Context, url string) bool
}

// Engine executes a notebook end-to-end, returning the captured failure
// trace as an error when any cell raises or the run times out.
type Engine interface {
	Execute(ctx context.Context, path string) error
}

// LintRunner checks a generated program file for style violations.
// It reports the (possibly empty) diagnostic output and whether the
// linter flagged anything; err is reserved for infrastructure failures.
type LintRunner interface {
	Lint(ctx context.Context, path string) (output string, failed bool, err error)
}

// verifyResult holds the defects found in one notebook. The three sets are
// disjoint by construction; slices are kept sorted for stable output.
type verifyResult struct {
	BadModules []string
	BadLinks   []string
	BadImages  []string
}

// fatal reports whether the result must block a build. Dead hyperlinks alone
// are a warning, not a build-breaking defect.
func (r verifyResult) fatal() bool {
	return len(r.BadModules) > 0 || len(r.BadImages) > 0
}

func (r verifyResult) pass() bool {
	return len(r.BadModules) == 0 && len(r.BadLinks) == 0 && len(r.BadImages) == 0
}

// verifyDeps bundles the collaborators one verification composes.
type verifyDeps struct {
	Exporter Exporter
	Modules  ModuleRegistry
	URLs     URLProber
}
