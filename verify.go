package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// verifyNotebook runs the full verification of one notebook: export, import
// analysis, module probing, and link/image reachability. An exporter or parse
// error aborts this notebook's verification and propagates to the caller.
func verifyNotebook(ctx context.Context, deps verifyDeps, path string) (verifyResult, error) {
	src, err := deps.Exporter.Script(ctx, path)
	if err != nil {
		return verifyResult{}, err
	}
	html, err := deps.Exporter.HTML(ctx, path)
	if err != nil {
		return verifyResult{}, err
	}

	mods, err := parseImports(src)
	if err != nil {
		return verifyResult{}, err
	}
	links, err := extractRefs(html, "a", "href")
	if err != nil {
		return verifyResult{}, err
	}
	images, err := extractRefs(html, "img", "src")
	if err != nil {
		return verifyResult{}, err
	}

	// The three checks are independent; only the assembled sets are ordered.
	var res verifyResult
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.BadModules = missingModules(ctx, deps.Modules, mods)
		return nil
	})
	g.Go(func() error {
		res.BadLinks = unreachableURLs(ctx, deps.URLs, links)
		return nil
	})
	g.Go(func() error {
		res.BadImages = unreachableURLs(ctx, deps.URLs, images)
		return nil
	})
	_ = g.Wait()
	return res, nil
}

// missingModules probes every module in the set and returns, sorted, those
// that do not resolve in the notebook runtime environment.
func missingModules(ctx context.Context, reg ModuleRegistry, mods map[string]struct{}) []string {
	var missing []string
	for _, name := range sortedKeys(mods) {
		if !reg.Resolve(ctx, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// unreachableURLs probes every URL in the set through a bounded worker pool
// and returns, sorted, those that fail both the HEAD and GET attempts.
func unreachableURLs(ctx context.Context, probe URLProber, urls map[string]struct{}) []string {
	var (
		mu  sync.Mutex
		bad []string
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeWorkers)
	for _, u := range sortedKeys(urls) {
		u := u
		g.Go(func() error {
			if !probe.Reachable(ctx, u) {
				mu.Lock()
				bad = append(bad, u)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(bad)
	return bad
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// printVerifyResult writes the per-notebook report: a single PASS line, or a
// FAIL line followed by one line per defect.
func printVerifyResult(w io.Writer, file string, res verifyResult) {
	if res.pass() {
		fmt.Fprintf(w, "PASS: %s\n", file)
		return
	}
	fmt.Fprintf(w, "FAIL: %s\n", file)
	for _, m := range res.BadModules {
		fmt.Fprintf(w, "invalid module: %s\n", m)
	}
	for _, u := range res.BadLinks {
		fmt.Fprintf(w, "invalid URL   : %s\n", u)
	}
	for _, u := range res.BadImages {
		fmt.Fprintf(w, "invalid image : %s\n", u)
	}
}

// verifyBatch verifies each notebook in order and reports whether the whole
// batch passed. Link-only failures print FAIL but do not fail the batch;
// missing modules and dead images do. An exporter or parse error aborts the
// remaining batch and propagates.
func verifyBatch(ctx context.Context, w io.Writer, deps verifyDeps, files []string) (bool, error) {
	ok := true
	for _, f := range files {
		res, err := verifyNotebook(ctx, deps, f)
		if err != nil {
			return false, fmt.Errorf("verify %s: %w", f, err)
		}
		printVerifyResult(w, f, res)
		if res.fatal() {
			ok = false
		}
	}
	return ok, nil
}
