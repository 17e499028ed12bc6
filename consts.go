package main

import (
	"regexp"
	"time"
)

const (
	jupyterBin = "jupyter"
	flake8Bin  = "flake8"
	pythonBin  = "python"

	// flake8 classes suppressed during lint; everything else (complexity,
	// naming, ...) is still enforced.
	lintIgnores = "E,W"

	probeWorkers       = 12 // concurrency for URL reachability checks
	probeTimeout       = 8 * time.Second
	moduleProbeTimeout = 30 * time.Second
	convertTimeout     = 2 * time.Minute
	executeTimeout     = 600 * time.Second // hard wall-clock cap per notebook run

	// Some hosts reject obvious non-browser clients with 403s, which would
	// show up as false dead links.
	probeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// reTimingMagic matches notebook timing directives (%time, %timeit and their
// cell-magic forms), which are not valid in a plain script export.
var reTimingMagic = regexp.MustCompile(`(?m)^\s*%%?time(?:it)?\b.*$`)
