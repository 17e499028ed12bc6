package main

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// parseImports returns the set of top-level module names imported by the
// program text src. Dotted names are reduced to their leading segment, so
// "import os.path" yields "os". A syntax error in src is a hard failure:
// no partial set is returned.
func parseImports(src string) (map[string]struct{}, error) {
	tree, err := parser.Parse(strings.NewReader(src), "<notebook>", py.ExecMode)
	if err != nil {
		return nil, fmt.Errorf("parse extracted source: %w", err)
	}

	mods := make(map[string]struct{})
	ast.Walk(tree, func(node ast.Ast) bool {
		switch n := node.(type) {
		case *ast.Import:
			for _, alias := range n.Names {
				addModule(mods, string(alias.Name))
			}
		case *ast.ImportFrom:
			// Relative imports (from . import x) carry no module name.
			addModule(mods, string(n.Module))
		}
		return true
	})
	return mods, nil
}

// addModule records the leading segment of a possibly dotted module name.
// Empty names are skipped.
func addModule(set map[string]struct{}, name string) {
	if name == "" {
		return
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	set[name] = struct{}{}
}
