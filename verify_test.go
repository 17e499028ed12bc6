package main

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// --- fakes ------------------------------------------------------------------

type fakeExporter struct {
	script string
	html   string
	err    error
}

func (f fakeExporter) Script(context.Context, string) (string, error) { return f.script, f.err }
func (f fakeExporter) HTML(context.Context, string) (string, error)   { return f.html, f.err }

// fakeRegistry resolves exactly the names it contains.
type fakeRegistry map[string]bool

func (f fakeRegistry) Resolve(_ context.Context, name string) bool { return f[name] }

// fakeProber reaches exactly the URLs it contains.
type fakeProber map[string]bool

func (f fakeProber) Reachable(_ context.Context, url string) bool { return f[url] }

// --- verification -----------------------------------------------------------

func TestVerifyNotebook_AllGood(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{
			script: "import os\nimport sys\n",
			html:   `<a href="https://example.com/ok">x</a><img src="https://example.com/i.png">`,
		},
		Modules: fakeRegistry{"os": true, "sys": true},
		URLs:    fakeProber{"https://example.com/ok": true, "https://example.com/i.png": true},
	}
	res, err := verifyNotebook(context.Background(), deps, "nb.ipynb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.pass() || res.fatal() {
		t.Fatalf("expected clean pass, got %+v", res)
	}
}

func TestVerifyNotebook_MissingModuleIsFatal(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{script: "import frobnicate123\n", html: ""},
		Modules:  fakeRegistry{},
		URLs:     fakeProber{},
	}
	res, err := verifyNotebook(context.Background(), deps, "nb.ipynb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(res.BadModules, []string{"frobnicate123"}) {
		t.Fatalf("want bad module frobnicate123, got %v", res.BadModules)
	}
	if !res.fatal() {
		t.Fatal("missing module must be fatal")
	}
}

func TestVerifyNotebook_DeadLinkIsNotFatal(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{
			script: "import os\n",
			html:   `<a href="https://gone.example.com/x">dead</a><img src="https://example.com/i.png">`,
		},
		Modules: fakeRegistry{"os": true},
		URLs:    fakeProber{"https://example.com/i.png": true},
	}
	res, err := verifyNotebook(context.Background(), deps, "nb.ipynb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.pass() {
		t.Fatal("dead link should still report FAIL")
	}
	if res.fatal() {
		t.Fatal("dead link alone must not be fatal")
	}
	if !reflect.DeepEqual(res.BadLinks, []string{"https://gone.example.com/x"}) {
		t.Fatalf("unexpected bad links: %v", res.BadLinks)
	}
}

func TestVerifyNotebook_DeadImageIsFatal(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{script: "pass\n", html: `<img src="https://gone.example.com/i.png">`},
		Modules:  fakeRegistry{},
		URLs:     fakeProber{},
	}
	res, err := verifyNotebook(context.Background(), deps, "nb.ipynb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.fatal() {
		t.Fatal("dead image must be fatal")
	}
}

func TestVerifyNotebook_SyntaxErrorPropagates(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{script: "def broken(:\n"},
		Modules:  fakeRegistry{},
		URLs:     fakeProber{},
	}
	if _, err := verifyNotebook(context.Background(), deps, "nb.ipynb"); err == nil {
		t.Fatal("expected syntax error to propagate")
	}
}

func TestVerifyResult_FatalMatrix(t *testing.T) {
	cases := []struct {
		name string
		res  verifyResult
		want bool
	}{
		{"empty", verifyResult{}, false},
		{"links only", verifyResult{BadLinks: []string{"u"}}, false},
		{"modules only", verifyResult{BadModules: []string{"m"}}, true},
		{"images only", verifyResult{BadImages: []string{"i"}}, true},
		{"links and images", verifyResult{BadLinks: []string{"u"}, BadImages: []string{"i"}}, true},
	}
	for _, c := range cases {
		if got := c.res.fatal(); got != c.want {
			t.Errorf("%s: fatal() = %v, want %v", c.name, got, c.want)
		}
	}
}

// --- reporting --------------------------------------------------------------

func TestPrintVerifyResult_Pass(t *testing.T) {
	var buf bytes.Buffer
	printVerifyResult(&buf, "nb.ipynb", verifyResult{})
	if buf.String() != "PASS: nb.ipynb\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestPrintVerifyResult_Fail(t *testing.T) {
	var buf bytes.Buffer
	printVerifyResult(&buf, "nb.ipynb", verifyResult{
		BadModules: []string{"frobnicate123"},
		BadLinks:   []string{"https://gone.example.com/a"},
		BadImages:  []string{"https://gone.example.com/i.png"},
	})
	want := strings.Join([]string{
		"FAIL: nb.ipynb",
		"invalid module: frobnicate123",
		"invalid URL   : https://gone.example.com/a",
		"invalid image : https://gone.example.com/i.png",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

// --- batch ------------------------------------------------------------------

func TestVerifyBatch_LinkOnlyFailureKeepsExitZero(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{script: "import os\n", html: `<a href="https://gone.example.com/x">d</a>`},
		Modules:  fakeRegistry{"os": true},
		URLs:     fakeProber{},
	}
	var buf bytes.Buffer
	ok, err := verifyBatch(context.Background(), &buf, deps, []string{"a.ipynb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("link-only failure must not fail the batch")
	}
	if !strings.HasPrefix(buf.String(), "FAIL: a.ipynb\n") {
		t.Fatalf("expected FAIL line, got %q", buf.String())
	}
}

func TestVerifyBatch_FatalDefectFailsBatch(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{script: "import frobnicate123\n"},
		Modules:  fakeRegistry{},
		URLs:     fakeProber{},
	}
	var buf bytes.Buffer
	ok, err := verifyBatch(context.Background(), &buf, deps, []string{"a.ipynb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("fatal defect must fail the batch")
	}
}

func TestVerifyBatch_ExporterErrorAborts(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{err: errors.New("exporter exploded")},
		Modules:  fakeRegistry{},
		URLs:     fakeProber{},
	}
	var buf bytes.Buffer
	_, err := verifyBatch(context.Background(), &buf, deps, []string{"a.ipynb", "b.ipynb"})
	if err == nil {
		t.Fatal("expected exporter error to propagate")
	}
	if buf.Len() != 0 {
		t.Fatalf("no per-notebook report expected, got %q", buf.String())
	}
}

func TestVerifyNotebook_Idempotent(t *testing.T) {
	deps := verifyDeps{
		Exporter: fakeExporter{
			script: "import os\nimport missing1\n",
			html:   `<a href="https://gone.example.com/x">d</a>`,
		},
		Modules: fakeRegistry{"os": true},
		URLs:    fakeProber{},
	}
	first, err := verifyNotebook(context.Background(), deps, "nb.ipynb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := verifyNotebook(context.Background(), deps, "nb.ipynb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ across runs: %+v vs %+v", first, second)
	}
}
