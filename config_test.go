package pricer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleYAML = `
precision: 4
defaults:
  spot: 100
  vol: 0.2
  rate: 0.05
  time: 1
  steps: 200
  strike: 100
  trials: 20000
  workers: 2
  seed: 17
requests:
  - name: eu-call
    right: call
  - name: am-put
    style: american
    right: put
    strike: 110
  - name: asian
    engine: mc
    shape: asian-fixed
    right: call
    steps: 50
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadRequestFile(t *testing.T) {
	f, err := LoadRequestFile(writeFile(t, "req.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Precision != 4 {
		t.Fatalf("precision mismatch: got=%d", f.Precision)
	}
	reqs, err := f.Requests()
	if err != nil {
		t.Fatalf("requests: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(reqs))
	}

	eu := reqs[0]
	if eu.Engine != EngineLattice || eu.Contract.Style != European || eu.Contract.Right != Call {
		t.Fatalf("unexpected first request: %+v", eu)
	}
	if eu.Market != atmParams(200) || eu.Contract.Strike != 100 {
		t.Fatalf("defaults not applied: %+v", eu)
	}

	am := reqs[1]
	if am.Contract.Style != American || am.Contract.Right != Put || am.Contract.Strike != 110 {
		t.Fatalf("unexpected second request: %+v", am)
	}

	mc := reqs[2]
	if mc.Engine != EngineMonteCarlo || mc.Contract.Shape != AsianFixed {
		t.Fatalf("unexpected third request: %+v", mc)
	}
	if mc.Market.Steps != 50 {
		t.Fatalf("override of steps lost: %d", mc.Market.Steps)
	}
	if mc.MonteCarlo != (MonteCarloConfig{Trials: 20000, Workers: 2, Seed: 17}) {
		t.Fatalf("monte carlo defaults not applied: %+v", mc.MonteCarlo)
	}
}

func TestLoadRequestFile_DefaultPrecision(t *testing.T) {
	f, err := LoadRequestFile(writeFile(t, "req.yaml", "requests: []\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Precision != DefaultPrecision {
		t.Fatalf("precision mismatch: got=%d", f.Precision)
	}
}

func TestLoadRequestFile_Errors(t *testing.T) {
	if _, err := LoadRequestFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := writeFile(t, "bad.yaml", "requests: [\n")
	_, err := LoadRequestFile(bad)
	if err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
	if !strings.Contains(err.Error(), "Parsing request file "+bad+" failed") {
		t.Fatalf("error does not name the file: %v", err)
	}
	var yerr *yaml.TypeError
	typed := writeFile(t, "typed.yaml", "requests:\n  - steps: many\n")
	if _, err := LoadRequestFile(typed); !errors.As(err, &yerr) {
		t.Fatalf("expected wrapped yaml.TypeError, got %v", err)
	}

	f, err := LoadRequestFile(writeFile(t, "req.yaml",
		"requests:\n  - name: x\n    right: straddle\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := f.Requests(); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseExerciseStyle("American"); err != nil || s != American {
		t.Fatalf("style: %v %v", s, err)
	}
	if r, err := ParseRight("PE"); err != nil || r != Put {
		t.Fatalf("right: %v %v", r, err)
	}
	for shape, name := range shapeNames {
		got, err := ParsePayoffShape(name)
		if err != nil || got != shape {
			t.Fatalf("shape %q: %v %v", name, got, err)
		}
	}
	if f, err := ParseLatticeForm("doubling"); err != nil || f != LatticeDoubling {
		t.Fatalf("lattice form: %v %v", f, err)
	}
	if e, err := ParseEngine("mc"); err != nil || e != EngineMonteCarlo {
		t.Fatalf("engine: %v %v", e, err)
	}
	if _, err := ParseEngine("quantum"); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

const zeroOverrideYAML = `
defaults:
  spot: 100
  vol: 0.2
  rate: 0.05
  div: 0.03
  time: 1
  steps: 100
  strike: 100
  right: call
  seed: 9
requests:
  - name: inherits
  - name: explicit-zeros
    div: 0
    rate: 0
    strike: 0
    seed: 0
`

func TestLoadRequestFile_ExplicitZeroOverridesDefault(t *testing.T) {
	f, err := LoadRequestFile(writeFile(t, "req.yaml", zeroOverrideYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reqs, err := f.Requests()
	if err != nil {
		t.Fatalf("requests: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}

	inherit := reqs[0]
	if inherit.Market.Dividend != 0.03 || inherit.Market.Rate != 0.05 ||
		inherit.Contract.Strike != 100 || inherit.MonteCarlo.Seed != 9 {
		t.Fatalf("defaults not inherited: %+v", inherit)
	}

	zero := reqs[1]
	if zero.Market.Dividend != 0 || zero.Market.Rate != 0 {
		t.Fatalf("explicit zero div/rate replaced by defaults: %+v", zero.Market)
	}
	if zero.Contract.Strike != 0 || zero.MonteCarlo.Seed != 0 {
		t.Fatalf("explicit zero strike/seed replaced by defaults: %+v", zero)
	}
	if zero.Market.Spot != 100 || zero.Market.Steps != 100 || zero.Contract.Right != Call {
		t.Fatalf("untouched keys lost their defaults: %+v", zero)
	}
}
