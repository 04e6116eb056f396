package pricer

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `# pricing batch
name,engine,style,right,shape,strike,spot,vol,rate,div,time,steps,trials,workers,seed
eu-call,lattice,european,call,,100,100,0.2,0.05,0,1,500,,,
lookback,mc,,put,fixed,100,100,0.2,0.05,0,1,100,5000,2,99
`

func TestParseRequestsCSV(t *testing.T) {
	specs, err := ParseRequestsCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(specs))
	}
	req, err := specs[0].Request()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Market != atmParams(500) || req.Contract.Strike != 100 {
		t.Fatalf("unexpected first row: %+v", req)
	}
	lb := specs[1]
	if lb.Shape != "fixed" || lb.Trials != 5000 || lb.Workers != 2 || lb.Seed != 99 {
		t.Fatalf("unexpected second row: %+v", lb)
	}
}

func TestParseRequestsCSV_HeaderOrderAndMissingColumns(t *testing.T) {
	body := "Spot , Strike,right\n120,100,put\n"
	specs, err := ParseRequestsCSV(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if specs[0].Spot != 120 || specs[0].Strike != 100 || specs[0].Right != "put" {
		t.Fatalf("unexpected row: %+v", specs[0])
	}
	if specs[0].Steps != 0 || specs[0].Volatility != 0 {
		t.Fatalf("missing columns should stay zero: %+v", specs[0])
	}
}

func TestParseRequestsCSV_Errors(t *testing.T) {
	if _, err := ParseRequestsCSV(strings.NewReader("")); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for empty input, got %v", err)
	}
	if _, err := ParseRequestsCSV(strings.NewReader("spot\nabc\n")); err == nil {
		t.Fatalf("expected error for non numeric spot")
	}
	if _, err := ParseRequestsCSV(strings.NewReader("steps\n1.5\n")); err == nil {
		t.Fatalf("expected error for fractional steps")
	}
	if _, err := ParseRequestsCSV(strings.NewReader("seed\n-1\n")); err == nil {
		t.Fatalf("expected error for negative seed")
	}
}
