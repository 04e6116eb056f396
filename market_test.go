package pricer

import (
	"errors"
	"math"
	"testing"
)

func TestNewStepModel_Values(t *testing.T) {
	m, err := NewStepModel(0.2, 0.05, 0.01, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(m.T, 0.25, 1e-15) {
		t.Fatalf("step length mismatch: got=%v", m.T)
	}
	if !almostEqual(m.U, math.Exp(0.2*0.5), 1e-15) {
		t.Fatalf("up factor mismatch: got=%v", m.U)
	}
	if !almostEqual(m.U*m.D, 1, 1e-15) {
		t.Fatalf("u*d should be 1, got=%v", m.U*m.D)
	}
	wantQ := (math.Exp(0.04*0.25) - m.D) / (m.U - m.D)
	if m.Q != wantQ {
		t.Fatalf("q mismatch: got=%v want=%v", m.Q, wantQ)
	}
	if !(m.U > 1 && m.D < 1 && m.Q > 0 && m.Q < 1) {
		t.Fatalf("model out of range: %+v", m)
	}
}

func TestNewStepModel_Deterministic(t *testing.T) {
	a, _ := NewStepModel(0.3, 0.02, 0, 2, 50)
	b, _ := NewStepModel(0.3, 0.02, 0, 2, 50)
	if *a != *b {
		t.Fatalf("repeated calls differ: %+v vs %+v", a, b)
	}
}

func TestNewStepModel_Invalid(t *testing.T) {
	cases := []struct {
		name             string
		vol, r, div, tau float64
		steps            int
	}{
		{"zero steps", 0.2, 0.05, 0, 1, 0},
		{"negative steps", 0.2, 0.05, 0, 1, -3},
		{"zero time", 0.2, 0.05, 0, 0, 10},
		{"negative time", 0.2, 0.05, 0, -1, 10},
		{"zero vol", 0, 0.05, 0, 1, 10},
		{"negative vol", -0.2, 0.05, 0, 1, 10},
		{"nan vol", math.NaN(), 0.05, 0, 1, 10},
		{"degenerate vol", 1e-300, 0.05, 0, 1, 10},
		{"q above one", 0.01, 0.5, 0, 1, 1},
		{"q below zero", 0.01, -0.5, 0, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewStepModel(c.vol, c.r, c.div, c.tau, c.steps)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestMarketParams_ValidSets(t *testing.T) {
	sets := []MarketParams{
		atmParams(1),
		atmParams(500),
		{Spot: 42, Volatility: 0.35, Rate: 0.01, Dividend: 0.03, Time: 0.5, Steps: 60},
		{Spot: 1e4, Volatility: 0.8, Rate: -0.005, Dividend: 0, Time: 3, Steps: 200},
		{Spot: 0.5, Volatility: 0.1, Rate: 0, Dividend: 0, Time: 0.01, Steps: 5},
	}
	for _, p := range sets {
		if err := p.Validate(); err != nil {
			t.Fatalf("valid params %+v rejected: %v", p, err)
		}
	}
}

func TestMarketParams_InvalidSpot(t *testing.T) {
	p := atmParams(10)
	p.Spot = 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
	p = atmParams(10)
	p.Rate = math.Inf(1)
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for infinite rate, got %v", err)
	}
}
