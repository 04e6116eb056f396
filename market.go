package pricer

import (
	"math"

	"github.com/golang/glog"
)

// MarketParams holds the scalar inputs shared by every engine.
type MarketParams struct {
	Spot       float64 `yaml:"spot"`
	Volatility float64 `yaml:"vol"`
	Rate       float64 `yaml:"rate"`
	Dividend   float64 `yaml:"div"`
	Time       float64 `yaml:"time"`
	Steps      int     `yaml:"steps"`
}

// Validate checks the parameters without building a model.
func (self MarketParams) Validate() error {
	if !(self.Spot > 0) || math.IsInf(self.Spot, 0) {
		return invalidf("spot price must be positive, got %v", self.Spot)
	}
	if !isFinite(self.Rate) || !isFinite(self.Dividend) {
		return invalidf("rate=%v and div=%v must be finite",
			self.Rate, self.Dividend)
	}
	_, err := NewStepModel(self.Volatility, self.Rate, self.Dividend,
		self.Time, self.Steps)
	return err
}

// StepModel is the per-step CRR parametrisation.
type StepModel struct {
	T float64 // step length
	U float64 // up factor
	D float64 // down factor
	Q float64 // risk-neutral probability of an up move
}

// NewStepModel derives (t, u, d, q) from volatility, rate, dividend yield,
// horizon and step count.
func NewStepModel(vol, r, div, time float64, steps int) (*StepModel, error) {
	if steps <= 0 {
		return nil, invalidf("steps must be positive, got %d", steps)
	}
	if !(time > 0) || math.IsInf(time, 0) {
		return nil, invalidf("time must be positive, got %v", time)
	}
	if !(vol > 0) || math.IsInf(vol, 0) {
		return nil, invalidf("volatility must be positive, got %v", vol)
	}

	t := time / float64(steps)
	u := math.Exp(vol * math.Sqrt(t))
	d := 1 / u
	if u == d {
		return nil, invalidf("degenerate volatility %v: up and down factors "+
			"coincide for step length %v", vol, t)
	}
	q := (math.Exp((r-div)*t) - d) / (u - d)
	if !(q > 0 && q < 1) {
		return nil, invalidf("risk-neutral probability q=%v outside (0,1) for "+
			"vol=%v rate=%v div=%v step=%v", q, vol, r, div, t)
	}

	glog.V(2).Infof("Step model t=%v u=%v d=%v q=%v", t, u, d, q)
	return &StepModel{T: t, U: u, D: d, Q: q}, nil
}

// StepDiscount is exp(-r*t) for a single lattice step.
func (self *StepModel) StepDiscount(r float64) float64 {
	return math.Exp(-r * self.T)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
