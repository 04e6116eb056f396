package pricer

import (
	"context"
	"strings"

	"github.com/golang/glog"
)

type Engine int

const (
	EngineLattice Engine = iota
	EngineMonteCarlo
	EngineAnalytic
)

func (self Engine) String() string {
	switch self {
	case EngineLattice:
		return "lattice"
	case EngineMonteCarlo:
		return "montecarlo"
	case EngineAnalytic:
		return "analytic"
	}
	return "unknown"
}

func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lattice", "binomial", "crr":
		return EngineLattice, nil
	case "montecarlo", "mc":
		return EngineMonteCarlo, nil
	case "analytic", "bs", "black-scholes":
		return EngineAnalytic, nil
	}
	return 0, invalidf("unknown engine %q", s)
}

// Request is one fully parsed pricing job.
type Request struct {
	Name       string
	Engine     Engine
	Market     MarketParams
	Contract   Contract
	Lattice    LatticeForm
	MonteCarlo MonteCarloConfig
}

// Result is the output of any engine. StdErr, Trials and Seed are only set
// by the Monte Carlo engine.
type Result struct {
	Engine Engine
	Price  float64
	StdErr float64
	Trials int
	Seed   uint64
}

// Price runs the engine selected by req.
func Price(ctx context.Context, req Request) (*Result, error) {
	glog.V(1).Infof("Pricing request name=%q engine=%s", req.Name, req.Engine)
	switch req.Engine {
	case EngineLattice:
		val, err := PriceLattice(req.Market, req.Contract, req.Lattice)
		if err != nil {
			return nil, err
		}
		return &Result{Engine: EngineLattice, Price: val.Price()}, nil
	case EngineMonteCarlo:
		return PriceMonteCarlo(ctx, req.Market, req.Contract, req.MonteCarlo)
	case EngineAnalytic:
		return priceAnalytic(req.Market, req.Contract)
	}
	return nil, invalidf("unknown engine %d", int(req.Engine))
}

func priceAnalytic(params MarketParams, contract Contract) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	if contract.Style != European || contract.Shape != Vanilla {
		return nil, invalidf("closed form covers european vanilla options "+
			"only, got %s %s", contract.Style, contract.Shape)
	}
	price, err := NewBlackScholes(params, contract.Strike).
		ComputeOptionPrice(contract.Right)
	if err != nil {
		return nil, err
	}
	return &Result{Engine: EngineAnalytic, Price: price}, nil
}

// PriceAll prices every request in order. A failed request is recorded in
// its row and does not stop the batch.
func PriceAll(ctx context.Context, reqs []Request) []ReportRow {
	rows := make([]ReportRow, 0, len(reqs))
	for _, req := range reqs {
		res, err := Price(ctx, req)
		if err != nil {
			glog.Error("Pricing request ", req.Name, " failed. ", err)
		}
		rows = append(rows, ReportRow{Request: req, Result: res, Err: err})
	}
	return rows
}
