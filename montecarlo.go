package pricer

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// ctxCheckInterval is how many trials a worker runs between cancellation
// checks.
const ctxCheckInterval = 1024

type MonteCarloConfig struct {
	Trials  int    `yaml:"trials"`
	Workers int    `yaml:"workers"`
	Seed    uint64 `yaml:"seed"`
}

func (self MonteCarloConfig) Validate() error {
	if self.Trials <= 0 {
		return invalidf("trial count must be positive, got %d", self.Trials)
	}
	if self.Workers < 0 {
		return invalidf("worker count must not be negative, got %d",
			self.Workers)
	}
	return nil
}

func (self MonteCarloConfig) workerCount() int {
	w := self.Workers
	if w <= 0 {
		w = 1
	}
	if w > self.Trials {
		w = self.Trials
	}
	return w
}

// PriceMonteCarlo estimates the discounted expected payoff of contract over
// cfg.Trials simulated paths. Trials are split across cfg.Workers workers,
// each drawing from its own PCG stream of cfg.Seed, and merged in worker
// order, so a (Seed, Workers) pair always reproduces the same estimate.
// A zero seed is replaced by a random one, which is logged.
func PriceMonteCarlo(
	ctx context.Context,
	params MarketParams,
	contract Contract,
	cfg MonteCarloConfig) (*Result, error) {

	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	if contract.Style != European {
		return nil, invalidf("monte carlo prices european exercise only, "+
			"got %s", contract.Style)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := NewStepModel(params.Volatility, params.Rate, params.Dividend,
		params.Time, params.Steps)
	if err != nil {
		return nil, err
	}
	ev, err := NewEvaluator(contract.Shape, contract.Right)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
		glog.Info("No Monte Carlo seed given, using seed ", seed)
	}
	disc := math.Exp(-params.Rate * params.Time)
	workers := cfg.workerCount()
	glog.V(1).Infof("Monte Carlo %s %s trials=%d steps=%d workers=%d seed=%d",
		contract.Shape, contract.Right, cfg.Trials, params.Steps, workers, seed)

	accs := make([]Accumulator, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := cfg.Trials / workers
		if w < cfg.Trials%workers {
			n++
		}
		g.Go(func() error {
			sim := NewPathSimulator(params.Spot, params.Steps, model,
				NewPCGSource(seed, uint64(w)))
			var acc Accumulator
			for path := range sim.Paths(n) {
				if acc.N%ctxCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				acc.Add(disc * ev.Payoff(path, contract.Strike))
			}
			accs[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		glog.Error("Monte Carlo run aborted: ", err)
		return nil, err
	}

	var total Accumulator
	for _, acc := range accs {
		total.Merge(acc)
	}
	return &Result{
		Engine: EngineMonteCarlo,
		Price:  total.Mean(),
		StdErr: total.StdErr(),
		Trials: total.N,
		Seed:   seed,
	}, nil
}
