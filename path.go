package pricer

import (
	"iter"
	"math/rand/v2"
)

// NewPCGSource returns the random source used by one simulation worker.
// Distinct streams under the same seed are independent.
func NewPCGSource(seed, stream uint64) rand.Source {
	return rand.NewPCG(seed, stream)
}

// PathSimulator draws discrete risk-neutral random walks on the CRR grid.
type PathSimulator struct {
	spot  float64
	steps int
	model *StepModel
	rng   *rand.Rand
}

func NewPathSimulator(
	spot float64,
	steps int,
	model *StepModel,
	src rand.Source) *PathSimulator {

	return &PathSimulator{
		spot:  spot,
		steps: steps,
		model: model,
		rng:   rand.New(src),
	}
}

// Fill overwrites path with one trial of steps+1 prices starting at spot,
// growing it if needed, and returns it.
func (self *PathSimulator) Fill(path []float64) []float64 {
	if cap(path) < self.steps+1 {
		path = make([]float64, self.steps+1)
	}
	path = path[:self.steps+1]
	path[0] = self.spot
	for i := 1; i <= self.steps; i++ {
		if self.rng.Float64() < self.model.Q {
			path[i] = path[i-1] * self.model.U
		} else {
			path[i] = path[i-1] * self.model.D
		}
	}
	return path
}

// Next returns a freshly allocated path.
func (self *PathSimulator) Next() []float64 {
	return self.Fill(nil)
}

// Paths yields n trials. The yielded slice is reused between iterations;
// callers that keep a path must copy it.
func (self *PathSimulator) Paths(n int) iter.Seq[[]float64] {
	return func(yield func([]float64) bool) {
		buf := make([]float64, self.steps+1)
		for range n {
			if !yield(self.Fill(buf)) {
				return
			}
		}
	}
}
