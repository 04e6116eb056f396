package pricer

import "math"

// Accumulator reduces discounted per-trial payoffs. Accumulators from
// independent workers combine with Merge.
type Accumulator struct {
	N     int
	Sum   float64
	SumSq float64
}

func (self *Accumulator) Add(x float64) {
	self.N++
	self.Sum += x
	self.SumSq += x * x
}

func (self *Accumulator) Merge(other Accumulator) {
	self.N += other.N
	self.Sum += other.Sum
	self.SumSq += other.SumSq
}

func (self *Accumulator) Mean() float64 {
	if self.N == 0 {
		return 0
	}
	return self.Sum / float64(self.N)
}

// Variance is the unbiased sample variance.
func (self *Accumulator) Variance() float64 {
	if self.N < 2 {
		return 0
	}
	n := float64(self.N)
	mean := self.Sum / n
	v := (self.SumSq - n*mean*mean) / (n - 1)
	// Cancellation can leave a tiny negative residue.
	return math.Max(0, v)
}

// StdErr is the sample standard deviation over sqrt(N).
func (self *Accumulator) StdErr() float64 {
	if self.N < 2 {
		return 0
	}
	return math.Sqrt(self.Variance() / float64(self.N))
}
