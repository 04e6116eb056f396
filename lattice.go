package pricer

import (
	"fmt"

	"github.com/golang/glog"
)

// MaxDoublingSteps bounds the naive enumeration: its terminal column holds
// 2^steps prices.
const MaxDoublingSteps = 20

type LatticeForm int

const (
	LatticeCompact LatticeForm = iota
	LatticeDoubling
)

func (self LatticeForm) String() string {
	if self == LatticeDoubling {
		return "doubling"
	}
	return "compact"
}

// Lattice is an immutable binomial price tree. Column i is the set of prices
// reachable after i steps.
type Lattice interface {
	Steps() int
	// Width is the number of nodes stored in column i.
	Width(i int) int
	Price(j, i int) float64
	// Children returns the indices in column i+1 reached from node (j, i)
	// by an up and a down move.
	Children(j, i int) (up, down int)
}

// NewLattice builds a lattice of the requested form.
func NewLattice(form LatticeForm, s0, u, d float64, steps int) (Lattice, error) {
	switch form {
	case LatticeCompact:
		return NewCompactLattice(s0, u, d, steps)
	case LatticeDoubling:
		return NewDoublingLattice(s0, u, d, steps)
	}
	return nil, invalidf("unknown lattice form %d", int(form))
}

// CompactLattice stores the i+1 distinct prices of each column of the
// recombining tree; node (j, i) is s0*u^(i-j)*d^j.
type CompactLattice struct {
	columns [][]float64
}

func NewCompactLattice(s0, u, d float64, steps int) (*CompactLattice, error) {
	if steps <= 0 {
		return nil, invalidf("steps must be positive, got %d", steps)
	}
	columns := make([][]float64, steps+1)
	columns[0] = []float64{s0}
	for i := 0; i < steps; i++ {
		prev := columns[i]
		next := make([]float64, i+2)
		next[0] = prev[0] * u
		for j := 0; j <= i; j++ {
			next[j+1] = prev[j] * d
		}
		columns[i+1] = next
	}
	glog.V(2).Infof("Built compact lattice with %d columns", steps+1)
	return &CompactLattice{columns: columns}, nil
}

func (self *CompactLattice) Steps() int {
	return len(self.columns) - 1
}

func (self *CompactLattice) Width(i int) int {
	return len(self.columns[i])
}

func (self *CompactLattice) Price(j, i int) float64 {
	return self.columns[i][j]
}

func (self *CompactLattice) Children(j, i int) (int, int) {
	return j, j + 1
}

// DoublingLattice enumerates every path explicitly: node j of column i
// emits j*2 (up) and j*2+1 (down) in column i+1, so column i holds 2^i
// values with repeats.
type DoublingLattice struct {
	columns [][]float64
}

func NewDoublingLattice(s0, u, d float64, steps int) (*DoublingLattice, error) {
	if steps <= 0 {
		return nil, invalidf("steps must be positive, got %d", steps)
	}
	if steps > MaxDoublingSteps {
		msg := fmt.Sprintf("doubling lattice with %d steps needs 2^%d "+
			"terminal nodes; limit is %d steps", steps, steps, MaxDoublingSteps)
		glog.Error(msg)
		return nil, fmt.Errorf("%w: %s", ErrNumericOverflow, msg)
	}
	columns := make([][]float64, steps+1)
	columns[0] = []float64{s0}
	for i := 0; i < steps; i++ {
		prev := columns[i]
		next := make([]float64, 2*len(prev))
		count := 0
		for _, price := range prev {
			next[count] = price * u
			count++
			next[count] = price * d
			count++
		}
		columns[i+1] = next
	}
	glog.V(2).Infof("Built doubling lattice with %d terminal nodes",
		len(columns[steps]))
	return &DoublingLattice{columns: columns}, nil
}

func (self *DoublingLattice) Steps() int {
	return len(self.columns) - 1
}

func (self *DoublingLattice) Width(i int) int {
	return len(self.columns[i])
}

func (self *DoublingLattice) Price(j, i int) float64 {
	return self.columns[i][j]
}

func (self *DoublingLattice) Children(j, i int) (int, int) {
	return 2 * j, 2*j + 1
}
