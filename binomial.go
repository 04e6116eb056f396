package pricer

import (
	"math"

	"github.com/golang/glog"
)

// Valuation is the value lattice produced by backward induction. It has the
// same shape as the price lattice it was computed from.
type Valuation struct {
	values [][]float64
	// exercised is nil for European contracts.
	exercised [][]bool

	earlyExercise int
}

// Price is the root value.
func (self *Valuation) Price() float64 {
	return self.values[0][0]
}

func (self *Valuation) Value(j, i int) float64 {
	return self.values[i][j]
}

// Exercised reports whether exercising at node (j, i) strictly beats
// continuing.
func (self *Valuation) Exercised(j, i int) bool {
	if self.exercised == nil {
		return false
	}
	return self.exercised[i][j]
}

func (self *Valuation) Steps() int {
	return len(self.values) - 1
}

// EarlyExerciseColumn is the earliest column before maturity where
// exercising beats continuing at some node, or -1 if early exercise is
// never optimal (always -1 for European contracts).
func (self *Valuation) EarlyExerciseColumn() int {
	return self.earlyExercise
}

// intrinsic is the unfloored exercise value of a contract at price s.
func intrinsic(right Right, s, strike float64) float64 {
	if right == Put {
		return strike - s
	}
	return s - strike
}

// BackwardInduction values contract on lat by discounted risk-neutral
// expectation, checking early exercise at every interior node for
// American contracts.
func BackwardInduction(
	lat Lattice,
	model *StepModel,
	rate float64,
	contract Contract) (*Valuation, error) {

	if err := contract.Validate(); err != nil {
		return nil, err
	}
	if contract.Shape != Vanilla {
		return nil, invalidf("lattice prices vanilla payoffs only, got %s",
			contract.Shape)
	}
	steps := lat.Steps()
	disc := model.StepDiscount(rate)
	q := model.Q

	values := make([][]float64, steps+1)
	terminal := make([]float64, lat.Width(steps))
	for j := range terminal {
		terminal[j] = math.Max(0,
			intrinsic(contract.Right, lat.Price(j, steps), contract.Strike))
	}
	values[steps] = terminal

	var exercised [][]bool
	if contract.Style == American {
		exercised = make([][]bool, steps+1)
		exercised[steps] = make([]bool, lat.Width(steps))
	}

	early := -1
	for i := steps; i > 0; i-- {
		col := make([]float64, lat.Width(i-1))
		if exercised != nil {
			exercised[i-1] = make([]bool, len(col))
		}
		next := values[i]
		for j := range col {
			up, down := lat.Children(j, i-1)
			cont := disc * (q*next[up] + (1-q)*next[down])
			if contract.Style == American {
				exercise := intrinsic(contract.Right, lat.Price(j, i-1),
					contract.Strike)
				if exercise > cont {
					cont = exercise
					early = i - 1
					exercised[i-1][j] = true
				}
			}
			col[j] = cont
		}
		values[i-1] = col
	}

	glog.V(1).Infof("Backward induction %s %s strike=%v steps=%d price=%v",
		contract.Style, contract.Right, contract.Strike, steps, values[0][0])
	return &Valuation{
		values:        values,
		exercised:     exercised,
		earlyExercise: early,
	}, nil
}

// PriceLattice validates params and contract, builds the lattice in the
// requested form and runs backward induction on it.
func PriceLattice(
	params MarketParams,
	contract Contract,
	form LatticeForm) (*Valuation, error) {

	_, val, err := PriceLatticeTree(params, contract, form)
	return val, err
}

// PriceLatticeTree is PriceLattice that also returns the price lattice the
// valuation was computed on.
func PriceLatticeTree(
	params MarketParams,
	contract Contract,
	form LatticeForm) (Lattice, *Valuation, error) {

	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if err := contract.Validate(); err != nil {
		return nil, nil, err
	}
	model, err := NewStepModel(params.Volatility, params.Rate, params.Dividend,
		params.Time, params.Steps)
	if err != nil {
		return nil, nil, err
	}
	lat, err := NewLattice(form, params.Spot, model.U, model.D, params.Steps)
	if err != nil {
		return nil, nil, err
	}
	val, err := BackwardInduction(lat, model, params.Rate, contract)
	if err != nil {
		return nil, nil, err
	}
	return lat, val, nil
}
