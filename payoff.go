package pricer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Operand is one side of a payoff comparison: either the strike or a
// statistic of the path.
type Operand int

const (
	OperandStrike Operand = iota
	OperandTerminal
	OperandMax
	OperandMin
	OperandMean
)

func (self Operand) value(path []float64, strike float64) float64 {
	switch self {
	case OperandTerminal:
		return path[len(path)-1]
	case OperandMax:
		return floats.Max(path)
	case OperandMin:
		return floats.Min(path)
	case OperandMean:
		return stat.Mean(path, nil)
	}
	return strike
}

// Evaluator computes max(0, Long - Short) over one path.
type Evaluator struct {
	Long  Operand
	Short Operand
}

type shapeRight struct {
	shape PayoffShape
	right Right
}

var evaluators = map[shapeRight]Evaluator{
	{Vanilla, Call}:        {OperandTerminal, OperandStrike},
	{Vanilla, Put}:         {OperandStrike, OperandTerminal},
	{FixedStrike, Call}:    {OperandMax, OperandStrike},
	{FixedStrike, Put}:     {OperandStrike, OperandMin},
	{FloatingStrike, Call}: {OperandTerminal, OperandMin},
	{FloatingStrike, Put}:  {OperandMax, OperandTerminal},
	{AsianFixed, Call}:     {OperandMean, OperandStrike},
	{AsianFixed, Put}:      {OperandStrike, OperandMean},
	{AsianFloat, Call}:     {OperandTerminal, OperandMean},
	{AsianFloat, Put}:      {OperandMean, OperandTerminal},
}

// NewEvaluator returns the evaluator for a payoff shape and right.
func NewEvaluator(shape PayoffShape, right Right) (Evaluator, error) {
	ev, ok := evaluators[shapeRight{shape, right}]
	if !ok {
		return Evaluator{}, invalidf("no payoff for shape=%s right=%s",
			shape, right)
	}
	return ev, nil
}

// Payoff evaluates one path, which must hold at least the initial spot.
func (self Evaluator) Payoff(path []float64, strike float64) float64 {
	return math.Max(0, self.Long.value(path, strike)-self.Short.value(path, strike))
}
