package pricer

import (
	"math"
	"strings"
)

type ExerciseStyle int

const (
	European ExerciseStyle = iota
	American
)

func (self ExerciseStyle) String() string {
	switch self {
	case European:
		return "european"
	case American:
		return "american"
	}
	return "unknown"
}

type Right int

const (
	Call Right = iota
	Put
)

func (self Right) String() string {
	switch self {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return "unknown"
}

// PayoffShape selects how a simulated path is reduced to a payoff.
type PayoffShape int

const (
	Vanilla PayoffShape = iota
	FixedStrike
	FloatingStrike
	AsianFixed
	AsianFloat
)

var shapeNames = map[PayoffShape]string{
	Vanilla:        "vanilla",
	FixedStrike:    "fixed",
	FloatingStrike: "floating",
	AsianFixed:     "asian-fixed",
	AsianFloat:     "asian-float",
}

func (self PayoffShape) String() string {
	if name, ok := shapeNames[self]; ok {
		return name
	}
	return "unknown"
}

// UsesStrike reports whether the payoff compares a path statistic against
// the contract strike. Floating-strike shapes ignore the strike.
func (self PayoffShape) UsesStrike() bool {
	return self != FloatingStrike && self != AsianFloat
}

func ParseExerciseStyle(s string) (ExerciseStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "european", "eu", "e":
		return European, nil
	case "american", "am", "a":
		return American, nil
	}
	return 0, invalidf("unknown exercise style %q", s)
}

func ParseRight(s string) (Right, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c", "ce":
		return Call, nil
	case "put", "p", "pe":
		return Put, nil
	}
	return 0, invalidf("unknown option right %q", s)
}

func ParsePayoffShape(s string) (PayoffShape, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Vanilla, nil
	}
	for shape, n := range shapeNames {
		if n == name {
			return shape, nil
		}
	}
	return 0, invalidf("unknown payoff shape %q", s)
}

// Contract describes the option being priced. Style is only meaningful on
// the lattice and Shape only under Monte Carlo.
type Contract struct {
	Style  ExerciseStyle
	Right  Right
	Strike float64
	Shape  PayoffShape
}

func (self Contract) Validate() error {
	if self.Style != European && self.Style != American {
		return invalidf("unknown exercise style %d", int(self.Style))
	}
	if self.Right != Call && self.Right != Put {
		return invalidf("unknown option right %d", int(self.Right))
	}
	if _, ok := shapeNames[self.Shape]; !ok {
		return invalidf("unknown payoff shape %d", int(self.Shape))
	}
	if self.Shape.UsesStrike() {
		if self.Strike < 0 || math.IsNaN(self.Strike) ||
			math.IsInf(self.Strike, 0) {
			return invalidf("strike must be finite and non-negative, got %v",
				self.Strike)
		}
	}
	return nil
}
