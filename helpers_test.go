package pricer

import "math"

const (
	// Black-Scholes price of the standard at-the-money case
	// S=K=100, vol=0.2, r=0.05, div=0, T=1.
	refCall = 10.450583572185565
	refPut  = 5.573526022256971
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func atmParams(steps int) MarketParams {
	return MarketParams{
		Spot:       100,
		Volatility: 0.2,
		Rate:       0.05,
		Dividend:   0,
		Time:       1,
		Steps:      steps,
	}
}
