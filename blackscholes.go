package pricer

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholes holds the inputs of the Black-Scholes-Merton closed form
// for a European option on an asset paying a continuous dividend yield.
type BlackScholes struct {
	AssetPrice    float64
	StrikePrice   float64
	InterestRate  float64
	DividendYield float64
	TimeToExpiry  float64
	Volatility    float64
}

func NewBlackScholes(params MarketParams, strike float64) *BlackScholes {
	return &BlackScholes{
		AssetPrice:    params.Spot,
		StrikePrice:   strike,
		InterestRate:  params.Rate,
		DividendYield: params.Dividend,
		TimeToExpiry:  params.Time,
		Volatility:    params.Volatility,
	}
}

// CalculateAValue is the volatility scaled to the horizon, vol*sqrt(T): the
// standard deviation of the log return to expiry.
func (self *BlackScholes) CalculateAValue() float64 {
	return self.Volatility * math.Sqrt(self.TimeToExpiry)
}

// CalculateD1Value computes d1. The numerator is the log moneyness plus the
// carry-adjusted drift (r - div + vol^2/2) over the horizon.
func (self *BlackScholes) CalculateD1Value() float64 {
	return (math.Log(self.AssetPrice/self.StrikePrice) +
		(self.InterestRate-self.DividendYield+
			math.Pow(self.Volatility, 2)/2)*self.TimeToExpiry) /
		self.CalculateAValue()
}

func (self *BlackScholes) CalculateD2Value() float64 {
	return self.CalculateD1Value() - self.CalculateAValue()
}

// NormCdf is the standard normal cumulative distribution function.
func (self *BlackScholes) NormCdf(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// CalculateBValue is the present value factor exp(-r*T) of the strike.
func (self *BlackScholes) CalculateBValue() float64 {
	return math.Exp(-self.InterestRate * self.TimeToExpiry)
}

// CalculateCarryValue is exp(-div*T), the share of the spot that survives
// the dividend stream to expiry.
func (self *BlackScholes) CalculateCarryValue() float64 {
	return math.Exp(-self.DividendYield * self.TimeToExpiry)
}

// ComputeOptionPrice returns the price of the given right.
func (self *BlackScholes) ComputeOptionPrice(right Right) (float64, error) {
	if !(self.StrikePrice > 0) {
		return 0, invalidf("strike price must be positive, got %v",
			self.StrikePrice)
	}
	if !(self.AssetPrice > 0) {
		return 0, invalidf("asset price must be positive, got %v",
			self.AssetPrice)
	}
	if !(self.Volatility > 0) || !(self.TimeToExpiry > 0) {
		return 0, invalidf("volatility=%v and time=%v must be positive",
			self.Volatility, self.TimeToExpiry)
	}
	d1 := self.CalculateD1Value()
	d2 := self.CalculateD2Value()
	b := self.CalculateBValue()
	c := self.CalculateCarryValue()
	if right == Put {
		return self.StrikePrice*b*self.NormCdf(-d2) -
			self.AssetPrice*c*self.NormCdf(-d1), nil
	}
	return self.AssetPrice*c*self.NormCdf(d1) -
		self.StrikePrice*b*self.NormCdf(d2), nil
}

// ParityGap measures how far a European call/put pair deviates from
// put-call parity with continuous dividends:
//
//	C - P = S*exp(-div*T) - K*exp(-r*T)
//
// A consistent pair returns zero up to rounding.
func ParityGap(call, put float64, params MarketParams, strike float64) float64 {
	forward := params.Spot*math.Exp(-params.Dividend*params.Time) -
		strike*math.Exp(-params.Rate*params.Time)
	return call - put - forward
}
