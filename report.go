package pricer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// ReportRow pairs a request with its outcome. Exactly one of Result and Err
// is set.
type ReportRow struct {
	Request Request
	Result  *Result
	Err     error
}

func formatFixed(x float64, precision int) string {
	return decimal.NewFromFloat(x).StringFixed(int32(precision))
}

// WriteReport prints one line per row with the input parameters echoed next
// to the price. Prices are rounded to precision decimals.
func WriteReport(w io.Writer, rows []ReportRow, precision int) {
	if precision < 0 {
		precision = DefaultPrecision
	}

	fmt.Fprintf(w, "%-14s %-10s %-8s %-4s %-11s %-8s %-8s %-6s %-7s %-6s "+
		"%-5s %-6s %-12s %s\n",
		"Name", "Engine", "Style", "Right", "Shape", "S0", "Strike", "Vol",
		"Rate", "Div", "Time", "Steps", "Price", "StdErr")

	paramColor := color.New(color.FgBlue).SprintFunc()
	priceColor := color.New(color.FgGreen).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()
	seColor := color.New(color.FgYellow).SprintFunc()

	for _, row := range rows {
		req := row.Request
		fmt.Fprintf(w, "%-14s %-10s %s ", req.Name, req.Engine,
			paramColor(fmt.Sprintf("%-8s %-5s %-11s %-8g %-8g %-6g %-7g "+
				"%-6g %-5g %-6d",
				req.Contract.Style, req.Contract.Right, req.Contract.Shape,
				req.Market.Spot, req.Contract.Strike, req.Market.Volatility,
				req.Market.Rate, req.Market.Dividend, req.Market.Time,
				req.Market.Steps)))

		if row.Err != nil {
			fmt.Fprintln(w, errColor(fmt.Sprintf("error: %s", row.Err)))
			continue
		}
		fmt.Fprint(w, priceColor(fmt.Sprintf("%-12s",
			formatFixed(row.Result.Price, precision))))
		if row.Result.Engine == EngineMonteCarlo {
			fmt.Fprintf(w, " %s (trials=%d seed=%d)",
				seColor(formatFixed(row.Result.StdErr, precision+2)),
				row.Result.Trials, row.Result.Seed)
		}
		fmt.Fprintln(w)
	}
}

// MaxDisplaySteps bounds the lattices WriteLattice will print.
const MaxDisplaySteps = 10

// WriteLattice prints the price lattice and the value lattice as matrices
// with node j in row j and step i in column i. Nodes where early exercise
// is optimal are marked with '*'.
func WriteLattice(w io.Writer, lat Lattice, val *Valuation, precision int) error {
	steps := lat.Steps()
	if steps > MaxDisplaySteps {
		return invalidf("lattice with %d steps is too large to print, "+
			"limit is %d", steps, MaxDisplaySteps)
	}
	if val.Steps() != steps {
		return invalidf("valuation has %d steps, lattice has %d",
			val.Steps(), steps)
	}
	if precision < 0 {
		precision = DefaultPrecision
	}

	headColor := color.New(color.FgBlue).SprintFunc()
	exerciseColor := color.New(color.FgYellow).SprintFunc()

	writeMatrix := func(title string, cell func(j, i int) string) {
		fmt.Fprintln(w, headColor(title))
		fmt.Fprintf(w, "%-6s", "j\\i")
		for i := 0; i <= steps; i++ {
			fmt.Fprintf(w, " %-14d", i)
		}
		fmt.Fprintln(w)
		for j := 0; j < lat.Width(steps); j++ {
			fmt.Fprintf(w, "%-6d", j)
			for i := 0; i <= steps; i++ {
				if j >= lat.Width(i) {
					fmt.Fprintf(w, " %-14s", "")
					continue
				}
				fmt.Fprint(w, " ", cell(j, i))
			}
			fmt.Fprintln(w)
		}
	}

	writeMatrix("Price lattice", func(j, i int) string {
		return fmt.Sprintf("%-14s", formatFixed(lat.Price(j, i), precision))
	})
	writeMatrix("Value lattice", func(j, i int) string {
		text := formatFixed(val.Value(j, i), precision)
		if val.Exercised(j, i) {
			return exerciseColor(fmt.Sprintf("%-14s", text+"*"))
		}
		return fmt.Sprintf("%-14s", text)
	})
	return nil
}
