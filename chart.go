package pricer

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/golang/glog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type ConvergencePoint struct {
	Steps int
	Price float64
}

// ConvergenceSeries prices contract on the lattice once per step count,
// overriding params.Steps.
func ConvergenceSeries(
	params MarketParams,
	contract Contract,
	form LatticeForm,
	stepCounts []int) ([]ConvergencePoint, error) {

	points := make([]ConvergencePoint, 0, len(stepCounts))
	for _, steps := range stepCounts {
		p := params
		p.Steps = steps
		val, err := PriceLattice(p, contract, form)
		if err != nil {
			return nil, err
		}
		points = append(points, ConvergencePoint{Steps: steps, Price: val.Price()})
	}
	return points, nil
}

// SaveConvergencePlot draws lattice prices against step count with the
// closed-form reference as a dashed horizontal line. The image format
// follows the file extension.
func SaveConvergencePlot(
	path string,
	title string,
	points []ConvergencePoint,
	reference float64) error {

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "steps"
	p.Y.Label.Text = "price"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Steps)
		xys[i].Y = pt.Price
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		glog.Error("Building convergence line failed. ", err)
		return err
	}
	ref := plotter.NewFunction(func(float64) float64 { return reference })
	ref.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(line, ref)
	p.Legend.Add("lattice", line)
	p.Legend.Add("closed form", ref)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		msg := fmt.Sprintf("Saving plot to %s failed with error=%s", path, err)
		glog.Error(msg)
		return err
	}
	glog.Info("Saved convergence plot to ", path)
	return nil
}

// SamplePaths draws n paths from a fresh simulator seeded with seed.
func SamplePaths(params MarketParams, seed uint64, n int) ([][]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, invalidf("path count must be positive, got %d", n)
	}
	model, err := NewStepModel(params.Volatility, params.Rate, params.Dividend,
		params.Time, params.Steps)
	if err != nil {
		return nil, err
	}
	sim := NewPathSimulator(params.Spot, params.Steps, model,
		NewPCGSource(seed, 0))
	paths := make([][]float64, 0, n)
	for path := range sim.Paths(n) {
		paths = append(paths, slices.Clone(path))
	}
	return paths, nil
}

// RenderPathChart writes an HTML line chart with one series per path.
func RenderPathChart(w io.Writer, title string, paths [][]float64) error {
	if len(paths) == 0 {
		return invalidf("no paths to chart")
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d simulated paths", len(paths)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "price"}),
	)

	xs := make([]string, len(paths[0]))
	for i := range xs {
		xs[i] = strconv.Itoa(i)
	}
	line.SetXAxis(xs)
	for k, path := range paths {
		data := make([]opts.LineData, len(path))
		for i, v := range path {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(fmt.Sprintf("path %d", k+1), data)
	}
	return line.Render(w)
}
