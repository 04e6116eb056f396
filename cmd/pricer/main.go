package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/joshi-prasad/pricer"
)

func main() {
	flag.Set("alsologtostderr", "true")
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	args := flag.Args()[1:]
	switch flag.Arg(0) {
	case "price":
		err = cmdPrice(ctx, args)
	case "batch":
		err = cmdBatch(ctx, args)
	case "converge":
		err = cmdConverge(args)
	case "paths":
		err = cmdPaths(args)
	case "tree":
		err = cmdTree(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		glog.Error(err)
		glog.Flush()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  pricer [glog flags] price -engine lattice -style american -right put -spot 100 -strike 100 -vol 0.2 -rate 0.05 -time 1 -steps 500")
	fmt.Println("  pricer [glog flags] price -engine mc -shape asian-fixed -trials 100000 -workers 4 -seed 42")
	fmt.Println("  pricer [glog flags] batch -file requests.yaml")
	fmt.Println("  pricer [glog flags] batch -file requests.csv")
	fmt.Println("  pricer [glog flags] converge -out convergence.png -from 10 -to 500 -by 10")
	fmt.Println("  pricer [glog flags] paths -out paths.html -n 20 -seed 7")
	fmt.Println("  pricer [glog flags] tree -style american -right put -steps 5")
}

// specFlags registers the request flags shared by the subcommands.
func specFlags(fs *flag.FlagSet) *pricer.RequestSpec {
	spec := &pricer.RequestSpec{}
	fs.StringVar(&spec.Name, "name", "cli", "Request name")
	fs.StringVar(&spec.Engine, "engine", "lattice", "lattice, mc or analytic")
	fs.StringVar(&spec.Style, "style", "european", "european or american")
	fs.StringVar(&spec.Right, "right", "call", "call or put")
	fs.StringVar(&spec.Shape, "shape", "vanilla",
		"vanilla, fixed, floating, asian-fixed or asian-float")
	fs.StringVar(&spec.Lattice, "lattice", "compact", "compact or doubling")
	fs.Float64Var(&spec.Strike, "strike", 100, "Strike price")
	fs.Float64Var(&spec.Spot, "spot", 100, "Spot price")
	fs.Float64Var(&spec.Volatility, "vol", 0.2, "Annualised volatility")
	fs.Float64Var(&spec.Rate, "rate", 0.05, "Continuously compounded risk-free rate")
	fs.Float64Var(&spec.Dividend, "div", 0, "Continuous dividend yield")
	fs.Float64Var(&spec.Time, "time", 1, "Time to expiry in years")
	fs.IntVar(&spec.Steps, "steps", 100, "Lattice or path steps")
	fs.IntVar(&spec.Trials, "trials", 10000, "Monte Carlo trials")
	fs.IntVar(&spec.Workers, "workers", 1, "Monte Carlo workers")
	fs.Uint64Var(&spec.Seed, "seed", 0, "Random seed (mc picks one when 0)")
	return spec
}

func cmdPrice(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("price", flag.ExitOnError)
	spec := specFlags(fs)
	precision := fs.Int("precision", pricer.DefaultPrecision, "Printed decimals")
	_ = fs.Parse(args)

	req, err := spec.Request()
	if err != nil {
		return err
	}
	rows := pricer.PriceAll(ctx, []pricer.Request{req})
	pricer.WriteReport(os.Stdout, rows, *precision)
	return rows[0].Err
}

func cmdBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	path := fs.String("file", "", "YAML or CSV request file")
	precision := fs.Int("precision", 0, "Printed decimals (overrides the file)")
	_ = fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("-file is required")
	}

	var reqs []pricer.Request
	prec := pricer.DefaultPrecision
	switch strings.ToLower(filepath.Ext(*path)) {
	case ".csv":
		f, err := os.Open(*path)
		if err != nil {
			return err
		}
		defer f.Close()
		specs, err := pricer.ParseRequestsCSV(f)
		if err != nil {
			return err
		}
		for i, spec := range specs {
			req, err := spec.Request()
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			reqs = append(reqs, req)
		}
	default:
		file, err := pricer.LoadRequestFile(*path)
		if err != nil {
			return err
		}
		if reqs, err = file.Requests(); err != nil {
			return err
		}
		prec = file.Precision
	}
	if *precision > 0 {
		prec = *precision
	}

	pricer.WriteReport(os.Stdout, pricer.PriceAll(ctx, reqs), prec)
	return nil
}

func cmdConverge(args []string) error {
	fs := flag.NewFlagSet("converge", flag.ExitOnError)
	spec := specFlags(fs)
	out := fs.String("out", "convergence.png", "Output image")
	from := fs.Int("from", 10, "First step count")
	to := fs.Int("to", 500, "Last step count")
	by := fs.Int("by", 10, "Step count increment")
	_ = fs.Parse(args)

	if *from <= 0 || *by <= 0 || *to < *from {
		return fmt.Errorf("invalid step range from=%d to=%d by=%d",
			*from, *to, *by)
	}
	req, err := spec.Request()
	if err != nil {
		return err
	}

	var counts []int
	for n := *from; n <= *to; n += *by {
		counts = append(counts, n)
	}
	points, err := pricer.ConvergenceSeries(req.Market, req.Contract,
		req.Lattice, counts)
	if err != nil {
		return err
	}

	// The closed form is the European limit; for American puts the gap to
	// it is the early exercise premium.
	ref, err := pricer.NewBlackScholes(req.Market, req.Contract.Strike).
		ComputeOptionPrice(req.Contract.Right)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s %s K=%s", req.Contract.Style, req.Contract.Right,
		strconv.FormatFloat(req.Contract.Strike, 'g', -1, 64))
	return pricer.SaveConvergencePlot(*out, title, points, ref)
}

func cmdPaths(args []string) error {
	fs := flag.NewFlagSet("paths", flag.ExitOnError)
	spec := specFlags(fs)
	out := fs.String("out", "paths.html", "Output HTML file")
	n := fs.Int("n", 20, "Number of paths to draw")
	_ = fs.Parse(args)

	paths, err := pricer.SamplePaths(spec.MarketParams, spec.Seed, *n)
	if err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	title := fmt.Sprintf("S0=%g vol=%g r=%g div=%g T=%g",
		spec.Spot, spec.Volatility, spec.Rate, spec.Dividend, spec.Time)
	if err := pricer.RenderPathChart(f, title, paths); err != nil {
		return err
	}
	glog.Info("Wrote path chart to ", *out)
	return nil
}

func cmdTree(args []string) error {
	fs := flag.NewFlagSet("tree", flag.ExitOnError)
	spec := specFlags(fs)
	precision := fs.Int("precision", 4, "Printed decimals")
	_ = fs.Parse(args)

	stepsSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "steps" {
			stepsSet = true
		}
	})
	if !stepsSet {
		spec.Steps = 5
	}

	req, err := spec.Request()
	if err != nil {
		return err
	}
	if req.Market.Steps > pricer.MaxDisplaySteps {
		return fmt.Errorf("tree prints at most %d steps, got %d",
			pricer.MaxDisplaySteps, req.Market.Steps)
	}
	lat, val, err := pricer.PriceLatticeTree(req.Market, req.Contract,
		req.Lattice)
	if err != nil {
		return err
	}
	if err := pricer.WriteLattice(os.Stdout, lat, val, *precision); err != nil {
		return err
	}
	fmt.Printf("%s %s option value: %s\n", req.Contract.Style,
		req.Contract.Right, strconv.FormatFloat(val.Price(), 'f', *precision, 64))
	return nil
}
