package pricer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/golang/glog"
)

// CSV column names. Only columns present in the header are read; missing
// or empty cells are left zero so file defaults can fill them.
const (
	kColName    = "name"
	kColEngine  = "engine"
	kColStyle   = "style"
	kColRight   = "right"
	kColShape   = "shape"
	kColStrike  = "strike"
	kColLattice = "lattice"
	kColSpot    = "spot"
	kColVol     = "vol"
	kColRate    = "rate"
	kColDiv     = "div"
	kColTime    = "time"
	kColSteps   = "steps"
	kColTrials  = "trials"
	kColWorkers = "workers"
	kColSeed    = "seed"
)

// ParseRequestsCSV reads request specs from CSV with a header row. Lines
// starting with '#' are comments.
func ParseRequestsCSV(r io.Reader) ([]RequestSpec, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, invalidf("request CSV is empty")
	}
	if err != nil {
		glog.Error("Reading CSV header failed. ", err)
		return nil, err
	}

	indices := make(map[string]int)
	for i, col := range header {
		indices[strings.ToLower(strings.TrimSpace(col))] = i
	}
	glog.V(1).Info("CSV column indices ", indices)

	specs := []RequestSpec{}
	for line := 2; ; line++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			glog.Error("Reading CSV failed. ", err)
			return nil, err
		}
		spec, err := parseRequestRow(csvRow{
			line:    line,
			indices: indices,
			cells:   cells,
		})
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseRequestRow(row csvRow) (RequestSpec, error) {
	spec := RequestSpec{
		Name:    getStrField(row, kColName),
		Engine:  getStrField(row, kColEngine),
		Style:   getStrField(row, kColStyle),
		Right:   getStrField(row, kColRight),
		Shape:   getStrField(row, kColShape),
		Lattice: getStrField(row, kColLattice),
	}

	floatCols := []struct {
		field string
		dst   *float64
	}{
		{kColStrike, &spec.Strike},
		{kColSpot, &spec.Spot},
		{kColVol, &spec.Volatility},
		{kColRate, &spec.Rate},
		{kColDiv, &spec.Dividend},
		{kColTime, &spec.Time},
	}
	for _, f := range floatCols {
		v, err := getFloat64Field(row, f.field)
		if err != nil {
			return RequestSpec{}, err
		}
		*f.dst = v
	}

	intCols := []struct {
		field string
		dst   *int
	}{
		{kColSteps, &spec.Steps},
		{kColTrials, &spec.Trials},
		{kColWorkers, &spec.Workers},
	}
	for _, f := range intCols {
		v, err := getIntField(row, f.field)
		if err != nil {
			return RequestSpec{}, err
		}
		*f.dst = v
	}

	seed, err := getUint64Field(row, kColSeed)
	if err != nil {
		return RequestSpec{}, err
	}
	spec.Seed = seed
	return spec, nil
}
