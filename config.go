package pricer

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"
)

// DefaultPrecision is the number of decimals printed when a request file
// does not set one.
const DefaultPrecision = 2

// RequestSpec is the on-disk shape of a pricing request, shared by the YAML
// and CSV inputs.
type RequestSpec struct {
	Name    string  `yaml:"name"`
	Engine  string  `yaml:"engine"`
	Style   string  `yaml:"style"`
	Right   string  `yaml:"right"`
	Shape   string  `yaml:"shape"`
	Strike  float64 `yaml:"strike"`
	Lattice string  `yaml:"lattice"`

	MarketParams     `yaml:",inline"`
	MonteCarloConfig `yaml:",inline"`
}

// RequestFile is a YAML document of requests. Keys absent from a request
// are taken from Defaults.
type RequestFile struct {
	Precision int           `yaml:"precision"`
	Defaults  RequestSpec   `yaml:"defaults"`
	Specs     []RequestSpec `yaml:"requests"`
}

func LoadRequestFile(path string) (*RequestFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		glog.Error("Reading request file failed. ", err)
		return nil, err
	}
	var f RequestFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		err = fmt.Errorf("Parsing request file %s failed with error=%w",
			path, err)
		glog.Error(err.Error())
		return nil, err
	}
	if f.Precision <= 0 {
		f.Precision = DefaultPrecision
	}
	glog.Info(fmt.Sprintf("Loaded %d requests from %s", len(f.Specs), path))
	return &f, nil
}

// UnmarshalYAML decodes every request on top of a copy of the defaults, so a
// key present in a request wins even when its value is zero.
func (self *RequestFile) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Precision int         `yaml:"precision"`
		Defaults  RequestSpec `yaml:"defaults"`
		Specs     []yaml.Node `yaml:"requests"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	self.Precision = raw.Precision
	self.Defaults = raw.Defaults
	self.Specs = make([]RequestSpec, 0, len(raw.Specs))
	for i := range raw.Specs {
		spec := raw.Defaults
		if err := raw.Specs[i].Decode(&spec); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
		self.Specs = append(self.Specs, spec)
	}
	return nil
}

// Requests parses every spec, which already carries the file defaults.
func (self *RequestFile) Requests() ([]Request, error) {
	reqs := make([]Request, 0, len(self.Specs))
	for i, spec := range self.Specs {
		req, err := spec.Request()
		if err != nil {
			return nil, fmt.Errorf("request %d (%s): %w", i, spec.Name, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Request parses the string-valued fields of the spec.
func (self RequestSpec) Request() (Request, error) {
	engine, err := ParseEngine(self.Engine)
	if err != nil {
		return Request{}, err
	}
	style, err := ParseExerciseStyle(self.Style)
	if err != nil {
		return Request{}, err
	}
	right, err := ParseRight(self.Right)
	if err != nil {
		return Request{}, err
	}
	shape, err := ParsePayoffShape(self.Shape)
	if err != nil {
		return Request{}, err
	}
	form, err := ParseLatticeForm(self.Lattice)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Name:   self.Name,
		Engine: engine,
		Market: self.MarketParams,
		Contract: Contract{
			Style:  style,
			Right:  right,
			Strike: self.Strike,
			Shape:  shape,
		},
		Lattice:    form,
		MonteCarlo: self.MonteCarloConfig,
	}, nil
}

func ParseLatticeForm(s string) (LatticeForm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compact":
		return LatticeCompact, nil
	case "doubling", "naive":
		return LatticeDoubling, nil
	}
	return 0, invalidf("unknown lattice form %q", s)
}
