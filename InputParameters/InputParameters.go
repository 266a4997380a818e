package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gondg/types"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title           string            `yaml:"Title"`
	Model           string            `yaml:"Model"` // Advection1D, Maxwell1D or Maxwell2D
	CFL             float64           `yaml:"CFL"`
	PolynomialOrder int               `yaml:"PolynomialOrder"`
	K               int               `yaml:"K"` // Elements in 1D, cells per side of the 2D rectangle mesh
	FinalTime       float64           `yaml:"FinalTime"`
	XMax            float64           `yaml:"XMax"`
	BCs             map[string]string `yaml:"BCs"` // Boundary name to condition, e.g. Wall: pec
	PlotEvery       int               `yaml:"PlotEvery"`
	Parallel        int               `yaml:"Parallel"`
	CheckFinite     bool              `yaml:"CheckFinite"`
}

var models = []string{"Advection1D", "Maxwell1D", "Maxwell2D"}

func (ip *InputParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.Validate()
}

// Validate checks the values that have no usable default.
func (ip *InputParameters) Validate() (err error) {
	if len(ip.Model) != 0 {
		if _, err = ip.ModelIndex(); err != nil {
			return
		}
	}
	switch {
	case ip.CFL < 0:
		err = fmt.Errorf("CFL must be positive, have %v", ip.CFL)
	case ip.FinalTime < 0:
		err = fmt.Errorf("FinalTime must be positive, have %v", ip.FinalTime)
	case ip.PolynomialOrder < 0:
		err = fmt.Errorf("PolynomialOrder must be positive, have %d", ip.PolynomialOrder)
	case ip.Parallel < 0:
		err = fmt.Errorf("Parallel must be positive, have %d", ip.Parallel)
	}
	if err != nil {
		return
	}
	for _, name := range ip.sortedBCNames() {
		if _, err = types.ParseBCFLAG(ip.BCs[name]); err != nil {
			return fmt.Errorf("BCs[%s]: %w", name, err)
		}
	}
	return
}

// ModelIndex returns the position of Model in Advection1D, Maxwell1D,
// Maxwell2D, case insensitive.
func (ip *InputParameters) ModelIndex() (index int, err error) {
	for i, name := range models {
		if strings.EqualFold(name, ip.Model) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown model %q, choose one of %v", ip.Model, models)
}

// BoundaryCondition returns the flag named for boundary name, or def when
// the file names none.
func (ip *InputParameters) BoundaryCondition(name string, def types.BCFLAG) (bc types.BCFLAG, err error) {
	val, ok := ip.BCs[name]
	if !ok {
		return def, nil
	}
	return types.ParseBCFLAG(val)
}

func (ip *InputParameters) sortedBCNames() (keys []string) {
	keys = make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Model\n", ip.Model)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= K\n", ip.K)
	for _, key := range ip.sortedBCNames() {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
