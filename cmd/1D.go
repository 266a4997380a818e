/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gondg/InputParameters"
	"github.com/notargets/gondg/galerkin"
	"github.com/notargets/gondg/graphics/pngplot"
	"github.com/notargets/gondg/model_problems/Advection1D"
	"github.com/notargets/gondg/model_problems/Maxwell1D"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One Dimensional Model Problem Solutions",
	Long: `
Executes the Nodal Discontinuous Galerkin solver for the one dimensional model problems,

gondg 1D -m 0 -n 8 -k 10 --finalTime 1.3`,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{}
		fmt.Println("1D called")
		mr, _ := cmd.Flags().GetInt("model")
		m1d.ModelRun = ModelType1D(mr)
		m1d.XMax, _ = cmd.Flags().GetFloat64("xMax")
		m1d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m1d.CFL, _ = cmd.Flags().GetFloat64("CFL")
		m1d.N, _ = cmd.Flags().GetInt("n")
		m1d.K, _ = cmd.Flags().GetInt("k")
		m1d.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		m1d.Delay = time.Duration(dr) * time.Millisecond
		m1d.Parallel, _ = cmd.Flags().GetInt("parallel")
		m1d.PlotSteps, _ = cmd.Flags().GetInt("plotSteps")
		m1d.PlotDir, _ = cmd.Flags().GetString("plotDir")
		m1d.CheckFinite, _ = cmd.Flags().GetBool("checkFinite")
		if icFile, _ := cmd.Flags().GetString("inputConditionsFile"); len(icFile) != 0 {
			ip, err := readInput(icFile)
			if err != nil {
				fmt.Printf("error: %s\n", err)
				os.Exit(1)
			}
			if err = m1d.Apply(ip); err != nil {
				fmt.Printf("error: %s\n", err)
				os.Exit(1)
			}
		}
		if int(m1d.ModelRun) >= len(def_K) {
			fmt.Printf("error: unknown 1D model %d\n", m1d.ModelRun)
			os.Exit(1)
		}
		m1d.CFL = LimitCFL(m1d.ModelRun, m1d.CFL)
		Run1D(m1d)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	var (
		ModelRun = M_1DAdvect
	)
	CFL, XMax, FinalTime, N, K := Defaults(ModelRun)
	OneDCmd.Flags().IntP("model", "m", int(ModelRun), "model to run: 0 = Advect1D, 1 = Maxwell1D")
	OneDCmd.Flags().IntP("k", "k", K, "Number of elements in model")
	OneDCmd.Flags().IntP("n", "n", N, "polynomial degree")
	OneDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	OneDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	OneDCmd.Flags().IntP("parallel", "p", 1, "number of element partitions run concurrently")
	OneDCmd.Flags().IntP("plotSteps", "s", 50, "number of steps between PNG snapshots")
	OneDCmd.Flags().String("plotDir", "", "directory for PNG snapshots of the solution, none when empty")
	OneDCmd.Flags().Bool("checkFinite", false, "stop at the first NaN or Inf in the solution")
	OneDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters, overrides the flags")
	OneDCmd.Flags().Float64("CFL", CFL, "CFL - increase for speedup, decrease for stability")
	OneDCmd.Flags().Float64("finalTime", FinalTime, "FinalTime - the target end time for the sim")
	OneDCmd.Flags().Float64("xMax", XMax, "Maximum X coordinate of the advection domain")
}

type Model1D struct {
	K, N                 int // Number of elements, Polynomial Degree
	Delay                time.Duration
	ModelRun             ModelType1D
	CFL, FinalTime, XMax float64
	Graph                bool
	Parallel, PlotSteps  int
	PlotDir              string
	CheckFinite          bool
}

type ModelType1D uint8

const (
	M_1DAdvect ModelType1D = iota
	M_1DMaxwell
)

var (
	max_CFL       = []float64{1, 1}
	def_K         = []int{10, 20}
	def_N         = []int{8, 6}
	def_CFL       = []float64{0.75, 0.75}
	def_XMAX      = []float64{2, 1}
	def_FinalTime = []float64{1.3, 2}
)

type Model interface {
	GetSolver() *galerkin.Solver
	Run(graph bool, graphDelay ...time.Duration)
}

// Apply overrides the flag values with those set in the input file.
func (m1d *Model1D) Apply(ip *InputParameters.InputParameters) (err error) {
	if len(ip.Model) != 0 {
		var idx int
		if idx, err = ip.ModelIndex(); err != nil {
			return
		}
		if idx > int(M_1DMaxwell) {
			return fmt.Errorf("model %s is not one dimensional", ip.Model)
		}
		m1d.ModelRun = ModelType1D(idx)
	}
	setIfPositive(&m1d.CFL, ip.CFL)
	setIfPositive(&m1d.FinalTime, ip.FinalTime)
	setIfPositive(&m1d.XMax, ip.XMax)
	setIntIfPositive(&m1d.N, ip.PolynomialOrder)
	setIntIfPositive(&m1d.K, ip.K)
	setIntIfPositive(&m1d.Parallel, ip.Parallel)
	setIntIfPositive(&m1d.PlotSteps, ip.PlotEvery)
	m1d.CheckFinite = m1d.CheckFinite || ip.CheckFinite
	return
}

func NewModel1D(m1d *Model1D) (C Model) {
	switch m1d.ModelRun {
	case M_1DMaxwell:
		C = Maxwell1D.NewModel(m1d.CFL, m1d.FinalTime, m1d.N, m1d.K)
	case M_1DAdvect:
		fallthrough
	default:
		C = Advection1D.NewModel(0, m1d.CFL, m1d.FinalTime, m1d.XMax, m1d.N, m1d.K)
	}
	s := C.GetSolver()
	s.Parallel = m1d.Parallel
	s.CheckFinite = m1d.CheckFinite
	if len(m1d.PlotDir) != 0 {
		s.Sink = pngplot.NewSnapshots(m1d.PlotDir, fmt.Sprintf("model%d", m1d.ModelRun), "1D solution")
		s.PlotEvery = m1d.PlotSteps
	}
	return
}

func Run1D(m1d *Model1D) {
	C := NewModel1D(m1d)
	runMeasured(func() {
		C.Run(m1d.Graph, m1d.Delay)
	})
	if snap, ok := C.GetSolver().Sink.(*pngplot.Snapshots); ok {
		if snap.Err != nil {
			fmt.Printf("error writing snapshots: %s\n", snap.Err)
		} else {
			fmt.Printf("wrote %d snapshots to %s\n", len(snap.Files), m1d.PlotDir)
		}
	}
}

func LimitCFL(model ModelType1D, CFL float64) (CFLNew float64) {
	var (
		CFLMax float64
	)
	CFLMax = max_CFL[model]
	if CFL > CFLMax {
		fmt.Printf("Input CFL is higher than max CFL for this method\nReplacing with Max CFL: %8.2f\n", CFLMax)
		return CFLMax
	}
	return CFL
}

func Defaults(model ModelType1D) (CFL, XMax, FinalTime float64, N, K int) {
	return def_CFL[model], def_XMAX[model], def_FinalTime[model], def_N[model], def_K[model]
}

func readInput(icFile string) (ip *InputParameters.InputParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(icFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", icFile, err)
	}
	ip.Print()
	return
}

func setIfPositive(dst *float64, val float64) {
	if val > 0 {
		*dst = val
	}
}

func setIntIfPositive(dst *int, val int) {
	if val > 0 {
		*dst = val
	}
}
