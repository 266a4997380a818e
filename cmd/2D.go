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
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gondg/InputParameters"
	"github.com/notargets/gondg/galerkin"
	"github.com/notargets/gondg/geometry2D"
	"github.com/notargets/gondg/graphics"
	"github.com/notargets/gondg/graphics/pngplot"
	"github.com/notargets/gondg/model_problems/Maxwell2D"
	"github.com/notargets/gondg/readfiles"
	"github.com/notargets/gondg/types"
)

type Model2D struct {
	N, K                 int // Polynomial degree, cells per side of the rectangle mesh
	CFL, FinalTime       float64
	PointsFile, TrisFile string
	GridFile             string
	Delaunay             bool
	Graph, PlotMesh      bool
	Delay                time.Duration
	Parallel, PlotSteps  int
	PlotDir              string
	BC                   types.BCFLAG
	CheckFinite          bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional Maxwell cavity on generated or distmesh triangle meshes",
	Long: `
Two dimensional transverse magnetic Maxwell solver in a conducting cavity. The
mesh is a split rectangle by default, a Delaunay triangulation with --delaunay,
read from distmesh points and triangles files, or read from a Gambit neutral
file whose material groups set the permittivity of each element,

gondg 2D -n 4 -k 8
gondg 2D -n 4 -P points.txt -T triangles.txt
gondg 2D -n 4 -F cavity.neu`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("2D called")
		m2d := &Model2D{}
		m2d.N, _ = cmd.Flags().GetInt("n")
		m2d.K, _ = cmd.Flags().GetInt("k")
		m2d.CFL, _ = cmd.Flags().GetFloat64("CFL")
		m2d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m2d.PointsFile, _ = cmd.Flags().GetString("pointsFile")
		m2d.TrisFile, _ = cmd.Flags().GetString("trianglesFile")
		m2d.GridFile, _ = cmd.Flags().GetString("gridFile")
		m2d.Delaunay, _ = cmd.Flags().GetBool("delaunay")
		m2d.Graph, _ = cmd.Flags().GetBool("graph")
		m2d.PlotMesh, _ = cmd.Flags().GetBool("plotMesh")
		dr, _ := cmd.Flags().GetInt("delay")
		m2d.Delay = time.Duration(dr) * time.Millisecond
		m2d.Parallel, _ = cmd.Flags().GetInt("parallel")
		m2d.PlotSteps, _ = cmd.Flags().GetInt("plotSteps")
		m2d.PlotDir, _ = cmd.Flags().GetString("plotDir")
		m2d.CheckFinite, _ = cmd.Flags().GetBool("checkFinite")
		bcName, _ := cmd.Flags().GetString("boundary")
		if m2d.BC, err = types.ParseBCFLAG(bcName); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
		if icFile, _ := cmd.Flags().GetString("inputConditionsFile"); len(icFile) != 0 {
			var ip *InputParameters.InputParameters
			if ip, err = readInput(icFile); err == nil {
				err = m2d.Apply(ip)
			}
			if err != nil {
				fmt.Printf("error: %s\n", err)
				os.Exit(1)
			}
		}
		if err = Run2D(m2d); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().IntP("n", "n", 4, "polynomial degree")
	TwoDCmd.Flags().IntP("k", "k", 8, "cells per side of the generated mesh on [-1,1]x[-1,1]")
	TwoDCmd.Flags().Float64("CFL", 1, "CFL - increase for speedup, decrease for stability")
	TwoDCmd.Flags().Float64("finalTime", 2, "FinalTime - the target end time for the sim")
	TwoDCmd.Flags().StringP("pointsFile", "P", "", "distmesh points file, tab separated x, y")
	TwoDCmd.Flags().StringP("trianglesFile", "T", "", "distmesh triangles file, tab separated 1-based vertex indices")
	TwoDCmd.Flags().StringP("gridFile", "F", "", "Gambit neutral file, named boundary groups map to conditions")
	TwoDCmd.Flags().Bool("delaunay", false, "triangulate jittered lattice points with Delaunay instead of splitting cells")
	TwoDCmd.Flags().String("boundary", "pec", "boundary condition on every boundary face: pec or outflow")
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters, overrides the flags")
	TwoDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	TwoDCmd.Flags().Bool("plotMesh", false, "display the mesh and element nodes before the run")
	TwoDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	TwoDCmd.Flags().IntP("parallel", "p", 1, "number of element partitions run concurrently")
	TwoDCmd.Flags().IntP("plotSteps", "s", 50, "number of steps between PNG snapshots")
	TwoDCmd.Flags().String("plotDir", "", "directory for PNG snapshots of Ez against x, none when empty")
	TwoDCmd.Flags().Bool("checkFinite", false, "stop at the first NaN or Inf in the solution")
}

// Apply overrides the flag values with those set in the input file.
func (m2d *Model2D) Apply(ip *InputParameters.InputParameters) (err error) {
	if len(ip.Model) != 0 {
		var idx int
		if idx, err = ip.ModelIndex(); err != nil {
			return
		}
		if idx != 2 {
			return fmt.Errorf("model %s is not two dimensional", ip.Model)
		}
	}
	setIfPositive(&m2d.CFL, ip.CFL)
	setIfPositive(&m2d.FinalTime, ip.FinalTime)
	setIntIfPositive(&m2d.N, ip.PolynomialOrder)
	setIntIfPositive(&m2d.K, ip.K)
	setIntIfPositive(&m2d.Parallel, ip.Parallel)
	setIntIfPositive(&m2d.PlotSteps, ip.PlotEvery)
	m2d.CheckFinite = m2d.CheckFinite || ip.CheckFinite
	m2d.BC, err = ip.BoundaryCondition("Wall", m2d.BC)
	return
}

// NewMesh2D reads the distmesh files when given, otherwise generates a mesh
// of [-1,1]x[-1,1] with K cells per side.
func NewMesh2D(m2d *Model2D) (mesh *geometry2D.Mesh, err error) {
	switch {
	case len(m2d.PointsFile) != 0 || len(m2d.TrisFile) != 0:
		if len(m2d.PointsFile) == 0 || len(m2d.TrisFile) == 0 {
			err = fmt.Errorf("distmesh input needs both a points file (-P) and a triangles file (-T)")
			return
		}
		return readfiles.ReadDistmeshFiles(m2d.PointsFile, m2d.TrisFile, true)
	case m2d.Delaunay:
		var (
			pts = geometry2D.LatticePoints(-1, 1, -1, 1, m2d.K, m2d.K)
			h   = 2 / float64(m2d.K)
			rng = rand.New(rand.NewSource(1))
		)
		for i := range pts {
			x, y := pts[i].X[0], pts[i].X[1]
			if math.Abs(x) < 1-0.5*h && math.Abs(y) < 1-0.5*h {
				pts[i].X[0] += 0.2 * h * (rng.Float64() - 0.5)
				pts[i].X[1] += 0.2 * h * (rng.Float64() - 0.5)
			}
		}
		return geometry2D.NewDelaunayMesh(pts)
	}
	if m2d.K < 1 {
		err = fmt.Errorf("need at least one cell per side, have %d", m2d.K)
		return
	}
	mesh = geometry2D.NewRectangleMesh(-1, 1, -1, 1, m2d.K, m2d.K)
	return
}

func NewModel2D(m2d *Model2D) (C *Maxwell2D.Model, err error) {
	var (
		mesh *geometry2D.Mesh
		gm   *readfiles.GambitMesh
		bc   galerkin.BoundaryCondition
		bcs  galerkin.BoundaryMap
	)
	if bc, err = galerkin.NewBoundaryCondition(m2d.BC, nil); err != nil {
		return
	}
	if len(m2d.GridFile) != 0 {
		if len(m2d.PointsFile) != 0 || len(m2d.TrisFile) != 0 {
			err = fmt.Errorf("use either a Gambit file (-F) or distmesh files (-P, -T), not both")
			return
		}
		if gm, err = readfiles.ReadGambit2DFile(m2d.GridFile, true); err != nil {
			return
		}
		mesh = gm.Mesh
		if bcs, err = gambitBoundaries(gm, bc); err != nil {
			return
		}
	} else {
		if mesh, err = NewMesh2D(m2d); err != nil {
			return
		}
		bcs = galerkin.UniformBoundary(bc)
	}
	C = Maxwell2D.NewModelWithBoundary(m2d.CFL, m2d.FinalTime, m2d.N, mesh, bcs)
	s := C.GetSolver()
	if gm != nil {
		// Material values are relative permittivities
		mats := make([]galerkin.Material, len(gm.Material))
		for k, eps := range gm.Material {
			mats[k] = galerkin.Material{Epsilon: eps, Mu: 1}
		}
		if err = s.Grid.SetElementMaterials(mats); err != nil {
			return
		}
	}
	s.Parallel = m2d.Parallel
	s.CheckFinite = m2d.CheckFinite
	if len(m2d.PlotDir) != 0 {
		snap := pngplot.NewSnapshots(m2d.PlotDir, "maxwell2d", "Ez")
		snap.Label = "Ez"
		s.Sink, s.PlotEvery, s.PlotComponent = snap, m2d.PlotSteps, galerkin.CompEz
	}
	return
}

// gambitBoundaries maps each named boundary group to its condition, faces
// outside every group take def.
func gambitBoundaries(gm *readfiles.GambitMesh, def galerkin.BoundaryCondition) (bcs galerkin.BoundaryMap, err error) {
	conds := make(map[string]galerkin.BoundaryCondition)
	for _, bg := range gm.Boundaries {
		var flag types.BCFLAG
		if flag, err = types.ParseBCFLAG(bg.Name); err != nil {
			return nil, fmt.Errorf("boundary group %s: %w", bg.Name, err)
		}
		if conds[bg.Name], err = galerkin.NewBoundaryCondition(flag, nil); err != nil {
			return nil, fmt.Errorf("boundary group %s: %w", bg.Name, err)
		}
	}
	xmin, xmax, ymin, ymax := gm.Mesh.Bounds()
	tol := 1.e-6 * math.Hypot(xmax-xmin, ymax-ymin)
	bcs = func(xMid, yMid float64) galerkin.BoundaryCondition {
		if name, ok := gm.BoundaryName(xMid, yMid, tol); ok {
			return conds[name]
		}
		return def
	}
	return
}

func Run2D(m2d *Model2D) (err error) {
	var C *Maxwell2D.Model
	if C, err = NewModel2D(m2d); err != nil {
		return
	}
	if m2d.PlotMesh {
		x, y := C.GetSolver().Grid.Coordinates()
		graphics.PlotMesh(C.Mesh, x, y, true)
	}
	runMeasured(func() {
		C.Run(m2d.Graph, m2d.Delay)
	})
	if snap, ok := C.GetSolver().Sink.(*pngplot.Snapshots); ok && snap.Err != nil {
		err = snap.Err
	}
	return
}
