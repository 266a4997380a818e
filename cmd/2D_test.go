package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gondg/InputParameters"
	"github.com/notargets/gondg/galerkin"
	"github.com/notargets/gondg/types"
)

func TestRun2D(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
Model: Maxwell2D
CFL: 0.5
PolynomialOrder: 2
K: 3
FinalTime: 0.1
Parallel: 2
BCs:
  Wall: outflow
`)
	var input InputParameters.InputParameters
	require.NoError(t, input.Parse(fileInput))
	m2d := &Model2D{N: 4, K: 8, CFL: 1, FinalTime: 2, BC: types.BC_PEC, PlotSteps: 1}
	require.NoError(t, m2d.Apply(&input))
	assert.Equal(t, 2, m2d.N)
	assert.Equal(t, 3, m2d.K)
	assert.Equal(t, 0.5, m2d.CFL)
	assert.Equal(t, types.BC_Out, m2d.BC)
	{
		C, err := NewModel2D(m2d)
		require.NoError(t, err)
		assert.Equal(t, 18, C.GetSolver().Grid.K())
		assert.Equal(t, 2, C.GetSolver().Parallel)
		assert.Equal(t, "Outflow", C.GetSolver().Grid.Elements[0].Faces[0].BC.String())
	}
	{ // Snapshots of Ez
		m2d.PlotDir = t.TempDir()
		require.NoError(t, Run2D(m2d))
		files, err := filepath.Glob(filepath.Join(m2d.PlotDir, "maxwell2d_*.png"))
		require.NoError(t, err)
		assert.NotEmpty(t, files)
	}
	{
		m := *m2d
		m.Delaunay = true
		mesh, err := NewMesh2D(&m)
		require.NoError(t, err)
		assert.Equal(t, 18, mesh.K())
		m.PointsFile = "points.txt"
		_, err = NewMesh2D(&m)
		assert.Error(t, err)
	}
	{ // Distmesh input, two triangles on the unit square
		dir := t.TempDir()
		m := *m2d
		m.PointsFile, m.TrisFile = filepath.Join(dir, "p.txt"), filepath.Join(dir, "t.txt")
		require.NoError(t, os.WriteFile(m.PointsFile, []byte("0\t0\n1\t0\n1\t1\n0\t1\n"), 0644))
		require.NoError(t, os.WriteFile(m.TrisFile, []byte("1\t2\t3\n1\t3\t4\n"), 0644))
		mesh, err := NewMesh2D(&m)
		require.NoError(t, err)
		assert.Equal(t, 2, mesh.K())
	}
	{ // Gambit input, the top and left edges are outflow and element 2 has epsilon 2
		dir := t.TempDir()
		m := &Model2D{N: 2, CFL: 1, FinalTime: 0.1, BC: types.BC_PEC, Parallel: 1}
		m.GridFile = filepath.Join(dir, "square.neu")
		require.NoError(t, os.WriteFile(m.GridFile, []byte(squareNeutral), 0644))
		C, err := NewModel2D(m)
		require.NoError(t, err)
		g := C.GetSolver().Grid
		require.Equal(t, 2, g.K())
		assert.Equal(t, 2., g.Elements[1].Material.Epsilon)
		assert.Equal(t, "PEC", g.Elements[0].Faces[0].BC.String())
		assert.Equal(t, "Outflow", g.Elements[1].Faces[1].BC.String())
		assert.Equal(t, "Outflow", g.Elements[1].Faces[2].BC.String())
		assert.Equal(t, 2., g.Elements[0].Faces[2].ExtMaterial.Epsilon)
		m.PointsFile = "points.txt"
		_, err = NewModel2D(m)
		assert.Error(t, err)
	}
	{
		var ip InputParameters.InputParameters
		require.NoError(t, ip.Parse([]byte("Model: Advection1D\n")))
		assert.Error(t, (&Model2D{}).Apply(&ip))
	}
}

var squareNeutral = strings.Join([]string{
	"        CONTROL INFO 2.0.0",
	"** GAMBIT NEUTRAL FILE",
	"square",
	"PROGRAM:                Gambit     VERSION:  2.0.0",
	"Oct 2026",
	"     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL",
	"         4         2         1         2         2         2",
	"ENDOFSECTION",
	"   NODAL COORDINATES 2.0.0",
	"         1   0.00000000000e+00   0.00000000000e+00",
	"         2   1.00000000000e+00   0.00000000000e+00",
	"         3   1.00000000000e+00   1.00000000000e+00",
	"         4   0.00000000000e+00   1.00000000000e+00",
	"ENDOFSECTION",
	"      ELEMENTS/CELLS 2.0.0",
	"       1  3  3        1        2        3",
	"       2  3  3        1        3        4",
	"ENDOFSECTION",
	"       ELEMENT GROUP 2.0.0",
	"GROUP:           1 ELEMENTS:          1 MATERIAL:      2.000 NFLAGS:          1",
	"                           epsilon: 2.000",
	"       0",
	"       2",
	"ENDOFSECTION",
	" BOUNDARY CONDITIONS 2.0.0",
	"                             Wall       1       2       0       6",
	"       1       3       1",
	"       1       3       2",
	"ENDOFSECTION",
	" BOUNDARY CONDITIONS 2.0.0",
	"                              Out       1       2       0       6",
	"       2       3       2",
	"       2       3       3",
	"ENDOFSECTION",
}, "\n") + "\n"

func TestRun1D(t *testing.T) {
	var ip InputParameters.InputParameters
	require.NoError(t, ip.Parse([]byte("Model: Maxwell1D\nK: 6\nPolynomialOrder: 3\nFinalTime: 0.2\n")))
	CFL, XMax, FinalTime, N, K := Defaults(M_1DAdvect)
	m1d := &Model1D{CFL: CFL, XMax: XMax, FinalTime: FinalTime, N: N, K: K, Parallel: 1, PlotSteps: 5}
	require.NoError(t, m1d.Apply(&ip))
	assert.Equal(t, M_1DMaxwell, m1d.ModelRun)
	assert.Equal(t, 6, m1d.K)
	assert.Equal(t, 0.2, m1d.FinalTime)
	C := NewModel1D(m1d)
	assert.Equal(t, galerkin.EHField1D, C.GetSolver().Physics.Kind())
	assert.Equal(t, 1., LimitCFL(M_1DAdvect, 3))
	{
		m1d.ModelRun = M_1DAdvect
		m1d.PlotDir = t.TempDir()
		Run1D(m1d)
		files, err := filepath.Glob(filepath.Join(m1d.PlotDir, "model0_*.png"))
		require.NoError(t, err)
		assert.NotEmpty(t, files)
	}
	{
		require.NoError(t, ip.Parse([]byte("Model: Maxwell2D\n")))
		assert.Error(t, m1d.Apply(&ip))
	}
}
