package Advection1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gondg/galerkin"
)

func TestAdvection(t *testing.T) {
	{ // Sine wave through [0,2] with the exact solution fed at the inflow
		c := NewModel(2*math.Pi, 0.75, 1.3, 2, 8, 10)
		c.Solver.Run()
		assert.InDelta(t, 1.3, c.Solver.Time, 1.e-12)
		dt, Nsteps := c.Solver.TimeStep()
		assert.InDelta(t, 1.3, dt*float64(Nsteps), 1.e-12)
		assert.Less(t, c.MaxError(), 1.e-3)
	}
	{ // Defaults
		c := NewModel(0, 0.75, 0.1, 0, 2, 4)
		assert.Equal(t, 2*math.Pi, c.A)
		assert.Equal(t, 2., c.XMax)
		el := c.Solver.Grid.Elements
		assert.InDelta(t, 2., el[len(el)-1].X[2], 1.e-12)
	}
	{ // Boundary faces carry the left and right keys
		c := NewModel(2*math.Pi, 0.75, 0.1, 2, 3, 5)
		el := c.Solver.Grid.Elements
		assert.Equal(t, galerkin.FluxLeft, el[0].Faces[0].FluxKey)
		assert.Equal(t, galerkin.BoundaryFace, el[0].Faces[0].Kind)
		assert.Equal(t, galerkin.FluxInterior, el[0].Faces[1].FluxKey)
		assert.Equal(t, galerkin.FluxRight, el[4].Faces[1].FluxKey)
	}
	{ // Error decreases with the polynomial order
		var errs []float64
		for _, N := range []int{2, 4, 6} {
			c := NewModel(2*math.Pi, 0.5, 0.5, 2, N, 10)
			c.Solver.Run()
			errs = append(errs, c.MaxError())
		}
		assert.Less(t, errs[1], errs[0])
		assert.Less(t, errs[2], errs[1])
	}
}

func TestAdvectionDeterminism(t *testing.T) {
	run := func(parallel int) (u [][]float64) {
		c := NewModel(2*math.Pi, 0.75, 0.4, 2, 5, 12)
		c.Solver.Parallel = parallel
		c.Solver.Run()
		for _, es := range c.Solver.Storage {
			u = append(u, es.U.C[galerkin.CompU])
		}
		return
	}
	serial := run(1)
	require.Len(t, serial, 12)
	// Bitwise identical results, repeated and partitioned
	assert.Equal(t, serial, run(1))
	assert.Equal(t, serial, run(3))
	assert.Equal(t, serial, run(12))
}

func TestAdvectionSink(t *testing.T) {
	var (
		c     = NewModel(2*math.Pi, 0.75, 0.2, 2, 3, 4)
		steps []int
	)
	c.Solver.PlotEvery = 2
	c.Solver.Sink = galerkin.SinkFunc(func(step int, time float64, x, f []float64) {
		assert.Len(t, x, 4*4)
		assert.Len(t, f, 4*4)
		steps = append(steps, step)
	})
	c.Solver.Run()
	require.NotEmpty(t, steps)
	assert.Equal(t, 0, steps[0])
	for i := 1; i < len(steps); i++ {
		assert.Equal(t, 2*i, steps[i])
	}
}
