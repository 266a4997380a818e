package Maxwell2D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/gondg/galerkin"
	"github.com/notargets/gondg/geometry2D"
	"github.com/notargets/gondg/graphics"
)

// Maxwell is the transverse magnetic system (Hx, Hy, Ez) on triangles.
type Maxwell struct {
	Alpha  float64 // upwind penalty, 1 is full upwinding
	scheme *galerkin.FluxScheme
}

func NewMaxwell(alpha float64) *Maxwell {
	upwind := galerkin.MaxwellUpwind2D{Alpha: alpha}
	return &Maxwell{
		Alpha: alpha,
		scheme: galerkin.NewFluxScheme().
			Bind(galerkin.FluxInterior, upwind).
			Bind(galerkin.FluxBoundary, upwind),
	}
}

func (p *Maxwell) Kind() galerkin.FieldKind { return galerkin.EHField2D }

func (p *Maxwell) Scheme() *galerkin.FluxScheme { return p.scheme }

func (p *Maxwell) MaxSpeed(g *galerkin.Grid) (cMax float64) {
	for k := range g.Elements {
		cMax = math.Max(cMax, g.Elements[k].Material.Speed())
	}
	return
}

// RHS is dHx/dt = -dEz/dy, dHy/dt = dEz/dx and dEz/dt = curl(H).z plus the
// lifted face fluxes, scaled by 1/mu, 1/mu and 1/eps.
func (p *Maxwell) RHS(g *galerkin.Grid, el *galerkin.Element, st *galerkin.ElementStorage, _ float64,
	rhs galerkin.Field) {
	var (
		U        = st.U.C
		Ezx, Ezy = g.Ops.Grad2D(el, U[galerkin.CompEz])
		CuHz     = g.Ops.Curl2D(el, U[galerkin.CompHx], U[galerkin.CompHy])
		lHx      = g.LiftFlux(el, st.Flux, galerkin.CompHx)
		lHy      = g.LiftFlux(el, st.Flux, galerkin.CompHy)
		lEz      = g.LiftFlux(el, st.Flux, galerkin.CompEz)
		m        = el.Material
	)
	for i := range CuHz {
		rhs.C[galerkin.CompHx][i] = (-Ezy[i] + lHx[i]) / m.Mu
		rhs.C[galerkin.CompHy][i] = (Ezx[i] + lHy[i]) / m.Mu
		rhs.C[galerkin.CompEz][i] = (CuHz[i] + lEz[i]) / m.Epsilon
	}
}

// Model is a conducting cavity meshed by Mesh, started from the (MMode,
// NMode) resonance of the square [-1,1]x[-1,1].
type Model struct {
	CFL, FinalTime float64
	N              int
	MMode, NMode   int
	Mesh           *geometry2D.Mesh
	Physics        *Maxwell
	Solver         *galerkin.Solver
}

func NewModel(CFL, FinalTime float64, N int, mesh *geometry2D.Mesh) (c *Model) {
	return NewModelWithBoundary(CFL, FinalTime, N, mesh, galerkin.UniformBoundary(galerkin.PEC()))
}

func NewModelWithBoundary(CFL, FinalTime float64, N int, mesh *geometry2D.Mesh, bcs galerkin.BoundaryMap) (c *Model) {
	c = &Model{
		CFL:       CFL,
		FinalTime: FinalTime,
		N:         N,
		MMode:     1,
		NMode:     1,
		Mesh:      mesh,
		Physics:   NewMaxwell(1),
	}
	ref := galerkin.Legendre2D(N)
	g := galerkin.AssembleGrid2D(ref, galerkin.AssembleOperators(ref), mesh, bcs)
	c.Solver = galerkin.NewSolver(g, c.Physics, func(x, y []float64) galerkin.Field {
		var (
			Np = len(x)
			Ez = make([]float64, Np)
		)
		for i := range x {
			_, _, Ez[i] = c.Exact(x[i], y[i], 0)
		}
		return galerkin.NewEHField2D(make([]float64, Np), make([]float64, Np), Ez)
	}, CFL, FinalTime)
	return
}

// Exact is the cavity resonance with omega = pi*sqrt(m^2 + n^2).
func (c *Model) Exact(x, y, t float64) (Hx, Hy, Ez float64) {
	var (
		mpi, npi = float64(c.MMode) * math.Pi, float64(c.NMode) * math.Pi
		omega    = math.Sqrt(mpi*mpi + npi*npi)
		sx, cx   = math.Sincos(mpi * x)
		sy, cy   = math.Sincos(npi * y)
		st, ct   = math.Sincos(omega * t)
	)
	Hx = -(npi / omega) * sx * cy * st
	Hy = (mpi / omega) * cx * sy * st
	Ez = sx * sy * ct
	return
}

// MaxError is the largest nodal deviation of Ez from the cavity resonance at
// the current solver time.
func (c *Model) MaxError() (eMax float64) {
	s := c.Solver
	for k := range s.Storage {
		var (
			el = &s.Grid.Elements[k]
			Ez = s.Storage[k].U.C[galerkin.CompEz]
		)
		for i := range Ez {
			_, _, ez := c.Exact(el.X[i], el.Y[i], s.Time)
			eMax = math.Max(eMax, math.Abs(Ez[i]-ez))
		}
	}
	return
}

// VertexField averages one component over the elements sharing each mesh
// vertex. Reference nodes 0, N and Np-1 sit on the three triangle vertices.
func (c *Model) VertexField(comp int) (f []float64) {
	var (
		s     = c.Solver
		Np    = s.Grid.Ref.Np
		count = make([]int, len(c.Mesh.Points))
		nodes = [3]int{0, c.N, Np - 1}
	)
	f = make([]float64, len(c.Mesh.Points))
	for k, tri := range c.Mesh.Triangles {
		u := s.Storage[k].U.C[comp]
		for i, v := range tri {
			f[v] += u[nodes[i]]
			count[v]++
		}
	}
	for v := range f {
		if count[v] != 0 {
			f[v] /= float64(count[v])
		}
	}
	return
}

func (c *Model) GetSolver() *galerkin.Solver { return c.Solver }

func (c *Model) Run(showGraph bool, graphDelay ...time.Duration) {
	s := c.Solver
	fmt.Printf("CFL = %8.4f, Polynomial Degree N = %d (1 is linear), Num Elements K = %d\n\n",
		c.CFL, c.N, s.Grid.K())
	if showGraph {
		sp := graphics.NewSurfacePlot(1024, 1024, c.Mesh, -1, 1)
		if len(graphDelay) != 0 {
			sp.Delay = graphDelay[0]
		}
		s.Sink = galerkin.SinkFunc(func(int, float64, []float64, []float64) {
			sp.Plot(c.VertexField(galerkin.CompEz))
		})
		s.PlotEvery = 1
	}
	if s.LogFrequency == 0 {
		s.LogFrequency = 50
	}
	e0 := s.Energy()
	s.Run()
	fmt.Printf("FinalTime = %8.4f, Nsteps = %d, dt = %8.6f, energy = %10.6f (initial %10.6f), max error = %10.4e\n",
		s.Time, s.Nsteps, s.Dt, s.Energy(), e0, c.MaxError())
}
