package Advection1D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/gondg/DG1D"
	"github.com/notargets/gondg/galerkin"
	"github.com/notargets/gondg/graphics"
)

// Advection is u_t + a u_x = 0 with the Lax-Friedrichs flux.
type Advection struct {
	A, Alpha float64
	scheme   *galerkin.FluxScheme
}

// NewAdvection binds the Lax-Friedrichs flux to interior and left faces. The
// right face is an outflow and contributes no correction.
func NewAdvection(a, alpha float64) (p *Advection) {
	lf := galerkin.LaxFriedrichs{Ax: a, Alpha: alpha}
	p = &Advection{
		A:     a,
		Alpha: alpha,
		scheme: galerkin.NewFluxScheme().
			Bind(galerkin.FluxInterior, lf).
			Bind(galerkin.FluxLeft, lf).
			Bind(galerkin.FluxRight, galerkin.Freeflow{}),
	}
	return
}

func (p *Advection) Kind() galerkin.FieldKind { return galerkin.ScalarField }
func (p *Advection) Scheme() *galerkin.FluxScheme { return p.scheme }
func (p *Advection) MaxSpeed(_ *galerkin.Grid) float64 { return math.Abs(p.A) }

// RHS is -a*rx*Dr*u + LIFT*(FScale*du).
func (p *Advection) RHS(g *galerkin.Grid, el *galerkin.Element, st *galerkin.ElementStorage, _ float64,
	rhs galerkin.Field) {
	var (
		ux   = g.Ops.Dx(el, st.U.C[galerkin.CompU])
		lift = g.LiftFlux(el, st.Flux, galerkin.CompU)
		r    = rhs.C[galerkin.CompU]
	)
	for i := range r {
		r[i] = -p.A*ux[i] + lift[i]
	}
}

// Model advects sin(x) across [0, XMax], fed at the left by the exact
// solution sin(x - a*t).
type Model struct {
	A, CFL, FinalTime, XMax float64
	N, K                    int
	Physics                 *Advection
	Solver                  *galerkin.Solver
}

func NewModel(a, CFL, FinalTime, XMax float64, N, K int) (c *Model) {
	if a == 0 {
		a = 2 * math.Pi
	}
	if XMax == 0 {
		XMax = 2
	}
	c = &Model{
		A:         a,
		CFL:       CFL,
		FinalTime: FinalTime,
		XMax:      XMax,
		N:         N,
		K:         K,
		Physics:   NewAdvection(a, 0),
	}
	VX, EToV := DG1D.SimpleMesh1D(0, XMax, K)
	ref := galerkin.Legendre1D(N)
	inflow := galerkin.Dirichlet(func(t float64, x, _ []float64) galerkin.Field {
		u := make([]float64, len(x))
		for i := range x {
			u[i] = c.Exact(x[i], t)
		}
		return galerkin.NewScalarField(u)
	})
	g := galerkin.AssembleGrid1D(ref, galerkin.AssembleOperators(ref), VX, EToV, inflow, galerkin.Outflow())
	c.Solver = galerkin.NewSolver(g, c.Physics, func(x, _ []float64) galerkin.Field {
		u := make([]float64, len(x))
		for i := range x {
			u[i] = math.Sin(x[i])
		}
		return galerkin.NewScalarField(u)
	}, CFL, FinalTime)
	return
}

func (c *Model) Exact(x, t float64) float64 { return math.Sin(x - c.A*t) }

// MaxError is the largest nodal deviation from the exact solution at the
// current solver time.
func (c *Model) MaxError() (eMax float64) {
	s := c.Solver
	for k := range s.Storage {
		var (
			x = s.Grid.Elements[k].X
			u = s.Storage[k].U.C[galerkin.CompU]
		)
		for i := range u {
			eMax = math.Max(eMax, math.Abs(u[i]-c.Exact(x[i], s.Time)))
		}
	}
	return
}

func (c *Model) GetSolver() *galerkin.Solver { return c.Solver }

func (c *Model) Run(showGraph bool, graphDelay ...time.Duration) {
	s := c.Solver
	fmt.Printf("CFL = %8.4f, Polynomial Degree N = %d (1 is linear), Num Elements K = %d\n\n", c.CFL, c.N, c.K)
	if showGraph {
		lc := graphics.NewLineChart(1024, 768, 0, c.XMax, -1, 1, "Advect1D")
		if len(graphDelay) != 0 {
			lc.Delay = graphDelay[0]
		}
		s.Sink, s.PlotEvery = lc, 1
	}
	if s.LogFrequency == 0 {
		s.LogFrequency = 50
	}
	s.Run()
	fmt.Printf("FinalTime = %8.4f, Nsteps = %d, dt = %8.6f, max error = %10.4e\n",
		s.Time, s.Nsteps, s.Dt, c.MaxError())
}
