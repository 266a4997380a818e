package Maxwell1D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/gondg/DG1D"
	"github.com/notargets/gondg/galerkin"
	"github.com/notargets/gondg/graphics"
)

// Maxwell is the one dimensional E, H system with the impedance weighted
// upwind flux on every face.
type Maxwell struct {
	scheme *galerkin.FluxScheme
}

func NewMaxwell() *Maxwell {
	upwind := galerkin.MaxwellUpwind1D{}
	return &Maxwell{
		scheme: galerkin.NewFluxScheme().
			Bind(galerkin.FluxInterior, upwind).
			Bind(galerkin.FluxLeft, upwind).
			Bind(galerkin.FluxRight, upwind),
	}
}

func (p *Maxwell) Kind() galerkin.FieldKind { return galerkin.EHField1D }

func (p *Maxwell) Scheme() *galerkin.FluxScheme { return p.scheme }

func (p *Maxwell) MaxSpeed(g *galerkin.Grid) (cMax float64) {
	for k := range g.Elements {
		cMax = math.Max(cMax, g.Elements[k].Material.Speed())
	}
	return
}

// RHS is rhsE = (-rx*Dr*H + LIFT*(FScale*fluxE))/eps and
// rhsH = (-rx*Dr*E + LIFT*(FScale*fluxH))/mu.
func (p *Maxwell) RHS(g *galerkin.Grid, el *galerkin.Element, st *galerkin.ElementStorage, _ float64,
	rhs galerkin.Field) {
	var (
		E, H         = st.U.C[galerkin.CompE], st.U.C[galerkin.CompH]
		Ex, Hx       = g.Ops.Dx(el, E), g.Ops.Dx(el, H)
		liftE, liftH = g.LiftFlux(el, st.Flux, galerkin.CompE), g.LiftFlux(el, st.Flux, galerkin.CompH)
		rhsE, rhsH   = rhs.C[galerkin.CompE], rhs.C[galerkin.CompH]
		m            = el.Material
	)
	for i := range rhsE {
		rhsE[i] = (-Hx[i] + liftE[i]) / m.Epsilon
		rhsH[i] = (-Ex[i] + liftH[i]) / m.Mu
	}
}

// Permittivity is 2 on elements starting at x >= 0 and 1 elsewhere.
func Permittivity(x, _ []float64) galerkin.Material {
	if x[0] >= 0 {
		return galerkin.Material{Epsilon: 2, Mu: 1}
	}
	return galerkin.Material{Epsilon: 1, Mu: 1}
}

// InitialEH is E = sin(pi*x) on x < 0, zero elsewhere, with H = 0.
func InitialEH(x, _ []float64) galerkin.Field {
	E, H := make([]float64, len(x)), make([]float64, len(x))
	for i, xx := range x {
		if xx < 0 {
			E[i] = math.Sin(math.Pi * xx)
		}
	}
	return galerkin.NewEHField1D(E, H)
}

// Model is a cavity on [XMin, XMax] closed by conductors on both ends and
// filled with two dielectrics.
type Model struct {
	CFL, FinalTime float64
	XMin, XMax     float64
	N, K           int
	Physics        *Maxwell
	Solver         *galerkin.Solver
}

func NewModel(CFL, FinalTime float64, N, K int) (c *Model) {
	c = &Model{
		CFL:       CFL,
		FinalTime: FinalTime,
		XMin:      -1,
		XMax:      1,
		N:         N,
		K:         K,
		Physics:   NewMaxwell(),
	}
	VX, EToV := DG1D.SimpleMesh1D(c.XMin, c.XMax, K)
	ref := galerkin.Legendre1D(N)
	var (
		left  = galerkin.PEC().WithMaterial(galerkin.Material{Epsilon: 1, Mu: 1})
		right = galerkin.PEC().WithMaterial(galerkin.Material{Epsilon: 2, Mu: 1})
	)
	g := galerkin.AssembleGrid1D(ref, galerkin.AssembleOperators(ref), VX, EToV, left, right)
	g.SetMaterial(Permittivity)
	c.Solver = galerkin.NewSolver(g, c.Physics, InitialEH, CFL, FinalTime)
	return
}

func (c *Model) GetSolver() *galerkin.Solver { return c.Solver }

func (c *Model) Run(showGraph bool, graphDelay ...time.Duration) {
	s := c.Solver
	fmt.Printf("CFL = %8.4f, Polynomial Degree N = %d (1 is linear), Num Elements K = %d\n\n", c.CFL, c.N, c.K)
	if showGraph {
		lc := graphics.NewLineChart(1024, 768, c.XMin, c.XMax, -1, 1, "E")
		if len(graphDelay) != 0 {
			lc.Delay = graphDelay[0]
		}
		s.Sink, s.PlotEvery, s.PlotComponent = lc, 1, galerkin.CompE
	}
	if s.LogFrequency == 0 {
		s.LogFrequency = 50
	}
	e0 := s.Energy()
	s.Run()
	fmt.Printf("FinalTime = %8.4f, Nsteps = %d, dt = %8.6f, energy = %10.6f (initial %10.6f)\n",
		s.Time, s.Nsteps, s.Dt, s.Energy(), e0)
}
