package galerkin

import (
	"fmt"
	"math"

	"github.com/notargets/gondg/utils"
)

// Physics supplies the right hand side of one PDE.
type Physics interface {
	Kind() FieldKind
	Scheme() *FluxScheme
	// MaxSpeed is the largest wave speed on the grid
	MaxSpeed(g *Grid) float64
	// RHS writes dU/dt of element el into rhs, st.Flux holds the numerical
	// flux of every face for this stage
	RHS(g *Grid, el *Element, st *ElementStorage, t float64, rhs Field)
}

// Sink receives the node coordinates of all elements and one field
// component, every PlotEvery steps.
type Sink interface {
	Plot(step int, t float64, x, f []float64)
}

type SinkFunc func(step int, t float64, x, f []float64)

func (sf SinkFunc) Plot(step int, t float64, x, f []float64) { sf(step, t, x, f) }

// Solver advances the storage with the five stage low storage RK4 scheme.
// Each stage communicates every element before any element is updated.
type Solver struct {
	Grid          *Grid
	Physics       Physics
	Storage       []ElementStorage
	CFL           float64
	FinalTime     float64
	Parallel      int  // number of element partitions run concurrently
	CheckFinite   bool // panic on the first NaN or Inf after a stage
	Sink          Sink
	PlotEvery     int
	PlotComponent int
	LogFrequency  int
	Time, Dt      float64
	Nsteps, Step  int
	pm            *utils.PartitionMap
}

func NewSolver(g *Grid, phys Physics, ic InitialCondition, CFL, FinalTime float64) (s *Solver) {
	s = &Solver{
		Grid:      g,
		Physics:   phys,
		Storage:   InitializeStorage(g, phys.Kind(), ic),
		CFL:       CFL,
		FinalTime: FinalTime,
		Parallel:  1,
	}
	return
}

// TimeStep returns dt = 0.5*CFL*minSpacing/maxSpeed, reduced so that an
// integer number of steps reaches FinalTime from the current time. Nsteps is
// zero once FinalTime has been reached.
func (s *Solver) TimeStep() (dt float64, Nsteps int) {
	maxSpeed := s.Physics.MaxSpeed(s.Grid)
	if maxSpeed <= 0 {
		panic(fmt.Errorf("maximum wave speed must be positive, have %v", maxSpeed))
	}
	dt = 0.5 * s.CFL * s.Grid.MinSpacing / maxSpeed
	remaining := s.FinalTime - s.Time
	if remaining <= 0 {
		return dt, 0
	}
	Ns := math.Ceil(remaining / dt)
	if Ns < 1 {
		Ns = 1
	}
	dt = remaining / Ns
	Nsteps = int(Ns)
	return
}

// Run integrates from the current time to FinalTime, Step counts the steps
// taken by this call.
func (s *Solver) Run() {
	s.Dt, s.Nsteps = s.TimeStep()
	s.pm = utils.NewPartitionMap(s.Parallel, s.Grid.K())
	s.plot()
	for s.Step = 0; s.Step < s.Nsteps; {
		s.Advance(s.Dt)
		s.plot()
		if s.LogFrequency > 0 && s.Step%s.LogFrequency == 0 {
			fmt.Printf("Time = %8.4f, step[%d/%d], max|U| = %8.4f, energy = %10.6f\n",
				s.Time, s.Step, s.Nsteps, s.MaxAbs(), s.Energy())
		}
	}
}

// Advance takes one full RK step of size dt.
func (s *Solver) Advance(dt float64) {
	if s.pm == nil || s.pm.ParallelDegree != max(s.Parallel, 1) {
		s.pm = utils.NewPartitionMap(s.Parallel, s.Grid.K())
	}
	for INTRK := 0; INTRK < 5; INTRK++ {
		s.Stage(INTRK, s.Time+dt*utils.RK4c[INTRK], dt)
	}
	s.Time += dt
	s.Step++
}

// Stage runs one RK stage at stage time t. The communicate phase completes
// for every element before the update phase begins.
func (s *Solver) Stage(INTRK int, t, dt float64) {
	var (
		g  = s.Grid
		st = s.Storage
	)
	s.pm.Run(func(_, kMin, kMax int) {
		CommunicateRange(g, st, t, kMin, kMax)
	})
	s.pm.Run(func(_, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			s.updateElement(k, INTRK, t, dt)
		}
	})
}

func (s *Solver) updateElement(k, INTRK int, t, dt float64) {
	var (
		el     = &s.Grid.Elements[k]
		es     = &s.Storage[k]
		scheme = s.Physics.Scheme()
	)
	for f := range el.Faces {
		scheme.ComputeFlux(el, f, es)
	}
	s.Physics.RHS(s.Grid, el, es, t, es.RHS)
	// resid = rk4a(INTRK) * resid + dt * rhs
	es.Resid.Scale(utils.RK4a[INTRK]).AXPY(dt, es.RHS)
	// u += rk4b(INTRK) * resid
	es.U.AXPY(utils.RK4b[INTRK], es.Resid)
	if s.CheckFinite && !es.U.IsFinite() {
		panic(fmt.Errorf("non-finite value in element %d at step %d, stage %d, time %v",
			k, s.Step, INTRK, t))
	}
}

func (s *Solver) plot() {
	if s.Sink == nil || s.PlotEvery <= 0 || s.Step%s.PlotEvery != 0 {
		return
	}
	x, f := s.Snapshot(s.PlotComponent)
	s.Sink.Plot(s.Step, s.Time, x, f)
}

// Snapshot returns the node x coordinates and one component of U for all
// elements, element by element.
func (s *Solver) Snapshot(comp int) (x, f []float64) {
	x, _ = s.Grid.Coordinates()
	f = make([]float64, 0, len(x))
	for k := range s.Storage {
		f = append(f, s.Storage[k].U.C[comp]...)
	}
	return
}

func (s *Solver) MaxAbs() (m float64) {
	for k := range s.Storage {
		m = math.Max(m, s.Storage[k].U.MaxAbs())
	}
	return
}

// Energy is 1/2 of the integral of the material weighted squared field,
// epsilon*E^2 + mu*H^2 for Maxwell and u^2 for a scalar.
func (s *Solver) Energy() (energy float64) {
	var (
		M = s.Grid.Ops.MassMatrix
	)
	for k := range s.Storage {
		var (
			el = &s.Grid.Elements[k]
			U  = s.Storage[k].U
		)
		for c, u := range U.C {
			Mu := M.MulVec(u)
			var sum float64
			for i := range u {
				sum += u[i] * Mu[i] * el.J[i]
			}
			energy += 0.5 * sum * componentWeight(U.Kind, c, el.Material)
		}
	}
	return
}

func componentWeight(kind FieldKind, comp int, m Material) float64 {
	switch {
	case kind == EHField1D && comp == CompE, kind == EHField2D && comp == CompEz:
		return m.Epsilon
	case kind == EHField1D && comp == CompH, kind == EHField2D:
		return m.Mu
	}
	return 1
}
