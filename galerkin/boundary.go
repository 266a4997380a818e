package galerkin

import (
	"fmt"
	"math"

	"github.com/notargets/gondg/types"
)

// Material carries the spatial parameters of an element.
type Material struct {
	Epsilon, Mu float64
}

var DefaultMaterial = Material{Epsilon: 1, Mu: 1}

// Impedance is sqrt(mu/epsilon).
func (m Material) Impedance() float64 { return math.Sqrt(m.Mu / m.Epsilon) }

// Speed is the electromagnetic wave speed 1/sqrt(epsilon*mu).
func (m Material) Speed() float64 { return 1 / math.Sqrt(m.Epsilon*m.Mu) }

// MaterialFunc samples the material of one element from its node coordinates,
// y is nil in 1D.
type MaterialFunc func(x, y []float64) Material

// DirichletFunc returns the exterior state at the face nodes at time t, y is
// nil in 1D.
type DirichletFunc func(t float64, x, y []float64) Field

// BoundaryCondition is one of a closed set of kinds: Dirichlet (a function
// of time), free outflow, or a perfect electric conductor mirror.
type BoundaryCondition struct {
	Kind     types.BCFLAG
	Value    DirichletFunc
	Material *Material // exterior material, the interior material when nil
}

func Dirichlet(f DirichletFunc) BoundaryCondition {
	return BoundaryCondition{Kind: types.BC_Dirichlet, Value: f}
}

func Outflow() BoundaryCondition {
	return BoundaryCondition{Kind: types.BC_Out}
}

func PEC() BoundaryCondition {
	return BoundaryCondition{Kind: types.BC_PEC}
}

// NewBoundaryCondition builds a condition from its flag, a Dirichlet
// condition needs a value function.
func NewBoundaryCondition(flag types.BCFLAG, value DirichletFunc) (bc BoundaryCondition, err error) {
	switch flag {
	case types.BC_Dirichlet:
		if value == nil {
			err = fmt.Errorf("dirichlet boundary condition needs a value function")
			return
		}
		bc = Dirichlet(value)
	case types.BC_Out:
		bc = Outflow()
	case types.BC_PEC:
		bc = PEC()
	default:
		err = fmt.Errorf("unsupported boundary condition: %s", flag)
	}
	return
}

func (bc BoundaryCondition) WithMaterial(m Material) BoundaryCondition {
	bc.Material = &m
	return bc
}

func (bc BoundaryCondition) String() string { return bc.Kind.String() }

// Exterior writes the exterior trace for the interior trace minus at time t
// into plus.
func (bc BoundaryCondition) Exterior(t float64, minus Field, x, y []float64, plus Field) {
	switch bc.Kind {
	case types.BC_Dirichlet:
		plus.Set(bc.Value(t, x, y))
	case types.BC_Out:
		plus.Set(minus)
	case types.BC_PEC:
		minus.MirrorInto(plus)
	default:
		panic(fmt.Errorf("boundary face has no boundary condition: %s", bc.Kind))
	}
}

// BoundaryMap selects the condition of a 2D boundary face from its midpoint.
type BoundaryMap func(xMid, yMid float64) BoundaryCondition

// UniformBoundary applies the same condition on every boundary face.
func UniformBoundary(bc BoundaryCondition) BoundaryMap {
	return func(_, _ float64) BoundaryCondition { return bc }
}
