package galerkin

import (
	"fmt"

	"github.com/notargets/gondg/DG1D"
	"github.com/notargets/gondg/DG2D"
	"github.com/notargets/gondg/utils"
)

// ReferenceElement is the canonical element of order N, the interval
// [-1,1] in 1D or the triangle (-1,-1), (1,-1), (-1,1) in 2D.
type ReferenceElement struct {
	Dim                int
	N, Np, Nfp, NFaces int
	R, S               utils.Vector
	FaceNodes          []utils.Index
	tri                *DG2D.LagrangeElement2D
}

// Legendre1D places the N+1 Legendre-Gauss-Lobatto nodes on [-1,1].
func Legendre1D(N int) (ref *ReferenceElement) {
	if N < 1 {
		panic(fmt.Errorf("polynomial order must be >= 1, have %d", N))
	}
	ref = &ReferenceElement{
		Dim:    1,
		N:      N,
		Np:     N + 1,
		Nfp:    1,
		NFaces: 2,
		R:      DG1D.GaussLobattoPoints(N),
	}
	ref.FaceNodes = []utils.Index{{0}, {N}}
	return
}

// Legendre2D places the warp and blend nodes on the reference triangle.
func Legendre2D(N int) (ref *ReferenceElement) {
	el := DG2D.NewLagrangeElement2D(N)
	ref = &ReferenceElement{
		Dim:       2,
		N:         N,
		Np:        el.Np,
		Nfp:       el.Nfp,
		NFaces:    el.NFaces,
		R:         el.R,
		S:         el.S,
		FaceNodes: []utils.Index{el.FMask[0], el.FMask[1], el.FMask[2]},
		tri:       el,
	}
	return
}

// Operators are derived once per reference element and shared read only.
type Operators struct {
	V, Vinv    utils.Matrix
	Dr, Ds     utils.Matrix
	LIFT       utils.Matrix // Np x NFaces*Nfp
	MassMatrix utils.Matrix
}

func AssembleOperators(ref *ReferenceElement) (ops *Operators) {
	var (
		err error
	)
	ops = &Operators{}
	switch ref.Dim {
	case 1:
		ops.V = DG1D.Vandermonde1D(ref.N, ref.R)
		if ops.Vinv, err = ops.V.Inverse(); err != nil {
			panic(fmt.Errorf("non-invertible Vandermonde matrix: %v", err))
		}
		ops.Dr = DG1D.GradVandermonde1D(ref.R, ref.N).Mul(ops.Vinv)
		ops.LIFT = DG1D.Lift1D(ops.V, ref.Np, ref.NFaces, ref.Nfp)
		ops.MassMatrix = ops.Vinv.Transpose().Mul(ops.Vinv)
	case 2:
		el := ref.tri
		ops.V, ops.Vinv = el.V, el.Vinv
		ops.Dr, ops.Ds = el.Dr, el.Ds
		ops.LIFT = el.LIFT
		ops.MassMatrix = el.MassMatrix
	default:
		panic(fmt.Errorf("reference element dimension must be 1 or 2, have %d", ref.Dim))
	}
	ops.V.SetReadOnly("V")
	ops.Vinv.SetReadOnly("Vinv")
	ops.Dr.SetReadOnly("Dr")
	ops.LIFT.SetReadOnly("LIFT")
	ops.MassMatrix.SetReadOnly("MassMatrix")
	return
}

// Dx returns du/dx = rx * Dr*u on a 1D element.
func (ops *Operators) Dx(el *Element, u []float64) (ux []float64) {
	ux = ops.Dr.MulVec(u)
	for i := range ux {
		ux[i] *= el.Rx[i]
	}
	return
}

// Grad2D returns the physical gradient of u on a triangle.
func (ops *Operators) Grad2D(el *Element, u []float64) (ux, uy []float64) {
	ur, us := ops.Dr.MulVec(u), ops.Ds.MulVec(u)
	ux, uy = make([]float64, len(u)), make([]float64, len(u))
	for i := range u {
		ux[i] = el.Rx[i]*ur[i] + el.Sx[i]*us[i]
		uy[i] = el.Ry[i]*ur[i] + el.Sy[i]*us[i]
	}
	return
}

// Curl2D returns the z component of the curl of the in-plane vector (ux, uy).
func (ops *Operators) Curl2D(el *Element, ux, uy []float64) (curlz []float64) {
	_, uxy := ops.Grad2D(el, ux)
	uyx, _ := ops.Grad2D(el, uy)
	curlz = uyx
	for i := range curlz {
		curlz[i] -= uxy[i]
	}
	return
}
