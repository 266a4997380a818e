package DG2D

import (
	"fmt"

	"github.com/notargets/gondg/DG1D"
	"github.com/notargets/gondg/utils"
)

const NODETOL = 1.e-6

// LagrangeElement2D is the nodal reference triangle of order N with vertices
// (-1,-1), (1,-1), (-1,1). Face 0 is s = -1, face 1 is r + s = 0, face 2 is
// r = -1.
type LagrangeElement2D struct {
	N, Nfp, Np, NFaces int
	R, S               utils.Vector
	V, Vinv            utils.Matrix
	Dr, Ds             utils.Matrix
	LIFT               utils.Matrix // Np x NFaces*Nfp
	MassMatrix         utils.Matrix
	FMask              [3]utils.Index
}

func NewLagrangeElement2D(N int) (el *LagrangeElement2D) {
	var (
		err error
	)
	if N < 1 {
		panic(fmt.Errorf("polynomial order must be >= 1, have %d", N))
	}
	el = &LagrangeElement2D{
		N:      N,
		Nfp:    N + 1,
		Np:     (N + 1) * (N + 2) / 2,
		NFaces: 3,
	}
	el.R, el.S = XYtoRS(Nodes2D(N))
	el.V = Vandermonde2D(N, el.R, el.S)
	if el.Vinv, err = el.V.Inverse(); err != nil {
		panic(fmt.Errorf("non-invertible Vandermonde matrix: %v", err))
	}
	el.MassMatrix = el.Vinv.Transpose().Mul(el.Vinv)
	Vr, Vs := GradVandermonde2D(N, el.R, el.S)
	el.Dr, el.Ds = Vr.Mul(el.Vinv), Vs.Mul(el.Vinv)

	el.FMask[0] = el.S.Copy().AddScalar(1).Find(utils.Less, NODETOL, true)
	el.FMask[1] = el.S.Copy().Add(el.R).Find(utils.Less, NODETOL, true)
	el.FMask[2] = el.R.Copy().AddScalar(1).Find(utils.Less, NODETOL, true)
	for f, fm := range el.FMask {
		if len(fm) != el.Nfp {
			panic(fmt.Errorf("face %d has %d nodes, expected %d", f, len(fm), el.Nfp))
		}
	}
	el.LIFT = el.Lift2D()

	el.V.SetReadOnly("V")
	el.Vinv.SetReadOnly("Vinv")
	el.Dr.SetReadOnly("Dr")
	el.Ds.SetReadOnly("Ds")
	el.LIFT.SetReadOnly("LIFT")
	return
}

// FMaskAll returns the face node indices of all three faces in face order.
func (el *LagrangeElement2D) FMaskAll() (fm utils.Index) {
	fm = make(utils.Index, 0, el.NFaces*el.Nfp)
	for _, f := range el.FMask {
		fm = append(fm, f...)
	}
	return
}

// Lift2D computes the surface to volume lift, each face uses the inverse of
// its 1D edge mass matrix.
func (el *LagrangeElement2D) Lift2D() (LIFT utils.Matrix) {
	var (
		err  error
		Emat = utils.NewMatrix(el.Np, el.NFaces*el.Nfp)
	)
	for f, fm := range el.FMask {
		var faceR utils.Vector
		switch f {
		case 0, 1:
			faceR = el.R.Subset(fm)
		case 2:
			faceR = el.S.Subset(fm)
		}
		V1D := DG1D.Vandermonde1D(el.N, faceR)
		var massEdge utils.Matrix
		if massEdge, err = V1D.Mul(V1D.Transpose()).Inverse(); err != nil {
			panic(fmt.Errorf("singular edge mass matrix on face %d: %v", f, err))
		}
		for i, row := range fm {
			for j := 0; j < el.Nfp; j++ {
				Emat.Set(row, f*el.Nfp+j, massEdge.At(i, j))
			}
		}
	}
	LIFT = el.V.Mul(el.V.Transpose().Mul(Emat))
	return
}

// Grad2D returns the reference derivatives Dr*U and Ds*U for U [Np, K].
func (el *LagrangeElement2D) Grad2D(U utils.Matrix) (Ur, Us utils.Matrix) {
	Ur, Us = el.Dr.Mul(U), el.Ds.Mul(U)
	return
}
