package DG1D

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/gondg/utils"
)

// Elements1D holds the reference operators, node coordinates and
// connectivity of a 1D mesh of K intervals. Node data is stored [Np, K].
type Elements1D struct {
	K, N, Np, Nfp, NFaces int
	R, VX                 utils.Vector
	EToV                  utils.Matrix
	EToE, EToF            [][2]int
	X, Dr, Rx, J          utils.Matrix
	FScale, NX, LIFT      utils.Matrix
	V, Vinv               utils.Matrix
	FMask                 utils.Index
}

// SimpleMesh1D returns K equal intervals on [xmin, xmax] with vertex
// coordinates VX and element to vertex connectivity EToV [K, 2].
func SimpleMesh1D(xmin, xmax float64, K int) (VX utils.Vector, EToV utils.Matrix) {
	VX = utils.Linspace(xmin, xmax, K+1)
	EToV = utils.NewMatrix(K, 2)
	for k := 0; k < K; k++ {
		EToV.Set(k, 0, float64(k))
		EToV.Set(k, 1, float64(k+1))
	}
	return
}

func NewElements1D(N int, VX utils.Vector, EToV utils.Matrix) (el *Elements1D) {
	el = newElements1D(N, VX, EToV)
	el.Startup1D()
	return
}

// NewElements1DWithOperators maps the nodes R onto the mesh using reference
// operators built elsewhere, Dr and LIFT are shared and not modified.
func NewElements1DWithOperators(R utils.Vector, Dr, LIFT utils.Matrix,
	VX utils.Vector, EToV utils.Matrix) (el *Elements1D) {
	el = newElements1D(R.Len()-1, VX, EToV)
	el.R, el.Dr, el.LIFT = R, Dr, LIFT
	el.mapElements()
	return
}

func newElements1D(N int, VX utils.Vector, EToV utils.Matrix) *Elements1D {
	K, _ := EToV.Dims()
	return &Elements1D{
		K:      K,
		N:      N,
		Np:     N + 1,
		Nfp:    1,
		NFaces: 2,
		VX:     VX,
		EToV:   EToV,
	}
}

func (el *Elements1D) Startup1D() {
	var (
		err error
		N   = el.N
	)
	el.R = GaussLobattoPoints(N)
	el.V = Vandermonde1D(N, el.R)
	if el.Vinv, err = el.V.Inverse(); err != nil {
		panic(fmt.Errorf("non-invertible Vandermonde matrix: %v", err))
	}
	Vr := GradVandermonde1D(el.R, N)
	el.Dr = Vr.Mul(el.Vinv)
	el.LIFT = Lift1D(el.V, el.Np, el.NFaces, el.Nfp)
	el.mapElements()
}

// mapElements places the nodes on every interval and derives the geometric
// factors and connectivity.
func (el *Elements1D) mapElements() {
	el.NX = Normals1D(el.NFaces, el.Nfp, el.K)

	// x = ones(Np)*VX(va) + 0.5*(r+1.)*sT(vc);
	el.X = utils.NewMatrix(el.Np, el.K)
	for k := 0; k < el.K; k++ {
		va, vb := int(el.EToV.At(k, 0)), int(el.EToV.At(k, 1))
		xa, xb := el.VX.AtVec(va), el.VX.AtVec(vb)
		for i, r := range el.R.DataP {
			el.X.Set(i, k, xa+0.5*(r+1.)*(xb-xa))
		}
	}
	el.J, el.Rx = GeometricFactors1D(el.Dr, el.X)
	if el.J.Min() <= 0 {
		panic(fmt.Errorf("singular or inverted element Jacobian, min J = %v", el.J.Min()))
	}

	fmask1 := el.R.Copy().AddScalar(1).Find(utils.Less, utils.NODETOL, true)
	fmask2 := el.R.Copy().AddScalar(-1).Find(utils.Less, utils.NODETOL, true)
	el.FMask = append(fmask1, fmask2...)
	el.FScale = el.J.SliceRows(el.FMask).POW(-1)
	el.EToE, el.EToF = Connect1D(el.EToV)
}

// Connect1D finds the neighbor element and face across each face through the
// sparse face to face product FToV * FToVᵀ. Faces without a neighbor connect
// to themselves.
func Connect1D(EToV utils.Matrix) (EToE, EToF [][2]int) {
	var (
		NFaces     = 2
		K, _       = EToV.Dims()
		TotalFaces = NFaces * K
		Nv         int
	)
	for _, v := range EToV.DataP {
		if int(v)+1 > Nv {
			Nv = int(v) + 1
		}
	}
	SpFToVTmp := sparse.NewDOK(TotalFaces, Nv)
	var sk int
	for k := 0; k < K; k++ {
		for face := 0; face < NFaces; face++ {
			SpFToVTmp.Set(sk, int(EToV.At(k, face)), 1)
			sk++
		}
	}
	SpFToV := SpFToVTmp.ToCSR()
	SpFToF := sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	SpFToF.Mul(SpFToV, SpFToV.T())

	EToE = make([][2]int, K)
	EToF = make([][2]int, K)
	for k := 0; k < K; k++ {
		EToE[k] = [2]int{k, k}
		EToF[k] = [2]int{0, 1}
	}
	SpFToF.DoNonZero(func(i, j int, v float64) {
		if i == j || v != 1 {
			return
		}
		k1, f1 := i/NFaces, i%NFaces
		k2, f2 := j/NFaces, j%NFaces
		EToE[k1][f1] = k2
		EToF[k1][f1] = f2
	})
	return
}
