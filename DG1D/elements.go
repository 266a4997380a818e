package DG1D

import (
	"math"

	"github.com/notargets/gondg/utils"
	"gonum.org/v1/gonum/mat"
)

// JacobiGL returns the Gauss-Lobatto quadrature points for the Jacobi
// polynomial with parameters alpha, beta and order N.
func JacobiGL(alpha, beta float64, N int) (X utils.Vector) {
	var (
		x = make([]float64, N+1)
	)
	x[0], x[N] = -1, 1
	if N == 1 {
		X = utils.NewVector(N+1, x)
		return
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	copy(x[1:N], xint.DataP)
	X = utils.NewVector(N+1, x)
	return
}

// JacobiGQ returns the Gauss quadrature points and weights for the Jacobi
// polynomial with parameters alpha, beta and order N, using the eigenvalues
// of the symmetric tridiagonal recurrence matrix.
func JacobiGQ(alpha, beta float64, N int) (X, W utils.Vector) {
	var (
		x, w       []float64
		fac        float64
		h1, d0, d1 []float64
		VVr        *mat.Dense
	)
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{2.}
		return utils.NewVector(len(x), x), utils.NewVector(len(w), w)
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: diag(-1/2*(alpha^2-beta^2)./(h1+2)./h1)
	d0 = make([]float64, N+1)
	fac = -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// Handle division by zero
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0.
	}

	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(utils.NewSymTriDiagonal(d0, d1), true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)
	X = utils.NewVector(N+1, x)

	VVr = mat.NewDense(len(x), len(x), nil)
	eig.VectorsTo(VVr)
	W = utils.NewVector(len(x), VVr.RawRowView(0)).POW(2).Scale(gamma0(alpha, beta))
	return X, W
}

// GradLegendreRoots returns the n-1 zeros of the derivative of the
// degree n Legendre polynomial in increasing order.
func GradLegendreRoots(n int) (R utils.Vector) {
	var (
		nr = n - 1
	)
	if nr < 1 {
		return utils.NewVector(0)
	}
	var (
		diag    = make([]float64, nr)
		subdiag = make([]float64, nr-1)
	)
	for i := 2; i <= nr; i++ {
		fi := float64(i)
		num := (fi + 1.) / fi
		denom := (2.*fi - 1.) / (fi - 1.) * (2.*fi + 1.) / fi
		subdiag[i-2] = math.Sqrt(num / denom)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(utils.NewSymTriDiagonal(diag, subdiag), false); !ok {
		panic("eigenvalue decomposition failed")
	}
	R = utils.NewVector(nr, eig.Values(nil))
	return
}

// GaussLobattoPoints returns the n+1 Legendre-Gauss-Lobatto points on [-1,1].
func GaussLobattoPoints(n int) (R utils.Vector) {
	var (
		x = make([]float64, 0, n+1)
	)
	x = append(x, -1)
	x = append(x, GradLegendreRoots(n).DataP...)
	x = append(x, 1)
	return utils.NewVector(len(x), x)
}

func Vandermonde1D(N int, R utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, JacobiP(R, 0, 0, j))
	}
	return
}

// JacobiP evaluates the normalized Jacobi polynomial of order N at r.
func JacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = r.Len()
		x  = r.DataP
		pl = make([][]float64, N+1)
	)
	pl[0] = utils.ConstArray(Nc, 1./math.Sqrt(gamma0(alpha, beta)))
	if N == 0 {
		return pl[0]
	}
	ab := alpha + beta
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	pl[1] = make([]float64, Nc)
	for i, xi := range x {
		pl[1][i] = rg1 * ((ab+2.0)*xi/2.0 + (alpha-beta)/2.0)
	}
	if N == 1 {
		return pl[1]
	}

	a1 := alpha + 1.
	b1 := beta + 1.
	ab1 := ab + 1.
	aold := 2.0 * math.Sqrt(a1*b1/(ab+3.0)) / (ab + 2.0)
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		ip2 := ip1 + 1
		h1 := 2.0*ip1 + ab
		anew := 2.0 / (h1 + 2.0) * math.Sqrt(ip2*(ip1+ab1)*(ip1+a1)*(ip1+b1)/(h1+1.0)/(h1+3.0))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		pl[i+2] = make([]float64, Nc)
		for j, xj := range x {
			pl[i+2][j] = (-aold*pl[i][j] + (xj-bnew)*pl[i+1][j]) / anew
		}
		aold = anew
	}
	p = pl[N]
	return
}

func GradJacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		p = make([]float64, r.Len())
		return
	}
	p = JacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i, val := range p {
		p[i] = val * fac
	}
	return
}

func GradVandermonde1D(r utils.Vector, N int) (Vr utils.Matrix) {
	Vr = utils.NewMatrix(r.Len(), N+1)
	for i := 0; i < N+1; i++ {
		Vr.SetCol(i, GradJacobiP(r, 0, 0, i))
	}
	return
}

func Lift1D(V utils.Matrix, Np, Nfaces, Nfp int) (LIFT utils.Matrix) {
	Emat := utils.NewMatrix(Np, Nfaces*Nfp)
	Emat.Set(0, 0, 1)
	Emat.Set(Np-1, 1, 1)
	LIFT = V.Mul(V.Transpose()).Mul(Emat)
	return
}

// Normals1D returns the outward normals [Nfaces*Nfp, K], -1 on the left face
// and +1 on the right.
func Normals1D(Nfaces, Nfp, K int) (NX utils.Matrix) {
	NX = utils.NewMatrix(Nfp*Nfaces, K)
	for k := 0; k < K; k++ {
		NX.Set(0, k, -1)
		NX.Set(Nfp*Nfaces-1, k, 1)
	}
	return
}

func GeometricFactors1D(Dr, X utils.Matrix) (J, Rx utils.Matrix) {
	J = Dr.Mul(X)
	Rx = J.Copy().POW(-1)
	return
}
