package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gondg/utils"
)

func TestElements1D(t *testing.T) {
	{
		K := 4
		N := 3
		VX, EToV := SimpleMesh1D(0, 2, K)
		el := NewElements1D(N, VX, EToV)
		assert.True(t, near(el.X.At(0, 1), 0.5))
		assert.True(t, near(el.X.At(3, 1), 1.0))
		assert.True(t, near(el.X.At(3, 2), 1.5))
		assert.True(t, near(el.X.At(2, 3), 1.8618033988))
		assert.True(t, near(el.X.At(1, 1), 0.6381966011))

		assert.True(t, near(el.LIFT.At(0, 0), 8))
		assert.True(t, near(el.LIFT.At(2, 0), 0.8944271909))
		assert.True(t, near(el.LIFT.At(2, 1), -0.8944271909))
		assert.True(t, near(el.LIFT.At(1, 0), -0.8944271909))
		assert.True(t, near(el.LIFT.At(1, 1), 0.8944271909))
		assert.Equal(t, utils.Index{0, 3}, el.FMask)
		for k := 0; k < K; k++ {
			assert.InDelta(t, 4., el.Rx.At(0, k), 1.e-12)
			assert.InDelta(t, 4., el.FScale.At(1, k), 1.e-12)
		}
	}
	{ // Shared reference operators give the same geometry
		VX, EToV := SimpleMesh1D(-1, 3, 5)
		ref := NewElements1D(4, VX, EToV)
		el := NewElements1DWithOperators(ref.R, ref.Dr, ref.LIFT, VX, EToV)
		assert.Equal(t, 5, el.K)
		assert.Equal(t, 5, el.Np)
		assert.Equal(t, ref.X.DataP, el.X.DataP)
		assert.Equal(t, ref.J.DataP, el.J.DataP)
		assert.Equal(t, ref.FScale.DataP, el.FScale.DataP)
		assert.Equal(t, ref.NX.DataP, el.NX.DataP)
		assert.Equal(t, ref.EToE, el.EToE)
		assert.Nil(t, el.V.M)
		// Reversed vertices invert the map
		EToV.Set(2, 0, 3)
		EToV.Set(2, 1, 2)
		assert.Panics(t, func() { NewElements1DWithOperators(ref.R, ref.Dr, ref.LIFT, VX, EToV) })
	}
	{ // Connectivity, end faces point back at themselves
		VX, EToV := SimpleMesh1D(-1, 1, 5)
		EToE, EToF := Connect1D(EToV)
		assert.Equal(t, [2]int{0, 1}, EToE[0])
		assert.Equal(t, [2]int{0, 0}, EToF[0])
		assert.Equal(t, [2]int{1, 0}, EToF[2])
		assert.Equal(t, [2]int{1, 3}, EToE[2])
		assert.Equal(t, [2]int{3, 4}, EToE[4])
		assert.Equal(t, [2]int{1, 1}, EToF[4])
		assert.Equal(t, 6, VX.Len())
	}
}

func TestGaussLobatto(t *testing.T) {
	for n := 1; n < 16; n++ {
		R := GaussLobattoPoints(n)
		require.Equal(t, n+1, R.Len())
		assert.Equal(t, -1., R.AtVec(0))
		assert.Equal(t, 1., R.AtVec(n))
		for i := 1; i < n+1; i++ {
			assert.True(t, R.AtVec(i) > R.AtVec(i-1))
		}
		// Agrees with the Jacobi-Gauss based construction
		assert.InDeltaSlice(t, JacobiGL(0, 0, n).DataP, R.DataP, 1.e-12)
	}
	{ // Zeros of P5'
		lPrime5 := func(x float64) float64 {
			return (5.*math.Pow(x, 4)*63. - 3.*x*x*70. + 15.) / 8.
		}
		roots := GradLegendreRoots(5)
		assert.Equal(t, 4, roots.Len())
		for _, x := range roots.DataP {
			assert.InDelta(t, 0, lPrime5(x), 1.e-10)
		}
	}
}

func TestVandermonde1D(t *testing.T) {
	for N := 1; N < 12; N++ {
		R := GaussLobattoPoints(N)
		V := Vandermonde1D(N, R)
		Vinv, err := V.Inverse()
		require.NoError(t, err)
		I := V.Mul(Vinv)
		for i := 0; i < N+1; i++ {
			for j := 0; j < N+1; j++ {
				var want float64
				if i == j {
					want = 1
				}
				assert.InDelta(t, want, I.At(i, j), 1.e-10)
			}
		}
		Dr := GradVandermonde1D(R, N).Mul(Vinv)
		dConst := Dr.MulVec(utils.ConstArray(N+1, 1))
		for _, val := range dConst {
			assert.InDelta(t, 0, val, 1.e-10)
		}
		// Exact derivative of r^N
		uN := R.Copy().POW(N)
		du := Dr.MulVec(uN.DataP)
		for i, r := range R.DataP {
			assert.InDelta(t, float64(N)*utils.POW(r, N-1), du[i], 1.e-8)
		}
	}
	{ // Duplicate nodes can not be inverted
		R := utils.NewVector(3, []float64{-1, 0, 0})
		_, err := Vandermonde1D(2, R).Inverse()
		assert.Error(t, err)
	}
}

func TestJacobiGQ(t *testing.T) {
	const (
		α = 0.3
		β = 0.7
		N = 5
	)
	X, W := JacobiGQ(α, β, N)
	require.Equal(t, N+1, X.Len())
	// Nodes are zeros of P_{N+1}
	for _, xi := range X.DataP {
		p := JacobiP(utils.NewVector(1, []float64{xi}), α, β, N+1)[0]
		assert.InDelta(t, 0, p, 1.e-10)
	}
	// Exact through degree 2N+1 against the Beta function moments
	for k := 0; k <= 2*N+1; k++ {
		var s float64
		for i, xi := range X.DataP {
			s += W.AtVec(i) * math.Pow(xi, float64(k))
		}
		assert.InDelta(t, exactMoment(k, α, β), s, 1.e-10)
	}
	// The Jacobi polynomials are orthonormal under the rule
	Q, WQ := JacobiGQ(α, β, 10)
	for m := 0; m < 6; m++ {
		pm := JacobiP(Q, α, β, m)
		for n := 0; n < 6; n++ {
			pn := JacobiP(Q, α, β, n)
			var s float64
			for i := range pm {
				s += WQ.AtVec(i) * pm[i] * pn[i]
			}
			if m == n {
				assert.InDelta(t, 1, s, 1.e-10)
			} else {
				assert.InDelta(t, 0, s, 1.e-10)
			}
		}
	}
}

// exactMoment integrates x^k (1-x)^α (1+x)^β on [-1,1]
func exactMoment(k int, α, β float64) (result float64) {
	beta := func(a, b float64) float64 {
		return math.Gamma(a) * math.Gamma(b) / math.Gamma(a+b)
	}
	choose := func(n, k int) float64 {
		r := 1.
		for i := 0; i < k; i++ {
			r = r * float64(n-i) / float64(i+1)
		}
		return r
	}
	for j := 0; j <= k; j++ {
		coeff := choose(k, j) * math.Pow(2, float64(j)) * math.Pow(-1, float64(k-j))
		result += coeff * beta(float64(j)+β+1, α+1)
	}
	result *= math.Pow(2, α+β+1)
	return
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(a) {
		l = true
	}
	return
}
