package DG2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gondg/utils"
)

func TestLagrangeElement2D(t *testing.T) {
	{ // First order nodes are the vertices
		el := NewLagrangeElement2D(1)
		assert.Equal(t, 3, el.Np)
		assert.Equal(t, 2, el.Nfp)
		assert.InDeltaSlice(t, []float64{-1, 1, -1}, el.R.DataP, 1.e-12)
		assert.InDeltaSlice(t, []float64{-1, -1, 1}, el.S.DataP, 1.e-12)
		assert.Equal(t, utils.Index{0, 1}, el.FMask[0])
		assert.Equal(t, utils.Index{1, 2}, el.FMask[1])
		assert.Equal(t, utils.Index{0, 2}, el.FMask[2])
	}
	for N := 1; N < 8; N++ {
		el := NewLagrangeElement2D(N)
		require.Equal(t, (N+1)*(N+2)/2, el.R.Len())
		for f := 0; f < 3; f++ {
			assert.Equal(t, N+1, len(el.FMask[f]))
		}
		// V * Vinv = I
		I := el.V.Mul(el.Vinv)
		for i := 0; i < el.Np; i++ {
			for j := 0; j < el.Np; j++ {
				var ident float64
				if i == j {
					ident = 1
				}
				assert.InDelta(t, ident, I.At(i, j), 1.e-9)
			}
		}
		// Derivatives of constant and linear fields
		ones := utils.NewVectorConstant(el.Np, 1).ToMatrix()
		assertAllNear(t, el.Dr.Mul(ones), 0, 1.e-9)
		assertAllNear(t, el.Ds.Mul(ones), 0, 1.e-9)
		assertAllNear(t, el.Dr.Mul(el.R.ToMatrix()), 1, 1.e-9)
		assertAllNear(t, el.Ds.Mul(el.R.ToMatrix()), 0, 1.e-9)
		assertAllNear(t, el.Ds.Mul(el.S.ToMatrix()), 1, 1.e-9)
		// The mass matrix integrates 1 to the reference area
		var area float64
		for _, m := range el.MassMatrix.DataP {
			area += m
		}
		assert.InDelta(t, 2., area, 1.e-9)
		// Lifting a unit face trace integrates to the face length
		assert.True(t, utils.IsFinite(el.LIFT))
		faceLen := [3]float64{2, 2 * math.Sqrt2, 2}
		for f := 0; f < 3; f++ {
			g := utils.NewMatrix(3*el.Nfp, 1)
			for i := 0; i < el.Nfp; i++ {
				g.Set(f*el.Nfp+i, 0, 1)
			}
			lifted := el.MassMatrix.Mul(el.LIFT.Mul(g))
			var sum float64
			for _, v := range lifted.DataP {
				sum += v
			}
			// Nodes on the hypotenuse are parametrized by r, edge length scales by sqrt(2)
			if f == 1 {
				sum *= math.Sqrt2
			}
			assert.InDelta(t, faceLen[f], sum, 1.e-8)
		}
	}
	assert.Panics(t, func() { NewLagrangeElement2D(0) })
}

func TestNodes2D(t *testing.T) {
	for N := 1; N < 10; N++ {
		x, y := Nodes2D(N)
		r, s := XYtoRS(x, y)
		for i := 0; i < r.Len(); i++ {
			// Nodes lie inside or on the reference triangle
			assert.True(t, r.AtVec(i) >= -1-NODETOL)
			assert.True(t, s.AtVec(i) >= -1-NODETOL)
			assert.True(t, r.AtVec(i)+s.AtVec(i) <= NODETOL)
		}
	}
}

func assertAllNear(t *testing.T, A utils.Matrix, val, tol float64) {
	t.Helper()
	for _, v := range A.DataP {
		assert.InDelta(t, val, v, tol)
	}
}
