package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	{ // Chained in place operations
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := A.Copy().Scale(2).AddScalar(1)
		assert.Equal(t, []float64{3, 5, 7, 9}, B.DataP)
		assert.Equal(t, []float64{1, 2, 3, 4}, A.DataP)
		B.Subtract(A).ElMul(A)
		assert.Equal(t, []float64{2, 6, 12, 20}, B.DataP)
		assert.Equal(t, []float64{1, 3, 2, 4}, A.Transpose().DataP)
	}
	{ // Mul and MulVec agree
		A := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		x := NewMatrix(3, 1, []float64{1, 0, -1})
		assert.Equal(t, []float64{-2, -2}, A.Mul(x).DataP)
		assert.Equal(t, []float64{-2, -2}, A.MulVec([]float64{1, 0, -1}))
		assert.Panics(t, func() { A.Mul(A) })
	}
	{ // Inverse
		A := NewMatrix(3, 3, []float64{4, 1, 0, 1, 3, 1, 0, 1, 2})
		Ainv, err := A.Inverse()
		require.NoError(t, err)
		I := A.Mul(Ainv)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if i == j {
					assert.InDelta(t, 1., I.At(i, j), 1.e-12)
				} else {
					assert.InDelta(t, 0., I.At(i, j), 1.e-12)
				}
			}
		}
		S := NewMatrix(2, 2, []float64{1, 2, 2, 4})
		_, err = S.Inverse()
		assert.Error(t, err)
	}
	{ // LUSolve
		A := NewMatrix(2, 2, []float64{2, 0, 0, 4})
		X, err := A.LUSolve(NewMatrix(2, 1, []float64{2, 2}))
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{1, 0.5}, X.DataP, 1.e-14)
	}
	{ // Read only protection
		A := NewMatrix(2, 2)
		A.SetReadOnly("A")
		assert.Panics(t, func() { A.Scale(2) })
	}
	{ // Row and column slicing
		A := NewMatrix(3, 2, []float64{1, 2, 3, 4, 5, 6})
		assert.Equal(t, []float64{5, 6, 1, 2}, A.SliceRows(Index{2, 0}).DataP)
		assert.Equal(t, []float64{2, 4, 6}, A.SliceCols(Index{1}).DataP)
		assert.Equal(t, []float64{2, 4, 6}, A.Col(-1).DataP)
		r, c := A.Find(Greater, 4)
		assert.Equal(t, Index{2, 2}, r)
		assert.Equal(t, Index{0, 1}, c)
	}
}

func TestVector(t *testing.T) {
	v := Linspace(-1, 1, 5)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, v.DataP)
	assert.Equal(t, Index{0, 4}, v.Find(Equal, 1, true))
	O := NewVector(2, []float64{1, 2}).Outer(NewVector(2, []float64{3, 4}))
	assert.Equal(t, []float64{3, 4, 6, 8}, O.DataP)
	assert.Equal(t, 5., NewVector(2, []float64{1, 2}).Dot(NewVector(2, []float64{1, 2})))
	assert.True(t, IsFinite(v))
	v.DataP[2] = 1. / v.DataP[2]
	assert.False(t, IsFinite(v))
	assert.True(t, NearlyEqual(1, 1+1.e-10))
}
