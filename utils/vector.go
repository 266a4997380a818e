package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V     *mat.VecDense
	DataP []float64
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if n == 0 {
		return Vector{V: &mat.VecDense{}}
	}
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{
		V:     v,
		DataP: v.RawVector().Data,
	}
	return
}

func NewVectorConstant(n int, val float64) Vector {
	return NewVector(n, ConstArray(n, val))
}

// Linspace returns n points evenly spaced on [a, b] inclusive.
func Linspace(a, b float64, n int) Vector {
	var (
		x = make([]float64, n)
	)
	if n == 1 {
		x[0] = a
		return NewVector(n, x)
	}
	h := (b - a) / float64(n-1)
	for i := range x {
		x[i] = a + float64(i)*h
	}
	x[n-1] = b
	return NewVector(n, x)
}

func (v Vector) Len() int                 { return v.V.Len() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }

func (v Vector) Copy() (R Vector) { // Does not change receiver
	data := make([]float64, v.Len())
	copy(data, v.DataP)
	return NewVector(v.Len(), data)
}

func (v Vector) Set(val float64) Vector { // Changes receiver
	for i := range v.DataP {
		v.DataP[i] = val
	}
	return v
}

func (v Vector) Add(A Vector) Vector { // Changes receiver
	for i, val := range A.DataP {
		v.DataP[i] += val
	}
	return v
}

func (v Vector) Subtract(A Vector) Vector { // Changes receiver
	for i, val := range A.DataP {
		v.DataP[i] -= val
	}
	return v
}

func (v Vector) AddScalar(a float64) Vector { // Changes receiver
	for i := range v.DataP {
		v.DataP[i] += a
	}
	return v
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	for i := range v.DataP {
		v.DataP[i] *= a
	}
	return v
}

func (v Vector) ElMul(A Vector) Vector { // Changes receiver
	for i, val := range A.DataP {
		v.DataP[i] *= val
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector { // Changes receiver
	for i, val := range v.DataP {
		v.DataP[i] = f(val)
	}
	return v
}

func (v Vector) POW(p int) Vector { // Changes receiver
	for i, val := range v.DataP {
		v.DataP[i] = POW(val, p)
	}
	return v
}

func (v Vector) Subset(I Index) Vector { // Does not change receiver
	data := make([]float64, len(I))
	for i, ind := range I {
		data[i] = v.DataP[ind]
	}
	return NewVector(len(I), data)
}

func (v Vector) Find(op EvalOp, target float64, abs bool) (I Index) {
	for i, val := range v.DataP {
		if abs {
			val = math.Abs(val)
		}
		if compare(op, val, target) {
			I = append(I, i)
		}
	}
	return
}

// Outer returns v * Bᵀ.
func (v Vector) Outer(B Vector) (R Matrix) {
	var (
		nr, nc = v.Len(), B.Len()
	)
	R = NewMatrix(nr, nc)
	for i, a := range v.DataP {
		for j, b := range B.DataP {
			R.DataP[i*nc+j] = a * b
		}
	}
	return
}

// ToMatrix returns the vector as a column matrix sharing no storage.
func (v Vector) ToMatrix() Matrix {
	return NewMatrix(v.Len(), 1, v.Copy().DataP)
}

func (v Vector) Min() (min float64) {
	min = v.DataP[0]
	for _, val := range v.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	max = v.DataP[0]
	for _, val := range v.DataP {
		if val > max {
			max = val
		}
	}
	return
}

func (v Vector) Dot(A Vector) float64 {
	return mat.Dot(v.V, A.V)
}
