package utils

import (
	"math"
)

// IsFinite reports false on the first NaN or Inf in A.
func IsFinite(A any) bool {
	switch v := A.(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	case [][]float64:
		for _, f := range v {
			if !IsFinite(f) {
				return false
			}
		}
	case Matrix:
		return IsFinite(v.DataP)
	case Vector:
		return IsFinite(v.DataP)
	}
	return true
}
