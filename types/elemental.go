package types

import (
	"fmt"
	"math"
)

// EdgeKey identifies the edge between two mesh vertices independent of the
// direction it is traversed, the smaller vertex index is in the low 32 bits.
type EdgeKey uint64

func NewEdgeKey(verts [2]int) EdgeKey {
	lo, hi := verts[0], verts[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || hi > math.MaxUint32 {
		panic(fmt.Errorf("edge vertices %d and %d do not fit in 32 bits", verts[0], verts[1]))
	}
	return EdgeKey(uint64(hi)<<32 | uint64(lo))
}

// Vertices returns the two vertex indices in ascending order.
func (ek EdgeKey) Vertices() (verts [2]int) {
	verts[0] = int(ek & math.MaxUint32)
	verts[1] = int(ek >> 32)
	return
}

func (ek EdgeKey) String() string {
	v := ek.Vertices()
	return fmt.Sprintf("[%d,%d]", v[0], v[1])
}
