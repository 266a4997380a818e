package galerkin

import (
	"fmt"
	"math"

	"github.com/notargets/gondg/utils"
)

// FieldKind selects the unknowns carried at every node.
type FieldKind uint8

const (
	ScalarField FieldKind = iota // u
	EHField1D                    // E, H
	EHField2D                    // Hx, Hy, Ez (transverse magnetic)
)

// Component indices into Field.C
const (
	CompU = 0

	CompE = 0
	CompH = 1

	CompHx = 0
	CompHy = 1
	CompEz = 2
)

func (fk FieldKind) NumComponents() int {
	switch fk {
	case ScalarField:
		return 1
	case EHField1D:
		return 2
	case EHField2D:
		return 3
	}
	panic(fmt.Errorf("unknown field kind %d", fk))
}

func (fk FieldKind) String() string {
	switch fk {
	case ScalarField:
		return "Scalar"
	case EHField1D:
		return "EH1D"
	case EHField2D:
		return "EH2D"
	}
	return fmt.Sprintf("FieldKind(%d)", uint8(fk))
}

// ComponentNames labels each component for plots and logs.
func (fk FieldKind) ComponentNames() []string {
	switch fk {
	case ScalarField:
		return []string{"U"}
	case EHField1D:
		return []string{"E", "H"}
	case EHField2D:
		return []string{"Hx", "Hy", "Ez"}
	}
	return nil
}

// Field holds the nodal values of every component over a fixed node layout,
// C[component][node]. Methods that change the receiver return it for
// chaining.
type Field struct {
	Kind FieldKind
	C    [][]float64
}

func NewField(kind FieldKind, n int) (f Field) {
	f = Field{
		Kind: kind,
		C:    make([][]float64, kind.NumComponents()),
	}
	for i := range f.C {
		f.C[i] = make([]float64, n)
	}
	return
}

// NewScalarField wraps the values without copying.
func NewScalarField(u []float64) Field {
	return Field{Kind: ScalarField, C: [][]float64{u}}
}

func NewEHField1D(E, H []float64) Field {
	return Field{Kind: EHField1D, C: [][]float64{E, H}}
}

func NewEHField2D(Hx, Hy, Ez []float64) Field {
	return Field{Kind: EHField2D, C: [][]float64{Hx, Hy, Ez}}
}

func (f Field) Len() int {
	if len(f.C) == 0 {
		return 0
	}
	return len(f.C[0])
}

func (f Field) Copy() (R Field) { // Does not change receiver
	R = NewField(f.Kind, f.Len())
	for i, c := range f.C {
		copy(R.C[i], c)
	}
	return
}

func (f Field) Zero() Field { // Changes receiver
	for _, c := range f.C {
		for i := range c {
			c[i] = 0
		}
	}
	return f
}

// Set copies the values of g into the receiver.
func (f Field) Set(g Field) Field { // Changes receiver
	f.checkShape(g)
	for i, c := range g.C {
		copy(f.C[i], c)
	}
	return f
}

func (f Field) Add(g Field) Field { // Changes receiver
	return f.AXPY(1, g)
}

// AXPY computes f += a*g.
func (f Field) AXPY(a float64, g Field) Field { // Changes receiver
	f.checkShape(g)
	for i, c := range f.C {
		gc := g.C[i]
		for j := range c {
			c[j] += a * gc[j]
		}
	}
	return f
}

func (f Field) Scale(a float64) Field { // Changes receiver
	for _, c := range f.C {
		for i := range c {
			c[i] *= a
		}
	}
	return f
}

func (f Field) Negate() Field { // Changes receiver
	return f.Scale(-1)
}

// Restrict returns the values at the node indices in idx.
func (f Field) Restrict(idx utils.Index) (R Field) { // Does not change receiver
	R = NewField(f.Kind, len(idx))
	f.RestrictInto(idx, R)
	return
}

// RestrictInto writes the values at the node indices in idx into dst.
func (f Field) RestrictInto(idx utils.Index, dst Field) {
	if dst.Kind != f.Kind || dst.Len() != len(idx) {
		panic(fmt.Errorf("restriction target is %s[%d], need %s[%d]", dst.Kind, dst.Len(), f.Kind, len(idx)))
	}
	for i, c := range f.C {
		dc := dst.C[i]
		for j, ind := range idx {
			dc[j] = c[ind]
		}
	}
}

func (f Field) First() Field { return f.Restrict(utils.Index{0}) }
func (f Field) Last() Field  { return f.Restrict(utils.Index{f.Len() - 1}) }

// MirrorInto writes the perfect electric conductor ghost state of f into
// dst: electric components change sign, magnetic components are copied. A
// scalar is reflected with opposite sign.
func (f Field) MirrorInto(dst Field) {
	dst.Set(f)
	switch f.Kind {
	case ScalarField:
		dst.Negate()
	case EHField1D:
		negate(dst.C[CompE])
	case EHField2D:
		negate(dst.C[CompEz])
	}
}

func (f Field) IsFinite() bool {
	for _, c := range f.C {
		if !utils.IsFinite(c) {
			return false
		}
	}
	return true
}

func (f Field) MaxAbs() (m float64) {
	for _, c := range f.C {
		for _, v := range c {
			m = math.Max(m, math.Abs(v))
		}
	}
	return
}

func (f Field) checkShape(g Field) {
	if f.Kind != g.Kind || f.Len() != g.Len() {
		panic(fmt.Errorf("field mismatch: %s[%d] and %s[%d]", f.Kind, f.Len(), g.Kind, g.Len()))
	}
}

func negate(x []float64) {
	for i := range x {
		x[i] = -x[i]
	}
}
