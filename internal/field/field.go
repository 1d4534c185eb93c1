package field

import (
	"fmt"
	"math"
)

// VectorField holds one component slice per grid dimension, each of
// length grid.Len().
type VectorField struct {
	Grid *Grid
	C    [][]float64
}

func NewVectorField(g *Grid) *VectorField {
	c := make([][]float64, g.Dim())
	for i := range c {
		c[i] = make([]float64, g.Len())
	}
	return &VectorField{Grid: g, C: c}
}

// At returns the vector at point idx.
func (f *VectorField) At(idx int) []float64 {
	v := make([]float64, len(f.C))
	for c := range f.C {
		v[c] = f.C[c][idx]
	}
	return v
}

// AddInPlace accumulates other into f. Both must share a grid.
func (f *VectorField) AddInPlace(other *VectorField) error {
	if other.Grid != f.Grid {
		return ErrGridMismatch
	}
	for c := range f.C {
		dst, src := f.C[c], other.C[c]
		for i := range dst {
			dst[i] += src[i]
		}
	}
	return nil
}

// ScalarField is a single value per grid point.
type ScalarField struct {
	Grid *Grid
	V    []float64
}

func NewScalarField(g *Grid) *ScalarField {
	return &ScalarField{Grid: g, V: make([]float64, g.Len())}
}

func (s *ScalarField) AddInPlace(other *ScalarField) error {
	if other.Grid != s.Grid {
		return ErrGridMismatch
	}
	for i := range s.V {
		s.V[i] += other.V[i]
	}
	return nil
}

// AddSquared accumulates the square of other into s, folding a scalar
// potential into an energy density.
func (s *ScalarField) AddSquared(other *ScalarField) error {
	if other.Grid != s.Grid {
		return ErrGridMismatch
	}
	for i, v := range other.V {
		s.V[i] += v * v
	}
	return nil
}

// Superpose sums same-grid vector fields elementwise. The result is
// independent of input order.
func Superpose(fields ...*VectorField) (*VectorField, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	total := NewVectorField(fields[0].Grid)
	for _, f := range fields {
		if err := total.AddInPlace(f); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// SuperposeScalar is the scalar-field analogue of Superpose.
func SuperposeScalar(fields ...*ScalarField) (*ScalarField, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	total := NewScalarField(fields[0].Grid)
	for _, f := range fields {
		if err := total.AddInPlace(f); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// EnergyDensity returns the squared magnitude of f at every point.
// The result is non-negative everywhere.
func EnergyDensity(f *VectorField) *ScalarField {
	e := NewScalarField(f.Grid)
	for c := range f.C {
		comp := f.C[c]
		for i, v := range comp {
			e.V[i] += v * v
		}
	}
	return e
}

// LogCompress maps energy e to log(e+1), keeping the log argument
// strictly positive for any non-negative input.
func LogCompress(s *ScalarField) *ScalarField {
	out := NewScalarField(s.Grid)
	for i, v := range s.V {
		out.V[i] = math.Log(v + 1)
	}
	return out
}

// Sum returns the plain sum of all scalar values.
func (s *ScalarField) Sum() float64 {
	total := 0.0
	for _, v := range s.V {
		total += v
	}
	return total
}

// Peak returns the index and value of the maximum scalar value.
func (s *ScalarField) Peak() (int, float64) {
	idx, max := 0, s.V[0]
	for i, v := range s.V {
		if v > max {
			idx, max = i, v
		}
	}
	return idx, max
}

// Centroid returns the energy-weighted centroid of the scalar field.
// A zero field has no meaningful centroid; the grid center is returned.
func (s *ScalarField) Centroid() []float64 {
	dim := s.Grid.Dim()
	acc := make([]float64, dim)
	buf := make([]float64, dim)
	total := 0.0
	for i, w := range s.V {
		if w == 0 {
			continue
		}
		s.Grid.Coords(i, buf)
		for d := 0; d < dim; d++ {
			acc[d] += buf[d] * w
		}
		total += w
	}
	if total == 0 {
		for d := 0; d < dim; d++ {
			ax := s.Grid.Axis(d)
			acc[d] = (ax.Min + ax.Max) / 2
		}
		return acc
	}
	for d := 0; d < dim; d++ {
		acc[d] /= total
	}
	return acc
}

// MidProfile extracts the scalar values along the first axis with all
// other axes held at their middle sample, e.g. the y=0 row of a
// symmetric 2D grid.
func (s *ScalarField) MidProfile() []float64 {
	shape := s.Grid.Shape()
	out := make([]float64, shape[0])
	stride := 1
	for d := 1; d < len(shape); d++ {
		stride *= shape[d]
	}
	offset := 0
	rem := stride
	for d := 1; d < len(shape); d++ {
		rem /= shape[d]
		offset += (shape[d] / 2) * rem
	}
	for i := range out {
		out[i] = s.V[i*stride+offset]
	}
	return out
}

func (s *ScalarField) String() string {
	return fmt.Sprintf("ScalarField(%v)", s.Grid.Shape())
}
