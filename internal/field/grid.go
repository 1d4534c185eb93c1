package field

import "fmt"

// Axis describes one dimension of a regular lattice: N samples
// evenly spaced over [Min, Max].
type Axis struct {
	Min float64
	Max float64
	N   int
}

func (a Axis) validate() error {
	if a.N < 2 {
		return fmt.Errorf("%w: axis needs at least 2 samples, got %d", ErrInvalidGrid, a.N)
	}
	if a.Max <= a.Min {
		return fmt.Errorf("%w: axis extent [%g, %g] is empty", ErrInvalidGrid, a.Min, a.Max)
	}
	return nil
}

// Step returns the spacing between adjacent samples.
func (a Axis) Step() float64 {
	return (a.Max - a.Min) / float64(a.N-1)
}

// Coord returns the coordinate of the i-th sample.
func (a Axis) Coord(i int) float64 {
	return a.Min + float64(i)*a.Step()
}

// Linspace materializes all sample coordinates along the axis.
func (a Axis) Linspace() []float64 {
	out := make([]float64, a.N)
	for i := range out {
		out[i] = a.Coord(i)
	}
	return out
}

// Grid is a 2D or 3D regular lattice. Immutable once constructed.
// Points are stored in row-major order: the last axis varies fastest.
type Grid struct {
	axes []Axis
	size int
}

func NewGrid(axes ...Axis) (*Grid, error) {
	if len(axes) != 2 && len(axes) != 3 {
		return nil, fmt.Errorf("%w: want 2 or 3 axes, got %d", ErrInvalidGrid, len(axes))
	}
	size := 1
	for _, a := range axes {
		if err := a.validate(); err != nil {
			return nil, err
		}
		size *= a.N
	}
	g := &Grid{axes: append([]Axis(nil), axes...), size: size}
	return g, nil
}

// Square is a convenience constructor for the common symmetric 2D case.
func Square(min, max float64, n int) (*Grid, error) {
	ax := Axis{Min: min, Max: max, N: n}
	return NewGrid(ax, ax)
}

// Cube is the 3D analogue of Square.
func Cube(min, max float64, n int) (*Grid, error) {
	ax := Axis{Min: min, Max: max, N: n}
	return NewGrid(ax, ax, ax)
}

func (g *Grid) Dim() int        { return len(g.axes) }
func (g *Grid) Len() int        { return g.size }
func (g *Grid) Axis(i int) Axis { return g.axes[i] }

// Shape returns the per-axis sample counts.
func (g *Grid) Shape() []int {
	shape := make([]int, len(g.axes))
	for i, a := range g.axes {
		shape[i] = a.N
	}
	return shape
}

// CellVolume returns the volume (area in 2D) of one grid cell, used to
// scale summed energy density into an integrated total.
func (g *Grid) CellVolume() float64 {
	v := 1.0
	for _, a := range g.axes {
		v *= a.Step()
	}
	return v
}

// Coords writes the coordinates of point idx into buf, which must have
// length Dim(). Decoding follows the row-major layout.
func (g *Grid) Coords(idx int, buf []float64) {
	for d := len(g.axes) - 1; d >= 0; d-- {
		n := g.axes[d].N
		buf[d] = g.axes[d].Coord(idx % n)
		idx /= n
	}
}

// Point is a convenience wrapper around Coords that allocates.
func (g *Grid) Point(idx int) []float64 {
	buf := make([]float64, len(g.axes))
	g.Coords(idx, buf)
	return buf
}
