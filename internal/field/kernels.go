package field

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the regularization constant added to squared
// distances so kernels stay finite at source locations.
const DefaultEpsilon = 0.1

// Kind selects which kernel a source contributes.
type Kind string

const (
	// Rotational is the point-vortex kernel: a 90-degree-rotated,
	// inverse-distance-scaled circulation around the source.
	Rotational Kind = "rotational"

	// Radial is the sink kernel: inverse-square attraction
	// (strength < 0) or repulsion (strength > 0) along the displacement.
	Radial Kind = "radial"

	// CoulombKind is the scalar potential kernel, value = s/r2. It has
	// no vector form; the square of its potential folds into the energy
	// density alongside the vector magnitude.
	CoulombKind Kind = "coulomb"
)

// Modulation varies a source strength sinusoidally over a frame index:
// base * (1 + Amplitude*sin(2*pi*frame/PeriodFrames)).
// Strength keeps its sign as long as Amplitude <= 1.
type Modulation struct {
	Amplitude    float64
	PeriodFrames int
}

func (m Modulation) Apply(base float64, frame int) float64 {
	if m.PeriodFrames <= 0 {
		return base
	}
	return base * (1 + m.Amplitude*math.Sin(2*math.Pi*float64(frame)/float64(m.PeriodFrames)))
}

// Source is a point entity contributing one kernel to the superposed field.
type Source struct {
	Pos      []float64
	Kind     Kind
	Strength float64
	Mod      *Modulation
}

// StrengthAt resolves the possibly time-modulated strength for a frame.
func (s Source) StrengthAt(frame int) float64 {
	if s.Mod == nil {
		return s.Strength
	}
	return s.Mod.Apply(s.Strength, frame)
}

func (s Source) validate(dim int) error {
	if len(s.Pos) != dim {
		return fmt.Errorf("%w: position has %d coords, grid has %d", ErrDimensionMismatch, len(s.Pos), dim)
	}
	switch s.Kind {
	case Rotational, Radial, CoulombKind:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	return nil
}

// Evaluator computes kernels over one grid with a fixed regularization
// constant. ZDrift, when non-zero, is added as a constant z-component to
// rotational kernels on 3D grids.
type Evaluator struct {
	grid   *Grid
	eps    float64
	ZDrift float64
}

func NewEvaluator(g *Grid, eps float64) (*Evaluator, error) {
	if g == nil {
		return nil, ErrInvalidGrid
	}
	if eps <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidEpsilon, eps)
	}
	return &Evaluator{grid: g, eps: eps}, nil
}

func (e *Evaluator) Grid() *Grid      { return e.grid }
func (e *Evaluator) Epsilon() float64 { return e.eps }

// Rotational evaluates the point-vortex kernel for a source at pos.
// In 2D: u = -s*dy/r2, v = s*dx/r2 with r2 = |d|^2 + eps. The field is
// everywhere perpendicular to the displacement and decays as 1/r.
func (e *Evaluator) Rotational(pos []float64, strength float64) (*VectorField, error) {
	if err := (Source{Pos: pos, Kind: Rotational}).validate(e.grid.Dim()); err != nil {
		return nil, err
	}
	f := NewVectorField(e.grid)
	dim := e.grid.Dim()
	buf := make([]float64, dim)
	for i := 0; i < e.grid.Len(); i++ {
		e.grid.Coords(i, buf)
		dx := buf[0] - pos[0]
		dy := buf[1] - pos[1]
		r2 := dx*dx + dy*dy + e.eps
		if dim == 3 {
			dz := buf[2] - pos[2]
			r2 += dz * dz
			f.C[2][i] = e.ZDrift
		}
		f.C[0][i] = -strength * dy / r2
		f.C[1][i] = strength * dx / r2
	}
	return f, nil
}

// Radial evaluates the sink kernel: s*d/r2 along the displacement.
func (e *Evaluator) Radial(pos []float64, strength float64) (*VectorField, error) {
	if err := (Source{Pos: pos, Kind: Radial}).validate(e.grid.Dim()); err != nil {
		return nil, err
	}
	f := NewVectorField(e.grid)
	dim := e.grid.Dim()
	buf := make([]float64, dim)
	for i := 0; i < e.grid.Len(); i++ {
		e.grid.Coords(i, buf)
		r2 := e.eps
		for d := 0; d < dim; d++ {
			diff := buf[d] - pos[d]
			r2 += diff * diff
		}
		for d := 0; d < dim; d++ {
			f.C[d][i] = strength * (buf[d] - pos[d]) / r2
		}
	}
	return f, nil
}

// Coulomb evaluates the scalar potential form of the radial kernel,
// value = s/r2.
func (e *Evaluator) Coulomb(pos []float64, strength float64) (*ScalarField, error) {
	if len(pos) != e.grid.Dim() {
		return nil, fmt.Errorf("%w: position has %d coords, grid has %d", ErrDimensionMismatch, len(pos), e.grid.Dim())
	}
	s := NewScalarField(e.grid)
	dim := e.grid.Dim()
	buf := make([]float64, dim)
	for i := 0; i < e.grid.Len(); i++ {
		e.grid.Coords(i, buf)
		r2 := e.eps
		for d := 0; d < dim; d++ {
			diff := buf[d] - pos[d]
			r2 += diff * diff
		}
		s.V[i] = strength / r2
	}
	return s, nil
}

// Eval dispatches on the source kind with the strength modulated for
// frame. Scalar kinds have no vector form and evaluate via EvalScalar.
func (e *Evaluator) Eval(src Source, frame int) (*VectorField, error) {
	if err := src.validate(e.grid.Dim()); err != nil {
		return nil, err
	}
	strength := src.StrengthAt(frame)
	switch src.Kind {
	case Rotational:
		return e.Rotational(src.Pos, strength)
	case Radial:
		return e.Radial(src.Pos, strength)
	default:
		return nil, fmt.Errorf("%w: %q", ErrScalarKind, src.Kind)
	}
}

// EvalAll superposes every vector-kind source at the given frame.
// Scalar sources are validated but contribute nothing here; their
// potentials come from EvalScalar.
func (e *Evaluator) EvalAll(sources []Source, frame int) (*VectorField, error) {
	if len(sources) == 0 {
		return nil, ErrNoFields
	}
	total := NewVectorField(e.grid)
	for _, src := range sources {
		if src.Kind == CoulombKind {
			if err := src.validate(e.grid.Dim()); err != nil {
				return nil, err
			}
			continue
		}
		f, err := e.Eval(src, frame)
		if err != nil {
			return nil, err
		}
		if err := total.AddInPlace(f); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// EvalScalar superposes the potentials of all scalar sources at the
// given frame. Returns nil when the source set has no scalar member.
func (e *Evaluator) EvalScalar(sources []Source, frame int) (*ScalarField, error) {
	var parts []*ScalarField
	for _, src := range sources {
		if src.Kind != CoulombKind {
			continue
		}
		s, err := e.Coulomb(src.Pos, src.StrengthAt(frame))
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return SuperposeScalar(parts...)
}
