package field

import "math"

// Mu0 is the vacuum permeability in SI units.
const Mu0 = 4e-7 * math.Pi

// Solenoid models the magnetic field magnitude around a bounded
// current-carrying cylinder: linear growth inside the radius, inverse
// distance outside. The two branches agree at r = Radius.
//
// Enhancement adds a centrally peaked vortex factor
// 1 + Enhancement*exp(-10 r^2)*sin(2*pi*tfrac) that pulses over a
// normalized time fraction.
type Solenoid struct {
	Radius      float64
	Current     float64
	Enhancement float64
}

// Magnitude returns the piecewise field magnitude at cylindrical radius r.
func (s Solenoid) Magnitude(r float64) float64 {
	if r < s.Radius {
		return Mu0 * s.Current * r / (2 * math.Pi * s.Radius * s.Radius)
	}
	return Mu0 * s.Current / (2 * math.Pi * r)
}

func (s Solenoid) enhancement(r, tfrac float64) float64 {
	if s.Enhancement == 0 {
		return 1
	}
	return 1 + s.Enhancement*math.Exp(-10*r*r)*math.Sin(2*math.Pi*tfrac)
}

// Field converts the magnitude law into a tangential vector field on a
// 3D grid, with the evaluator's ZDrift scaled by the enhancement factor
// as the z-component. tfrac is the normalized animation time in [0, 1).
func (e *Evaluator) Field(s Solenoid, tfrac float64) *VectorField {
	f := NewVectorField(e.grid)
	dim := e.grid.Dim()
	buf := make([]float64, dim)
	for i := 0; i < e.grid.Len(); i++ {
		e.grid.Coords(i, buf)
		r := math.Hypot(buf[0], buf[1])
		theta := math.Atan2(buf[1], buf[0])
		factor := s.enhancement(r, tfrac)
		mag := s.Magnitude(r) * factor
		f.C[0][i] = -mag * math.Sin(theta)
		f.C[1][i] = mag * math.Cos(theta)
		if dim == 3 {
			f.C[2][i] = e.ZDrift * factor
		}
	}
	return f
}

// AxialFlow is the parabolic flow profile along the cylinder axis:
// vz = 1 - (r/Radius)^2 inside the cylinder, zero outside.
func (e *Evaluator) AxialFlow(s Solenoid) *VectorField {
	f := NewVectorField(e.grid)
	if e.grid.Dim() != 3 {
		return f
	}
	buf := make([]float64, 3)
	for i := 0; i < e.grid.Len(); i++ {
		e.grid.Coords(i, buf)
		r := math.Hypot(buf[0], buf[1])
		if r < s.Radius {
			f.C[2][i] = 1 - (r/s.Radius)*(r/s.Radius)
		}
	}
	return f
}
