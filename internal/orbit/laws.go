package orbit

import "math"

// Newtonian is plain inverse-square gravity toward the origin:
// a = -GM * p / r^3. Unregularized: evaluating at the origin diverges,
// which the integrator reports as an instability.
type Newtonian struct {
	GM float64
}

func (n Newtonian) Accel(pos, _ Vec2) Vec2 {
	r := pos.Norm()
	return pos.Scale(-n.GM / (r * r * r))
}

// Softened is the vortex-theory variant with a softened r^3 denominator:
// a = -GM * p / (r^3 + Soft). Soft > 0 bounds the acceleration near the
// origin the same way epsilon regularizes the field kernels.
type Softened struct {
	GM   float64
	Soft float64
}

func (s Softened) Accel(pos, _ Vec2) Vec2 {
	r := pos.Norm()
	return pos.Scale(-s.GM / (r*r*r + s.Soft))
}

// Regularized mirrors the field kernels' epsilon discipline:
// a = -GM * p / (r2^(3/2)) with r2 = |p|^2 + Eps. Bounded everywhere.
type Regularized struct {
	GM  float64
	Eps float64
}

func (g Regularized) Accel(pos, _ Vec2) Vec2 {
	r2 := pos.Norm2() + g.Eps
	return pos.Scale(-g.GM / (r2 * math.Sqrt(r2)))
}

// Relativistic applies the first-order perihelion correction
// 1 + 3*l^2/(r^2*c^2), with l the specific angular momentum x*vy - y*vx.
type Relativistic struct {
	GM float64
	C  float64
}

func (rl Relativistic) Accel(pos, vel Vec2) Vec2 {
	r := pos.Norm()
	l := pos.X*vel.Y - pos.Y*vel.X
	factor := 1 + (3*l*l)/(r*r*rl.C*rl.C)
	return pos.Scale(-rl.GM * factor / (r * r * r))
}
