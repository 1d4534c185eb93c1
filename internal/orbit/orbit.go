package orbit

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadStep indicates a non-positive step count or timestep.
	ErrBadStep = errors.New("orbit: step count and dt must be positive")

	// ErrUnstable indicates the integration produced NaN or Inf, e.g.
	// an unregularized force law evaluated at its singularity or a dt
	// too large for the orbit. The caller may retry with a smaller dt
	// or a softened law; nothing is clamped silently.
	ErrUnstable = errors.New("orbit: numerical instability (NaN/Inf)")
)

// StepError wraps ErrUnstable with the step at which it occurred.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%g): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Norm() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec2) Norm2() float64       { return v.X*v.X + v.Y*v.Y }

func (v Vec2) valid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// ForceLaw maps a body state to an acceleration.
type ForceLaw interface {
	Accel(pos, vel Vec2) Vec2
}

// Step is one (position, velocity) sample of a trajectory.
type Step struct {
	Pos Vec2
	Vel Vec2
}

// Trajectory is the ordered record of an integration run. It grows by
// exactly one entry per step and is immutable once the run completes.
type Trajectory []Step

// Positions extracts the position sequence for plotting and export.
func (t Trajectory) Positions() []Vec2 {
	out := make([]Vec2, len(t))
	for i, s := range t {
		out[i] = s.Pos
	}
	return out
}

// IntegrateVerlet advances (x0, v0) under law for steps iterations of
// size dt using the velocity-Verlet scheme: acceleration at the current
// position proposes the next position, and the velocity update averages
// old and new accelerations. The integrator adds no damping or growth
// of its own; energy behavior follows entirely from the supplied law.
//
// On instability the trajectory up to the failing step is returned
// together with a wrapped ErrUnstable.
func IntegrateVerlet(x0, v0 Vec2, law ForceLaw, steps int, dt float64) (Trajectory, error) {
	if steps <= 0 || dt <= 0 {
		return nil, fmt.Errorf("%w: steps=%d dt=%g", ErrBadStep, steps, dt)
	}

	traj := make(Trajectory, 0, steps+1)
	pos, vel := x0, v0
	traj = append(traj, Step{Pos: pos, Vel: vel})

	for i := 0; i < steps; i++ {
		a := law.Accel(pos, vel)
		next := pos.Add(vel.Scale(dt)).Add(a.Scale(0.5 * dt * dt))
		aNext := law.Accel(next, vel)
		vel = vel.Add(a.Add(aNext).Scale(0.5 * dt))
		pos = next

		if !pos.valid() || !vel.valid() {
			return traj, &StepError{Step: i, Time: float64(i) * dt, Err: ErrUnstable}
		}
		traj = append(traj, Step{Pos: pos, Vel: vel})
	}

	return traj, nil
}
