package orbit

import "math"

// Physical constants for the SI-unit solar scenarios. GSun folds the
// solar mass into the gravitational parameter; SVTSoft is the vortex
// softening volume in m^3.
const (
	AU      = 1.496e11
	GSun    = 6.67430e-11 * 1.989e30
	C       = 3e8
	DaySecs = 24 * 3600
	SVTSoft = 1e18
)

// Planet carries the mean orbital radius (AU) and period (days).
type Planet struct {
	Name   string
	A      float64
	Period float64
}

// Planets lists the nine classical bodies, ordered outward.
var Planets = []Planet{
	{"Mercury", 0.39, 88},
	{"Venus", 0.72, 225},
	{"Earth", 1.00, 365},
	{"Mars", 1.52, 687},
	{"Jupiter", 5.20, 4333},
	{"Saturn", 9.58, 10759},
	{"Uranus", 19.18, 30687},
	{"Neptune", 30.07, 60190},
	{"Pluto", 39.48, 90560},
}

// ByName looks a planet up, case-sensitive.
func ByName(name string) (Planet, bool) {
	for _, p := range Planets {
		if p.Name == name {
			return p, true
		}
	}
	return Planet{}, false
}

// CircularVelocity is the speed of a circular orbit of radius a (AU)
// with the given period (days), in m/s.
func (p Planet) CircularVelocity() float64 {
	return 2 * math.Pi * p.A * AU / (p.Period * DaySecs)
}

// InitialState places the planet on the positive x-axis with tangential
// velocity scaled by vscale (1.0 for the circular-orbit speed).
func (p Planet) InitialState(vscale float64) (Vec2, Vec2) {
	pos := Vec2{X: p.A * AU}
	vel := Vec2{Y: vscale * p.CircularVelocity()}
	return pos, vel
}
