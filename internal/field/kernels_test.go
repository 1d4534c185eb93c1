package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/omni-webdev/svt/internal/field"
)

var _ = Describe("Grid", func() {
	It("rejects axes with fewer than two samples", func() {
		_, err := field.NewGrid(field.Axis{Min: -1, Max: 1, N: 1}, field.Axis{Min: -1, Max: 1, N: 5})
		Expect(err).To(MatchError(field.ErrInvalidGrid))
	})

	It("rejects empty extents", func() {
		_, err := field.Square(1, 1, 5)
		Expect(err).To(MatchError(field.ErrInvalidGrid))
	})

	It("rejects 1D and 4D lattices", func() {
		_, err := field.NewGrid(field.Axis{Min: 0, Max: 1, N: 4})
		Expect(err).To(MatchError(field.ErrInvalidGrid))
	})

	It("decodes row-major point coordinates", func() {
		g, err := field.Square(-1, 1, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(25))
		// last axis varies fastest
		Expect(g.Point(0)).To(Equal([]float64{-1, -1}))
		Expect(g.Point(1)).To(Equal([]float64{-1, -0.5}))
		Expect(g.Point(24)).To(Equal([]float64{1, 1}))
	})

	It("computes cell volume from axis spacing", func() {
		g, _ := field.Square(-1, 1, 5)
		Expect(g.CellVolume()).To(BeNumerically("~", 0.25, 1e-12))
	})
})

var _ = Describe("Evaluator", func() {
	var g *field.Grid

	BeforeEach(func() {
		var err error
		g, err = field.Square(-1, 1, 5)
		Expect(err).NotTo(HaveOccurred())
	})

	It("requires a strictly positive epsilon", func() {
		_, err := field.NewEvaluator(g, 0)
		Expect(err).To(MatchError(field.ErrInvalidEpsilon))
		_, err = field.NewEvaluator(g, -0.1)
		Expect(err).To(MatchError(field.ErrInvalidEpsilon))
	})

	It("rejects source positions of the wrong dimension", func() {
		ev, _ := field.NewEvaluator(g, 0.1)
		_, err := ev.Rotational([]float64{0, 0, 0}, 10)
		Expect(err).To(MatchError(field.ErrDimensionMismatch))
	})

	Describe("rotational kernel", func() {
		It("matches the closed form on the reference grid", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			f, err := ev.Rotational([]float64{0, 0}, 10)
			Expect(err).NotTo(HaveOccurred())

			// point (1, 0) sits at index 4*5+2
			at := f.At(4*5 + 2)
			Expect(at[0]).To(BeNumerically("~", 0, 1e-12))
			Expect(at[1]).To(BeNumerically("~", 10/1.1, 1e-12))

			// point (0, 1) sits at index 2*5+4
			at = f.At(2*5 + 4)
			Expect(at[0]).To(BeNumerically("~", -10/1.1, 1e-12))
			Expect(at[1]).To(BeNumerically("~", 0, 1e-12))
		})

		It("is perpendicular to the displacement everywhere", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			f, _ := ev.Rotational([]float64{0.3, -0.2}, 7)
			buf := make([]float64, 2)
			for i := 0; i < g.Len(); i++ {
				g.Coords(i, buf)
				dot := f.C[0][i]*(buf[0]-0.3) + f.C[1][i]*(buf[1]+0.2)
				Expect(dot).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("stays finite at the source location", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			f, _ := ev.Rotational([]float64{0, 0}, 1000)
			for c := range f.C {
				for _, v := range f.C[c] {
					Expect(math.IsInf(v, 0)).To(BeFalse())
					Expect(math.IsNaN(v)).To(BeFalse())
				}
			}
		})

		It("adds the z drift on 3D grids", func() {
			cube, _ := field.Cube(-1, 1, 3)
			ev, _ := field.NewEvaluator(cube, 0.1)
			ev.ZDrift = -0.1
			f, err := ev.Rotational([]float64{0, 0, 0}, 10)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range f.C[2] {
				Expect(v).To(Equal(-0.1))
			}
		})
	})

	Describe("radial kernel", func() {
		It("points toward an attractive sink everywhere", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			f, _ := ev.Radial([]float64{0, 0}, -30)
			buf := make([]float64, 2)
			for i := 0; i < g.Len(); i++ {
				g.Coords(i, buf)
				if buf[0] == 0 && buf[1] == 0 {
					continue
				}
				dot := f.C[0][i]*buf[0] + f.C[1][i]*buf[1]
				Expect(dot).To(BeNumerically("<", 0))
			}
		})

		It("cancels at the origin for mirrored equal sinks", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			a, _ := ev.Radial([]float64{1, 0}, -30)
			b, _ := ev.Radial([]float64{-1, 0}, -30)
			total, err := field.Superpose(a, b)
			Expect(err).NotTo(HaveOccurred())

			origin := total.At(2*5 + 2)
			Expect(origin[0]).To(BeZero())
			Expect(origin[1]).To(BeZero())
		})

		It("produces the scalar Coulomb form", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			s, err := ev.Coulomb([]float64{0, 0}, -30)
			Expect(err).NotTo(HaveOccurred())
			// at (1, 0): -30 / 1.1
			Expect(s.V[4*5+2]).To(BeNumerically("~", -30/1.1, 1e-12))
		})
	})

	Describe("EvalAll", func() {
		It("rejects an empty source list", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			_, err := ev.EvalAll(nil, 0)
			Expect(err).To(MatchError(field.ErrNoFields))
		})

		It("rejects unknown kernel kinds", func() {
			ev, _ := field.NewEvaluator(g, 0.1)
			_, err := ev.EvalAll([]field.Source{{Pos: []float64{0, 0}, Kind: "spiral", Strength: 1}}, 0)
			Expect(err).To(MatchError(field.ErrUnknownKind))
		})
	})
})

var _ = Describe("Superpose", func() {
	var g *field.Grid
	var fields []*field.VectorField

	BeforeEach(func() {
		g, _ = field.Square(-2, 2, 9)
		ev, _ := field.NewEvaluator(g, 0.1)
		a, _ := ev.Rotational([]float64{-1, 0}, 10)
		b, _ := ev.Rotational([]float64{1, 0}, 10)
		c, _ := ev.Radial([]float64{0, 0}, -30)
		fields = []*field.VectorField{a, b, c}
	})

	It("is invariant under permutation", func() {
		abc, _ := field.Superpose(fields[0], fields[1], fields[2])
		cba, _ := field.Superpose(fields[2], fields[1], fields[0])
		bac, _ := field.Superpose(fields[1], fields[0], fields[2])
		for c := range abc.C {
			for i := range abc.C[c] {
				Expect(cba.C[c][i]).To(BeNumerically("~", abc.C[c][i], 1e-12))
				Expect(bac.C[c][i]).To(BeNumerically("~", abc.C[c][i], 1e-12))
			}
		}
	})

	It("refuses fields on different grids", func() {
		other, _ := field.Square(-2, 2, 7)
		_, err := field.Superpose(fields[0], field.NewVectorField(other))
		Expect(err).To(MatchError(field.ErrGridMismatch))
	})

	It("refuses an empty collection", func() {
		_, err := field.Superpose()
		Expect(err).To(MatchError(field.ErrNoFields))
	})
})

var _ = Describe("EnergyDensity", func() {
	It("is non-negative everywhere and zero for a zero field", func() {
		g, _ := field.Square(-1, 1, 5)
		zero := field.NewVectorField(g)
		e := field.EnergyDensity(zero)
		for _, v := range e.V {
			Expect(v).To(BeZero())
		}

		ev, _ := field.NewEvaluator(g, 0.1)
		f, _ := ev.Rotational([]float64{0, 0}, 10)
		e = field.EnergyDensity(f)
		for _, v := range e.V {
			Expect(v).To(BeNumerically(">=", 0))
		}
	})

	It("keeps the log compression argument positive", func() {
		g, _ := field.Square(-1, 1, 5)
		e := field.LogCompress(field.NewScalarField(g))
		for _, v := range e.V {
			Expect(v).To(BeZero())
		}
	})

	It("finds the mid-row profile of the first axis", func() {
		g, _ := field.Square(-1, 1, 5)
		s := field.NewScalarField(g)
		// mark the y=0 row
		for i := 0; i < 5; i++ {
			s.V[i*5+2] = float64(i)
		}
		Expect(s.MidProfile()).To(Equal([]float64{0, 1, 2, 3, 4}))
	})
})

var _ = Describe("Modulation", func() {
	It("is periodic in the frame index", func() {
		m := field.Modulation{Amplitude: 0.2, PeriodFrames: 60}
		for frame := 0; frame < 60; frame += 7 {
			a := m.Apply(10, frame)
			b := m.Apply(10, frame+60)
			Expect(b).To(BeNumerically("~", a, 1e-9))
		}
	})

	It("keeps the sign of the base strength for amplitude <= 1", func() {
		m := field.Modulation{Amplitude: 1.0, PeriodFrames: 40}
		for frame := 0; frame < 40; frame++ {
			Expect(m.Apply(10, frame)).To(BeNumerically(">=", 0))
			Expect(m.Apply(-10, frame)).To(BeNumerically("<=", 0))
		}
	})

	It("is a no-op without a period", func() {
		m := field.Modulation{Amplitude: 0.5}
		Expect(m.Apply(10, 17)).To(Equal(10.0))
	})
})

var _ = Describe("Solenoid", func() {
	It("is continuous at the boundary radius", func() {
		s := field.Solenoid{Radius: 1.0, Current: 65.0 / 12.0}
		inner := s.Magnitude(1.0 - 1e-9)
		outer := s.Magnitude(1.0 + 1e-9)
		Expect(outer).To(BeNumerically("~", inner, inner*1e-6))
	})

	It("grows linearly inside and decays outside", func() {
		s := field.Solenoid{Radius: 2.0, Current: 5.0}
		Expect(s.Magnitude(1.0)).To(BeNumerically("~", 2*s.Magnitude(0.5), 1e-15))
		Expect(s.Magnitude(8.0)).To(BeNumerically("~", s.Magnitude(4.0)/2, 1e-15))
	})

	It("confines the axial flow to the cylinder", func() {
		cube, _ := field.Cube(-3, 3, 7)
		ev, _ := field.NewEvaluator(cube, 0.1)
		flow := ev.AxialFlow(field.Solenoid{Radius: 1.0, Current: 1.0})
		buf := make([]float64, 3)
		for i := 0; i < cube.Len(); i++ {
			cube.Coords(i, buf)
			r := math.Hypot(buf[0], buf[1])
			if r >= 1.0 {
				Expect(flow.C[2][i]).To(BeZero())
			} else {
				Expect(flow.C[2][i]).To(BeNumerically("~", 1-r*r, 1e-12))
			}
			Expect(flow.C[0][i]).To(BeZero())
			Expect(flow.C[1][i]).To(BeZero())
		}
	})

	Describe("tangential field", func() {
		var cube *field.Grid
		var ev *field.Evaluator
		s := field.Solenoid{Radius: 1.0, Current: 100, Enhancement: 0.8}
		// grid point at (0.5, 0, 0), inside the cylinder
		const inner = (5*9+4)*9 + 4

		BeforeEach(func() {
			cube, _ = field.Cube(-2, 2, 9)
			ev, _ = field.NewEvaluator(cube, 0.1)
			ev.ZDrift = -0.1
		})

		It("stays perpendicular to the cylindrical radius", func() {
			f := ev.Field(s, 0)
			buf := make([]float64, 3)
			for i := 0; i < cube.Len(); i++ {
				cube.Coords(i, buf)
				dot := f.C[0][i]*buf[0] + f.C[1][i]*buf[1]
				Expect(dot).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("matches the static magnitude when enhancement is zero", func() {
			flat := field.Solenoid{Radius: 1.0, Current: 100}
			f := ev.Field(flat, 0.3)
			buf := make([]float64, 3)
			for i := 0; i < cube.Len(); i++ {
				cube.Coords(i, buf)
				r := math.Hypot(buf[0], buf[1])
				mag := math.Hypot(f.C[0][i], f.C[1][i])
				Expect(mag).To(BeNumerically("~", flat.Magnitude(r), 1e-12))
			}
		})

		It("repeats with unit period in the time fraction", func() {
			a := ev.Field(s, 0.25)
			b := ev.Field(s, 1.25)
			for c := range a.C {
				for i := range a.C[c] {
					Expect(b.C[c][i]).To(BeNumerically("~", a.C[c][i], 1e-9))
				}
			}
		})

		It("pulses the magnitude about the static law", func() {
			rise := ev.Field(s, 0.25)
			fall := ev.Field(s, 0.75)
			up := math.Hypot(rise.C[0][inner], rise.C[1][inner])
			down := math.Hypot(fall.C[0][inner], fall.C[1][inner])
			static := s.Magnitude(0.5)
			Expect(up).To(BeNumerically(">", static))
			Expect(down).To(BeNumerically("<", static))
		})

		It("scales the z drift by the enhancement factor", func() {
			f := ev.Field(s, 0.25)
			factor := 1 + 0.8*math.Exp(-10*0.25)*math.Sin(2*math.Pi*0.25)
			Expect(f.C[2][inner]).To(BeNumerically("~", -0.1*factor, 1e-12))
		})
	})
})
