package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/omni-webdev/svt/internal/field"
)

var _ = Describe("Scalar coulomb sources", func() {
	var g *field.Grid
	var ev *field.Evaluator

	BeforeEach(func() {
		g, _ = field.Square(-2, 2, 5)
		ev, _ = field.NewEvaluator(g, 0.1)
	})

	It("superposes the potentials of every scalar source", func() {
		sources := []field.Source{
			{Pos: []float64{-1, 0}, Kind: field.CoulombKind, Strength: -30},
			{Pos: []float64{1, 0}, Kind: field.CoulombKind, Strength: -30},
		}
		scalar, err := ev.EvalScalar(sources, 0)
		Expect(err).NotTo(HaveOccurred())
		// center of the 5x5 grid sits at distance 1 from each source
		Expect(scalar.V[2*5+2]).To(BeNumerically("~", 2*(-30/1.1), 1e-12))
	})

	It("returns nil when the source set has no scalar member", func() {
		scalar, err := ev.EvalScalar([]field.Source{
			{Pos: []float64{0, 0}, Kind: field.Rotational, Strength: 10},
		}, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(scalar).To(BeNil())
	})

	It("contributes nothing to the superposed vector field", func() {
		vortexOnly := []field.Source{
			{Pos: []float64{0, 1}, Kind: field.Rotational, Strength: 10},
		}
		withScalar := append(vortexOnly, field.Source{
			Pos: []float64{0, 0}, Kind: field.CoulombKind, Strength: -30,
		})

		a, err := ev.EvalAll(vortexOnly, 0)
		Expect(err).NotTo(HaveOccurred())
		b, err := ev.EvalAll(withScalar, 0)
		Expect(err).NotTo(HaveOccurred())
		for c := range a.C {
			Expect(b.C[c]).To(Equal(a.C[c]))
		}
	})

	It("has no vector form", func() {
		_, err := ev.Eval(field.Source{Pos: []float64{0, 0}, Kind: field.CoulombKind, Strength: -30}, 0)
		Expect(err).To(MatchError(field.ErrScalarKind))
	})

	It("folds its squared potential into the energy density", func() {
		sources := []field.Source{
			{Pos: []float64{0, 1}, Kind: field.Rotational, Strength: 10},
			{Pos: []float64{0, 0}, Kind: field.CoulombKind, Strength: -30},
		}
		vec, err := ev.EvalAll(sources, 0)
		Expect(err).NotTo(HaveOccurred())
		scalar, err := ev.EvalScalar(sources, 0)
		Expect(err).NotTo(HaveOccurred())

		energy := field.EnergyDensity(vec)
		before := append([]float64(nil), energy.V...)
		Expect(energy.AddSquared(scalar)).To(Succeed())
		for i := range energy.V {
			Expect(energy.V[i]).To(BeNumerically("~", before[i]+scalar.V[i]*scalar.V[i], 1e-9))
		}
	})

	It("rejects squared accumulation across grids", func() {
		other, _ := field.Square(-2, 2, 7)
		Expect(field.NewScalarField(g).AddSquared(field.NewScalarField(other))).
			To(MatchError(field.ErrGridMismatch))
	})

	It("validates scalar source positions during vector superposition", func() {
		_, err := ev.EvalAll([]field.Source{
			{Pos: []float64{0, 0}, Kind: field.Rotational, Strength: 10},
			{Pos: []float64{0, 0, 0}, Kind: field.CoulombKind, Strength: -30},
		}, 0)
		Expect(err).To(MatchError(field.ErrDimensionMismatch))
	})
})
