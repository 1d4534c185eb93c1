package analysis

import (
	"math"
	"testing"
)

func TestReference2pShape(t *testing.T) {
	xs := []float64{-3, -1, 0, 1, 3}
	ref := Reference2p(xs)

	if ref[2] != 0 {
		t.Errorf("reference at origin = %g, want 0", ref[2])
	}
	// symmetric in x
	if ref[0] != ref[4] || ref[1] != ref[3] {
		t.Error("reference curve not even")
	}
	// the maximum of x^2 exp(-x^2) sits at |x| = 1
	want := math.Exp(-1)
	if math.Abs(ref[1]-want) > 1e-12 {
		t.Errorf("reference at 1 = %g, want %g", ref[1], want)
	}
	if ref[0] >= ref[1] {
		t.Error("tail should fall below the lobe maximum")
	}
}

func TestNormalize(t *testing.T) {
	out := Normalize([]float64{2, 8, 4})
	want := []float64{0.25, 1, 0.5}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: %g, want %g", i, out[i], want[i])
		}
	}

	zeros := Normalize([]float64{0, 0, 0})
	for i, v := range zeros {
		if v != 0 {
			t.Errorf("zero profile changed at %d: %g", i, v)
		}
	}
}

func TestRMSDeviation(t *testing.T) {
	if d := RMSDeviation([]float64{1, 2, 3}, []float64{1, 2, 3}); d != 0 {
		t.Errorf("identical profiles deviate by %g", d)
	}
	if d := RMSDeviation([]float64{0, 0}, []float64{3, 4}); math.Abs(d-math.Sqrt(12.5)) > 1e-12 {
		t.Errorf("deviation = %g, want %g", d, math.Sqrt(12.5))
	}
	if d := RMSDeviation(nil, nil); d != 0 {
		t.Errorf("empty profiles deviate by %g", d)
	}
}
