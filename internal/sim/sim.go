package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/omni-webdev/svt/internal/field"
)

// Scenario is the full, read-only input of a field run: the grid, the
// source set, and the run parameters. Per-frame evaluation is a pure
// function of (Scenario, frame index); no state crosses frames.
type Scenario struct {
	Name        string
	Grid        *field.Grid
	Sources     []field.Source
	Frames      int
	Epsilon     float64
	ZDrift      float64
	EnergyScale float64
}

func (s *Scenario) Validate() error {
	if s.Grid == nil {
		return fmt.Errorf("scenario: %w", field.ErrInvalidGrid)
	}
	if len(s.Sources) == 0 {
		return fmt.Errorf("scenario: no sources")
	}
	if s.Frames <= 0 {
		return fmt.Errorf("scenario: frame count must be positive, got %d", s.Frames)
	}
	if s.Epsilon <= 0 {
		return fmt.Errorf("scenario: %w", field.ErrInvalidEpsilon)
	}
	dim := s.Grid.Dim()
	for i, src := range s.Sources {
		if len(src.Pos) != dim {
			return fmt.Errorf("scenario: source %d: %w", i, field.ErrDimensionMismatch)
		}
	}
	return nil
}

func (s *Scenario) scale() float64 {
	if s.EnergyScale == 0 {
		return 1
	}
	return s.EnergyScale
}

// FrameStats are the derived per-frame summaries.
type FrameStats struct {
	Index        int
	TotalEnergy  float64
	PeakPos      []float64
	PeakDistance float64
	Centroid     []float64
}

// Frame is the result of evaluating every source at one frame index.
type Frame struct {
	Index   int
	Vec     *field.VectorField
	Energy  *field.ScalarField
	Profile []float64
	Stats   FrameStats
}

// EvalFrame superposes all sources at the given frame and derives the
// energy field and its summary statistics. Scalar coulomb sources
// contribute the square of their potential to the energy, alongside the
// squared magnitude of the superposed vector field.
func EvalFrame(sc *Scenario, frame int) (*Frame, error) {
	ev, err := field.NewEvaluator(sc.Grid, sc.Epsilon)
	if err != nil {
		return nil, err
	}
	ev.ZDrift = sc.ZDrift

	vec, err := ev.EvalAll(sc.Sources, frame)
	if err != nil {
		return nil, err
	}
	energy := field.EnergyDensity(vec)

	scalar, err := ev.EvalScalar(sc.Sources, frame)
	if err != nil {
		return nil, err
	}
	if scalar != nil {
		if err := energy.AddSquared(scalar); err != nil {
			return nil, err
		}
	}

	peakIdx, _ := energy.Peak()
	peak := sc.Grid.Point(peakIdx)
	centroid := energy.Centroid()

	return &Frame{
		Index:   frame,
		Vec:     vec,
		Energy:  energy,
		Profile: energy.MidProfile(),
		Stats: FrameStats{
			Index:        frame,
			TotalEnergy:  energy.Sum() * sc.Grid.CellVolume() * sc.scale(),
			PeakPos:      peak,
			PeakDistance: norm(peak),
			Centroid:     centroid,
		},
	}, nil
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Result collects the per-frame statistics, in frame order, plus the
// final frame's full fields for plotting and export.
type Result struct {
	Scenario *Scenario
	Stats    *Stats
	Final    *Frame
}

// Run evaluates every frame in order, checking the context between
// frames. All cross-frame accumulation happens in the Stats value owned
// by this driver, never inside the field evaluation itself.
func Run(ctx context.Context, sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	stats := NewStats(sc.Frames)
	var final *Frame

	for i := 0; i < sc.Frames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f, err := EvalFrame(sc, i)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		stats.Record(f)
		final = f
	}

	return &Result{Scenario: sc, Stats: stats, Final: final}, nil
}
