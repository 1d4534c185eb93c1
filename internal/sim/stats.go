package sim

import "math"

// Stats is the frame-indexed accumulator for run-level summaries. It is
// owned by the run driver and appended to in frame order, never shared
// with the per-frame evaluation.
type Stats struct {
	TotalEnergy  []float64
	PeakDistance []float64
	Centroids    [][]float64
	Profiles     [][]float64
}

func NewStats(frames int) *Stats {
	return &Stats{
		TotalEnergy:  make([]float64, 0, frames),
		PeakDistance: make([]float64, 0, frames),
		Centroids:    make([][]float64, 0, frames),
		Profiles:     make([][]float64, 0, frames),
	}
}

// Record appends one frame's statistics. Frames must be recorded in
// index order.
func (st *Stats) Record(f *Frame) {
	st.TotalEnergy = append(st.TotalEnergy, f.Stats.TotalEnergy)
	st.PeakDistance = append(st.PeakDistance, f.Stats.PeakDistance)
	st.Centroids = append(st.Centroids, f.Stats.Centroid)
	st.Profiles = append(st.Profiles, f.Profile)
}

func (st *Stats) Frames() int { return len(st.TotalEnergy) }

// MeanEnergy is the average total energy over all recorded frames.
func (st *Stats) MeanEnergy() float64 { return mean(st.TotalEnergy) }

// MeanPeakDistance is the average distance of the energy peak from the
// origin.
func (st *Stats) MeanPeakDistance() float64 { return mean(st.PeakDistance) }

// MeanCentroidDistance is the average norm of the energy-weighted
// centroid.
func (st *Stats) MeanCentroidDistance() float64 {
	if len(st.Centroids) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range st.Centroids {
		sum += norm(c)
	}
	return sum / float64(len(st.Centroids))
}

// FinalProfile returns the mid-row energy profile of the last frame.
func (st *Stats) FinalProfile() []float64 {
	if len(st.Profiles) == 0 {
		return nil
	}
	return st.Profiles[len(st.Profiles)-1]
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Summary flattens the run statistics into named scalars for metadata.
func (st *Stats) Summary() map[string]float64 {
	m := map[string]float64{
		"mean_total_energy":      st.MeanEnergy(),
		"mean_peak_distance":     st.MeanPeakDistance(),
		"mean_centroid_distance": st.MeanCentroidDistance(),
	}
	if n := len(st.TotalEnergy); n > 0 {
		m["final_total_energy"] = st.TotalEnergy[n-1]
		m["max_total_energy"] = maxOf(st.TotalEnergy)
	}
	return m
}

func maxOf(xs []float64) float64 {
	max := math.Inf(-1)
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	return max
}
