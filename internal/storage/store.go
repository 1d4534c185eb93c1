package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/omni-webdev/svt/internal/orbit"
	"github.com/omni-webdev/svt/internal/sim"
)

// Store persists runs under a base directory, one subdirectory per run
// holding metadata.json plus CSV data files.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes a saved run. Kind is "field" or "orbit".
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Epsilon   float64            `json:"epsilon"`
	GridShape []int              `json:"grid_shape,omitempty"`
	Dt        float64            `json:"dt,omitempty"`
	Summary   map[string]float64 `json:"summary"`
}

func (s *Store) writeMeta(runDir string, meta RunMetadata) error {
	file, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// SaveField stores a field run: its summary metadata, the per-frame
// statistics CSV, and the final frame's mid-row energy profile.
func (s *Store) SaveField(result *sim.Result) (string, error) {
	sc := result.Scenario
	runID := fmt.Sprintf("%s_%d", sc.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      "field",
		Scenario:  sc.Name,
		Timestamp: time.Now(),
		Frames:    sc.Frames,
		Epsilon:   sc.Epsilon,
		GridShape: sc.Grid.Shape(),
		Summary:   result.Stats.Summary(),
	}
	if err := s.writeMeta(runDir, meta); err != nil {
		return "", err
	}

	if err := writeStatsCSV(filepath.Join(runDir, "stats.csv"), result.Stats); err != nil {
		return "", err
	}
	if err := writeProfileCSV(filepath.Join(runDir, "profile.csv"), result.Scenario, result.Stats.FinalProfile()); err != nil {
		return "", err
	}

	return runID, nil
}

func writeStatsCSV(path string, stats *sim.Stats) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	dim := 0
	if len(stats.Centroids) > 0 {
		dim = len(stats.Centroids[0])
	}
	header := []string{"frame", "total_energy", "peak_distance"}
	for d := 0; d < dim; d++ {
		header = append(header, fmt.Sprintf("centroid_%c", 'x'+d))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < stats.Frames(); i++ {
		row := []string{
			strconv.Itoa(i),
			fmtFloat(stats.TotalEnergy[i]),
			fmtFloat(stats.PeakDistance[i]),
		}
		for _, c := range stats.Centroids[i] {
			row = append(row, fmtFloat(c))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeProfileCSV(path string, sc *sim.Scenario, profile []float64) error {
	if len(profile) == 0 {
		return nil
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "energy"}); err != nil {
		return err
	}
	ax := sc.Grid.Axis(0)
	for i, v := range profile {
		if err := w.Write([]string{fmtFloat(ax.Coord(i)), fmtFloat(v)}); err != nil {
			return err
		}
	}
	return nil
}

// SaveTrajectory stores one body's trajectory under an orbit run.
func (s *Store) SaveTrajectory(name, law string, dt float64, traj orbit.Trajectory) (string, error) {
	runID := fmt.Sprintf("orbit_%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	final := traj[len(traj)-1]
	meta := RunMetadata{
		ID:        runID,
		Kind:      "orbit",
		Scenario:  fmt.Sprintf("%s/%s", name, law),
		Timestamp: time.Now(),
		Frames:    len(traj),
		Dt:        dt,
		Summary: map[string]float64{
			"final_radius": final.Pos.Norm(),
			"final_speed":  final.Vel.Norm(),
		},
	}
	if err := s.writeMeta(runDir, meta); err != nil {
		return "", err
	}

	file, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"step", "x", "y", "vx", "vy"}); err != nil {
		return "", err
	}
	for i, st := range traj {
		row := []string{
			strconv.Itoa(i),
			fmtFloat(st.Pos.X), fmtFloat(st.Pos.Y),
			fmtFloat(st.Vel.X), fmtFloat(st.Vel.Y),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStats reads a field run's per-frame statistics back: total
// energy, peak distance, and centroid components, all indexed by frame.
func (s *Store) LoadStats(runID string) (energy, peak []float64, centroids [][]float64, err error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "stats.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		e, err1 := strconv.ParseFloat(rec[1], 64)
		p, err2 := strconv.ParseFloat(rec[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		energy = append(energy, e)
		peak = append(peak, p)
		c := make([]float64, 0, len(rec)-3)
		for _, f := range rec[3:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				break
			}
			c = append(c, v)
		}
		centroids = append(centroids, c)
	}
	return energy, peak, centroids, nil
}

// LoadTrajectory reads an orbit run's positions back.
func (s *Store) LoadTrajectory(runID string) (orbit.Trajectory, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	traj := make(orbit.Trajectory, 0, len(records))
	for _, rec := range records {
		if len(rec) < 5 {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		traj = append(traj, orbit.Step{
			Pos: orbit.Vec2{X: vals[0], Y: vals[1]},
			Vel: orbit.Vec2{X: vals[2], Y: vals[3]},
		})
	}
	return traj, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ExportJSON writes a field run's statistics as indented JSON.
type ExportData struct {
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	Frames       int                `json:"frames"`
	TotalEnergy  []float64          `json:"total_energy"`
	PeakDistance []float64          `json:"peak_distance"`
	Centroids    [][]float64        `json:"centroids"`
	Summary      map[string]float64 `json:"summary"`
}

func ExportJSONStdout(meta *RunMetadata, energy, peak []float64, centroids [][]float64) error {
	data := ExportData{
		ID:           meta.ID,
		Scenario:     meta.Scenario,
		Frames:       meta.Frames,
		TotalEnergy:  energy,
		PeakDistance: peak,
		Centroids:    centroids,
		Summary:      meta.Summary,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
