package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"time", "body", "x", "y", "vx", "vy", "distance_to_reference"}

// ErrRunNotFound is returned when no run directory has the given ID.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	newID   func() string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, newID: shortID}
}

func shortID() string {
	return uuid.NewString()[:8]
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID                   string             `json:"id"`
	Scenario             string             `json:"scenario"`
	Timestamp            time.Time          `json:"timestamp"`
	Integrator           string             `json:"integrator"`
	Dt                   float64            `json:"dt"`
	Duration             float64            `json:"duration"`
	Steps                int                `json:"steps"`
	Bodies               []string           `json:"bodies"`
	Reference            string             `json:"reference,omitempty"`
	EnergyDrift          float64            `json:"energy_drift"`
	AngularMomentumDrift float64            `json:"angular_momentum_drift"`
	Metrics              map[string]float64 `json:"metrics"`
	Errors               []string           `json:"errors,omitempty"`
}

// Save writes meta and the sampled trajectory of result under a new run
// directory and returns the run ID. ID, Timestamp, Steps and the drift
// fields of meta are filled in here. Non-finite values from a degenerate
// run are stored as null in metadata.json and NaN/Inf in the trajectory.
// A failed save leaves no run directory behind.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Scenario, s.newID())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = result.StepsTaken
	meta.EnergyDrift = result.EnergyDrift
	meta.AngularMomentumDrift = result.AngularMomentumDrift
	meta.Metrics = result.Metrics
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}
	if len(meta.Bodies) == 0 && len(result.Samples) > 0 {
		for _, b := range result.Samples[0].Bodies {
			meta.Bodies = append(meta.Bodies, b.Name)
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("run %s: %w", runID, err)
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("run %s: %w", runID, err)
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, sample := range result.Samples {
		for _, b := range sample.Bodies {
			row := []string{
				formatFloat(sample.Time),
				b.Name,
				formatFloat(b.Pos.X),
				formatFloat(b.Pos.Y),
				formatFloat(b.Vel.X),
				formatFloat(b.Vel.Y),
				formatFloat(b.DistanceToReference),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// Point is one body at one sampled instant.
type Point struct {
	Time                float64 `json:"t"`
	Pos                 r2.Vec  `json:"pos"`
	Vel                 r2.Vec  `json:"vel"`
	DistanceToReference float64 `json:"distance_to_reference"`
}

// Trajectory holds the recorded points per body; Order keeps the body
// order of the run.
type Trajectory struct {
	Order  []string           `json:"order"`
	Bodies map[string][]Point `json:"bodies"`
}

func (t *Trajectory) Series(body string, fn func(Point) float64) []float64 {
	pts := t.Bodies[body]
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = fn(p)
	}
	return out
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(trajectoryHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	traj := &Trajectory{Bodies: make(map[string][]Point)}
	for i, record := range records {
		if i == 0 {
			continue
		}
		vals := make([]float64, 0, 6)
		for j, field := range record {
			if j == 1 {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
			}
			vals = append(vals, v)
		}

		name := record[1]
		if _, ok := traj.Bodies[name]; !ok {
			traj.Order = append(traj.Order, name)
		}
		traj.Bodies[name] = append(traj.Bodies[name], Point{
			Time:                vals[0],
			Pos:                 r2.Vec{X: vals[1], Y: vals[2]},
			Vel:                 r2.Vec{X: vals[3], Y: vals[4]},
			DistanceToReference: vals[5],
		})
	}

	return traj, nil
}
