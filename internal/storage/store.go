// Package storage persists ephemeris snapshots: one directory per run with
// JSON metadata and a CSV of per-body state in exact decimal text.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/san-kum/orrery/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	System    string    `json:"system"`
	SimTime   string    `json:"sim_time"` // decimal text
	Bodies    int       `json:"bodies"`
	Timestamp time.Time `json:"timestamp"`
}

// BodyRecord is one row of a stored snapshot. Components are decimal text.
type BodyRecord struct {
	Name     string
	ID       int
	Parent   int
	Position [3]string
	Velocity [3]string
}

// Save writes a snapshot of the simulation at simTime and returns the run id.
func (s *Store) Save(system string, simTime *apd.Decimal, simulation *sim.Simulation) (string, error) {
	runID := fmt.Sprintf("%s_%d", system, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	bodies := simulation.Bodies()
	meta := RunMetadata{
		ID:        runID,
		System:    system,
		SimTime:   simTime.String(),
		Bodies:    len(bodies),
		Timestamp: time.Now(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "bodies.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"name", "id", "parent", "px", "py", "pz", "vx", "vy", "vz"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, b := range bodies {
		row := []string{
			b.Body.Name,
			strconv.Itoa(b.ID),
			strconv.Itoa(b.Parent),
			b.Position.X.String(), b.Position.Y.String(), b.Position.Z.String(),
			b.Velocity.X.String(), b.Velocity.Y.String(), b.Velocity.Z.String(),
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

func (s *Store) LoadBodies(runID string) ([]BodyRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "bodies.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []BodyRecord{}, nil
	}

	bodies := make([]BodyRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 9 {
			continue
		}
		id, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		parent, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		bodies = append(bodies, BodyRecord{
			Name:     record[0],
			ID:       id,
			Parent:   parent,
			Position: [3]string{record[3], record[4], record[5]},
			Velocity: [3]string{record[6], record[7], record[8]},
		})
	}
	return bodies, nil
}
