package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run        RunMetadata `json:"run"`
	Trajectory *Trajectory `json:"trajectory"`
}

// ExportJSON writes a run and its trajectory as one indented document.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Trajectory: traj})
}
