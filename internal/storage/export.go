package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/torus/internal/sim"
)

type ExportData struct {
	Params      RunParams          `json:"params"`
	Frames      int                `json:"frames"`
	Generations int                `json:"generations"`
	Samples     []sim.Sample       `json:"samples"`
	Metrics     map[string]float64 `json:"metrics"`
}

func newExportData(params RunParams, result *sim.Result) ExportData {
	samples := result.Samples
	if samples == nil {
		samples = []sim.Sample{}
	}
	return ExportData{
		Params:      params,
		Frames:      result.Frames,
		Generations: result.Generations,
		Samples:     samples,
		Metrics:     result.Metrics,
	}
}

func EncodeJSON(w io.Writer, params RunParams, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(params, result))
}

func ExportJSON(path string, params RunParams, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeJSON(file, params, result)
}
