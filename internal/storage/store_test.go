package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/torus/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames:      3,
		Generations: 2,
		Samples: []sim.Sample{
			{Frame: 0, Generation: 0, StateNonZero: 8},
			{Frame: 1, Generation: 1, StateNonZero: 12, TraceNonZero: 2, TraceIncrements: 2, Changed: 10},
			{Frame: 2, Generation: 2, StateNonZero: 20, TraceNonZero: 3, TraceIncrements: 1, Changed: 14},
		},
		Metrics: map[string]float64{
			"population": 0.5,
		},
		Elapsed: 1500 * time.Millisecond,
	}
}

func testParams() RunParams {
	return RunParams{Height: 4, Width: 8, Seed: 42, Colors: 16, Frames: 2, Layer: sim.LayerTrace, Format: "png"}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := testResult()
	runID, err := st.Save(testParams(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Params.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Params.Seed)
	}

	if meta.Params.Height != 4 || meta.Params.Width != 8 {
		t.Errorf("expected 4x8, got %dx%d", meta.Params.Height, meta.Params.Width)
	}

	if meta.Metrics["population"] != 0.5 {
		t.Errorf("expected population 0.5, got %f", meta.Metrics["population"])
	}

	if meta.ElapsedMS != 1500 {
		t.Errorf("expected 1500ms, got %d", meta.ElapsedMS)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	if diff := cmp.Diff(result.Samples, samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}

	_, rebuilt, err := st.Result(runID)
	if err != nil {
		t.Fatalf("result failed: %v", err)
	}
	if rebuilt.Frames != 3 || rebuilt.Generations != 2 {
		t.Errorf("expected 3 frames and 2 generations, got %d and %d", rebuilt.Frames, rebuilt.Generations)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(testParams(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(testParams(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Fatalf("run ids collide: %s", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testParams(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	data, err := os.ReadFile(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		t.Fatalf("samples.csv not created: %v", err)
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) != 4 {
		t.Errorf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if string(lines[0]) != "frame,generation,state_nonzero,trace_nonzero,trace_increments,changed" {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSamples("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, testParams(), testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Frames != 3 || len(got.Samples) != 3 {
		t.Errorf("expected 3 frames and samples, got %d and %d", got.Frames, len(got.Samples))
	}
	if got.Params.Layer != sim.LayerTrace {
		t.Errorf("expected trace layer, got %s", got.Params.Layer)
	}
}
