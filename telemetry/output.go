package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/orrery/config"
)

// PositionRecord is one body's state at a sampled tick.
type PositionRecord struct {
	Tick       int64   `csv:"tick"`
	SimTime    float64 `csv:"sim_time"`
	Body       string  `csv:"body"`
	Kind       string  `csv:"kind"`
	X          float32 `csv:"x"`
	Y          float32 `csv:"y"`
	Z          float32 `csv:"z"`
	Distance   float32 `csv:"distance"`
	OrbitAngle float64 `csv:"orbit_angle"`
	Spin       float64 `csv:"spin"`
}

// csvTable is an output file whose header is written with the first records.
type csvTable struct {
	name          string
	file          *os.File
	headerWritten bool
}

func (t *csvTable) write(records any) error {
	var err error
	if !t.headerWritten {
		err = gocsv.Marshal(records, t.file)
		t.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, t.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	return nil
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	perf      *csvTable
	windows   *csvTable
	positions *csvTable
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, t := range []struct {
		dst  **csvTable
		name string
	}{
		{&om.perf, "perf.csv"},
		{&om.windows, "windows.csv"},
		{&om.positions, "positions.csv"},
	} {
		f, err := os.Create(filepath.Join(dir, t.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", t.name, err)
		}
		*t.dst = &csvTable{name: t.name, file: f}
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, tick int64) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(tick)})
}

// WriteWindow writes a window stats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.windows.write([]WindowStats{stats})
}

// WritePositions appends one sample of every body to positions.csv.
func (om *OutputManager) WritePositions(records []PositionRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.positions.write(records)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, t := range []*csvTable{om.perf, om.windows, om.positions} {
		if t != nil && t.file != nil {
			errs = append(errs, t.file.Close())
		}
	}
	return errors.Join(errs...)
}
