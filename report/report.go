// Package report writes a run's output: a per-cycle CSV of tally/timer
// samples, plus the optional energy-spectrum and cross-section tables a
// hosting CLI may request.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/transportproxy/tally"
)

// CycleRecord is one row of the per-cycle CSV: this cycle's event counts
// and the wall-clock time the cycle took.
type CycleRecord struct {
	Cycle       int     `csv:"cycle"`
	ElapsedMS   float64 `csv:"elapsed_ms"`
	Start       uint64  `csv:"start"`
	Source      uint64  `csv:"source"`
	RR          uint64  `csv:"rr"`
	Split       uint64  `csv:"split"`
	Absorb      uint64  `csv:"absorb"`
	Scatter     uint64  `csv:"scatter"`
	Fission     uint64  `csv:"fission"`
	Produce     uint64  `csv:"produce"`
	Collision   uint64  `csv:"collision"`
	Census      uint64  `csv:"census"`
	Escape      uint64  `csv:"escape"`
	NumSegments uint64  `csv:"num_segments"`
	End         uint64  `csv:"end"`
}

// NewCycleRecord flattens a balance snapshot into one CSV row.
func NewCycleRecord(cycle int, elapsed time.Duration, snap tally.BalanceSnapshot) CycleRecord {
	return CycleRecord{
		Cycle:       cycle,
		ElapsedMS:   float64(elapsed.Microseconds()) / 1000.0,
		Start:       snap.Start,
		Source:      snap.Source,
		RR:          snap.RR,
		Split:       snap.Split,
		Absorb:      snap.Absorb,
		Scatter:     snap.Scatter,
		Fission:     snap.Fission,
		Produce:     snap.Produce,
		Collision:   snap.Collision,
		Census:      snap.Census,
		Escape:      snap.Escape,
		NumSegments: snap.NumSegments,
		End:         snap.End(),
	}
}

// Writer holds the per-cycle CSV file open for the life of a run. A nil
// *Writer (from an empty directory) makes every method a no-op, so callers
// don't need to branch on whether reporting is enabled.
type Writer struct {
	dir           string
	cycleFile     *os.File
	headerWritten bool
}

// NewWriter creates dir (if needed) and opens cycle.csv inside it. Returns
// nil, nil if dir is empty: reporting is then disabled for the run.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("report: creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "cycle.csv"))
	if err != nil {
		return nil, fmt.Errorf("report: creating cycle.csv: %w", err)
	}
	return &Writer{dir: dir, cycleFile: f}, nil
}

// WriteCycle appends one cycle's record to cycle.csv, writing the header
// row only on the first call.
func (w *Writer) WriteCycle(rec CycleRecord) error {
	if w == nil {
		return nil
	}
	records := []CycleRecord{rec}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.cycleFile); err != nil {
			return fmt.Errorf("report: writing cycle record: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.cycleFile); err != nil {
		return fmt.Errorf("report: writing cycle record: %w", err)
	}
	return nil
}

// Dir returns the output directory, or "" if reporting is disabled.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// Close flushes and closes cycle.csv.
func (w *Writer) Close() error {
	if w == nil || w.cycleFile == nil {
		return nil
	}
	return w.cycleFile.Close()
}
