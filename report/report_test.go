package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/transportproxy/tally"
)

func TestNewWriterDisabledWhenDirEmpty(t *testing.T) {
	w, err := NewWriter("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != nil {
		t.Fatal("expected nil writer for empty dir")
	}
	if err := w.WriteCycle(CycleRecord{}); err != nil {
		t.Errorf("nil writer WriteCycle should be a no-op, got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("nil writer Close should be a no-op, got %v", err)
	}
}

func TestWriterWritesCycleCSV(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var balance tally.Balance
	balance.Start.Store(10)
	balance.Census.Store(8)
	balance.Absorb.Store(2)

	rec := NewCycleRecord(0, time.Millisecond, balance.Snapshot())
	if err := w.WriteCycle(rec); err != nil {
		t.Fatalf("writing cycle record: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cycle.csv"))
	if err != nil {
		t.Fatalf("reading cycle.csv: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty cycle.csv")
	}
}

func TestWriteEnergySpectrum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spectrum.dat")
	energies := []float64{1, 2, 4, 8}
	counts := []int{3, 1, 0, 2}

	if err := WriteEnergySpectrum(path, energies, counts); err != nil {
		t.Fatalf("writing spectrum: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading spectrum: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty spectrum file")
	}
}
