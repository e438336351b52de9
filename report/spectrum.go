package report

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pthm-cable/transportproxy/vecmath"
)

// WriteEnergySpectrum emits a tab-delimited index/energy/count table to
// path: one row per entry i of counts, holding i, energies[i] and
// counts[i] as given by the caller.
func WriteEnergySpectrum(path string, energies []vecmath.Real, counts []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating energy spectrum file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, count := range counts {
		if _, err := fmt.Fprintf(w, "%d\t%g\t%d\n", i, energies[i], count); err != nil {
			return fmt.Errorf("report: writing energy spectrum row: %w", err)
		}
	}
	return w.Flush()
}
