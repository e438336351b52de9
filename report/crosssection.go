package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/nuclear"
)

// CrossSectionRow is one material/group's total macroscopic cross section,
// evaluated at a unit cell number density so the table reflects the
// material's intrinsic reaction rates rather than any one cell's mix.
type CrossSectionRow struct {
	Material string  `csv:"material"`
	Group    int     `csv:"group"`
	TotalXS  float64 `csv:"total_xs"`
}

// WriteCrossSections emits one row per material/group to path, the
// macroscopic total cross section materials would exhibit at unit number
// density.
func WriteCrossSections(path string, nuc *nuclear.Data, materials *material.Database) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating cross section file: %w", err)
	}
	defer f.Close()

	var rows []CrossSectionRow
	for _, mat := range materials.Materials {
		for g := 0; g < nuc.G; g++ {
			var total float64
			for _, iso := range mat.Isotopes {
				total += float64(iso.AtomFraction) * nuc.TotalCrossSection(iso.GID, g)
			}
			rows = append(rows, CrossSectionRow{Material: mat.Name, Group: g, TotalXS: total})
		}
	}

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("report: writing cross section rows: %w", err)
	}
	return nil
}
