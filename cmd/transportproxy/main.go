// Command transportproxy runs a shared-memory Monte Carlo neutron transport
// proxy simulation: it loads an input deck, builds the mesh, material and
// nuclear data it describes, and tracks particles cycle by cycle, emitting
// a per-cycle CSV and optional energy-spectrum/cross-section tables.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pthm-cable/transportproxy/config"
	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/montecarlo"
	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/report"
	"github.com/pthm-cable/transportproxy/vecmath"
)

var (
	inputFile       = flag.String("input", "", "input deck path")
	outputDir       = flag.String("output", "", "output directory for cycle.csv (disabled if empty)")
	dt              = flag.Float64("dt", 0, "time step override (s)")
	lx              = flag.Float64("lx", 0, "domain x extent override (cm)")
	ly              = flag.Float64("ly", 0, "domain y extent override (cm)")
	lz              = flag.Float64("lz", 0, "domain z extent override (cm)")
	nx              = flag.Int("nx", 0, "mesh cells along x override")
	ny              = flag.Int("ny", 0, "mesh cells along y override")
	nz              = flag.Int("nz", 0, "mesh cells along z override")
	nParticles      = flag.Int("n-particles", 0, "global target particle count override")
	nSteps          = flag.Int("n-steps", 0, "cycle count override")
	seed            = flag.Uint64("seed", 0, "master RNG seed override")
	nUnits          = flag.Int("n-units", 0, "number of parallel units override")
	loadBalance     = flag.Bool("load-balance", false, "enable per-unit target rebalance")
	energySpectrum  = flag.String("energy-spectrum-out", "", "energy spectrum output path override")
	crossSectionOut = flag.String("cross-section-out", "", "cross section table output path override")
)

func main() {
	flag.Parse()

	cfg, errs := config.Load(*inputFile)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	applyOverrides(cfg)

	grid := geometry.NewFCCGrid(cfg.Simulation.NX, cfg.Simulation.NY, cfg.Simulation.NZ, cfg.Simulation.LX, cfg.Simulation.LY, cfg.Simulation.LZ)
	nuc, materials := buildNuclearData(cfg)
	regions := buildRegions(cfg)

	seedCenters := montecarlo.SeedCentersByBand(grid, cfg.NUnits)
	sim, err := montecarlo.New(grid, nuc, materials, regions, seedCenters, montecarlo.Config{
		Dt:              vecmath.Real(cfg.Simulation.Dt),
		EMin:            vecmath.Real(cfg.Simulation.EMin),
		EMax:            vecmath.Real(cfg.Simulation.EMax),
		NParticles:      cfg.Simulation.NParticles,
		LoadBalance:     cfg.Simulation.LoadBalance,
		LowWeightCutoff: vecmath.Real(cfg.Simulation.LowWeightCutoff),
		BoundaryKind:    cfg.Simulation.BoundaryCondition,
		Seed:            cfg.Simulation.Seed,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	writer, err := report.NewWriter(*outputDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer writer.Close()

	for step := 0; step < cfg.Simulation.NSteps; step++ {
		start := time.Now()
		sim.RunCycle()
		elapsed := time.Since(start)

		var total uint64
		snap := sim.Units[0].Balance().Snapshot()
		for _, u := range sim.Units[1:] {
			other := u.Balance().Snapshot()
			snap.Start += other.Start
			snap.Source += other.Source
			snap.RR += other.RR
			snap.Split += other.Split
			snap.Absorb += other.Absorb
			snap.Scatter += other.Scatter
			snap.Fission += other.Fission
			snap.Produce += other.Produce
			snap.Collision += other.Collision
			snap.Census += other.Census
			snap.Escape += other.Escape
			snap.NumSegments += other.NumSegments
		}
		total = snap.End()
		montecarlo.Logf("cycle %d: end=%d absorb=%d scatter=%d fission=%d escape=%d (%.2fms)",
			step, total, snap.Absorb, snap.Scatter, snap.Fission, snap.Escape, float64(elapsed.Microseconds())/1000.0)

		if err := writer.WriteCycle(report.NewCycleRecord(step, elapsed, snap)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if path := firstNonEmpty(*crossSectionOut, cfg.Simulation.CrossSectionsOut); path != "" {
		if err := report.WriteCrossSections(path, nuc, materials); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if path := firstNonEmpty(*energySpectrum, cfg.Simulation.EnergySpectrum); path != "" {
		// No per-group energy tally is kept during the run, so every count
		// written here is zero.
		counts := make([]int, nuc.G+1)
		if err := report.WriteEnergySpectrum(path, nuc.Energies, counts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// applyOverrides layers CLI flags onto the loaded deck: a flag takes effect
// only when explicitly passed, since its zero value is indistinguishable
// from "not set" for these fields.
func applyOverrides(cfg *config.Parameters) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dt":
			cfg.Simulation.Dt = *dt
		case "lx":
			cfg.Simulation.LX = *lx
		case "ly":
			cfg.Simulation.LY = *ly
		case "lz":
			cfg.Simulation.LZ = *lz
		case "nx":
			cfg.Simulation.NX = *nx
		case "ny":
			cfg.Simulation.NY = *ny
		case "nz":
			cfg.Simulation.NZ = *nz
		case "n-particles":
			cfg.Simulation.NParticles = *nParticles
		case "n-steps":
			cfg.Simulation.NSteps = *nSteps
		case "seed":
			cfg.Simulation.Seed = *seed
		case "n-units":
			cfg.NUnits = *nUnits
		case "load-balance":
			cfg.Simulation.LoadBalance = *loadBalance
		}
	})
}

// buildNuclearData synthesizes the multigroup cross-section library and
// material database the deck's Material/CrossSection blocks describe. Every
// isotope of a material is synthesized identically (equal atom fraction,
// the material's own reaction mix): the deck format names only an isotope
// count, not per-isotope composition.
func buildNuclearData(cfg *config.Parameters) (*nuclear.Data, *material.Database) {
	nuc := nuclear.New(cfg.Simulation.NGroups, vecmath.Real(cfg.Simulation.EMin), vecmath.Real(cfg.Simulation.EMax))
	materials := material.NewDatabase()

	for name, m := range cfg.Material {
		mat := material.Material{Name: name, Mass: vecmath.Real(m.Mass), SourceRate: vecmath.Real(m.SourceRate)}
		fraction := vecmath.Real(1.0 / float64(m.NIsotopes))
		for i := 0; i < m.NIsotopes; i++ {
			gid := nuc.AddIsotope(nuclear.IsotopeSpec{
				NReactions:        m.NReactions,
				TotalCrossSection: vecmath.Real(m.TotalCrossSection),
				ScatterPoly:       polynomialOf(cfg, m.ScatteringCrossSection),
				AbsorptionPoly:    polynomialOf(cfg, m.AbsorptionCrossSection),
				FissionPoly:       polynomialOf(cfg, m.FissionCrossSection),
				ScatterWeight:     vecmath.Real(m.ScatteringCrossSectionRatio),
				AbsorptionWeight:  vecmath.Real(m.AbsorptionCrossSectionRatio),
				FissionWeight:     vecmath.Real(m.FissionCrossSectionRatio),
				NuBar:             nuBarOf(cfg, m.FissionCrossSection),
			})
			mat.Isotopes = append(mat.Isotopes, material.Isotope{GID: gid, AtomFraction: fraction})
		}
		materials.Add(mat)
	}
	return nuc, materials
}

func polynomialOf(cfg *config.Parameters, name string) vecmath.Polynomial {
	xs, ok := cfg.CrossSection[name]
	if !ok {
		return vecmath.Polynomial{}
	}
	return vecmath.Polynomial{AA: vecmath.Real(xs.A), BB: vecmath.Real(xs.B), CC: vecmath.Real(xs.C), DD: vecmath.Real(xs.D), EE: vecmath.Real(xs.E)}
}

func nuBarOf(cfg *config.Parameters, name string) vecmath.Real {
	xs, ok := cfg.CrossSection[name]
	if !ok {
		return 0
	}
	return vecmath.Real(xs.NuBar)
}

func buildRegions(cfg *config.Parameters) []material.GeometryRegion {
	regions := make([]material.GeometryRegion, 0, len(cfg.Geometry))
	for _, g := range cfg.Geometry {
		region := material.GeometryRegion{MaterialName: g.Material}
		switch g.Shape {
		case "sphere":
			region.Shape = material.ShapeSphere
			region.Radius = vecmath.Real(g.Radius)
			region.XCenter, region.YCenter, region.ZCenter = vecmath.Real(g.XCenter), vecmath.Real(g.YCenter), vecmath.Real(g.ZCenter)
		case "brick":
			region.Shape = material.ShapeBrick
			region.XMin, region.XMax = vecmath.Real(g.XMin), vecmath.Real(g.XMax)
			region.YMin, region.YMax = vecmath.Real(g.YMin), vecmath.Real(g.YMax)
			region.ZMin, region.ZMax = vecmath.Real(g.ZMin), vecmath.Real(g.ZMax)
		}
		regions = append(regions, region)
	}
	return regions
}
