package montecarlo

import (
	"sync"

	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/vecmath"
)

// Config is the subset of run parameters Simulation needs every cycle,
// independent of how they were parsed.
type Config struct {
	Dt              vecmath.Real
	EMin, EMax      vecmath.Real
	NParticles      int
	LoadBalance     bool
	LowWeightCutoff vecmath.Real
	BoundaryKind    string

	// Seed perturbs every cell's starting source-tally seed so a run's
	// entire particle-seed stream is reproducibly derived from one master
	// seed, without threading a seed parameter through geometry/population.
	Seed uint64
}

// Simulation owns the partitioned grid, one Unit per domain, and the shared
// nuclear data and material database every unit tracks against.
type Simulation struct {
	Grid      *geometry.FCCGrid
	Nuclear   *nuclear.Data
	Materials *material.Database
	Units     []*Unit

	cfg Config
}

// New partitions grid into len(seedCenters) domains (one per entry, domain
// GID equal to its index), builds each domain's mesh, cell states and
// Unit, and returns the assembled Simulation.
func New(grid *geometry.FCCGrid, nuc *nuclear.Data, materials *material.Database, regions []material.GeometryRegion, seedCenters []vecmath.Vec3, cfg Config) (*Simulation, error) {
	boundary, err := geometry.BoundaryConditions(cfg.BoundaryKind)
	if err != nil {
		return nil, err
	}

	nUnits := len(seedCenters)
	partitions := make([]*geometry.MeshPartition, nUnits)
	for i := 0; i < nUnits; i++ {
		p := geometry.NewMeshPartition(i, i)
		p.Build(grid, seedCenters)
		partitions[i] = p
	}
	geometry.ResolveHaloCellInfo(partitions)

	units := make([]*Unit, nUnits)
	for i, p := range partitions {
		domain := geometry.NewMeshDomain(grid, p, boundary)
		cellStates := geometry.BuildCellStates(grid, domain, regions, materials)
		for ci := range cellStates {
			cellStates[ci].SourceTally ^= cfg.Seed
		}
		units[i] = NewUnit(i, domain, cellStates, nuc, materials, nuc.G)
	}

	return &Simulation{Grid: grid, Nuclear: nuc, Materials: materials, Units: units, cfg: cfg}, nil
}

// SeedCentersByBand picks one seed center per unit by splitting the grid's
// cells into nUnits contiguous bands along its longest axis and averaging
// each band's cell centers. There is no load-balanced partitioner in scope
// here: this is a simple, deterministic stand-in that gives every domain a
// geometrically compact, non-overlapping starting region for the
// nearest-center flood fill to refine.
func SeedCentersByBand(grid *geometry.FCCGrid, nUnits int) []vecmath.Vec3 {
	if nUnits <= 1 {
		return []vecmath.Vec3{grid.CellCenter(grid.NumCells() / 2)}
	}

	axis := 0
	longest := grid.LX
	if grid.LY > longest {
		axis, longest = 1, grid.LY
	}
	if grid.LZ > longest {
		axis = 2
	}

	n := [3]int{grid.NX, grid.NY, grid.NZ}[axis]
	sums := make([]vecmath.Vec3, nUnits)
	counts := make([]int, nUnits)

	for idx := 0; idx < grid.NumCells(); idx++ {
		x, y, z := grid.CellIdxToTuple(idx)
		coord := [3]int{x, y, z}[axis]
		band := coord * nUnits / n
		if band >= nUnits {
			band = nUnits - 1
		}
		sums[band] = sums[band].Add(grid.CellCenter(idx))
		counts[band]++
	}

	centers := make([]vecmath.Vec3, nUnits)
	for i := range centers {
		if counts[i] == 0 {
			centers[i] = grid.CellCenter(grid.NumCells() / 2)
			continue
		}
		centers[i] = sums[i].Scale(1.0 / vecmath.Real(counts[i]))
	}
	return centers
}

// RunCycle advances every unit through one cycle: every unit sources
// concurrently, then (after a barrier, since the split/Russian-roulette
// factor needs the post-source count summed across every unit) every unit
// regulates and tracks concurrently.
func (s *Simulation) RunCycle() {
	nUnits := len(s.Units)
	localCounts := make([]int, nUnits)

	var wg sync.WaitGroup
	wg.Add(nUnits)
	for i, u := range s.Units {
		i, u := i, u
		go func() {
			defer wg.Done()
			localCounts[i] = u.CycleSource(s.Nuclear, s.Materials, s.cfg.Dt, s.cfg.EMin, s.cfg.EMax, s.cfg.NParticles)
		}()
	}
	wg.Wait()

	globalCount := 0
	for _, c := range localCounts {
		globalCount += c
	}

	wg.Add(nUnits)
	for _, u := range s.Units {
		u := u
		go func() {
			defer wg.Done()
			u.CycleRegulateAndTrack(s.cfg.LowWeightCutoff, s.cfg.NParticles, nUnits, globalCount, s.cfg.LoadBalance)
		}()
	}
	wg.Wait()
}

// RunSteps advances the simulation nSteps cycles, logging a one-line summary
// after each.
func (s *Simulation) RunSteps(nSteps int) {
	for step := 0; step < nSteps; step++ {
		s.RunCycle()

		var start, end, absorb, scatter, fission, census, escape uint64
		for _, u := range s.Units {
			snap := u.Balance().Snapshot()
			start += snap.Start
			end += snap.End()
			absorb += snap.Absorb
			scatter += snap.Scatter
			fission += snap.Fission
			census += snap.Census
			escape += snap.Escape
		}
		Logf("cycle %d: start=%d end=%d absorb=%d scatter=%d fission=%d census=%d escape=%d",
			step, start, end, absorb, scatter, fission, census, escape)
	}
}
