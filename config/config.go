// Package config loads and validates run parameters: an input deck of
// YAML-like blocks (Simulation, Geometry, Material, CrossSection) overlaid
// on embedded defaults, plus CLI-only parallelism controls.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// SimulationParams are the run-level controls: time stepping, mesh extent
// and resolution, energy range and grouping, and the boundary/population
// policy knobs.
type SimulationParams struct {
	InputFile         string  `yaml:"inputFile"`
	EnergySpectrum    string  `yaml:"energySpectrum"`
	CrossSectionsOut  string  `yaml:"crossSectionsOut"`
	BoundaryCondition string  `yaml:"boundaryCondition"`
	LoadBalance       bool    `yaml:"loadBalance"`
	NParticles        int     `yaml:"nParticles"`
	NSteps            int     `yaml:"nSteps"`
	NX                int     `yaml:"nx"`
	NY                int     `yaml:"ny"`
	NZ                int     `yaml:"nz"`
	Seed              uint64  `yaml:"seed"`
	Dt                float64 `yaml:"dt"`
	LX                float64 `yaml:"lx"`
	LY                float64 `yaml:"ly"`
	LZ                float64 `yaml:"lz"`
	EMin              float64 `yaml:"eMin"`
	EMax              float64 `yaml:"eMax"`
	NGroups           int     `yaml:"nGroups"`
	LowWeightCutoff   float64 `yaml:"lowWeightCutoff"`
	CoralBenchmark    bool    `yaml:"coralBenchmark"`
}

// GeometryParams paints one region of the mesh with a material. Regions
// are layered in declaration order: see material.AssignMaterial.
type GeometryParams struct {
	Material string  `yaml:"material"`
	Shape    string  `yaml:"shape"`
	Radius   float64 `yaml:"radius"`
	XCenter  float64 `yaml:"xCenter"`
	YCenter  float64 `yaml:"yCenter"`
	ZCenter  float64 `yaml:"zCenter"`
	XMin     float64 `yaml:"xMin"`
	XMax     float64 `yaml:"xMax"`
	YMin     float64 `yaml:"yMin"`
	YMax     float64 `yaml:"yMax"`
	ZMin     float64 `yaml:"zMin"`
	ZMax     float64 `yaml:"zMax"`
}

// MaterialParams names the isotope/reaction mix and volumetric source rate
// of one material, referencing CrossSection blocks by name.
type MaterialParams struct {
	Name                         string  `yaml:"name"`
	Mass                         float64 `yaml:"mass"`
	TotalCrossSection            float64 `yaml:"totalCrossSection"`
	NIsotopes                    int     `yaml:"nIsotopes"`
	NReactions                   int     `yaml:"nReactions"`
	SourceRate                   float64 `yaml:"sourceRate"`
	ScatteringCrossSection       string  `yaml:"scatteringCrossSection"`
	AbsorptionCrossSection       string  `yaml:"absorptionCrossSection"`
	FissionCrossSection          string  `yaml:"fissionCrossSection"`
	ScatteringCrossSectionRatio  float64 `yaml:"scatteringCrossSectionRatio"`
	AbsorptionCrossSectionRatio  float64 `yaml:"absorptionCrossSectionRatio"`
	FissionCrossSectionRatio     float64 `yaml:"fissionCrossSectionRatio"`
}

// CrossSectionParams are the log-log polynomial coefficients and fission
// yield of one named cross-section curve.
type CrossSectionParams struct {
	Name  string  `yaml:"name"`
	A     float64 `yaml:"A"`
	B     float64 `yaml:"B"`
	C     float64 `yaml:"C"`
	D     float64 `yaml:"D"`
	E     float64 `yaml:"E"`
	NuBar float64 `yaml:"nuBar"`
}

// Parameters is the full, validated run configuration: the input-deck
// blocks plus CLI-only parallelism controls not expressible in the deck
// grammar.
type Parameters struct {
	Simulation   SimulationParams
	Geometry     []GeometryParams
	Material     map[string]MaterialParams
	CrossSection map[string]CrossSectionParams

	NUnits          int
	NThreads        int
	ChunkSize       int
	SinglePrecision bool
}

// block is the per-block decode target: an input deck block sets exactly
// one of these pointers, since each block's YAML text is exactly one
// top-level key ("Simulation:", "Geometry:", "Material:" or
// "CrossSection:") followed by its fields.
type block struct {
	Simulation   *SimulationParams    `yaml:"Simulation"`
	Geometry     *GeometryParams      `yaml:"Geometry"`
	Material     *MaterialParams      `yaml:"Material"`
	CrossSection *CrossSectionParams  `yaml:"CrossSection"`
}

// global holds the loaded configuration.
var global *Parameters

// Init loads configuration from the given input-deck path, or uses
// embedded defaults alone if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, errs := Load(path)
	if len(errs) > 0 {
		return joinErrors(errs)
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Parameters {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load parses path's input deck (if path is nonempty) over the embedded
// defaults, validates the result, and returns every validation failure
// found rather than stopping at the first. A nonempty error slice means
// cfg is not safe to run.
func Load(path string) (*Parameters, []error) {
	cfg := &Parameters{
		Material:     make(map[string]MaterialParams),
		CrossSection: make(map[string]CrossSectionParams),
	}

	if err := parseDeck(defaultsYAML, cfg); err != nil {
		return nil, []error{fmt.Errorf("parsing embedded defaults: %w", err)}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, []error{fmt.Errorf("reading input deck %q: %w", path, err)}
		}
		if err := parseDeck(data, cfg); err != nil {
			return nil, []error{fmt.Errorf("parsing input deck %q: %w", path, err)}
		}
	}

	cfg.computeDerived()

	if errs := cfg.validate(); len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// parseDeck splits data into blank-line-separated blocks, decodes each as
// YAML, and merges every recognized block kind into cfg: Simulation
// overlays field-by-field (later blocks only override the keys they set),
// Geometry blocks append, and Material/CrossSection blocks key into their
// maps by name.
func parseDeck(data []byte, cfg *Parameters) error {
	for _, raw := range splitBlocks(string(data)) {
		var b block
		if err := yaml.Unmarshal([]byte(raw), &b); err != nil {
			return fmt.Errorf("decoding block:\n%s\n%w", raw, err)
		}
		switch {
		case b.Simulation != nil:
			if err := yaml.Unmarshal([]byte(raw), &struct {
				Simulation *SimulationParams `yaml:"Simulation"`
			}{&cfg.Simulation}); err != nil {
				return err
			}
		case b.Geometry != nil:
			cfg.Geometry = append(cfg.Geometry, *b.Geometry)
		case b.Material != nil:
			cfg.Material[b.Material.Name] = *b.Material
		case b.CrossSection != nil:
			cfg.CrossSection[b.CrossSection.Name] = *b.CrossSection
		}
	}
	return nil
}

// splitBlocks breaks an input deck into blank-line-separated chunks,
// discarding empty ones.
func splitBlocks(data string) []string {
	var blocks []string
	for _, chunk := range strings.Split(data, "\n\n") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		blocks = append(blocks, chunk)
	}
	return blocks
}

// computeDerived fills parallelism controls left at their zero value.
func (c *Parameters) computeDerived() {
	if c.NUnits == 0 {
		c.NUnits = runtime.GOMAXPROCS(0)
	}
	if c.NThreads == 0 {
		c.NThreads = runtime.GOMAXPROCS(0)
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = 1
	}
}

// validate accumulates every input-error found rather than stopping at the
// first, so a caller can report them all at once.
func (c *Parameters) validate() []error {
	var errs []error

	switch c.Simulation.BoundaryCondition {
	case "reflect", "escape", "octant":
	default:
		errs = append(errs, fmt.Errorf("Simulation.boundaryCondition: unknown value %q", c.Simulation.BoundaryCondition))
	}
	if c.Simulation.NGroups <= 0 {
		errs = append(errs, fmt.Errorf("Simulation.nGroups must be positive, got %d", c.Simulation.NGroups))
	}
	if c.Simulation.NX <= 0 || c.Simulation.NY <= 0 || c.Simulation.NZ <= 0 {
		errs = append(errs, fmt.Errorf("Simulation.nx/ny/nz must all be positive"))
	}

	for i, g := range c.Geometry {
		switch g.Shape {
		case "brick", "sphere":
		default:
			errs = append(errs, fmt.Errorf("Geometry[%d]: unknown shape %q", i, g.Shape))
		}
		if _, ok := c.Material[g.Material]; !ok {
			errs = append(errs, fmt.Errorf("Geometry[%d]: references undefined material %q", i, g.Material))
		}
	}

	for name, m := range c.Material {
		for _, ref := range []string{m.ScatteringCrossSection, m.AbsorptionCrossSection, m.FissionCrossSection} {
			if ref == "" {
				continue
			}
			if _, ok := c.CrossSection[ref]; !ok {
				errs = append(errs, fmt.Errorf("Material %q: references undefined cross section %q", name, ref))
			}
		}
		if m.NIsotopes <= 0 {
			errs = append(errs, fmt.Errorf("Material %q: nIsotopes must be positive, got %d", name, m.NIsotopes))
		}
		if m.NReactions <= 0 {
			errs = append(errs, fmt.Errorf("Material %q: nReactions must be positive, got %d", name, m.NReactions))
		}
	}

	return errs
}

func joinErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("config: %d error(s):\n%s", len(errs), strings.Join(msgs, "\n"))
}
