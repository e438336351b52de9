package config

import "testing"

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, errs := Load("")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.Simulation.NX != 10 || cfg.Simulation.NY != 10 || cfg.Simulation.NZ != 10 {
		t.Errorf("expected default 10x10x10 mesh, got %d x %d x %d", cfg.Simulation.NX, cfg.Simulation.NY, cfg.Simulation.NZ)
	}
	if cfg.Simulation.BoundaryCondition != "reflect" {
		t.Errorf("expected default boundary condition reflect, got %q", cfg.Simulation.BoundaryCondition)
	}
	if cfg.NUnits == 0 {
		t.Error("expected computeDerived to fill NUnits")
	}
}

func TestParseDeckMergesBlocks(t *testing.T) {
	deck := []byte(`Simulation:
    nx: 4

Geometry:
    material: fuel
    shape: brick
    xMin: 0
    xMax: 1

Material:
    name: fuel
    mass: 1
    totalCrossSection: 1
    nIsotopes: 1
    nReactions: 1
    sourceRate: 0.5
    scatteringCrossSection: flat
    scatteringCrossSectionRatio: 1

CrossSection:
    name: flat
    A: 0
    B: 0
    C: 0
    D: 0
    E: 0
`)

	cfg := &Parameters{
		Material:     make(map[string]MaterialParams),
		CrossSection: make(map[string]CrossSectionParams),
	}
	if err := parseDeck(defaultsYAML, cfg); err != nil {
		t.Fatalf("parsing defaults: %v", err)
	}
	if err := parseDeck(deck, cfg); err != nil {
		t.Fatalf("parsing deck: %v", err)
	}

	if cfg.Simulation.NX != 4 {
		t.Errorf("expected overlay to set nx=4, got %d", cfg.Simulation.NX)
	}
	if cfg.Simulation.NY != 10 {
		t.Errorf("expected ny to keep default 10, got %d", cfg.Simulation.NY)
	}
	if len(cfg.Geometry) != 1 || cfg.Geometry[0].Material != "fuel" {
		t.Errorf("expected one geometry region referencing fuel, got %+v", cfg.Geometry)
	}
	if _, ok := cfg.Material["fuel"]; !ok {
		t.Error("expected material fuel to be registered")
	}
	if _, ok := cfg.CrossSection["flat"]; !ok {
		t.Error("expected cross section flat to be registered")
	}
}

func TestValidateCatchesUndefinedReferences(t *testing.T) {
	cfg := &Parameters{
		Simulation: SimulationParams{
			BoundaryCondition: "reflect",
			NGroups:           1,
			NX:                1, NY: 1, NZ: 1,
		},
		Geometry: []GeometryParams{
			{Material: "missing", Shape: "brick"},
		},
		Material:     make(map[string]MaterialParams),
		CrossSection: make(map[string]CrossSectionParams),
	}
	errs := cfg.validate()
	if len(errs) == 0 {
		t.Fatal("expected validation error for undefined material reference")
	}
}

func TestValidateRejectsUnknownBoundaryCondition(t *testing.T) {
	cfg := &Parameters{
		Simulation: SimulationParams{
			BoundaryCondition: "bogus",
			NGroups:           1,
			NX:                1, NY: 1, NZ: 1,
		},
		Material:     make(map[string]MaterialParams),
		CrossSection: make(map[string]CrossSectionParams),
	}
	errs := cfg.validate()
	if len(errs) == 0 {
		t.Fatal("expected validation error for unknown boundary condition")
	}
}
