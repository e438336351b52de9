package particle

// Container holds the particles belonging to one execution unit across a
// cycle: the chunk currently being tracked, the chunk already tracked this
// cycle, fission/split progeny awaiting their first segment, and particles
// addressed to a neighbor unit's domain awaiting transfer.
//
// processing and processed swap roles at each cycle boundary: last cycle's
// survivors become this cycle's starting population.
type Container struct {
	Processing []Particle
	Processed  []Particle
	Extra      []Particle
	SendQueue  []SendEntry
}

// SendEntry is a particle addressed to a neighboring unit, tagged with the
// index (into the owning MeshDomain's neighbor list) of the unit it is
// bound for.
type SendEntry struct {
	NeighborIndex int
	Particle      Particle
}

// NewContainer returns an empty container with capacity hints for its
// processing and extra slices.
func NewContainer(regularCapacity, extraCapacity int) *Container {
	return &Container{
		Processing: make([]Particle, 0, regularCapacity),
		Extra:      make([]Particle, 0, extraCapacity),
	}
}

// SwapProcessingProcessed makes last cycle's survivors (processed) this
// cycle's starting population, clearing processed for reuse.
func (c *Container) SwapProcessingProcessed() {
	c.Processing, c.Processed = c.Processed, c.Processing[:0]
}

// AppendSurvivor records that a tracked particle finished its cycle still
// alive, placing it in processed.
func (c *Container) AppendSurvivor(p Particle) {
	c.Processed = append(c.Processed, p)
}

// FoldExtra moves this cycle's fission/split progeny into processing so
// they get their first segment before the cycle can end.
func (c *Container) FoldExtra() {
	if len(c.Extra) == 0 {
		return
	}
	c.Processing = append(c.Processing, c.Extra...)
	c.Extra = c.Extra[:0]
}

// DrainSendQueue moves every queued off-unit particle into extra (the
// shared-memory stand-in for a real inter-process transfer: the particle's
// domain/cell/facet already address the destination unit's local space) and
// clears the queue.
func (c *Container) DrainSendQueue() {
	for _, e := range c.SendQueue {
		c.Extra = append(c.Extra, e.Particle)
	}
	c.SendQueue = c.SendQueue[:0]
}

// Done reports whether all three buckets are empty, the tracking loop's
// per-cycle termination condition.
func (c *Container) Done() bool {
	return len(c.Processing) == 0 && len(c.Extra) == 0 && len(c.SendQueue) == 0
}

// RegulateOverPopulated applies Russian roulette to processing in place,
// keeping only survivors. Called when split_rr_factor < 1 (too many
// particles for the per-cycle target). Returns the number of particles
// killed.
func (c *Container) RegulateOverPopulated(splitRRFactor float64) (rrKilled int) {
	survivors := c.Processing[:0]
	for _, p := range c.Processing {
		p := p
		if !p.OverPopulatedRR(splitRRFactor) {
			rrKilled++
			continue
		}
		survivors = append(survivors, p)
	}
	c.Processing = survivors
	return rrKilled
}

// RegulateUnderPopulated splits every particle in processing in place,
// appending clones directly back to processing. Called when
// split_rr_factor > 1 (too few particles for the per-cycle target). Returns
// the number of clones added.
func (c *Container) RegulateUnderPopulated(splitRRFactor float64) (split int) {
	n := len(c.Processing)
	var clones []Particle
	for i := 0; i < n; i++ {
		clones = append(clones, c.Processing[i].UnderPopulatedSplit(splitRRFactor)...)
	}
	c.Processing = append(c.Processing, clones...)
	return len(clones)
}

// RouletteLowWeight gives every particle in processing currently at or
// below cutoff (relativeCutoff * sourceParticleWeight) a second chance to
// survive at divided weight, killing the rest. Applied after over/under
// population regulation each cycle. Returns the number killed.
func (c *Container) RouletteLowWeight(relativeCutoff, sourceParticleWeight float64) (rrKilled int) {
	if relativeCutoff <= 0 {
		return 0
	}
	cutoff := relativeCutoff * sourceParticleWeight
	survivors := c.Processing[:0]
	for _, p := range c.Processing {
		p := p
		if p.Weight > cutoff {
			survivors = append(survivors, p)
			continue
		}
		if !p.LowWeightRR(cutoff, relativeCutoff) {
			rrKilled++
			continue
		}
		survivors = append(survivors, p)
	}
	c.Processing = survivors
	return rrKilled
}
