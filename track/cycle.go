package track

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/transportproxy/particle"
)

// Result is how a particle's tracking this cycle ended.
type Result int

const (
	// ResultCensus means the particle survived to the end of the time step
	// and should be kept for the next cycle.
	ResultCensus Result = iota
	// ResultTerminated means the particle was absorbed, escaped, or was a
	// fission event with no surviving output: it is logically deleted.
	ResultTerminated
	// ResultOffUnit means the particle crossed onto a neighboring unit's
	// domain and was appended to the send queue; it is no longer this
	// unit's responsibility this cycle.
	ResultOffUnit
)

// TrackParticle drives p through successive segments, dispatching on each
// segment's outcome, until it reaches census, terminates, or is harded off
// to another unit. Fission progeny are appended to extra; particles handed
// to a neighbor are appended to sendQueue by FacetCrossing.
func TrackParticle(u *Unit, p *particle.Particle, extra *[]particle.Particle, sendQueue *[]particle.SendEntry) Result {
	for {
		outcome := SegmentOutcome(u, p)
		p.NumSegments++
		u.Balance.NumSegments.Add(1)

		switch outcome {
		case OutcomeCollision:
			survived, progeny := Collision(u, p)
			if len(progeny) > 0 {
				*extra = append(*extra, progeny...)
			}
			if !survived {
				p.Species = particle.Unknown
				return ResultTerminated
			}

		case OutcomeFacetCrossing:
			switch FacetCrossing(u, p, sendQueue) {
			case FacetContinue:
				// keep tracking in the (possibly new) cell
			case FacetTerminated:
				p.Species = particle.Unknown
				return ResultTerminated
			case FacetOffUnit:
				p.Species = particle.Unknown
				return ResultOffUnit
			}

		case OutcomeCensus:
			u.Balance.Census.Add(1)
			return ResultCensus
		}
	}
}

// workerChunks splits n items into roughly equal contiguous ranges, one per
// available CPU, so RunCycle's goroutines each own a private slice of
// container.Processing with no shared mutable state until the merge.
func workerChunks(n int) [][2]int {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunks := make([][2]int, 0, workers)
	base := n / workers
	rem := n % workers
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, [2]int{start, start + size})
		start += size
	}
	return chunks
}

// RunCycle tracks every particle in container.Processing to completion for
// this time step: it drains processing, folds extra progeny back in, and
// drains the send queue into extra, repeating until all three buckets are
// empty. Particles still alive at the end (census survivors) land in
// container.Processed; everything else is dropped.
//
// Each goroutine owns private extra/send-queue scratch slices so the hot
// tracking loop never takes a lock; the per-goroutine results are merged
// into the container's shared buckets single-threaded after every worker
// finishes its chunk.
func RunCycle(u *Unit, container *particle.Container) {
	for !container.Done() {
		chunks := workerChunks(len(container.Processing))
		localExtra := make([][]particle.Particle, len(chunks))
		localSendQueue := make([][]particle.SendEntry, len(chunks))

		var wg sync.WaitGroup
		wg.Add(len(chunks))
		for ci, rng := range chunks {
			ci, rng := ci, rng
			go func() {
				defer wg.Done()
				var extra []particle.Particle
				var sendQueue []particle.SendEntry
				for i := rng[0]; i < rng[1]; i++ {
					p := &container.Processing[i]
					TrackParticle(u, p, &extra, &sendQueue)
				}
				localExtra[ci] = extra
				localSendQueue[ci] = sendQueue
			}()
		}
		wg.Wait()

		for _, p := range container.Processing {
			if p.Species != particle.Unknown {
				container.AppendSurvivor(p)
			}
		}
		container.Processing = container.Processing[:0]

		for _, le := range localExtra {
			container.Extra = append(container.Extra, le...)
		}
		for _, lq := range localSendQueue {
			container.SendQueue = append(container.SendQueue, lq...)
		}

		container.DrainSendQueue()
		container.FoldExtra()
	}
}
