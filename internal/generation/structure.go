package generation

import (
	"math"
	"runtime"
	"slices"
	"sync"

	"galaxy-server/internal/stellar"
)

// disk thickness sampled by structure and estimate passes, in scale heights
const diskHeightScales = 6

const maxEstimateSteps = 400

type blockKey struct {
	x, y, z int64
}

func (c Config) diskHalfHeight() float64 {
	return math.Min(diskHeightScales*c.ScaleHeight, c.GalaxyRadius)
}

// structureBlockBound is the size of the block grid before columns outside
// the disk are skipped.
func (c Config) structureBlockBound() float64 {
	nxy := math.Ceil(c.GalaxyRadius / c.StructureBlockSize)
	nz := math.Ceil(c.diskHalfHeight() / c.StructureBlockSize)
	return (2 * nxy) * (2 * nxy) * (2 * nz)
}

func (g *Generator) structureBlocks() []blockKey {
	size := g.cfg.StructureBlockSize
	nxy := int64(math.Ceil(g.cfg.GalaxyRadius / size))
	nz := int64(math.Ceil(g.cfg.diskHalfHeight() / size))

	var blocks []blockKey
	for x := -nxy; x < nxy; x++ {
		for y := -nxy; y < nxy; y++ {
			// skip columns entirely outside the disk
			cx := (float64(x) + 0.5) * size
			cy := (float64(y) + 0.5) * size
			if math.Hypot(cx, cy)-size*math.Sqrt2/2 > g.cfg.GalaxyRadius {
				continue
			}
			for z := -nz; z < nz; z++ {
				blocks = append(blocks, blockKey{x, y, z})
			}
		}
	}
	return blocks
}

// GetGalacticStructure samples each structure block in proportion to its
// relative density. Every sample is a real field star, picked by choosing a
// cell of the block and one index within that cell, so the cost is bounded
// by the sample count and not by the stars in the galaxy.
func (g *Generator) GetGalacticStructure(maxStars int) []stellar.Star {
	if maxStars <= 0 {
		return nil
	}

	blocks := g.structureBlocks()
	results := make([][]stellar.Star, len(blocks))

	workers := runtime.GOMAXPROCS(0)
	chunk := max(1, (len(blocks)+workers-1)/workers)

	// one goroutine per chunk, at most GOMAXPROCS of them
	var wg sync.WaitGroup
	for start := 0; start < len(blocks); start += chunk {
		end := min(start+chunk, len(blocks))
		wg.Go(func() {
			for i := start; i < end; i++ {
				results[i] = g.sampleBlock(blocks[i])
			}
		})
	}
	wg.Wait()

	var stars []stellar.Star
	for _, r := range results {
		stars = append(stars, r...)
	}

	slices.SortFunc(stars, stellar.CompareSalience)
	stars = slices.CompactFunc(stars, func(a, b stellar.Star) bool { return a.ID == b.ID })

	if len(stars) > maxStars {
		stars = stars[:maxStars]
	}
	return stars
}

func (g *Generator) sampleBlock(b blockKey) []stellar.Star {
	size := g.cfg.StructureBlockSize
	origin := stellar.Vec3{X: float64(b.x) * size, Y: float64(b.y) * size, Z: float64(b.z) * size}
	center := origin.Add(stellar.Vec3{X: size / 2, Y: size / 2, Z: size / 2})

	relative := g.density(center) / g.cfg.CentralDensity
	if relative <= 0 {
		return nil
	}

	rng := newRand(g.seed, "block", b.x, b.y, b.z)
	samples := stochasticRound(rng, float64(g.cfg.StructureSamplesPerBlock)*relative)
	if samples == 0 {
		return nil
	}

	first := g.cellOf(origin)
	span := max(1, int64(math.Ceil(size/g.cfg.CellSize)))

	stars := make([]stellar.Star, 0, samples)
	for range samples {
		c := cellKey{
			x: first.x + rng.Int64N(span),
			y: first.y + rng.Int64N(span),
			z: first.z + rng.Int64N(span),
		}
		n := g.cellPopulation(c)
		if n == 0 {
			continue
		}
		stars = append(stars, g.fieldStar(c, rng.IntN(n)))
	}
	return stars
}

// EstimateTotalStars sums density times block volume over a grid of cubes
// with edge referenceRadius. Results are memoized per reference radius.
func (g *Generator) EstimateTotalStars(referenceRadius float64) float64 {
	if referenceRadius <= 0 || math.IsNaN(referenceRadius) || math.IsInf(referenceRadius, 0) {
		return 0
	}

	g.estimatesMu.Lock()
	defer g.estimatesMu.Unlock()
	if v, ok := g.estimates[referenceRadius]; ok {
		return v
	}

	// bound the grid for tiny reference radii
	step := math.Max(referenceRadius, g.cfg.GalaxyRadius/maxEstimateSteps)
	nxy := int64(math.Ceil(g.cfg.GalaxyRadius / step))
	nz := int64(math.Ceil(g.cfg.diskHalfHeight() / step))

	var sum float64
	for x := -nxy; x < nxy; x++ {
		for y := -nxy; y < nxy; y++ {
			for z := -nz; z < nz; z++ {
				sum += g.density(stellar.Vec3{
					X: (float64(x) + 0.5) * step,
					Y: (float64(y) + 0.5) * step,
					Z: (float64(z) + 0.5) * step,
				})
			}
		}
	}

	total := sum * step * step * step
	g.estimates[referenceRadius] = total
	return total
}
