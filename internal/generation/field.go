package generation

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"galaxy-server/internal/stellar"
)

// density returns stars per cubic light-year at p: an exponential disk
// modulated by logarithmic spiral arms, zero beyond the galaxy radius.
func (g *Generator) density(p stellar.Vec3) float64 {
	r := math.Hypot(p.X, p.Y)
	if r > g.cfg.GalaxyRadius {
		return 0
	}

	d := g.cfg.CentralDensity *
		math.Exp(-r/g.cfg.ScaleLength) *
		math.Exp(-math.Abs(p.Z)/g.cfg.ScaleHeight)

	if g.cfg.SpiralArms > 0 && g.cfg.ArmStrength > 0 && r >= 1 {
		theta := math.Atan2(p.Y, p.X)
		phase := float64(g.cfg.SpiralArms) * (theta - math.Log(r/g.cfg.ScaleLength)/g.pitchTan)
		d *= 1 + g.cfg.ArmStrength*math.Cos(phase)
	}
	return d
}

func (g *Generator) cellOf(p stellar.Vec3) cellKey {
	s := g.cfg.CellSize
	return cellKey{
		x: int64(math.Floor(p.X / s)),
		y: int64(math.Floor(p.Y / s)),
		z: int64(math.Floor(p.Z / s)),
	}
}

func (g *Generator) cellOrigin(c cellKey) stellar.Vec3 {
	s := g.cfg.CellSize
	return stellar.Vec3{X: float64(c.x) * s, Y: float64(c.y) * s, Z: float64(c.z) * s}
}

func (g *Generator) cellCenter(c cellKey) stellar.Vec3 {
	half := g.cfg.CellSize / 2
	return g.cellOrigin(c).Add(stellar.Vec3{X: half, Y: half, Z: half})
}

// cellPopulation is the number of field stars in a cell, drawn from a
// Poisson distribution around the density at the cell center.
func (g *Generator) cellPopulation(c cellKey) int {
	if !c.valid() {
		return 0
	}
	s := g.cfg.CellSize
	lambda := g.density(g.cellCenter(c)) * s * s * s
	if lambda == 0 {
		return 0
	}
	rng := newRand(g.seed, "cell", c.x, c.y, c.z)
	return min(poisson(rng, lambda), maxStarsPerCell)
}

// fieldStar materializes star index of cell c. It does not check the index
// against the cell population.
func (g *Generator) fieldStar(c cellKey, index int) stellar.Star {
	rng := newRand(g.seed, "star", c.x, c.y, c.z, int64(index))
	s := g.cfg.CellSize

	pos := g.cellOrigin(c).Add(stellar.Vec3{
		X: rng.Float64() * s,
		Y: rng.Float64() * s,
		Z: rng.Float64() * s,
	})
	starType, mass := drawStar(rng)

	return stellar.Star{
		ID:       encodeID(c, index, 0),
		Position: pos,
		Mass:     mass,
		Type:     starType,
	}
}

// drawStar picks a stellar type and mass in solar masses. Remnants and
// giants take small fixed fractions; the rest follow a broken power law
// initial mass function.
func drawStar(rng *rand.Rand) (stellar.StarType, float64) {
	roll := rng.Float64()
	switch {
	case roll < 0.0002:
		return stellar.StarTypeBlackHole, uniform(rng, 5, 20)
	case roll < 0.0015:
		return stellar.StarTypeNeutronStar, uniform(rng, 1.2, 2.1)
	case roll < 0.06:
		return stellar.StarTypeWhiteDwarf, uniform(rng, 0.5, 1.1)
	case roll < 0.07:
		return stellar.StarTypeRedGiant, uniform(rng, 0.8, 3)
	}

	var mass float64
	segment := rng.Float64()
	switch {
	case segment < 0.15:
		mass = powerLaw(rng, 0.013, 0.08, 0.3)
	case segment < 0.77:
		mass = powerLaw(rng, 0.08, 0.5, 1.3)
	default:
		mass = powerLaw(rng, 0.5, 120, 2.3)
	}
	return stellar.MainSequenceType(mass), mass
}

func (g *Generator) GetNearbyStars(center stellar.Vec3, radius float64, maxStars int) []stellar.Star {
	radius = min(radius, g.cfg.NearbyMaxRadius)
	if radius < 0 || math.IsNaN(radius) || maxStars <= 0 {
		return nil
	}

	lo := g.cellOf(center.Sub(stellar.Vec3{X: radius, Y: radius, Z: radius}))
	hi := g.cellOf(center.Add(stellar.Vec3{X: radius, Y: radius, Z: radius}))

	type candidate struct {
		star stellar.Star
		dist float64
	}
	var found []candidate

	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			for z := lo.z; z <= hi.z; z++ {
				c := cellKey{x, y, z}
				if g.cellDistance(c, center) > radius {
					continue
				}
				n := g.cellPopulation(c)
				for i := range n {
					s := g.fieldStar(c, i)
					if d := s.Position.DistanceTo(center); d <= radius {
						found = append(found, candidate{star: s, dist: d})
					}
				}
			}
		}
	}

	slices.SortFunc(found, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.star.ID, b.star.ID)
	})

	if len(found) > maxStars {
		found = found[:maxStars]
	}
	stars := make([]stellar.Star, len(found))
	for i, f := range found {
		stars[i] = f.star
	}
	return stars
}

// cellDistance is the distance from p to the closest point of cell c.
func (g *Generator) cellDistance(c cellKey, p stellar.Vec3) float64 {
	lo := g.cellOrigin(c)
	s := g.cfg.CellSize
	axis := func(v, edge float64) float64 {
		switch {
		case v < edge:
			return edge - v
		case v > edge+s:
			return v - edge - s
		}
		return 0
	}
	dx := axis(p.X, lo.X)
	dy := axis(p.Y, lo.Y)
	dz := axis(p.Z, lo.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
