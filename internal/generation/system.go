package generation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"galaxy-server/internal/stellar"
)

const (
	lightYearsPerAU = 1.0 / 63241.077

	earthRadiusKm = 6371.0
	maxPlanets    = 12
	maxMoons      = 16
)

// buildSystem expands a field star into its full system. The draw order is
// fixed, so the result depends only on the seed and the primary's ID.
func (g *Generator) buildSystem(primary stellar.Star) *stellar.StarSystem {
	rng := newRand(g.seed, "system", int64(primary.ID))

	configuration, stars, components := g.arrangeStars(rng, primary)

	for i := range components {
		populatePlanets(rng, &components[i], stars)
	}

	system := &stellar.StarSystem{
		StarID:            primary.ID,
		Position:          primary.Position,
		Stars:             stars,
		Configuration:     configuration,
		StellarComponents: components,
	}

	host := components[0]
	system.FrostLine = host.FrostLine
	system.HabitableZoneInner = host.HabitableZoneInner
	system.HabitableZoneOuter = host.HabitableZoneOuter

	if len(components) == 1 {
		system.InnerPlanets = host.InnerPlanets
		system.OuterPlanets = host.OuterPlanets
	}

	for i := range components {
		system.AsteroidBelts = append(system.AsteroidBelts, placeBelts(rng, components, i)...)
	}

	if _, unstable := configuration.(stellar.UnstableTriple); !unstable {
		system.OortCloud = buildOortCloud(rng, primary, totalMass(stars))
	}

	return system
}

func (g *Generator) arrangeStars(rng *rand.Rand, primary stellar.Star) (stellar.StellarConfiguration, []stellar.Star, []stellar.StellarComponent) {
	stars := []stellar.Star{primary}

	roll := rng.Float64()
	switch primary.Type {
	case stellar.StarTypeBlackHole, stellar.StarTypeNeutronStar, stellar.StarTypeBrownDwarf:
		// compact and substellar primaries rarely keep companions
		if rng.Float64() < 0.9 {
			roll = 0
		}
	}

	switch {
	case roll < 0.50:
		return stellar.Single{}, stars, []stellar.StellarComponent{
			newComponent(stars, []int{0}, stellar.Vec3{}, 0, 0),
		}

	case roll < 0.68:
		sep := logUniform(rng, 0.01, 5)
		stars = append(stars, companion(rng, primary, 1, sep))
		contact := sep < 0.02*math.Cbrt(totalMass(stars))
		comp := newComponent(stars, []int{0, 1}, stellar.Vec3{}, sep, 0)
		return stellar.CloseBinary{SeparationAU: sep, IsContact: contact}, stars, []stellar.StellarComponent{comp}

	case roll < 0.85:
		sep := logUniform(rng, 50, 5000)
		stars = append(stars, companion(rng, primary, 1, sep))
		a, b := splitBarycenters(sep, stars[0].Mass, stars[1].Mass)
		return stellar.WideBinary{SeparationAU: sep}, stars, []stellar.StellarComponent{
			newComponent(stars, []int{0}, a, 0, sep/3),
			newComponent(stars, []int{1}, b, 0, sep/3),
		}

	case roll < 0.97:
		inner := logUniform(rng, 0.05, 5)
		outer := logUniform(rng, 100, 5000)
		stars = append(stars, companion(rng, primary, 1, inner), companion(rng, primary, 2, outer))
		a, b := splitBarycenters(outer, stars[0].Mass+stars[1].Mass, stars[2].Mass)
		return stellar.HierarchicalTriple{InnerSeparationAU: inner, OuterSeparationAU: outer}, stars, []stellar.StellarComponent{
			newComponent(stars, []int{0, 1}, a, inner, outer/3),
			newComponent(stars, []int{2}, b, 0, outer/3),
		}

	default:
		for member := 1; member <= 2; member++ {
			stars = append(stars, companion(rng, primary, member, uniform(rng, 10, 100)))
		}
		// chaotic orbits leave no stable planetary zone
		var comps []stellar.StellarComponent
		for i := range stars {
			angle := 2 * math.Pi * float64(i) / 3
			d := uniform(rng, 10, 100)
			bary := stellar.Vec3{X: d * math.Cos(angle), Y: d * math.Sin(angle)}
			c := newComponent(stars, []int{i}, bary, 0, 0)
			c.PlanetOuterLimit = c.PlanetInnerLimit
			comps = append(comps, c)
		}
		return stellar.UnstableTriple{}, stars, comps
	}
}

// companion draws a lighter star bound to primary at the given separation in
// AU. Its ID differs from the primary's only in the member ordinal.
func companion(rng *rand.Rand, primary stellar.Star, member int, separationAU float64) stellar.Star {
	mass := primary.Mass * uniform(rng, 0.1, 1)
	if primary.Type == stellar.StarTypeBlackHole || primary.Type == stellar.StarTypeNeutronStar {
		mass = uniform(rng, 0.1, 2)
	}
	angle := uniform(rng, 0, 2*math.Pi)
	offset := stellar.Vec3{
		X: separationAU * lightYearsPerAU * math.Cos(angle),
		Y: separationAU * lightYearsPerAU * math.Sin(angle),
	}
	return stellar.Star{
		ID:       primaryID(primary.ID) | uint64(member),
		Position: primary.Position.Add(offset),
		Mass:     mass,
		Type:     stellar.MainSequenceType(mass),
	}
}

// splitBarycenters places two bodies on the x axis around their common
// center of mass.
func splitBarycenters(separation, m1, m2 float64) (stellar.Vec3, stellar.Vec3) {
	total := m1 + m2
	return stellar.Vec3{X: -separation * m2 / total}, stellar.Vec3{X: separation * m1 / total}
}

func totalMass(stars []stellar.Star) float64 {
	var m float64
	for _, s := range stars {
		m += s.Mass
	}
	return m
}

func newComponent(stars []stellar.Star, indices []int, bary stellar.Vec3, separation, outerLimit float64) stellar.StellarComponent {
	var mass, lum float64
	for _, i := range indices {
		mass += stars[i].Mass
		lum += stars[i].Luminosity()
	}

	hzInner, hzOuter := stellar.HabitableZone(lum)
	inner := math.Max(0.02, 0.05*math.Sqrt(lum))
	interacting := len(indices) > 1
	if interacting {
		// circumbinary orbits are stable beyond a few binary separations
		inner = math.Max(inner, 3.5*separation)
	}
	outer := 50 * math.Cbrt(math.Max(mass, 0.01))
	if outerLimit > 0 {
		outer = math.Min(outer, outerLimit)
	}
	if outer < inner {
		outer = inner
	}

	return stellar.StellarComponent{
		StarIndices:        indices,
		Barycenter:         bary,
		CombinedMass:       mass,
		InternalSeparation: separation,
		IsInteracting:      interacting,
		PlanetInnerLimit:   inner,
		PlanetOuterLimit:   outer,
		FrostLine:          stellar.FrostLine(lum),
		HabitableZoneInner: hzInner,
		HabitableZoneOuter: hzOuter,
	}
}

func populatePlanets(rng *rand.Rand, comp *stellar.StellarComponent, stars []stellar.Star) {
	if comp.PlanetOuterLimit <= comp.PlanetInnerLimit*1.5 {
		return
	}

	budget := min(maxPlanets, 2+int(6*math.Sqrt(comp.CombinedMass)))
	for _, i := range comp.StarIndices {
		switch stars[i].Type {
		case stellar.StarTypeBlackHole:
			budget = 0
		case stellar.StarTypeNeutronStar, stellar.StarTypeWhiteDwarf:
			budget = min(budget, 2)
		}
	}
	count := rng.IntN(budget + 1)

	orbit := comp.PlanetInnerLimit * uniform(rng, 1, 1.6)
	for range count {
		if orbit > comp.PlanetOuterLimit {
			break
		}
		p := newPlanet(rng, comp, orbit)
		if orbit < comp.FrostLine {
			comp.InnerPlanets = append(comp.InnerPlanets, p)
		} else {
			comp.OuterPlanets = append(comp.OuterPlanets, p)
		}
		orbit *= uniform(rng, 1.4, 2.2)
	}
}

func newPlanet(rng *rand.Rand, comp *stellar.StellarComponent, orbit float64) stellar.Planet {
	t, mass := planetKind(rng, comp, orbit)

	angle := uniform(rng, 0, 2*math.Pi)
	p := stellar.Planet{
		Type: t,
		Mass: mass,
		Position: stellar.Vec3{
			X: orbit * math.Cos(angle),
			Y: orbit * math.Sin(angle),
			Z: orbit * uniform(rng, -0.03, 0.03),
		},
	}
	p.Moons = newMoons(rng, p, orbit >= comp.FrostLine)
	return p
}

func planetKind(rng *rand.Rand, comp *stellar.StellarComponent, orbit float64) (stellar.PlanetType, float64) {
	roll := rng.Float64()

	if orbit >= comp.FrostLine {
		switch {
		case roll < 0.35:
			return stellar.PlanetTypeGasGiant, uniform(rng, 50, 4000)
		case roll < 0.60:
			return stellar.PlanetTypeIceGiant, uniform(rng, 10, 50)
		case roll < 0.75:
			return stellar.PlanetTypeMiniNeptune, uniform(rng, 2, 10)
		case roll < 0.80:
			return stellar.PlanetTypeCoreless, uniform(rng, 30, 300)
		default:
			return stellar.PlanetTypeDwarf, uniform(rng, 0.0001, 0.01)
		}
	}

	hot := orbit < 0.1
	temperate := orbit >= comp.HabitableZoneInner && orbit <= comp.HabitableZoneOuter
	switch {
	case hot && roll < 0.12:
		return stellar.PlanetTypeHotJupiter, uniform(rng, 100, 1500)
	case hot && roll < 0.18:
		return stellar.PlanetTypeChthonian, uniform(rng, 5, 30)
	case orbit < 0.6*comp.HabitableZoneInner && roll < 0.40:
		return stellar.PlanetTypeLava, uniform(rng, 0.1, 5)
	case temperate && roll < 0.30:
		return stellar.PlanetTypeOcean, uniform(rng, 0.5, 5)
	case roll < 0.45:
		return stellar.PlanetTypeTerrestrial, uniform(rng, 0.3, 2)
	case roll < 0.60:
		return stellar.PlanetTypeSuperEarth, uniform(rng, 2, 10)
	case roll < 0.72:
		return stellar.PlanetTypeDesert, uniform(rng, 0.1, 3)
	case roll < 0.82:
		return stellar.PlanetTypeSubNeptune, uniform(rng, 3, 8)
	case roll < 0.90:
		return stellar.PlanetTypeCarbon, uniform(rng, 0.5, 8)
	default:
		return stellar.PlanetTypeDwarf, uniform(rng, 0.001, 0.1)
	}
}

func newMoons(rng *rand.Rand, p stellar.Planet, cold bool) []stellar.Moon {
	var n int
	switch {
	case p.Mass < 0.05:
		return nil
	case p.Mass < 1:
		n = rng.IntN(2)
	case p.Mass < 10:
		n = rng.IntN(3)
	case p.Mass < 50:
		n = 1 + rng.IntN(6)
	default:
		n = 2 + rng.IntN(maxMoons-1)
	}
	if n == 0 {
		return nil
	}

	giant := p.Mass >= 10
	planetRadius := earthRadiusKm * math.Pow(p.Mass, 0.27)
	if giant {
		planetRadius = math.Min(earthRadiusKm*math.Sqrt(p.Mass), 75000)
	}

	moons := make([]stellar.Moon, 0, n)
	orbit := planetRadius * uniform(rng, 3, 6)
	for i := range n {
		var t stellar.MoonType
		var mass float64
		switch {
		case i == n-1 && n > 2:
			t, mass = stellar.MoonTypeCaptured, uniform(rng, 1e-6, 1e-3)
		case giant && i == 0:
			t, mass = stellar.MoonTypeVolcanic, uniform(rng, 0.3, 1.5)
		case giant && rng.Float64() < 0.1:
			t, mass = stellar.MoonTypeAtmospheric, uniform(rng, 1, 2)
		case giant && cold && rng.Float64() < 0.2:
			t, mass = stellar.MoonTypeOcean, uniform(rng, 0.1, 0.7)
		case cold:
			if rng.Float64() < 0.5 {
				t, mass = stellar.MoonTypeIcy, uniform(rng, 0.001, 1)
			} else {
				t, mass = stellar.MoonTypeIceRock, uniform(rng, 0.001, 1.5)
			}
		default:
			t, mass = stellar.MoonTypeRocky, uniform(rng, 1e-4, 1.2)
		}

		angle := uniform(rng, 0, 2*math.Pi)
		moons = append(moons, stellar.Moon{
			Type:     t,
			Mass:     mass,
			Position: stellar.Vec3{X: orbit * math.Cos(angle), Y: orbit * math.Sin(angle)},
		})
		orbit *= uniform(rng, 1.3, 2.5)
	}
	return moons
}

// placeBelts adds an inner rocky belt just inside the frost line and a
// Kuiper belt past the outermost planet of component ci when there is room.
func placeBelts(rng *rand.Rand, comps []stellar.StellarComponent, ci int) []stellar.AsteroidBelt {
	comp := comps[ci]
	if comp.PlanetOuterLimit <= comp.PlanetInnerLimit {
		return nil
	}
	suffix := ""
	if len(comps) > 1 {
		suffix = fmt.Sprintf(" %c", 'A'+ci)
	}

	var belts []stellar.AsteroidBelt

	mainInner, mainOuter := 0.55*comp.FrostLine, 0.85*comp.FrostLine
	if mainInner > comp.PlanetInnerLimit && mainOuter < comp.PlanetOuterLimit && rng.Float64() < 0.6 {
		belts = append(belts, newBelt(rng, "Main Belt"+suffix, mainInner, mainOuter, comp.FrostLine, 0.0005, 0.05))
	}

	outermost := comp.PlanetInnerLimit
	for _, p := range comp.OuterPlanets {
		outermost = math.Max(outermost, p.OrbitalRadius())
	}
	for _, p := range comp.InnerPlanets {
		outermost = math.Max(outermost, p.OrbitalRadius())
	}
	kuiperInner := math.Max(1.5*outermost, 1.2*comp.FrostLine)
	kuiperOuter := kuiperInner * uniform(rng, 1.4, 1.8)
	if kuiperOuter < comp.PlanetOuterLimit && rng.Float64() < 0.5 {
		belts = append(belts, newBelt(rng, "Kuiper Belt"+suffix, kuiperInner, kuiperOuter, comp.FrostLine, 0.01, 0.3))
	}

	return belts
}

// newBelt builds a belt with total mass in Earth masses. Asteroid masses are
// in kilograms and diameters in kilometers.
func newBelt(rng *rand.Rand, name string, inner, outer, frost, minMass, maxMass float64) stellar.AsteroidBelt {
	belt := stellar.AsteroidBelt{
		Name:          name,
		InnerRadius:   inner,
		OuterRadius:   outer,
		TotalMass:     logUniform(rng, minMass, maxMass),
		AsteroidCount: uint64(logUniform(rng, 1e5, 1e7)),
	}

	notable := min(belt.AsteroidCount, uint64(3+rng.IntN(6)))
	diameter := uniform(rng, 400, 1000)
	for range notable {
		r := uniform(rng, inner, outer)
		var t stellar.AsteroidType
		switch roll := rng.Float64(); {
		case r >= frost || roll < 0.75*r/frost:
			t = stellar.AsteroidTypeCarbonaceous
		case roll < 0.9:
			t = stellar.AsteroidTypeSilicate
		default:
			t = stellar.AsteroidTypeMetallic
		}

		angle := uniform(rng, 0, 2*math.Pi)
		belt.LargestBodies = append(belt.LargestBodies, stellar.Asteroid{
			Type:          t,
			Mass:          asteroidMass(t, diameter),
			Diameter:      diameter,
			OrbitalRadius: r,
			Position: stellar.Vec3{
				X: r * math.Cos(angle),
				Y: r * math.Sin(angle),
				Z: r * uniform(rng, -0.05, 0.05),
			},
		})
		diameter *= uniform(rng, 0.5, 0.9)
	}
	return belt
}

func asteroidMass(t stellar.AsteroidType, diameterKm float64) float64 {
	density := 2000.0
	switch t {
	case stellar.AsteroidTypeSilicate:
		density = 2700
	case stellar.AsteroidTypeMetallic:
		density = 5300
	}
	r := diameterKm * 500
	return density * 4.0 / 3.0 * math.Pi * r * r * r
}

// buildOortCloud returns nil for remnant primaries and for a share of
// ordinary systems. Comet masses are in kilograms.
func buildOortCloud(rng *rand.Rand, primary stellar.Star, mass float64) *stellar.OortCloud {
	if primary.Type == stellar.StarTypeBlackHole || primary.Type == stellar.StarTypeNeutronStar {
		return nil
	}
	if rng.Float64() < 0.2 {
		return nil
	}

	scale := math.Sqrt(mass)
	cloud := &stellar.OortCloud{
		InnerRadius:         2000 * scale,
		OuterRadius:         math.Min(50000*scale, 150000),
		EstimatedPopulation: uint64(1e11 * mass * uniform(rng, 0.5, 1.5)),
	}
	if cloud.OuterRadius <= cloud.InnerRadius {
		cloud.OuterRadius = 2 * cloud.InnerRadius
	}
	cloud.TotalMass = float64(cloud.EstimatedPopulation) * 5e-14

	n := 3 + rng.IntN(6)
	for range n {
		var c stellar.Comet
		switch roll := rng.Float64(); {
		case roll < 0.15:
			c.Type = stellar.CometTypeShortPeriod
			c.OrbitalRadius = uniform(rng, 5, 50)
			c.Eccentricity = uniform(rng, 0.2, 0.7)
		case roll < 0.9:
			c.Type = stellar.CometTypeLongPeriod
			c.OrbitalRadius = uniform(rng, cloud.InnerRadius, cloud.OuterRadius)
			c.Eccentricity = uniform(rng, 0.9, 0.999)
		default:
			c.Type = stellar.CometTypeHyperbolic
			c.OrbitalRadius = uniform(rng, 1, 10)
			c.Eccentricity = uniform(rng, 1.0001, 1.3)
		}
		c.NucleusDiameter = logUniform(rng, 0.5, 60)
		r := c.NucleusDiameter * 500
		c.Mass = 600 * 4.0 / 3.0 * math.Pi * r * r * r

		theta := uniform(rng, 0, 2*math.Pi)
		phi := math.Acos(uniform(rng, -1, 1))
		c.Position = stellar.Vec3{
			X: c.OrbitalRadius * math.Sin(phi) * math.Cos(theta),
			Y: c.OrbitalRadius * math.Sin(phi) * math.Sin(theta),
			Z: c.OrbitalRadius * math.Cos(phi),
		}
		cloud.NotableComets = append(cloud.NotableComets, c)
	}
	return cloud
}
