package stellar

import (
	"cmp"
	"math"
)

// Vec3 is a double precision position. Units depend on the owner:
// light-years for stars and systems, AU inside a system, km around a planet.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Star is immutable once generated for a given seed and coordinate.
type Star struct {
	ID       uint64   `json:"id"`
	Position Vec3     `json:"position"`
	Mass     float64  `json:"mass"`
	Type     StarType `json:"star_type"`
}

func (s Star) Luminosity() float64 {
	return Luminosity(s.Type, s.Mass)
}

func (s Star) Temperature() float64 {
	return Temperature(s.Type, s.Mass)
}

// StellarConfiguration is one of Single, CloseBinary, WideBinary,
// HierarchicalTriple or UnstableTriple.
type StellarConfiguration interface {
	configurationName() string
}

type Single struct{}

type CloseBinary struct {
	SeparationAU float64
	IsContact    bool
}

type WideBinary struct {
	SeparationAU float64
}

type HierarchicalTriple struct {
	InnerSeparationAU float64
	OuterSeparationAU float64
}

type UnstableTriple struct{}

func (Single) configurationName() string             { return "Single" }
func (CloseBinary) configurationName() string        { return "CloseBinary" }
func (WideBinary) configurationName() string         { return "WideBinary" }
func (HierarchicalTriple) configurationName() string { return "HierarchicalTriple" }
func (UnstableTriple) configurationName() string     { return "UnstableTriple" }

// ConfigurationLabel returns the canonical label of a configuration variant.
func ConfigurationLabel(c StellarConfiguration) string {
	if c == nil {
		panic("stellar: nil stellar configuration")
	}
	return c.configurationName()
}

// StellarComponent is a gravitationally bound group of one or two stars that
// hosts its own planets.
type StellarComponent struct {
	StarIndices        []int
	Barycenter         Vec3
	CombinedMass       float64
	InternalSeparation float64
	IsInteracting      bool
	PlanetInnerLimit   float64
	PlanetOuterLimit   float64
	FrostLine          float64
	HabitableZoneInner float64
	HabitableZoneOuter float64
	InnerPlanets       []Planet
	OuterPlanets       []Planet
}

// Planet mass is in Earth masses and position in AU relative to the host
// component's barycenter.
type Planet struct {
	Type     PlanetType
	Mass     float64
	Position Vec3
	Moons    []Moon
}

// OrbitalRadius is the radial coordinate of the planet in its orbital plane.
func (p Planet) OrbitalRadius() float64 {
	return math.Hypot(p.Position.X, p.Position.Y)
}

// Moon mass is in lunar masses and position in kilometers from the planet.
type Moon struct {
	Type     MoonType
	Mass     float64
	Position Vec3
}

func (m Moon) OrbitalRadius() float64 {
	return math.Hypot(m.Position.X, m.Position.Y)
}

// AsteroidBelt lists only its notable members in LargestBodies.
type AsteroidBelt struct {
	Name          string
	InnerRadius   float64
	OuterRadius   float64
	TotalMass     float64
	AsteroidCount uint64
	LargestBodies []Asteroid
}

type Asteroid struct {
	Type          AsteroidType
	Mass          float64
	Diameter      float64
	OrbitalRadius float64
	Position      Vec3
}

// OortCloud population is an estimate; only NotableComets are materialized.
type OortCloud struct {
	InnerRadius         float64
	OuterRadius         float64
	EstimatedPopulation uint64
	TotalMass           float64
	NotableComets       []Comet
}

type Comet struct {
	Type            CometType
	Mass            float64
	NucleusDiameter float64
	OrbitalRadius   float64
	Eccentricity    float64
	Position        Vec3
}

// StarSystem is the root aggregate returned for one star identifier. For
// systems with a single stellar component the component's planets are
// mirrored into InnerPlanets and OuterPlanets.
type StarSystem struct {
	StarID             uint64
	Position           Vec3
	Stars              []Star
	Configuration      StellarConfiguration
	StellarComponents  []StellarComponent
	InnerPlanets       []Planet
	OuterPlanets       []Planet
	AsteroidBelts      []AsteroidBelt
	OortCloud          *OortCloud
	FrostLine          float64
	HabitableZoneInner float64
	HabitableZoneOuter float64
}

// PlanetCount counts planets across all components.
func (s *StarSystem) PlanetCount() int {
	n := 0
	for _, c := range s.StellarComponents {
		n += len(c.InnerPlanets) + len(c.OuterPlanets)
	}
	return n
}

// MoonCount counts moons across all components.
func (s *StarSystem) MoonCount() int {
	n := 0
	for _, c := range s.StellarComponents {
		for _, p := range c.InnerPlanets {
			n += len(p.Moons)
		}
		for _, p := range c.OuterPlanets {
			n += len(p.Moons)
		}
	}
	return n
}

// SystemQuery selects a system by star identifier. Position is an optional
// hint and does not take part in the lookup.
type SystemQuery struct {
	StarID   uint64
	Position *Vec3
}

// CompareSalience orders stars by luminosity descending, then mass
// descending, then ID ascending.
func CompareSalience(a, b Star) int {
	if c := cmp.Compare(b.Luminosity(), a.Luminosity()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Mass, a.Mass); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
