package system

import (
	"galaxy-server/internal/generation"
	"galaxy-server/internal/stellar"
)

// EngineSource hands out the currently bound engine.
type EngineSource interface {
	Engine() (generation.Engine, error)
}

// Record is the client-facing view of a star system. Star IDs are encoded
// as JSON strings so 63-bit values survive clients with float64 numbers.
// A record answered before any engine is bound has empty lists, no
// configuration and a Diagnostic.
type Record struct {
	StarID             uint64               `json:"star_id,string"`
	Position           stellar.Vec3         `json:"position"`
	Stars              []StarRecord         `json:"stars"`
	Configuration      *ConfigurationRecord `json:"configuration,omitempty"`
	StellarComponents  []ComponentRecord    `json:"stellar_components"`
	InnerPlanets       []PlanetRecord       `json:"inner_planets"`
	OuterPlanets       []PlanetRecord       `json:"outer_planets"`
	AsteroidBelts      []BeltRecord         `json:"asteroid_belts"`
	OortCloud          *OortCloudRecord     `json:"oort_cloud,omitempty"`
	FrostLine          float64              `json:"frost_line"`
	HabitableZoneInner float64              `json:"habitable_zone_inner"`
	HabitableZoneOuter float64              `json:"habitable_zone_outer"`
	Diagnostic         string               `json:"diagnostic,omitempty"`
}

type StarRecord struct {
	ID          uint64       `json:"id,string"`
	StarType    string       `json:"star_type"`
	Mass        float64      `json:"mass"`
	Luminosity  float64      `json:"luminosity"`
	Temperature float64      `json:"temperature"`
	Position    stellar.Vec3 `json:"position"`
}

// ConfigurationRecord carries only the fields of its variant.
type ConfigurationRecord struct {
	Type              string   `json:"type"`
	SeparationAU      *float64 `json:"separation_au,omitempty"`
	IsContact         *bool    `json:"is_contact,omitempty"`
	InnerSeparationAU *float64 `json:"inner_separation_au,omitempty"`
	OuterSeparationAU *float64 `json:"outer_separation_au,omitempty"`
}

type ComponentRecord struct {
	StarIndices        []int          `json:"star_indices"`
	Barycenter         stellar.Vec3   `json:"barycenter"`
	CombinedMass       float64        `json:"combined_mass"`
	InternalSeparation float64        `json:"internal_separation"`
	IsInteracting      bool           `json:"is_interacting"`
	PlanetInnerLimit   float64        `json:"planet_inner_limit"`
	PlanetOuterLimit   float64        `json:"planet_outer_limit"`
	FrostLine          float64        `json:"frost_line"`
	HabitableZoneInner float64        `json:"habitable_zone_inner"`
	HabitableZoneOuter float64        `json:"habitable_zone_outer"`
	InnerPlanets       []PlanetRecord `json:"inner_planets"`
	OuterPlanets       []PlanetRecord `json:"outer_planets"`
}

type PlanetRecord struct {
	PlanetType    string       `json:"planet_type"`
	Mass          float64      `json:"mass"`
	OrbitalRadius float64      `json:"orbital_radius"`
	Position      stellar.Vec3 `json:"position"`
	Moons         []MoonRecord `json:"moons"`
	MoonCount     int          `json:"moon_count"`
}

type MoonRecord struct {
	MoonType      string       `json:"moon_type"`
	Mass          float64      `json:"mass"`
	OrbitalRadius float64      `json:"orbital_radius"`
	Position      stellar.Vec3 `json:"position"`
}

type BeltRecord struct {
	Name          string           `json:"name"`
	InnerRadius   float64          `json:"inner_radius"`
	OuterRadius   float64          `json:"outer_radius"`
	TotalMass     float64          `json:"total_mass"`
	AsteroidCount uint64           `json:"asteroid_count"`
	LargestBodies []AsteroidRecord `json:"largest_bodies"`
}

type AsteroidRecord struct {
	AsteroidType  string       `json:"asteroid_type"`
	Mass          float64      `json:"mass"`
	Diameter      float64      `json:"diameter"`
	OrbitalRadius float64      `json:"orbital_radius"`
	Position      stellar.Vec3 `json:"position"`
}

type OortCloudRecord struct {
	InnerRadius         float64       `json:"inner_radius"`
	OuterRadius         float64       `json:"outer_radius"`
	EstimatedPopulation uint64        `json:"estimated_population"`
	TotalMass           float64       `json:"total_mass"`
	NotableComets       []CometRecord `json:"notable_comets"`
}

type CometRecord struct {
	CometType       string       `json:"comet_type"`
	Mass            float64      `json:"mass"`
	NucleusDiameter float64      `json:"nucleus_diameter"`
	OrbitalRadius   float64      `json:"orbital_radius"`
	Eccentricity    float64      `json:"eccentricity"`
	Position        stellar.Vec3 `json:"position"`
}
