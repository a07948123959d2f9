package system

import (
	"galaxy-server/internal/stellar"
)

// Project converts a generated system into its record. Every field of the
// data model is carried over; absent collections become empty slices.
func Project(s *stellar.StarSystem) Record {
	rec := Record{
		StarID:             s.StarID,
		Position:           s.Position,
		Stars:              make([]StarRecord, 0, len(s.Stars)),
		Configuration:      projectConfiguration(s.Configuration),
		StellarComponents:  make([]ComponentRecord, 0, len(s.StellarComponents)),
		InnerPlanets:       projectPlanets(s.InnerPlanets),
		OuterPlanets:       projectPlanets(s.OuterPlanets),
		AsteroidBelts:      make([]BeltRecord, 0, len(s.AsteroidBelts)),
		FrostLine:          s.FrostLine,
		HabitableZoneInner: s.HabitableZoneInner,
		HabitableZoneOuter: s.HabitableZoneOuter,
	}

	for _, st := range s.Stars {
		rec.Stars = append(rec.Stars, StarRecord{
			ID:          st.ID,
			StarType:    st.Type.String(),
			Mass:        st.Mass,
			Luminosity:  st.Luminosity(),
			Temperature: st.Temperature(),
			Position:    st.Position,
		})
	}

	for _, c := range s.StellarComponents {
		rec.StellarComponents = append(rec.StellarComponents, ComponentRecord{
			StarIndices:        append([]int{}, c.StarIndices...),
			Barycenter:         c.Barycenter,
			CombinedMass:       c.CombinedMass,
			InternalSeparation: c.InternalSeparation,
			IsInteracting:      c.IsInteracting,
			PlanetInnerLimit:   c.PlanetInnerLimit,
			PlanetOuterLimit:   c.PlanetOuterLimit,
			FrostLine:          c.FrostLine,
			HabitableZoneInner: c.HabitableZoneInner,
			HabitableZoneOuter: c.HabitableZoneOuter,
			InnerPlanets:       projectPlanets(c.InnerPlanets),
			OuterPlanets:       projectPlanets(c.OuterPlanets),
		})
	}

	for _, b := range s.AsteroidBelts {
		belt := BeltRecord{
			Name:          b.Name,
			InnerRadius:   b.InnerRadius,
			OuterRadius:   b.OuterRadius,
			TotalMass:     b.TotalMass,
			AsteroidCount: b.AsteroidCount,
			LargestBodies: make([]AsteroidRecord, 0, len(b.LargestBodies)),
		}
		for _, a := range b.LargestBodies {
			belt.LargestBodies = append(belt.LargestBodies, AsteroidRecord{
				AsteroidType:  a.Type.String(),
				Mass:          a.Mass,
				Diameter:      a.Diameter,
				OrbitalRadius: a.OrbitalRadius,
				Position:      a.Position,
			})
		}
		rec.AsteroidBelts = append(rec.AsteroidBelts, belt)
	}

	if oc := s.OortCloud; oc != nil {
		cloud := &OortCloudRecord{
			InnerRadius:         oc.InnerRadius,
			OuterRadius:         oc.OuterRadius,
			EstimatedPopulation: oc.EstimatedPopulation,
			TotalMass:           oc.TotalMass,
			NotableComets:       make([]CometRecord, 0, len(oc.NotableComets)),
		}
		for _, c := range oc.NotableComets {
			cloud.NotableComets = append(cloud.NotableComets, CometRecord{
				CometType:       c.Type.String(),
				Mass:            c.Mass,
				NucleusDiameter: c.NucleusDiameter,
				OrbitalRadius:   c.OrbitalRadius,
				Eccentricity:    c.Eccentricity,
				Position:        c.Position,
			})
		}
		rec.OortCloud = cloud
	}

	return rec
}

// emptyRecord is the answer for starID when no system can be generated.
func emptyRecord(starID uint64, diagnostic string) *Record {
	return &Record{
		StarID:            starID,
		Stars:             []StarRecord{},
		StellarComponents: []ComponentRecord{},
		InnerPlanets:      []PlanetRecord{},
		OuterPlanets:      []PlanetRecord{},
		AsteroidBelts:     []BeltRecord{},
		Diagnostic:        diagnostic,
	}
}

func projectConfiguration(c stellar.StellarConfiguration) *ConfigurationRecord {
	rec := &ConfigurationRecord{Type: stellar.ConfigurationLabel(c)}

	switch v := c.(type) {
	case stellar.CloseBinary:
		rec.SeparationAU = &v.SeparationAU
		rec.IsContact = &v.IsContact
	case stellar.WideBinary:
		rec.SeparationAU = &v.SeparationAU
	case stellar.HierarchicalTriple:
		rec.InnerSeparationAU = &v.InnerSeparationAU
		rec.OuterSeparationAU = &v.OuterSeparationAU
	}
	return rec
}

func projectPlanets(planets []stellar.Planet) []PlanetRecord {
	out := make([]PlanetRecord, 0, len(planets))
	for _, p := range planets {
		rec := PlanetRecord{
			PlanetType:    p.Type.String(),
			Mass:          p.Mass,
			OrbitalRadius: p.OrbitalRadius(),
			Position:      p.Position,
			Moons:         make([]MoonRecord, 0, len(p.Moons)),
			MoonCount:     len(p.Moons),
		}
		for _, m := range p.Moons {
			rec.Moons = append(rec.Moons, MoonRecord{
				MoonType:      m.Type.String(),
				Mass:          m.Mass,
				OrbitalRadius: m.OrbitalRadius(),
				Position:      m.Position,
			})
		}
		out = append(out, rec)
	}
	return out
}
