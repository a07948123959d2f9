package stellar_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/stellar"
)

func TestLabelsAreUniqueAndNonEmpty(t *testing.T) {
	collect := func(labels []string) {
		t.Helper()
		seen := make(map[string]bool)
		for _, l := range labels {
			assert.NotEmpty(t, l)
			assert.False(t, seen[l], "duplicate label %q", l)
			seen[l] = true
		}
	}

	var stars, planets, moons, asteroids, comets []string
	for _, v := range stellar.AllStarTypes() {
		stars = append(stars, v.String())
	}
	for _, v := range stellar.AllPlanetTypes() {
		planets = append(planets, v.String())
	}
	for _, v := range stellar.AllMoonTypes() {
		moons = append(moons, v.String())
	}
	for _, v := range stellar.AllAsteroidTypes() {
		asteroids = append(asteroids, v.String())
	}
	for _, v := range stellar.AllCometTypes() {
		comets = append(comets, v.String())
	}

	collect(stars)
	collect(planets)
	collect(moons)
	collect(asteroids)
	collect(comets)

	assert.Len(t, stars, 12)
	assert.Len(t, planets, 14)
	assert.Len(t, moons, 7)
	assert.Len(t, asteroids, 3)
	assert.Len(t, comets, 3)
}

func TestUnmappedLabelsPanic(t *testing.T) {
	assert.Panics(t, func() { _ = stellar.StarType(99).String() })
	assert.Panics(t, func() { _ = stellar.PlanetType(-1).String() })
	assert.Panics(t, func() { _ = stellar.MoonType(99).String() })
	assert.Panics(t, func() { _ = stellar.AsteroidType(99).String() })
	assert.Panics(t, func() { _ = stellar.CometType(99).String() })
	assert.Panics(t, func() { stellar.ConfigurationLabel(nil) })
}

func TestConfigurationLabels(t *testing.T) {
	tests := []struct {
		config stellar.StellarConfiguration
		want   string
	}{
		{stellar.Single{}, "Single"},
		{stellar.CloseBinary{SeparationAU: 0.1}, "CloseBinary"},
		{stellar.WideBinary{SeparationAU: 300}, "WideBinary"},
		{stellar.HierarchicalTriple{InnerSeparationAU: 1, OuterSeparationAU: 400}, "HierarchicalTriple"},
		{stellar.UnstableTriple{}, "UnstableTriple"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stellar.ConfigurationLabel(tt.config))
	}
}

func TestStarMarshalsTypeLabel(t *testing.T) {
	data, err := json.Marshal(stellar.Star{ID: 7, Mass: 1, Type: stellar.StarTypeG})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"star_type":"G"`)
}

func TestPhysics(t *testing.T) {
	assert.InDelta(t, 1.0, stellar.Luminosity(stellar.StarTypeG, 1), 1e-9)
	assert.InDelta(t, 5772.0, stellar.Temperature(stellar.StarTypeG, 1), 1e-6)
	assert.Zero(t, stellar.Luminosity(stellar.StarTypeBlackHole, 10))
	assert.Zero(t, stellar.Luminosity(stellar.StarTypeM, 0))

	assert.InDelta(t, 4.85, stellar.FrostLine(1), 1e-9)
	inner, outer := stellar.HabitableZone(1)
	assert.Less(t, inner, 1.0)
	assert.Greater(t, outer, 1.0)

	assert.Equal(t, stellar.StarTypeG, stellar.MainSequenceType(1))
	assert.Equal(t, stellar.StarTypeM, stellar.MainSequenceType(0.2))
	assert.Equal(t, stellar.StarTypeBrownDwarf, stellar.MainSequenceType(0.05))
	assert.Equal(t, stellar.StarTypeO, stellar.MainSequenceType(40))

	assert.Panics(t, func() { stellar.Luminosity(stellar.StarType(99), 1) })
}

func TestPlanetOrbitalRadius(t *testing.T) {
	p := stellar.Planet{Position: stellar.Vec3{X: 3, Y: 4, Z: 10}}
	assert.InDelta(t, 5.0, p.OrbitalRadius(), 1e-12)
}
