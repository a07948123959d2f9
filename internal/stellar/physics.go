package stellar

import (
	"fmt"
	"math"
)

const solarTemperature = 5772.0

// Luminosity in solar units. Main sequence stars follow a piecewise
// mass-luminosity relation; evolved objects and remnants use fixed laws.
func Luminosity(t StarType, mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	switch t {
	case StarTypeO, StarTypeB, StarTypeA, StarTypeF, StarTypeG, StarTypeK, StarTypeM:
		return mainSequenceLuminosity(mass)
	case StarTypeBrownDwarf:
		return 1e-5 * math.Pow(mass/0.05, 2.5)
	case StarTypeRedGiant:
		return 100 * math.Pow(mass, 1.5)
	case StarTypeWhiteDwarf:
		return 1e-3 * mass
	case StarTypeNeutronStar:
		return 1e-5
	case StarTypeBlackHole:
		return 0
	}
	panic(fmt.Sprintf("stellar: unmapped star type %d", int(t)))
}

// Temperature is the effective surface temperature in kelvin.
func Temperature(t StarType, mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	switch t {
	case StarTypeO, StarTypeB, StarTypeA, StarTypeF, StarTypeG, StarTypeK, StarTypeM:
		// T ~ (L / R^2)^(1/4) with R ~ M^0.8
		l := mainSequenceLuminosity(mass)
		r := math.Pow(mass, 0.8)
		return solarTemperature * math.Pow(l/(r*r), 0.25)
	case StarTypeBrownDwarf:
		return 700 + 20000*mass
	case StarTypeRedGiant:
		return 3600 + 250*math.Min(mass, 4)
	case StarTypeWhiteDwarf:
		return 8000 + 6000*mass
	case StarTypeNeutronStar:
		return 6e5
	case StarTypeBlackHole:
		return 0
	}
	panic(fmt.Sprintf("stellar: unmapped star type %d", int(t)))
}

func mainSequenceLuminosity(mass float64) float64 {
	switch {
	case mass < 0.43:
		return 0.23 * math.Pow(mass, 2.3)
	case mass < 2:
		return math.Pow(mass, 4)
	case mass < 55:
		return 1.4 * math.Pow(mass, 3.5)
	default:
		return 32000 * mass
	}
}

// MainSequenceType classifies a main sequence star by mass.
func MainSequenceType(mass float64) StarType {
	switch {
	case mass < 0.08:
		return StarTypeBrownDwarf
	case mass < 0.45:
		return StarTypeM
	case mass < 0.8:
		return StarTypeK
	case mass < 1.04:
		return StarTypeG
	case mass < 1.4:
		return StarTypeF
	case mass < 2.1:
		return StarTypeA
	case mass < 16:
		return StarTypeB
	default:
		return StarTypeO
	}
}

// FrostLine in AU for a host of the given luminosity.
func FrostLine(luminosity float64) float64 {
	return 4.85 * math.Sqrt(luminosity)
}

// HabitableZone returns inner and outer edges in AU.
func HabitableZone(luminosity float64) (inner, outer float64) {
	return math.Sqrt(luminosity / 1.1), math.Sqrt(luminosity / 0.53)
}
