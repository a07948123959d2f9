package stellar

import "fmt"

// Labels below are produced by switches without a default arm. A value that
// falls through is a variant the projection layer does not know about, which
// is a programming error and panics.

type StarType int

const (
	StarTypeO StarType = iota
	StarTypeB
	StarTypeA
	StarTypeF
	StarTypeG
	StarTypeK
	StarTypeM
	StarTypeBrownDwarf
	StarTypeRedGiant
	StarTypeWhiteDwarf
	StarTypeNeutronStar
	StarTypeBlackHole
)

func (t StarType) String() string {
	switch t {
	case StarTypeO:
		return "O"
	case StarTypeB:
		return "B"
	case StarTypeA:
		return "A"
	case StarTypeF:
		return "F"
	case StarTypeG:
		return "G"
	case StarTypeK:
		return "K"
	case StarTypeM:
		return "M"
	case StarTypeBrownDwarf:
		return "BrownDwarf"
	case StarTypeRedGiant:
		return "RedGiant"
	case StarTypeWhiteDwarf:
		return "WhiteDwarf"
	case StarTypeNeutronStar:
		return "NeutronStar"
	case StarTypeBlackHole:
		return "BlackHole"
	}
	panic(fmt.Sprintf("stellar: unmapped star type %d", int(t)))
}

func (t StarType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func AllStarTypes() []StarType {
	return []StarType{
		StarTypeO, StarTypeB, StarTypeA, StarTypeF, StarTypeG, StarTypeK, StarTypeM,
		StarTypeBrownDwarf, StarTypeRedGiant, StarTypeWhiteDwarf, StarTypeNeutronStar, StarTypeBlackHole,
	}
}

type PlanetType int

const (
	PlanetTypeDwarf PlanetType = iota
	PlanetTypeTerrestrial
	PlanetTypeSuperEarth
	PlanetTypeDesert
	PlanetTypeOcean
	PlanetTypeLava
	PlanetTypeMiniNeptune
	PlanetTypeSubNeptune
	PlanetTypeIceGiant
	PlanetTypeGasGiant
	PlanetTypeHotJupiter
	PlanetTypeChthonian
	PlanetTypeCarbon
	PlanetTypeCoreless
)

func (t PlanetType) String() string {
	switch t {
	case PlanetTypeDwarf:
		return "Dwarf"
	case PlanetTypeTerrestrial:
		return "Terrestrial"
	case PlanetTypeSuperEarth:
		return "SuperEarth"
	case PlanetTypeDesert:
		return "Desert"
	case PlanetTypeOcean:
		return "Ocean"
	case PlanetTypeLava:
		return "Lava"
	case PlanetTypeMiniNeptune:
		return "MiniNeptune"
	case PlanetTypeSubNeptune:
		return "SubNeptune"
	case PlanetTypeIceGiant:
		return "IceGiant"
	case PlanetTypeGasGiant:
		return "GasGiant"
	case PlanetTypeHotJupiter:
		return "HotJupiter"
	case PlanetTypeChthonian:
		return "Chthonian"
	case PlanetTypeCarbon:
		return "Carbon"
	case PlanetTypeCoreless:
		return "Coreless"
	}
	panic(fmt.Sprintf("stellar: unmapped planet type %d", int(t)))
}

func (t PlanetType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func AllPlanetTypes() []PlanetType {
	return []PlanetType{
		PlanetTypeDwarf, PlanetTypeTerrestrial, PlanetTypeSuperEarth, PlanetTypeDesert,
		PlanetTypeOcean, PlanetTypeLava, PlanetTypeMiniNeptune, PlanetTypeSubNeptune,
		PlanetTypeIceGiant, PlanetTypeGasGiant, PlanetTypeHotJupiter, PlanetTypeChthonian,
		PlanetTypeCarbon, PlanetTypeCoreless,
	}
}

type MoonType int

const (
	MoonTypeRocky MoonType = iota
	MoonTypeIcy
	MoonTypeIceRock
	MoonTypeOcean
	MoonTypeVolcanic
	MoonTypeCaptured
	MoonTypeAtmospheric
)

func (t MoonType) String() string {
	switch t {
	case MoonTypeRocky:
		return "Rocky"
	case MoonTypeIcy:
		return "Icy"
	case MoonTypeIceRock:
		return "IceRock"
	case MoonTypeOcean:
		return "Ocean"
	case MoonTypeVolcanic:
		return "Volcanic"
	case MoonTypeCaptured:
		return "Captured"
	case MoonTypeAtmospheric:
		return "Atmospheric"
	}
	panic(fmt.Sprintf("stellar: unmapped moon type %d", int(t)))
}

func (t MoonType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func AllMoonTypes() []MoonType {
	return []MoonType{
		MoonTypeRocky, MoonTypeIcy, MoonTypeIceRock, MoonTypeOcean,
		MoonTypeVolcanic, MoonTypeCaptured, MoonTypeAtmospheric,
	}
}

type AsteroidType int

const (
	AsteroidTypeCarbonaceous AsteroidType = iota
	AsteroidTypeSilicate
	AsteroidTypeMetallic
)

func (t AsteroidType) String() string {
	switch t {
	case AsteroidTypeCarbonaceous:
		return "Carbonaceous"
	case AsteroidTypeSilicate:
		return "Silicate"
	case AsteroidTypeMetallic:
		return "Metallic"
	}
	panic(fmt.Sprintf("stellar: unmapped asteroid type %d", int(t)))
}

func (t AsteroidType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func AllAsteroidTypes() []AsteroidType {
	return []AsteroidType{AsteroidTypeCarbonaceous, AsteroidTypeSilicate, AsteroidTypeMetallic}
}

type CometType int

const (
	CometTypeShortPeriod CometType = iota
	CometTypeLongPeriod
	CometTypeHyperbolic
)

func (t CometType) String() string {
	switch t {
	case CometTypeShortPeriod:
		return "ShortPeriod"
	case CometTypeLongPeriod:
		return "LongPeriod"
	case CometTypeHyperbolic:
		return "Hyperbolic"
	}
	panic(fmt.Sprintf("stellar: unmapped comet type %d", int(t)))
}

func (t CometType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func AllCometTypes() []CometType {
	return []CometType{CometTypeShortPeriod, CometTypeLongPeriod, CometTypeHyperbolic}
}
