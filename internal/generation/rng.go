package generation

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

const goldenGamma = 0x9e3779b97f4a7c15

// hashKey derives a stable 64-bit key from the galaxy seed, a domain tag and
// integer coordinates.
func hashKey(seed uint64, tag string, parts ...int64) uint64 {
	buf := make([]byte, 0, 8+len(tag)+8*len(parts))
	buf = binary.LittleEndian.AppendUint64(buf, seed)
	buf = append(buf, tag...)
	for _, p := range parts {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p))
	}
	return xxhash.Sum64(buf)
}

// newRand returns an independent PCG stream for the given key. The stream
// depends only on its inputs, never on query order.
func newRand(seed uint64, tag string, parts ...int64) *rand.Rand {
	k := hashKey(seed, tag, parts...)
	return rand.New(rand.NewPCG(k, k^goldenGamma))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// logUniform draws from [lo, hi) with uniform density in log space.
func logUniform(rng *rand.Rand, lo, hi float64) float64 {
	return math.Exp(uniform(rng, math.Log(lo), math.Log(hi)))
}

// powerLaw draws m in [lo, hi) with density proportional to m^-alpha.
func powerLaw(rng *rand.Rand, lo, hi, alpha float64) float64 {
	if alpha == 1 {
		return logUniform(rng, lo, hi)
	}
	e := 1 - alpha
	a, b := math.Pow(lo, e), math.Pow(hi, e)
	return math.Pow(a+rng.Float64()*(b-a), 1/e)
}

func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 || math.IsNaN(lambda) {
		return 0
	}
	if lambda < 30 {
		limit := math.Exp(-lambda)
		k, p := 0, 1.0
		for {
			p *= rng.Float64()
			if p <= limit {
				return k
			}
			k++
		}
	}
	n := math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64())
	if n < 0 {
		return 0
	}
	return int(n)
}

// stochasticRound rounds x up with probability equal to its fractional part.
func stochasticRound(rng *rand.Rand, x float64) int {
	if x <= 0 {
		return 0
	}
	whole := math.Floor(x)
	if rng.Float64() < x-whole {
		whole++
	}
	return int(whole)
}
