package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config tunes the generator. The first three fields are the ones callers
// adjust at runtime; the rest shape the galaxy itself.
type Config struct {
	NearbyMaxRadius          float64 `toml:"nearby_max_radius" yaml:"nearby_max_radius" json:"nearby_max_radius"`
	StructureBlockSize       float64 `toml:"structure_block_size" yaml:"structure_block_size" json:"structure_block_size"`
	StructureSamplesPerBlock uint64  `toml:"structure_samples_per_block" yaml:"structure_samples_per_block" json:"structure_samples_per_block"`

	GalaxyRadius    float64 `toml:"galaxy_radius" yaml:"galaxy_radius" json:"galaxy_radius"`
	CellSize        float64 `toml:"cell_size" yaml:"cell_size" json:"cell_size"`
	CentralDensity  float64 `toml:"central_density" yaml:"central_density" json:"central_density"`
	ScaleLength     float64 `toml:"scale_length" yaml:"scale_length" json:"scale_length"`
	ScaleHeight     float64 `toml:"scale_height" yaml:"scale_height" json:"scale_height"`
	SpiralArms      int     `toml:"spiral_arms" yaml:"spiral_arms" json:"spiral_arms"`
	ArmStrength     float64 `toml:"arm_strength" yaml:"arm_strength" json:"arm_strength"`
	ArmPitchDegrees float64 `toml:"arm_pitch_degrees" yaml:"arm_pitch_degrees" json:"arm_pitch_degrees"`
}

const (
	DefaultNearbyMaxRadius = 16.0

	// expected population of the densest cell must stay well under the
	// per-cell index space so Poisson tails are never truncated
	maxExpectedCellPopulation = 512.0

	// per-query work limits
	maxNearbyCellsPerAxis = 32
	maxStructureBlocks    = 1 << 20
	maxStructureSamples   = 1 << 22
)

func DefaultConfig() Config {
	return Config{
		NearbyMaxRadius:          DefaultNearbyMaxRadius,
		StructureBlockSize:       1000,
		StructureSamplesPerBlock: 8,
		GalaxyRadius:             50000,
		CellSize:                 10,
		CentralDensity:           0.08,
		ScaleLength:              8500,
		ScaleHeight:              1000,
		SpiralArms:               4,
		ArmStrength:              0.5,
		ArmPitchDegrees:          12,
	}
}

func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"nearby_max_radius", c.NearbyMaxRadius},
		{"structure_block_size", c.StructureBlockSize},
		{"galaxy_radius", c.GalaxyRadius},
		{"cell_size", c.CellSize},
		{"central_density", c.CentralDensity},
		{"scale_length", c.ScaleLength},
		{"scale_height", c.ScaleHeight},
	}
	for _, p := range positive {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value <= 0 {
			return fmt.Errorf("%s must be a positive finite number, got %v", p.name, p.value)
		}
	}

	if c.StructureSamplesPerBlock == 0 {
		return fmt.Errorf("structure_samples_per_block must be at least 1")
	}
	if c.StructureBlockSize < c.CellSize {
		return fmt.Errorf("structure_block_size (%v) must not be smaller than cell_size (%v)", c.StructureBlockSize, c.CellSize)
	}
	if c.GalaxyRadius/c.CellSize >= axisOffset {
		return fmt.Errorf("galaxy_radius / cell_size must be below %d cells", axisOffset)
	}
	if c.SpiralArms < 0 {
		return fmt.Errorf("spiral_arms must not be negative")
	}
	if c.ArmStrength < 0 || c.ArmStrength >= 1 || math.IsNaN(c.ArmStrength) {
		return fmt.Errorf("arm_strength must be in [0, 1), got %v", c.ArmStrength)
	}
	if c.SpiralArms > 0 && (c.ArmPitchDegrees <= 0 || c.ArmPitchDegrees >= 90) {
		return fmt.Errorf("arm_pitch_degrees must be in (0, 90), got %v", c.ArmPitchDegrees)
	}

	if cells := 2 * c.NearbyMaxRadius / c.CellSize; cells > maxNearbyCellsPerAxis {
		return fmt.Errorf("nearby_max_radius %v spans %.0f cells per axis, limit is %d", c.NearbyMaxRadius, cells, maxNearbyCellsPerAxis)
	}
	blocks := c.structureBlockBound()
	if blocks > maxStructureBlocks {
		return fmt.Errorf("structure_block_size %v yields %.0f structure blocks, limit is %d", c.StructureBlockSize, blocks, maxStructureBlocks)
	}
	if samples := blocks * float64(c.StructureSamplesPerBlock); samples > maxStructureSamples {
		return fmt.Errorf("structure_samples_per_block %d yields up to %.0f samples, limit is %d", c.StructureSamplesPerBlock, samples, maxStructureSamples)
	}

	peak := c.CentralDensity * (1 + c.ArmStrength) * c.CellSize * c.CellSize * c.CellSize
	if peak > maxExpectedCellPopulation {
		return fmt.Errorf("central_density %v yields %.0f expected stars per cell, limit is %.0f", c.CentralDensity, peak, maxExpectedCellPopulation)
	}

	return nil
}

// LoadFromFile reads a TOML, YAML or JSON config chosen by file extension.
// Keys absent from the file keep their default values; unknown keys are
// rejected.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml", ".yml",
// ".json") on top of DefaultConfig and validates the result.
func Parse(ext string, data []byte) (Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("unknown keys: %v", undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
