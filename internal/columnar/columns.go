// Package columnar lays star lists out as parallel arrays for bulk transfer
// to rendering clients.
package columnar

import (
	"galaxy-server/internal/stellar"
)

// Columns holds one entry per star in every slice, in the same order.
// Floating point values are narrowed to float32 with round-to-nearest; IDs
// are 63-bit and fit in int64 unchanged.
type Columns struct {
	Positions    [][3]float32 `json:"positions"`
	IDs          []int64      `json:"ids"`
	Luminosities []float32    `json:"luminosities"`
	Temperatures []float32    `json:"temperatures"`
	Masses       []float32    `json:"masses"`
	StarTypes    []string     `json:"star_types"`
	Count        int          `json:"count"`
}

// Row is one star read back from Columns.
type Row struct {
	Position    [3]float32
	ID          int64
	Luminosity  float32
	Temperature float32
	Mass        float32
	StarType    string
}

// FromStars converts stars to columns. Luminosity and temperature are
// derived from each star's type and mass. Empty input gives empty, non-nil
// slices.
func FromStars(stars []stellar.Star) Columns {
	n := len(stars)
	c := Columns{
		Positions:    make([][3]float32, n),
		IDs:          make([]int64, n),
		Luminosities: make([]float32, n),
		Temperatures: make([]float32, n),
		Masses:       make([]float32, n),
		StarTypes:    make([]string, n),
		Count:        n,
	}

	for i, s := range stars {
		c.Positions[i] = [3]float32{float32(s.Position.X), float32(s.Position.Y), float32(s.Position.Z)}
		c.IDs[i] = int64(s.ID)
		c.Luminosities[i] = float32(s.Luminosity())
		c.Temperatures[i] = float32(s.Temperature())
		c.Masses[i] = float32(s.Mass)
		c.StarTypes[i] = s.Type.String()
	}
	return c
}

func (c Columns) Star(i int) Row {
	return Row{
		Position:    c.Positions[i],
		ID:          c.IDs[i],
		Luminosity:  c.Luminosities[i],
		Temperature: c.Temperatures[i],
		Mass:        c.Masses[i],
		StarType:    c.StarTypes[i],
	}
}
