package galaxy

import (
	"time"

	"galaxy-server/internal/generation"
	"galaxy-server/internal/session"
)

// StateSource is the slice of the session the overview reads.
type StateSource interface {
	State() session.State
	Engine() (generation.Engine, error)
}

type Overview struct {
	Seed         int64             `json:"seed"`
	Bound        bool              `json:"bound"`
	BoundAt      *time.Time        `json:"bound_at,omitempty"`
	GalaxyRadius float64           `json:"galaxy_radius"`
	Config       generation.Config `json:"config"`
}
