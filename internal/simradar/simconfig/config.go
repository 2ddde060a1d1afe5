// Package simconfig is the engine-wide configuration builder: fidelity
// level, ray-filter bounds, back-propagation, debug logging, and the
// free-tier advisory limit — carried explicitly through every call,
// never a mutable package-level global, per spec.md §9's redesign
// intent.
package simconfig

import (
	"fmt"

	"github.com/banshee-data/radarsim/internal/simradar/raytrace"
)

// Fidelity selects how often the ray tracer re-traces scene geometry
// between baseband samples, per spec.md §4.7.
type Fidelity int

const (
	FidelityFrame Fidelity = iota
	FidelityPulse
	FidelitySample
)

func (f Fidelity) String() string {
	switch f {
	case FidelityFrame:
		return "frame"
	case FidelityPulse:
		return "pulse"
	case FidelitySample:
		return "sample"
	default:
		return "unknown"
	}
}

// ParseFidelity parses the wire-level fidelity string ("frame", "pulse",
// "sample") into a Fidelity, failing on anything else — an unrecognised
// fidelity level is one of the documented InvalidInput triggers.
func ParseFidelity(s string) (Fidelity, error) {
	switch s {
	case "frame":
		return FidelityFrame, nil
	case "pulse":
		return FidelityPulse, nil
	case "sample":
		return FidelitySample, nil
	default:
		return 0, fmt.Errorf("simconfig: unknown fidelity level %q", s)
	}
}

// Config is the per-run builder for sim_radar/sim_rcs/sim_lidar: typed
// fields, Validate(), fluent With* setters, and a DefaultConfig()
// constructor, in the style of l3grid.BackgroundConfig.
type Config struct {
	Fidelity         Fidelity
	RayFilter        raytrace.Filter
	BackPropagating  bool
	Debug            bool
	LogPath          string
	RayDensity       float64
	MaxRaysPerSlot   int
	FreeTierLimit    *int // nil: free-tier advisory disabled
}

// DefaultConfig returns the engine's out-of-the-box configuration: sample
// fidelity, the default ray filter, back-propagation and debug logging
// both off, and no free-tier advisory.
func DefaultConfig() *Config {
	return &Config{
		Fidelity:       FidelitySample,
		RayFilter:      raytrace.DefaultFilter,
		RayDensity:     1,
		MaxRaysPerSlot: 100000,
	}
}

// Validate checks c's fields for internal consistency.
func (c *Config) Validate() error {
	if c.RayFilter.Min < 0 {
		return fmt.Errorf("simconfig: ray filter Min must be non-negative, got %d", c.RayFilter.Min)
	}
	if c.RayFilter.Max < c.RayFilter.Min {
		return fmt.Errorf("simconfig: ray filter Max (%d) must be >= Min (%d)", c.RayFilter.Max, c.RayFilter.Min)
	}
	if c.RayDensity <= 0 {
		return fmt.Errorf("simconfig: ray density must be positive, got %v", c.RayDensity)
	}
	if c.MaxRaysPerSlot <= 0 {
		return fmt.Errorf("simconfig: max rays per slot must be positive, got %d", c.MaxRaysPerSlot)
	}
	if c.FreeTierLimit != nil && *c.FreeTierLimit < 0 {
		return fmt.Errorf("simconfig: free-tier limit must be non-negative, got %d", *c.FreeTierLimit)
	}
	return nil
}

// WithFidelity sets the snapshot-selection fidelity.
func (c *Config) WithFidelity(f Fidelity) *Config { c.Fidelity = f; return c }

// WithRayFilter sets the reflection-count bounds contributions must fall
// within to reach the baseband.
func (c *Config) WithRayFilter(f raytrace.Filter) *Config { c.RayFilter = f; return c }

// WithBackPropagating toggles the back-propagation pass.
func (c *Config) WithBackPropagating(enabled bool) *Config { c.BackPropagating = enabled; return c }

// WithDebug sets Config.Debug. No code path reads the flag; it enables no
// diagnostic output.
func (c *Config) WithDebug(enabled bool) *Config { c.Debug = enabled; return c }

// WithLogPath sets the on-disk path the ray log is appended to; empty
// disables ray logging entirely.
func (c *Config) WithLogPath(path string) *Config { c.LogPath = path; return c }

// WithRayDensity sets the rays-per-wavelength density used to tessellate
// each Tx channel's emission solid angle.
func (c *Config) WithRayDensity(d float64) *Config { c.RayDensity = d; return c }

// WithFreeTierLimit sets (or clears, with nil) the free-tier advisory:
// meshes with more than 8 faces, more than 2 point targets in sim_radar,
// more than 1 Tx/Rx channel in sim_radar, or more than 3 targets in
// sim_rcs fail with TierLimitExceeded once this is set, per spec.md §6
// operation 4.
func (c *Config) WithFreeTierLimit(limit *int) *Config { c.FreeTierLimit = limit; return c }
