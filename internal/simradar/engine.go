package simradar

import (
	"sync"

	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
	"github.com/banshee-data/radarsim/internal/simradar/storage"
)

// Engine is the run-wide composition root: the engine-level
// configuration (fidelity, ray filter, free-tier advisory) and an
// optional run registry every sim_* operation records to, the way
// internal/lidar/pipeline sequences its layer packages behind one
// long-lived value.
type Engine struct {
	mu     sync.Mutex
	config simconfig.Config
	runs   *storage.RunStore
}

// New builds an Engine from cfg (copied by value, so later SetFreeTier
// calls never race a caller's own Config) and an optional run registry;
// a nil registry disables run persistence.
func New(cfg simconfig.Config, runs *storage.RunStore) *Engine {
	return &Engine{config: cfg, runs: runs}
}

// SetFreeTier sets (or, with nil, clears) the engine's free-tier advisory
// limit, per spec.md §6 operation 4. It is a method on Engine rather than
// a package-level mutable global so two Engines in the same process (one
// per tenant, say) never share tier state — the REDESIGN FLAGS intent
// behind simconfig.Config.FreeTierLimit.
func (e *Engine) SetFreeTier(limit *int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.FreeTierLimit = limit
}

// configSnapshot returns a copy of the engine's current configuration,
// safe to read from a worker goroutine without holding e.mu for the
// duration of a run.
func (e *Engine) configSnapshot() simconfig.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}
