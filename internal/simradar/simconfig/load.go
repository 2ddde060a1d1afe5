package simconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// maxConfigFileSize bounds how large a defaults file LoadConfig will read,
// mirroring the repository's existing tuning-config size guard.
const maxConfigFileSize = 1 * 1024 * 1024

// fileConfig is the JSON-overlay shape for Config: every field is a
// pointer so an omitted key leaves DefaultConfig's value untouched,
// matching internal/config.TuningConfig's partial-overlay convention.
type fileConfig struct {
	Fidelity        *string  `json:"fidelity,omitempty"`
	RayFilterMin    *int     `json:"ray_filter_min,omitempty"`
	RayFilterMax    *int     `json:"ray_filter_max,omitempty"`
	BackPropagating *bool    `json:"back_propagating,omitempty"`
	Debug           *bool    `json:"debug,omitempty"`
	LogPath         *string  `json:"log_path,omitempty"`
	RayDensity      *float64 `json:"ray_density,omitempty"`
	MaxRaysPerSlot  *int     `json:"max_rays_per_slot,omitempty"`
	FreeTierLimit   *int     `json:"free_tier_limit,omitempty"`
}

// LoadConfig reads a JSON defaults file at path and overlays it onto
// DefaultConfig(); fields the file omits keep their default value, so a
// caller only needs to specify the handful of settings that differ from
// the engine's out-of-the-box configuration.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("simconfig: config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("simconfig: stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("simconfig: config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("simconfig: read config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("simconfig: parse config file: %w", err)
	}

	cfg := DefaultConfig()
	if fc.Fidelity != nil {
		f, err := ParseFidelity(*fc.Fidelity)
		if err != nil {
			return nil, fmt.Errorf("simconfig: %w", err)
		}
		cfg.Fidelity = f
	}
	if fc.RayFilterMin != nil {
		cfg.RayFilter.Min = *fc.RayFilterMin
	}
	if fc.RayFilterMax != nil {
		cfg.RayFilter.Max = *fc.RayFilterMax
	}
	if fc.BackPropagating != nil {
		cfg.BackPropagating = *fc.BackPropagating
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.LogPath != nil {
		cfg.LogPath = *fc.LogPath
	}
	if fc.RayDensity != nil {
		cfg.RayDensity = *fc.RayDensity
	}
	if fc.MaxRaysPerSlot != nil {
		cfg.MaxRaysPerSlot = *fc.MaxRaysPerSlot
	}
	if fc.FreeTierLimit != nil {
		cfg.FreeTierLimit = fc.FreeTierLimit
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simconfig: invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoadConfig is LoadConfig but falls back to DefaultConfig() when
// path is empty, for callers that treat a config file as optional.
func MustLoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
