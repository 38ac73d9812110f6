package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBrawl loads Barnyard Brawl configuration.
// Search order: customPath -> ~/.arcade/configs/brawl.yaml -> ./configs/brawl.yaml -> embedded default
func LoadBrawl(customPath string) (BrawlConfig, error) {
	cfg, err := load(customPath, "brawl.yaml", defaultBrawlYAML, DefaultBrawlConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Roster) == 0 {
		cfg.Roster = DefaultRoster()
	}
	return cfg, cfg.Validate()
}

// LoadOcean loads ocean adventure configuration.
// Search order: customPath -> ~/.arcade/configs/ocean.yaml -> ./configs/ocean.yaml -> embedded default
func LoadOcean(customPath string) (OceanConfig, error) {
	cfg, err := load(customPath, "ocean.yaml", defaultOceanYAML, DefaultOceanConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadSpace loads space adventure configuration.
// Search order: customPath -> ~/.arcade/configs/space.yaml -> ./configs/space.yaml -> embedded default
func LoadSpace(customPath string) (SpaceConfig, error) {
	cfg, err := load(customPath, "space.yaml", defaultSpaceYAML, DefaultSpaceConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load walks the search order for one game. Files are decoded on top of the
// hard-coded defaults, so a partial YAML only overrides the keys it names.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := decodeOver(data, fallback); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if parsed, ok := decodeOver(data, fallback); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := decodeOver(embedded, fallback); ok {
		return parsed, nil
	}
	return cfg, nil // Fallback to hardcoded if embed fails
}

func decodeOver[T any](data []byte, fallback func() T) (T, bool) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
