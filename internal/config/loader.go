package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-relative config location checked after the user directory.
const LocalPath = "configs/pong.yaml"

// Load loads the arena configuration.
// Search order: customPath -> ~/.pong3d/configs/pong.yaml -> ./configs/pong.yaml -> embedded default.
// Files found in the user or local directories that fail to parse or validate are skipped.
func Load(customPath string) (PongConfig, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return PongConfig{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("pong.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := LoadFile(LocalPath); err == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultPongYAML)
	if err != nil {
		return DefaultPongConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads and validates a single config file.
func LoadFile(path string) (PongConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PongConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return PongConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so a file only needs the keys it changes,
// and validates the result.
func Parse(data []byte) (PongConfig, error) {
	cfg := DefaultPongConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PongConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return PongConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pong3d", "configs", filename)
}
