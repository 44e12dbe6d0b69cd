package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Load loads the simulation configuration.
// Search order: customPath -> ~/.petsim/configs/petsim.yaml -> ./configs/petsim.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

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
	if userCfgPath := userConfigPath("petsim.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if perr := yaml.Unmarshal(data, &cfg); perr == nil {
				return cfg, nil
			} else {
				log.Warn("ignoring unparseable config", "path", userCfgPath, "err", perr)
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/petsim.yaml"); err == nil {
		if perr := yaml.Unmarshal(data, &cfg); perr == nil {
			return cfg, nil
		} else {
			log.Warn("ignoring unparseable config", "path", "configs/petsim.yaml", "err", perr)
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPetsimYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".petsim", "configs", filename)
}
