package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Bundle is the full configuration surface, loaded once at startup and
// immutable thereafter.
type Bundle struct {
	Vision    VisionConfig
	Abilities AbilitiesConfig
	Control   ControlConfig
}

func loadYAML(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

// LoadAll loads vision.yaml, abilities.yaml and control.yaml from dir.
// A missing file falls back to its defaults; a present file replaces them
// wholesale. Every section is validated before the bundle is returned.
func LoadAll(dir string) (*Bundle, error) {
	b := &Bundle{
		Vision:    DefaultVision(),
		Abilities: DefaultAbilities(),
		Control:   DefaultControl(),
	}
	if _, err := loadYAML(filepath.Join(dir, "vision.yaml"), &b.Vision); err != nil {
		return nil, err
	}
	if loaded, err := loadYAML(filepath.Join(dir, "abilities.yaml"), &b.Abilities); err != nil {
		return nil, err
	} else if loaded && b.Abilities.Chains == nil {
		b.Abilities.Chains = DefaultAbilities().Chains
	}
	if _, err := loadYAML(filepath.Join(dir, "control.yaml"), &b.Control); err != nil {
		return nil, err
	}

	if err := b.Vision.validate(); err != nil {
		return nil, err
	}
	if err := b.Abilities.validate(); err != nil {
		return nil, err
	}
	if err := b.Control.validate(); err != nil {
		return nil, err
	}
	return b, nil
}
