package prefabs

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/milk9111/lockon/lockon"
	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("prefabs: unknown lock-on preset")

const LockOnPresetsFile = "lock_on.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LockOnPresets holds named lock-on tunings. Every preset starts from
// lockon.DefaultConfig and overrides only the keys it lists.
type LockOnPresets struct {
	Default string
	presets map[string]lockon.Config
}

type lockOnPresetsSpec struct {
	Default string               `yaml:"default"`
	Presets map[string]yaml.Node `yaml:"presets"`
}

func LoadLockOnPresets() (*LockOnPresets, error) {
	data, err := Load(LockOnPresetsFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", LockOnPresetsFile, err)
	}
	return ParseLockOnPresets(data)
}

// ParseLockOnPresets decodes and validates a presets document.
func ParseLockOnPresets(data []byte) (*LockOnPresets, error) {
	var spec lockOnPresetsSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", LockOnPresetsFile, err)
	}
	if len(spec.Presets) == 0 {
		return nil, fmt.Errorf("prefabs: %s defines no presets", LockOnPresetsFile)
	}

	p := &LockOnPresets{Default: spec.Default, presets: make(map[string]lockon.Config, len(spec.Presets))}
	for name, node := range spec.Presets {
		cfg := lockon.DefaultConfig()
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("prefabs: preset %q: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("prefabs: preset %q: %w", name, err)
		}
		p.presets[name] = cfg
	}
	if p.Default == "" {
		p.Default = p.Names()[0]
	}
	if _, ok := p.presets[p.Default]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownPreset, p.Default)
	}
	return p, nil
}

// Preset returns the named config; an empty name selects the default.
func (p *LockOnPresets) Preset(name string) (lockon.Config, error) {
	if name == "" {
		name = p.Default
	}
	cfg, ok := p.presets[name]
	if !ok {
		return lockon.Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return cfg, nil
}

// Names lists the presets in sorted order.
func (p *LockOnPresets) Names() []string {
	return slices.Sorted(maps.Keys(p.presets))
}

// ArenaSpec lays out the sandbox: each entity names a prefab and may replace
// whole components of it.
type ArenaSpec struct {
	Name     string            `yaml:"name"`
	Entities []ArenaEntitySpec `yaml:"entities"`
}

type ArenaEntitySpec struct {
	Prefab     string         `yaml:"prefab"`
	Components map[string]any `yaml:"components"`
}

func LoadArenaSpec(filename string) (ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return ArenaSpec{}, err
	}
	if len(spec.Entities) == 0 {
		return ArenaSpec{}, fmt.Errorf("prefabs: arena %s has no entities", filename)
	}
	return spec, nil
}
