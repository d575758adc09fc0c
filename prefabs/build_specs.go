package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is one entity prefab: a name and its components keyed by
// component name. Component values are decoded by the entity builder.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Vectors are written as flow sequences, [x, y] or [x, y, z]. Missing
// trailing values read as zero.

type TransformComponentSpec struct {
	Position []float64 `yaml:"position"`
	Yaw      float64   `yaml:"yaw"`
}

type MoverComponentSpec struct {
	Speed        float64 `yaml:"speed"`
	TurnRate     float64 `yaml:"turn_rate"`
	LookRate     float64 `yaml:"look_rate"`
	AttackDamage float64 `yaml:"attack_damage"`
	AttackRange  float64 `yaml:"attack_range"`
}

type CameraComponentSpec struct {
	Target       string    `yaml:"target"`
	ArmLength    float64   `yaml:"arm_length"`
	SocketOffset []float64 `yaml:"socket_offset"`
	FOV          float64   `yaml:"fov"`
	Near         float64   `yaml:"near"`
	Far          float64   `yaml:"far"`
	Smoothness   float64   `yaml:"smoothness"`
}

type HealthComponentSpec struct {
	Max float64 `yaml:"max"`
}

type PatrolComponentSpec struct {
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
	Speed  float64   `yaml:"speed"`
	Angle  float64   `yaml:"angle"`
}

type OccluderComponentSpec struct {
	Shape  string      `yaml:"shape"`
	Min    []float64   `yaml:"min"`
	Max    []float64   `yaml:"max"`
	Center []float64   `yaml:"center"`
	Radius float64     `yaml:"radius"`
	Points [][]float64 `yaml:"points"`
	MinZ   float64     `yaml:"min_z"`
	MaxZ   float64     `yaml:"max_z"`
}

// LockOnComponentSpec picks the preset from lock_on.yaml the controller
// starts with. Empty means the file's default.
type LockOnComponentSpec struct {
	Preset string `yaml:"preset"`
}
