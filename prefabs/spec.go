package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

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

const defaultTPS = 60

// EngineSpec configures the driver and the world it owns.
type EngineSpec struct {
	Name          string      `yaml:"name"`
	TPS           int         `yaml:"tps"`
	MaxEntityID   int64       `yaml:"max_entity_id"`
	FirstEntityID *int64      `yaml:"first_entity_id"`
	Gravity       float64     `yaml:"gravity"`
	Script        string      `yaml:"script"`
	Spawn         []SpawnSpec `yaml:"spawn"`
}

// SpawnSpec asks the driver to build Count entities from Prefab at startup.
type SpawnSpec struct {
	Prefab string `yaml:"prefab"`
	Count  int    `yaml:"count"`
}

func LoadEngineSpec(filename string) (*EngineSpec, error) {
	spec, err := LoadSpec[EngineSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.TPS <= 0 {
		spec.TPS = defaultTPS
	}
	for i, s := range spec.Spawn {
		if s.Prefab == "" {
			return nil, fmt.Errorf("prefabs: %s: spawn[%d] has no prefab", filename, i)
		}
		if s.Count < 0 {
			return nil, fmt.Errorf("prefabs: %s: spawn[%d] has negative count %d", filename, i, s.Count)
		}
	}
	return &spec, nil
}
