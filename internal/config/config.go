// Package config handles meshtool configuration loading and management.
package config

import (
	"fmt"
	"slices"

	"github.com/Faultbox/meshstore/pkg/mesh"
)

// Config holds all meshtool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Tool    ToolConfig    `yaml:"tool"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MeshConfig describes the mesh a script runs against when the script does
// not say otherwise.
type MeshConfig struct {
	Kind       string   `yaml:"kind"`       // vertex, polyline, face or edge
	FaceArity  int      `yaml:"face_arity"` // 0 = polygons
	Attributes []string `yaml:"attributes"` // enabled before the first op
}

// ToolConfig holds meshtool behavior switches.
type ToolConfig struct {
	ValidateAfterRun bool   `yaml:"validate_after_run"`
	DumpAfterRun     bool   `yaml:"dump_after_run"`
	ProfileDir       string `yaml:"profile_dir"` // empty disables profiling
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Mesh: MeshConfig{
			Kind:      "edge",
			FaceArity: 0,
		},
		Tool: ToolConfig{
			ValidateAfterRun: true,
			DumpAfterRun:     false,
		},
	}
}

// Validate checks the values that cannot be expressed by YAML types.
func (c *Config) Validate() error {
	if _, err := mesh.ParseKind(c.Mesh.Kind); err != nil {
		return fmt.Errorf("mesh.kind: %w", err)
	}
	if c.Mesh.FaceArity != 0 && c.Mesh.FaceArity < 3 {
		return fmt.Errorf("mesh.face_arity: %d is neither 0 nor at least 3", c.Mesh.FaceArity)
	}
	for _, a := range c.Mesh.Attributes {
		if !slices.Contains(mesh.Attrs, mesh.Attr(a)) {
			return fmt.Errorf("mesh.attributes: unknown attribute %q", a)
		}
	}
	return nil
}

// MeshOptions converts the mesh section to mesh.Options.
func (c *Config) MeshOptions() (mesh.Options, error) {
	kind, err := mesh.ParseKind(c.Mesh.Kind)
	if err != nil {
		return mesh.Options{}, err
	}
	return mesh.Options{Kind: kind, FaceArity: c.Mesh.FaceArity}, nil
}
