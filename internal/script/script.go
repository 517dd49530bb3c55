// Package script runs YAML-described edit sequences against a mesh.
package script

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshstore/pkg/mesh"
)

// ErrUnknownOp is returned when a script names an op that does not exist.
var ErrUnknownOp = errors.New("unknown op")

//go:embed cube.yaml
var cubeYAML []byte

// Script is a mesh setup plus an ordered list of ops.
type Script struct {
	Kind      string   `yaml:"kind,omitempty"`
	FaceArity *int     `yaml:"face_arity,omitempty"`
	Enable    []string `yaml:"enable,omitempty"`
	Ops       []Op     `yaml:"ops"`
}

// Op is one step of a script. Which fields are read depends on Op.
type Op struct {
	Op       string      `yaml:"op"`
	ID       int         `yaml:"id,omitempty"`
	Count    int         `yaml:"count,omitempty"`
	Point    []float64   `yaml:"point,omitempty,flow"`
	Points   [][]float64 `yaml:"points,omitempty"`
	Vertices []int       `yaml:"vertices,omitempty,flow"`
	Face     *int        `yaml:"face,omitempty"`
	Material int         `yaml:"material,omitempty"`
	Name     string      `yaml:"name,omitempty"`
	Color    string      `yaml:"color,omitempty"`
	Attr     string      `yaml:"attr,omitempty"`

	// transform
	Translate []float64 `yaml:"translate,omitempty,flow"`
	Scale     []float64 `yaml:"scale,omitempty,flow"`
	Rotate    *Rotation `yaml:"rotate,omitempty"`
}

// Rotation is an axis-angle rotation in degrees.
type Rotation struct {
	Axis    []float64 `yaml:"axis,flow"`
	Degrees float64   `yaml:"degrees"`
}

// Parse decodes a script and checks that every op is known.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	for i, op := range s.Ops {
		if _, ok := handlers[op.Op]; !ok {
			return nil, fmt.Errorf("op %d: %w: %q", i, ErrUnknownOp, op.Op)
		}
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Cube returns the built-in demo script: a triangulated unit cube that loses
// a vertex and a face, is made consistent and then compacted.
func Cube() *Script {
	s, err := Parse(cubeYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded cube script: %v", err))
	}
	return s
}

// Options resolves the mesh options of the script. Fields the script leaves
// empty come from def.
func (s *Script) Options(def mesh.Options) (mesh.Options, error) {
	opts := def
	if s.Kind != "" {
		k, err := mesh.ParseKind(s.Kind)
		if err != nil {
			return opts, err
		}
		opts.Kind = k
	}
	if s.FaceArity != nil {
		opts.FaceArity = *s.FaceArity
	}
	return opts, nil
}

// NewMesh builds the mesh the script starts from and enables extra
// attributes followed by the script's own.
func (s *Script) NewMesh(def mesh.Options, extra []string) (*mesh.Mesh, error) {
	opts, err := s.Options(def)
	if err != nil {
		return nil, err
	}
	m := mesh.NewWithOptions(opts)
	for _, names := range [][]string{extra, s.Enable} {
		for _, a := range names {
			if err := m.Enable(mesh.Attr(a)); err != nil {
				return nil, fmt.Errorf("enabling %s: %w", a, err)
			}
		}
	}
	return m, nil
}
