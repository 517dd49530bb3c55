package script

import (
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshstore/pkg/math"
	"github.com/Faultbox/meshstore/pkg/mesh"
)

// Dump is a YAML-friendly view of a mesh: live entities with the values of
// their enabled attributes, plus the ids still held by deleted slots.
type Dump struct {
	Kind       string         `yaml:"kind"`
	FaceArity  int            `yaml:"face_arity,omitempty"`
	Attributes []string       `yaml:"attributes,omitempty,flow"`
	Vertices   []VertexDump   `yaml:"vertices"`
	Polylines  []PolylineDump `yaml:"polylines,omitempty"`
	Faces      []FaceDump     `yaml:"faces,omitempty"`
	Edges      []EdgeDump     `yaml:"edges,omitempty"`
	Materials  []MaterialDump `yaml:"materials,omitempty"`
	Deleted    DeletedDump    `yaml:"deleted,omitempty"`
}

// VertexDump is one live vertex.
type VertexDump struct {
	ID     int        `yaml:"id"`
	Point  []float64  `yaml:"point,flow"`
	Normal []float64  `yaml:"normal,omitempty,flow"`
	Color  string     `yaml:"color,omitempty"`
	UV     *math.Vec2 `yaml:"uv,omitempty,flow"`
}

// PolylineDump is one live polyline.
type PolylineDump struct {
	ID       int    `yaml:"id"`
	Vertices []int  `yaml:"vertices,flow"`
	Color    string `yaml:"color,omitempty"`
}

// FaceDump is one live face.
type FaceDump struct {
	ID           int         `yaml:"id"`
	Vertices     []int       `yaml:"vertices,flow"`
	Normal       []float64   `yaml:"normal,omitempty,flow"`
	Color        string      `yaml:"color,omitempty"`
	Material     *int        `yaml:"material,omitempty"`
	WedgeNormals [][]float64 `yaml:"wedge_normals,omitempty,flow"`
	WedgeUVs     []math.Vec2 `yaml:"wedge_uvs,omitempty,flow"`
}

// EdgeDump is one live edge.
type EdgeDump struct {
	ID       int    `yaml:"id"`
	Vertices [2]int `yaml:"vertices,flow"`
	Face     int    `yaml:"face"`
}

// MaterialDump is one live material.
type MaterialDump struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// DeletedDump lists the ids of deleted slots awaiting compaction.
type DeletedDump struct {
	Vertices  []int `yaml:"vertices,omitempty,flow"`
	Polylines []int `yaml:"polylines,omitempty,flow"`
	Faces     []int `yaml:"faces,omitempty,flow"`
	Edges     []int `yaml:"edges,omitempty,flow"`
	Materials []int `yaml:"materials,omitempty,flow"`
}

// Snapshot captures the current state of m.
func Snapshot(m *mesh.Mesh) *Dump {
	d := &Dump{
		Kind:      m.Kind().String(),
		FaceArity: m.FaceArity(),
	}
	for _, a := range m.EnabledAttrs() {
		d.Attributes = append(d.Attributes, string(a))
	}

	for id, v := range m.Vertices() {
		vd := VertexDump{ID: id, Point: v.Point.Slice()}
		if n, err := m.VertexNormals().Get(id); err == nil {
			vd.Normal = n.Slice()
		}
		if c, err := m.VertexColors().Get(id); err == nil {
			vd.Color = c.String()
		}
		if uv, err := m.VertexUVs().Get(id); err == nil {
			vd.UV = &uv
		}
		d.Vertices = append(d.Vertices, vd)
	}
	d.Deleted.Vertices = deletedIDs(m.NextVertexID(), m.IsVertexDeleted)

	for id, p := range m.Polylines() {
		pd := PolylineDump{ID: id, Vertices: p.Vertices()}
		if c, err := m.PolylineColors().Get(id); err == nil {
			pd.Color = c.String()
		}
		d.Polylines = append(d.Polylines, pd)
	}
	d.Deleted.Polylines = deletedIDs(m.NextPolylineID(), m.IsPolylineDeleted)

	for id, f := range m.Faces() {
		d.Faces = append(d.Faces, faceDump(m, id, f))
	}
	d.Deleted.Faces = deletedIDs(m.NextFaceID(), m.IsFaceDeleted)

	for id, e := range m.Edges() {
		d.Edges = append(d.Edges, EdgeDump{ID: id, Vertices: e.Vertices(), Face: e.Face()})
	}
	d.Deleted.Edges = deletedIDs(m.NextEdgeID(), m.IsEdgeDeleted)

	for id, mat := range m.Materials() {
		d.Materials = append(d.Materials, MaterialDump{ID: id, Name: mat.Name, Color: mat.Color.String()})
	}
	d.Deleted.Materials = deletedIDs(m.NextMaterialID(), m.IsMaterialDeleted)
	return d
}

func faceDump(m *mesh.Mesh, id int, f mesh.Face) FaceDump {
	fd := FaceDump{ID: id, Vertices: f.Vertices()}
	if n, err := m.FaceNormals().Get(id); err == nil {
		fd.Normal = n.Slice()
	}
	if c, err := m.FaceColors().Get(id); err == nil {
		fd.Color = c.String()
	}
	if mat, err := m.FaceMaterials().Get(id); err == nil {
		fd.Material = &mat
	}
	if ns, err := m.FaceWedgeNormals(id); err == nil {
		for _, n := range ns {
			fd.WedgeNormals = append(fd.WedgeNormals, n.Slice())
		}
	}
	if uvs, err := m.FaceWedgeUVs(id); err == nil {
		fd.WedgeUVs = uvs
	}
	return fd
}

func deletedIDs(next int, deleted func(int) bool) []int {
	var ids []int
	for id := 0; id < next; id++ {
		if deleted(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Marshal encodes the dump as YAML.
func (d *Dump) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
