package mesh

import (
	"slices"

	"github.com/Faultbox/meshstore/pkg/math"
)

// NullID marks an optional reference that points nowhere.
const NullID = -1

// Vertex is a point of the mesh.
type Vertex struct {
	id    int
	Point math.Vec3
}

// ID returns the index of the vertex in its mesh.
func (v Vertex) ID() int { return v.id }

func (v *Vertex) setID(id int) { v.id = id }

// Face is a polygon referencing at least three vertices in order.
type Face struct {
	id    int
	verts []int
}

// ID returns the index of the face in its mesh.
func (f Face) ID() int { return f.id }

func (f *Face) setID(id int) { f.id = id }

// Vertices returns a copy of the face's vertex ids in winding order.
func (f Face) Vertices() []int { return slices.Clone(f.verts) }

// VertexNumber returns the number of corners.
func (f Face) VertexNumber() int { return len(f.verts) }

// HasVertex reports whether the face references vertex v.
func (f Face) HasVertex(v int) bool { return slices.Contains(f.verts, v) }

// Polyline is an open chain of at least two vertices.
type Polyline struct {
	id    int
	verts []int
}

// ID returns the index of the polyline in its mesh.
func (p Polyline) ID() int { return p.id }

func (p *Polyline) setID(id int) { p.id = id }

// Vertices returns a copy of the polyline's vertex ids in order.
func (p Polyline) Vertices() []int { return slices.Clone(p.verts) }

// VertexNumber returns the number of vertices in the chain.
func (p Polyline) VertexNumber() int { return len(p.verts) }

// Edge joins two vertices and may belong to a face.
type Edge struct {
	id    int
	verts [2]int
	face  int
}

// ID returns the index of the edge in its mesh.
func (e Edge) ID() int { return e.id }

func (e *Edge) setID(id int) { e.id = id }

// Vertices returns the two endpoint vertex ids.
func (e Edge) Vertices() [2]int { return e.verts }

// Face returns the id of the face the edge belongs to, or NullID.
func (e Edge) Face() int { return e.face }

// Material is a named surface description referenced by faces.
type Material struct {
	id    int
	Name  string
	Color math.Color
}

// ID returns the index of the material in its mesh.
func (m Material) ID() int { return m.id }

func (m *Material) setID(id int) { m.id = id }
