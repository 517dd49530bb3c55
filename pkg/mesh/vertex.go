package mesh

import (
	"iter"

	"github.com/Faultbox/meshstore/pkg/math"
)

// AddVertex adds a vertex at p and returns its id.
func (m *Mesh) AddVertex(p math.Vec3) int {
	return m.vertices.Add(Vertex{Point: p})
}

// AddVertices adds one vertex per point and returns the id of the first.
// The others follow sequentially.
func (m *Mesh) AddVertices(ps ...math.Vec3) int {
	first := m.vertices.NextID()
	for _, p := range ps {
		m.vertices.push(Vertex{Point: p})
	}
	m.vertices.notifyGrow()
	return first
}

// AllocateVertices appends n vertices at the origin and returns the id of
// the first.
func (m *Mesh) AllocateVertices(n int) (int, error) {
	return m.vertices.Allocate(n, Vertex{})
}

// Vertex returns the vertex with the given id.
func (m *Mesh) Vertex(id int) (Vertex, error) {
	return m.vertices.Get(id)
}

// VertexPoint returns the position of a vertex.
func (m *Mesh) VertexPoint(id int) (math.Vec3, error) {
	v, err := m.vertices.Get(id)
	return v.Point, err
}

// SetVertexPoint moves a vertex.
func (m *Mesh) SetVertexPoint(id int, p math.Vec3) error {
	v, err := m.vertices.ref(id)
	if err != nil {
		return err
	}
	v.Point = p
	return nil
}

// DeleteVertex soft deletes a vertex. Faces, polylines and edges that use
// it keep the now dangling id until a consistency pass removes them.
func (m *Mesh) DeleteVertex(id int) error {
	return m.vertices.Remove(id)
}

// DeleteVertexEntity deletes the vertex identified by v.ID().
func (m *Mesh) DeleteVertexEntity(v Vertex) error {
	return m.vertices.RemoveEntity(v)
}

// IsVertexDeleted reports whether id addresses a deleted vertex.
func (m *Mesh) IsVertexDeleted(id int) bool { return m.vertices.IsDeleted(id) }

// VertexNumber returns the number of live vertices.
func (m *Mesh) VertexNumber() int { return m.vertices.Number() }

// NextVertexID returns one past the largest vertex id ever assigned since
// the last compaction.
func (m *Mesh) NextVertexID() int { return m.vertices.NextID() }

// Vertices iterates live vertices in id order.
func (m *Mesh) Vertices() iter.Seq2[int, Vertex] { return m.vertices.All() }

// VertexHandler exposes the vertex handler.
func (m *Mesh) VertexHandler() *Handler[Vertex, *Vertex] { return m.vertices }
