package mesh

import (
	"iter"
)

func (m *Mesh) checkEdges() error {
	if m.edges == nil {
		return unsupported("edges", m.kind)
	}
	return nil
}

// AddEdge adds an edge between two vertices that belongs to no face.
func (m *Mesh) AddEdge(v0, v1 int) (int, error) {
	return m.AddFaceEdge(v0, v1, NullID)
}

// AddFaceEdge adds an edge between two vertices on the given face.
func (m *Mesh) AddFaceEdge(v0, v1, face int) (int, error) {
	if err := m.checkEdges(); err != nil {
		return NullID, err
	}
	return m.edges.Add(Edge{verts: [2]int{v0, v1}, face: face}), nil
}

// AllocateEdges appends n edges with NullID endpoints and returns the id of
// the first.
func (m *Mesh) AllocateEdges(n int) (int, error) {
	if err := m.checkEdges(); err != nil {
		return NullID, err
	}
	return m.edges.Allocate(n, Edge{verts: [2]int{NullID, NullID}, face: NullID})
}

// Edge returns the edge with the given id.
func (m *Mesh) Edge(id int) (Edge, error) {
	if err := m.checkEdges(); err != nil {
		return Edge{}, err
	}
	return m.edges.Get(id)
}

// SetEdgeVertices replaces the endpoints of an edge.
func (m *Mesh) SetEdgeVertices(id, v0, v1 int) error {
	if err := m.checkEdges(); err != nil {
		return err
	}
	e, err := m.edges.ref(id)
	if err != nil {
		return err
	}
	e.verts = [2]int{v0, v1}
	return nil
}

// SetEdgeFace sets the face an edge belongs to; NullID detaches it.
func (m *Mesh) SetEdgeFace(id, face int) error {
	if err := m.checkEdges(); err != nil {
		return err
	}
	e, err := m.edges.ref(id)
	if err != nil {
		return err
	}
	e.face = face
	return nil
}

// DeleteEdge soft deletes an edge.
func (m *Mesh) DeleteEdge(id int) error {
	if err := m.checkEdges(); err != nil {
		return err
	}
	return m.edges.Remove(id)
}

// DeleteEdgeEntity deletes the edge identified by e.ID().
func (m *Mesh) DeleteEdgeEntity(e Edge) error {
	return m.DeleteEdge(e.ID())
}

// IsEdgeDeleted reports whether id addresses a deleted edge.
func (m *Mesh) IsEdgeDeleted(id int) bool {
	return m.edges != nil && m.edges.IsDeleted(id)
}

// EdgeNumber returns the number of live edges.
func (m *Mesh) EdgeNumber() int {
	if m.edges == nil {
		return 0
	}
	return m.edges.Number()
}

// NextEdgeID returns the id the next added edge will get.
func (m *Mesh) NextEdgeID() int {
	if m.edges == nil {
		return 0
	}
	return m.edges.NextID()
}

// Edges iterates live edges in id order.
func (m *Mesh) Edges() iter.Seq2[int, Edge] {
	if m.edges == nil {
		return func(func(int, Edge) bool) {}
	}
	return m.edges.All()
}
