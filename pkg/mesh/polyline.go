package mesh

import (
	"fmt"
	"iter"
	"slices"
)

func (m *Mesh) checkPolylines() error {
	if m.polylines == nil {
		return unsupported("polylines", m.kind)
	}
	return nil
}

// AddPolyline adds a chain over at least two vertex ids and returns its id.
func (m *Mesh) AddPolyline(vertexIDs ...int) (int, error) {
	if err := m.checkPolylines(); err != nil {
		return NullID, err
	}
	verts, err := copyRefs(vertexIDs, 2, 0)
	if err != nil {
		return NullID, err
	}
	return m.polylines.Add(Polyline{verts: verts}), nil
}

// AllocatePolylines appends n empty polylines and returns the id of the
// first. CompactAll rejects them until their vertices are set.
func (m *Mesh) AllocatePolylines(n int) (int, error) {
	if err := m.checkPolylines(); err != nil {
		return NullID, err
	}
	return m.polylines.Allocate(n, Polyline{})
}

// Polyline returns the polyline with the given id.
func (m *Mesh) Polyline(id int) (Polyline, error) {
	if err := m.checkPolylines(); err != nil {
		return Polyline{}, err
	}
	return m.polylines.Get(id)
}

// PolylineVertices returns the vertex ids of a polyline.
func (m *Mesh) PolylineVertices(id int) ([]int, error) {
	p, err := m.Polyline(id)
	if err != nil {
		return nil, err
	}
	return p.Vertices(), nil
}

// SetPolylineVertices replaces the vertex ids of a polyline.
func (m *Mesh) SetPolylineVertices(id int, vertexIDs ...int) error {
	if err := m.checkPolylines(); err != nil {
		return err
	}
	verts, err := copyRefs(vertexIDs, 2, 0)
	if err != nil {
		return err
	}
	p, err := m.polylines.ref(id)
	if err != nil {
		return err
	}
	p.verts = verts
	return nil
}

// InsertPolylineVertex inserts vertex v at position pos of a polyline.
func (m *Mesh) InsertPolylineVertex(id, pos, v int) error {
	if err := m.checkPolylines(); err != nil {
		return err
	}
	p, err := m.polylines.ref(id)
	if err != nil {
		return err
	}
	if pos < 0 || pos > len(p.verts) {
		return fmt.Errorf("%w: position %d of polyline %d (%d vertices)", ErrOutOfRange, pos, id, len(p.verts))
	}
	p.verts = slices.Insert(slices.Clone(p.verts), pos, v)
	return nil
}

// DeletePolyline soft deletes a polyline.
func (m *Mesh) DeletePolyline(id int) error {
	if err := m.checkPolylines(); err != nil {
		return err
	}
	return m.polylines.Remove(id)
}

// DeletePolylineEntity deletes the polyline identified by p.ID().
func (m *Mesh) DeletePolylineEntity(p Polyline) error {
	return m.DeletePolyline(p.ID())
}

// IsPolylineDeleted reports whether id addresses a deleted polyline.
func (m *Mesh) IsPolylineDeleted(id int) bool {
	return m.polylines != nil && m.polylines.IsDeleted(id)
}

// PolylineNumber returns the number of live polylines.
func (m *Mesh) PolylineNumber() int {
	if m.polylines == nil {
		return 0
	}
	return m.polylines.Number()
}

// NextPolylineID returns the id the next added polyline will get.
func (m *Mesh) NextPolylineID() int {
	if m.polylines == nil {
		return 0
	}
	return m.polylines.NextID()
}

// Polylines iterates live polylines in id order.
func (m *Mesh) Polylines() iter.Seq2[int, Polyline] {
	if m.polylines == nil {
		return func(func(int, Polyline) bool) {}
	}
	return m.polylines.All()
}
