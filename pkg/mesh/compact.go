package mesh

import "fmt"

// Compaction holds the old→new id maps produced by CompactAll. A map is nil
// when the mesh kind has no such handler.
type Compaction struct {
	Vertices  []int
	Polylines []int
	Faces     []int
	Edges     []int
	Materials []int
}

// CompactVertices removes deleted vertices, renumbers the survivors and
// rewrites every vertex id stored in faces, polylines and edges. Vertex
// attributes follow the same map. It fails with ErrDanglingReference,
// leaving the mesh untouched, if any live entity references a deleted
// vertex; run the consistency passes first.
func (m *Mesh) CompactVertices() ([]int, error) {
	if err := firstDangling(m.vertexRefs, m.vertices.Exists); err != nil {
		return nil, fmt.Errorf("compacting vertices: %w", err)
	}
	vm, err := m.vertices.compact()
	if err != nil {
		return vm, err
	}
	if m.faces != nil {
		for id := range m.faces.IDs() {
			f, _ := m.faces.ref(id)
			f.verts = remapAll(vm, f.verts)
		}
	}
	if m.polylines != nil {
		for id := range m.polylines.IDs() {
			p, _ := m.polylines.ref(id)
			p.verts = remapAll(vm, p.verts)
		}
	}
	if m.edges != nil {
		for id := range m.edges.IDs() {
			e, _ := m.edges.ref(id)
			e.verts[0] = vm[e.verts[0]]
			e.verts[1] = vm[e.verts[1]]
		}
	}
	return vm, nil
}

// CompactPolylines removes deleted polylines and renumbers the survivors.
func (m *Mesh) CompactPolylines() ([]int, error) {
	if err := m.checkPolylines(); err != nil {
		return nil, err
	}
	return m.polylines.compact()
}

// CompactFaces removes deleted faces, renumbers the survivors together with
// their attributes and rewrites the face ids stored in edges. It fails with
// ErrDanglingReference if a live edge belongs to a deleted face.
func (m *Mesh) CompactFaces() ([]int, error) {
	if err := m.checkFaces(); err != nil {
		return nil, err
	}
	if err := firstDangling(m.edgeFaceRefs, m.faces.Exists); err != nil {
		return nil, fmt.Errorf("compacting faces: %w", err)
	}
	fm, err := m.faces.compact()
	if err != nil {
		return fm, err
	}
	if m.edges != nil {
		for id := range m.edges.IDs() {
			e, _ := m.edges.ref(id)
			e.face = remap(fm, e.face)
		}
	}
	return fm, nil
}

// CompactEdges removes deleted edges and renumbers the survivors.
func (m *Mesh) CompactEdges() ([]int, error) {
	if err := m.checkEdges(); err != nil {
		return nil, err
	}
	return m.edges.compact()
}

// CompactMaterials removes deleted materials, renumbers the survivors and
// rewrites the face material attribute. It fails with ErrDanglingReference
// if a face uses a deleted material.
func (m *Mesh) CompactMaterials() ([]int, error) {
	if err := m.checkFaces(); err != nil {
		return nil, err
	}
	if err := firstDangling(m.materialRefs, m.materials.Exists); err != nil {
		return nil, fmt.Errorf("compacting materials: %w", err)
	}
	mm, err := m.materials.compact()
	if err != nil {
		return mm, err
	}
	if m.faceMaterials.Enabled() {
		for id := range m.faces.IDs() {
			mat, _ := m.faceMaterials.ref(id)
			*mat = remap(mm, *mat)
		}
	}
	return mm, nil
}

// CompactAll compacts every handler of the mesh: vertices, polylines,
// faces, edges, then materials. Faces are compacted before edges so edge
// face ids are rewritten against the final face numbering.
func (m *Mesh) CompactAll() (Compaction, error) {
	var c Compaction
	if err := m.checkReferences(); err != nil {
		return c, fmt.Errorf("compacting mesh: %w", err)
	}

	var err error
	if c.Vertices, err = m.CompactVertices(); err != nil {
		return c, err
	}
	if m.polylines != nil {
		if c.Polylines, err = m.CompactPolylines(); err != nil {
			return c, err
		}
	}
	if m.faces != nil {
		if c.Faces, err = m.CompactFaces(); err != nil {
			return c, err
		}
	}
	if m.edges != nil {
		if c.Edges, err = m.CompactEdges(); err != nil {
			return c, err
		}
	}
	if m.faces != nil {
		if c.Materials, err = m.CompactMaterials(); err != nil {
			return c, err
		}
	}
	return c, nil
}

// checkReferences fails on the first dangling reference of any kind, or on
// the first face or polyline with too few vertices.
func (m *Mesh) checkReferences() error {
	if err := firstDangling(m.vertexRefs, m.vertices.Exists); err != nil {
		return err
	}
	if err := m.firstShort(); err != nil {
		return err
	}
	if m.faces == nil {
		return nil
	}
	if err := firstDangling(m.edgeFaceRefs, m.faces.Exists); err != nil {
		return err
	}
	return firstDangling(m.materialRefs, m.materials.Exists)
}

// firstShort reports the first live face or polyline whose vertex count is
// below the minimum: the face arity (3 for polygons) or 2 for polylines.
func (m *Mesh) firstShort() error {
	if m.faces != nil {
		lo := max(3, m.faceArity)
		for id, f := range m.faces.All() {
			if len(f.verts) < lo {
				return fmt.Errorf("%w: face %d has %d vertices", ErrArity, id, len(f.verts))
			}
		}
	}
	if m.polylines != nil {
		for id, p := range m.polylines.All() {
			if len(p.verts) < 2 {
				return fmt.Errorf("%w: polyline %d has %d vertices", ErrArity, id, len(p.verts))
			}
		}
	}
	return nil
}
