package mesh

// Removal lists the ids removed or reset by MakeConsistent.
type Removal struct {
	Faces         []int
	Polylines     []int
	Edges         []int
	FaceMaterials []int // faces whose material was reset to NullID
}

// Total returns the number of entities removed, material resets excluded.
func (r Removal) Total() int {
	return len(r.Faces) + len(r.Polylines) + len(r.Edges)
}

// RemoveFacesWithDeletedVertices deletes every live face that references a
// deleted or never-added vertex and returns the deleted face ids in
// increasing order. Only faces are touched: edges on those faces are left
// for RemoveEdgesWithDeletedFaces.
func RemoveFacesWithDeletedVertices(m *Mesh) ([]int, error) {
	if err := m.checkFaces(); err != nil {
		return nil, err
	}
	var stale []int
	for id, f := range m.faces.All() {
		if anyDangling(f.verts, m.vertices.Exists) {
			stale = append(stale, id)
		}
	}
	return stale, removeAll(m.faces.Remove, stale)
}

// RemovePolylinesWithDeletedVertices deletes every live polyline that
// references a deleted or never-added vertex and returns their ids.
func RemovePolylinesWithDeletedVertices(m *Mesh) ([]int, error) {
	if err := m.checkPolylines(); err != nil {
		return nil, err
	}
	var stale []int
	for id, p := range m.polylines.All() {
		if anyDangling(p.verts, m.vertices.Exists) {
			stale = append(stale, id)
		}
	}
	return stale, removeAll(m.polylines.Remove, stale)
}

// RemoveEdgesWithDeletedVertices deletes every live edge with a deleted or
// never-added endpoint and returns their ids.
func RemoveEdgesWithDeletedVertices(m *Mesh) ([]int, error) {
	if err := m.checkEdges(); err != nil {
		return nil, err
	}
	var stale []int
	for id, e := range m.edges.All() {
		if anyDangling(e.verts[:], m.vertices.Exists) {
			stale = append(stale, id)
		}
	}
	return stale, removeAll(m.edges.Remove, stale)
}

// RemoveEdgesWithDeletedFaces deletes every live edge whose face is deleted
// or was never added, and returns their ids. Edges without a face are kept.
func RemoveEdgesWithDeletedFaces(m *Mesh) ([]int, error) {
	if err := m.checkEdges(); err != nil {
		return nil, err
	}
	var stale []int
	for id, e := range m.edges.All() {
		if e.face != NullID && !m.faces.Exists(e.face) {
			stale = append(stale, id)
		}
	}
	return stale, removeAll(m.edges.Remove, stale)
}

// ClearFaceMaterialsOfDeletedMaterials resets to NullID the material of
// every live face that uses a deleted or never-added material, and returns
// the ids of those faces. It does nothing while face materials are disabled.
func ClearFaceMaterialsOfDeletedMaterials(m *Mesh) ([]int, error) {
	if err := m.checkFaces(); err != nil {
		return nil, err
	}
	var reset []int
	for id, mat := range m.faceMaterials.All() {
		if mat != NullID && !m.materials.Exists(mat) {
			reset = append(reset, id)
		}
	}
	for _, id := range reset {
		if err := m.faceMaterials.Set(id, NullID); err != nil {
			return reset, err
		}
	}
	return reset, nil
}

// MakeConsistent runs every consistency pass the mesh kind supports, in
// dependency order: faces, polylines and edges against vertices, then edges
// against faces, then face materials. Afterwards the mesh can be compacted.
func MakeConsistent(m *Mesh) (Removal, error) {
	var r Removal
	var err error
	if m.faces != nil {
		if r.Faces, err = RemoveFacesWithDeletedVertices(m); err != nil {
			return r, err
		}
	}
	if m.polylines != nil {
		if r.Polylines, err = RemovePolylinesWithDeletedVertices(m); err != nil {
			return r, err
		}
	}
	if m.edges != nil {
		if r.Edges, err = RemoveEdgesWithDeletedVertices(m); err != nil {
			return r, err
		}
		byFace, err := RemoveEdgesWithDeletedFaces(m)
		if err != nil {
			return r, err
		}
		r.Edges = mergeSorted(r.Edges, byFace)
	}
	if m.faces != nil {
		if r.FaceMaterials, err = ClearFaceMaterialsOfDeletedMaterials(m); err != nil {
			return r, err
		}
	}
	return r, nil
}

func anyDangling(ids []int, live func(int) bool) bool {
	for _, id := range ids {
		if !live(id) {
			return true
		}
	}
	return false
}

func removeAll(remove func(int) error, ids []int) error {
	for _, id := range ids {
		if err := remove(id); err != nil {
			return err
		}
	}
	return nil
}

// mergeSorted merges two increasing, disjoint id lists.
func mergeSorted(a, b []int) []int {
	if len(b) == 0 {
		return a
	}
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
