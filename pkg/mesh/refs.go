package mesh

import "fmt"

// ref is one stored reference from an entity to another entity.
type ref struct {
	from     string
	fromID   int
	to       string
	target   int
	optional bool // NullID is allowed
}

func (r ref) String() string {
	return fmt.Sprintf("%s %d references %s %d", r.from, r.fromID, r.to, r.target)
}

func (r ref) dangling(live func(int) bool) bool {
	if r.optional && r.target == NullID {
		return false
	}
	return !live(r.target)
}

// vertexRefs yields every vertex id stored by a live face, polyline or edge.
func (m *Mesh) vertexRefs(yield func(ref) bool) {
	if m.faces != nil {
		for id, f := range m.faces.All() {
			for _, v := range f.verts {
				if !yield(ref{from: "face", fromID: id, to: "vertex", target: v}) {
					return
				}
			}
		}
	}
	if m.polylines != nil {
		for id, p := range m.polylines.All() {
			for _, v := range p.verts {
				if !yield(ref{from: "polyline", fromID: id, to: "vertex", target: v}) {
					return
				}
			}
		}
	}
	if m.edges != nil {
		for id, e := range m.edges.All() {
			for _, v := range e.verts {
				if !yield(ref{from: "edge", fromID: id, to: "vertex", target: v}) {
					return
				}
			}
		}
	}
}

// edgeFaceRefs yields the face id of every live edge.
func (m *Mesh) edgeFaceRefs(yield func(ref) bool) {
	if m.edges == nil {
		return
	}
	for id, e := range m.edges.All() {
		if !yield(ref{from: "edge", fromID: id, to: "face", target: e.face, optional: true}) {
			return
		}
	}
}

// materialRefs yields the material id of every live face when face
// materials are enabled.
func (m *Mesh) materialRefs(yield func(ref) bool) {
	if m.faces == nil {
		return
	}
	for id, mat := range m.faceMaterials.All() {
		if !yield(ref{from: "face", fromID: id, to: "material", target: mat, optional: true}) {
			return
		}
	}
}

// firstDangling returns an ErrDanglingReference for the first reference
// whose target is not live, or nil.
func firstDangling(refs func(func(ref) bool), live func(int) bool) error {
	for r := range refs {
		if r.dangling(live) {
			return fmt.Errorf("%w: %s", ErrDanglingReference, r)
		}
	}
	return nil
}

// remap translates a reference through a compaction map. NullID passes
// through unchanged.
func remap(m []int, id int) int {
	if id == NullID {
		return NullID
	}
	return m[id]
}

// remapAll returns a new slice with every id translated.
func remapAll(m []int, ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = remap(m, id)
	}
	return out
}
