package mesh

import (
	"fmt"
	"iter"
	"slices"

	"github.com/Faultbox/meshstore/pkg/math"
)

func (m *Mesh) checkFaces() error {
	if m.faces == nil {
		return unsupported("faces", m.kind)
	}
	return nil
}

func (m *Mesh) faceRefs(ids []int) ([]int, error) {
	return copyRefs(ids, max(3, m.faceArity), m.faceArity)
}

// AddFace adds a face over the given vertex ids, in winding order, and
// returns its id. The vertex ids are not checked: a face may reference
// vertices that are deleted or not yet added.
func (m *Mesh) AddFace(vertexIDs ...int) (int, error) {
	if err := m.checkFaces(); err != nil {
		return NullID, err
	}
	verts, err := m.faceRefs(vertexIDs)
	if err != nil {
		return NullID, err
	}
	return m.faces.Add(Face{verts: verts}), nil
}

// AllocateFaces appends n faces and returns the id of the first. On meshes
// with a fixed arity their vertex ids are NullID; otherwise they are empty.
// Either way CompactAll rejects them until their vertices are set.
func (m *Mesh) AllocateFaces(n int) (int, error) {
	if err := m.checkFaces(); err != nil {
		return NullID, err
	}
	if n < 0 {
		return NullID, fmt.Errorf("face: %w: %d", ErrNegativeCount, n)
	}
	first := m.faces.NextID()
	for i := 0; i < n; i++ {
		verts := make([]int, m.faceArity)
		for k := range verts {
			verts[k] = NullID
		}
		m.faces.push(Face{verts: verts})
	}
	m.faces.notifyGrow()
	return first, nil
}

// Face returns the face with the given id.
func (m *Mesh) Face(id int) (Face, error) {
	if err := m.checkFaces(); err != nil {
		return Face{}, err
	}
	return m.faces.Get(id)
}

// FaceVertices returns the vertex ids of a face.
func (m *Mesh) FaceVertices(id int) ([]int, error) {
	f, err := m.Face(id)
	if err != nil {
		return nil, err
	}
	return f.Vertices(), nil
}

// SetFaceVertices replaces the vertex ids of a face. Wedge attributes are
// resized to the new corner count, keeping the leading values.
func (m *Mesh) SetFaceVertices(id int, vertexIDs ...int) error {
	if err := m.checkFaces(); err != nil {
		return err
	}
	verts, err := m.faceRefs(vertexIDs)
	if err != nil {
		return err
	}
	f, err := m.faces.ref(id)
	if err != nil {
		return err
	}
	f.verts = verts
	if wn, err := m.wedgeNormals.ref(id); err == nil {
		*wn = resizeWedges(*wn, len(verts))
	}
	if wt, err := m.wedgeUVs.ref(id); err == nil {
		*wt = resizeWedges(*wt, len(verts))
	}
	return nil
}

func resizeWedges[T any](w []T, n int) []T {
	if n <= len(w) {
		return slices.Clone(w[:n])
	}
	out := make([]T, n)
	copy(out, w)
	return out
}

// InsertFaceVertex inserts vertex v at corner pos of a polygonal face,
// shifting the following corners. Wedge attributes get a zero value at pos.
func (m *Mesh) InsertFaceVertex(id, pos, v int) error {
	if err := m.checkFaces(); err != nil {
		return err
	}
	if m.faceArity != 0 {
		return fmt.Errorf("%w: faces have fixed arity %d", ErrArity, m.faceArity)
	}
	f, err := m.faces.ref(id)
	if err != nil {
		return err
	}
	if pos < 0 || pos > len(f.verts) {
		return fmt.Errorf("%w: corner %d of face %d (%d corners)", ErrOutOfRange, pos, id, len(f.verts))
	}
	f.verts = slices.Insert(slices.Clone(f.verts), pos, v)
	if wn, err := m.wedgeNormals.ref(id); err == nil {
		*wn = slices.Insert(slices.Clone(*wn), min(pos, len(*wn)), math.Vec3{})
	}
	if wt, err := m.wedgeUVs.ref(id); err == nil {
		*wt = slices.Insert(slices.Clone(*wt), min(pos, len(*wt)), math.Vec2{})
	}
	return nil
}

// RemoveFaceVertex removes corner pos of a polygonal face. A face keeps at
// least three corners.
func (m *Mesh) RemoveFaceVertex(id, pos int) error {
	if err := m.checkFaces(); err != nil {
		return err
	}
	if m.faceArity != 0 {
		return fmt.Errorf("%w: faces have fixed arity %d", ErrArity, m.faceArity)
	}
	f, err := m.faces.ref(id)
	if err != nil {
		return err
	}
	if pos < 0 || pos >= len(f.verts) {
		return fmt.Errorf("%w: corner %d of face %d (%d corners)", ErrOutOfRange, pos, id, len(f.verts))
	}
	if len(f.verts) <= 3 {
		return fmt.Errorf("%w: face %d would have %d corners", ErrArity, id, len(f.verts)-1)
	}
	f.verts = slices.Delete(slices.Clone(f.verts), pos, pos+1)
	if wn, err := m.wedgeNormals.ref(id); err == nil && pos < len(*wn) {
		*wn = slices.Delete(slices.Clone(*wn), pos, pos+1)
	}
	if wt, err := m.wedgeUVs.ref(id); err == nil && pos < len(*wt) {
		*wt = slices.Delete(slices.Clone(*wt), pos, pos+1)
	}
	return nil
}

// DeleteFace soft deletes a face. Edges that belong to it keep the id until
// RemoveEdgesWithDeletedFaces runs.
func (m *Mesh) DeleteFace(id int) error {
	if err := m.checkFaces(); err != nil {
		return err
	}
	return m.faces.Remove(id)
}

// DeleteFaceEntity deletes the face identified by f.ID().
func (m *Mesh) DeleteFaceEntity(f Face) error {
	return m.DeleteFace(f.ID())
}

// IsFaceDeleted reports whether id addresses a deleted face.
func (m *Mesh) IsFaceDeleted(id int) bool {
	return m.faces != nil && m.faces.IsDeleted(id)
}

// FaceNumber returns the number of live faces.
func (m *Mesh) FaceNumber() int {
	if m.faces == nil {
		return 0
	}
	return m.faces.Number()
}

// NextFaceID returns the id the next added face will get.
func (m *Mesh) NextFaceID() int {
	if m.faces == nil {
		return 0
	}
	return m.faces.NextID()
}

// Faces iterates live faces in id order.
func (m *Mesh) Faces() iter.Seq2[int, Face] {
	if m.faces == nil {
		return func(func(int, Face) bool) {}
	}
	return m.faces.All()
}

// FaceHandler exposes the face handler, nil when the kind has no faces.
func (m *Mesh) FaceHandler() *Handler[Face, *Face] { return m.faces }
