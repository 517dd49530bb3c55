// Package mesh provides an indexed mesh store with soft delete and compaction.
//
// A Mesh holds vertices and, depending on its Kind, polylines, faces, edges
// and materials. Every entity kind lives in a Handler whose ids stay stable
// across deletions. Deleting an entity never touches the entities that
// reference it: run the consistency passes (RemoveFacesWithDeletedVertices
// and friends) before compacting, or compaction fails with
// ErrDanglingReference.
package mesh

import (
	"fmt"
	"strings"

	"github.com/Faultbox/meshstore/pkg/math"
)

// Kind selects the entity handlers a mesh carries. Each kind includes the
// handlers of the kinds before it.
type Kind int

const (
	KindVertex   Kind = iota // Vertices only
	KindPolyline             // + polylines
	KindFace                 // + faces and materials
	KindEdge                 // + edges
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindPolyline:
		return "polyline"
	case KindFace:
		return "face"
	case KindEdge:
		return "edge"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a kind name as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindVertex; k <= KindEdge; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown mesh kind %q", s)
}

// Options configures a new Mesh.
type Options struct {
	Kind Kind
	// FaceArity fixes the number of vertices per face; 0 allows any
	// polygon with at least three vertices.
	FaceArity int
}

// Mesh is a set of entity handlers and their attributes.
// It is not safe for concurrent use.
type Mesh struct {
	kind      Kind
	faceArity int

	vertices  *Handler[Vertex, *Vertex]
	polylines *Handler[Polyline, *Polyline]
	faces     *Handler[Face, *Face]
	edges     *Handler[Edge, *Edge]
	materials *Handler[Material, *Material]

	vertexNormals  *Attribute[math.Vec3]
	vertexColors   *Attribute[math.Color]
	vertexUVs      *Attribute[math.Vec2]
	polylineColors *Attribute[math.Color]
	faceNormals    *Attribute[math.Vec3]
	faceColors     *Attribute[math.Color]
	faceMaterials  *Attribute[int]
	wedgeNormals   *Attribute[[]math.Vec3]
	wedgeUVs       *Attribute[[]math.Vec2]
}

// New returns an empty polygonal mesh of the given kind.
func New(kind Kind) *Mesh {
	return NewWithOptions(Options{Kind: kind})
}

// NewTriangleMesh returns an empty mesh with faces of exactly three vertices.
func NewTriangleMesh() *Mesh {
	return NewWithOptions(Options{Kind: KindFace, FaceArity: 3})
}

// NewWithOptions returns an empty mesh configured by opts.
func NewWithOptions(opts Options) *Mesh {
	m := &Mesh{kind: opts.Kind, faceArity: opts.FaceArity}

	m.vertices = newHandler[Vertex]("vertex")
	m.vertexNormals = attach(m.vertices, newAttribute("vertex normals", m.vertices, zeroVec3))
	m.vertexColors = attach(m.vertices, newAttribute("vertex colors", m.vertices, gray))
	m.vertexUVs = attach(m.vertices, newAttribute("vertex uvs", m.vertices, zeroVec2))

	if opts.Kind >= KindPolyline {
		m.polylines = newHandler[Polyline]("polyline")
		m.polylineColors = attach(m.polylines, newAttribute("polyline colors", m.polylines, gray))
	}

	if opts.Kind >= KindFace {
		m.faces = newHandler[Face]("face")
		m.materials = newHandler[Material]("material")
		m.faceNormals = attach(m.faces, newAttribute("face normals", m.faces, zeroVec3))
		m.faceColors = attach(m.faces, newAttribute("face colors", m.faces, gray))
		m.faceMaterials = attach(m.faces, newAttribute("face materials", m.faces, func(int) int { return NullID }))
		m.wedgeNormals = attach(m.faces, newAttribute("wedge normals", m.faces, func(id int) []math.Vec3 {
			return make([]math.Vec3, m.cornerCount(id))
		}))
		m.wedgeUVs = attach(m.faces, newAttribute("wedge uvs", m.faces, func(id int) []math.Vec2 {
			return make([]math.Vec2, m.cornerCount(id))
		}))
	}

	if opts.Kind >= KindEdge {
		m.edges = newHandler[Edge]("edge")
	}
	return m
}

func attach[T any, E any, P entityPtr[E]](h *Handler[E, P], a *Attribute[T]) *Attribute[T] {
	h.register(a)
	return a
}

func zeroVec3(int) math.Vec3 { return math.Vec3{} }
func zeroVec2(int) math.Vec2 { return math.Vec2{} }
func gray(int) math.Color    { return math.Gray }

// cornerCount returns the number of corners of a live face, 0 otherwise.
func (m *Mesh) cornerCount(id int) int {
	f, err := m.faces.store.At(id)
	if err != nil {
		return 0
	}
	return len(f.verts)
}

// Kind returns the kind the mesh was built with.
func (m *Mesh) Kind() Kind { return m.kind }

// FaceArity returns the fixed face size, or 0 for polygonal meshes.
func (m *Mesh) FaceArity() int { return m.faceArity }

// HasPolylines reports whether the mesh stores polylines.
func (m *Mesh) HasPolylines() bool { return m.polylines != nil }

// HasFaces reports whether the mesh stores faces and materials.
func (m *Mesh) HasFaces() bool { return m.faces != nil }

// HasEdges reports whether the mesh stores edges.
func (m *Mesh) HasEdges() bool { return m.edges != nil }

// Clear removes every entity. Enabled attributes stay enabled and empty.
func (m *Mesh) Clear() {
	if m.edges != nil {
		m.edges.Clear()
	}
	if m.faces != nil {
		m.faces.Clear()
		m.materials.Clear()
	}
	if m.polylines != nil {
		m.polylines.Clear()
	}
	m.vertices.Clear()
}

func unsupported(what string, k Kind) error {
	return fmt.Errorf("%w: %s in %s mesh", ErrUnsupported, what, k)
}

// copyRefs copies ids, rejecting a count outside [lo, hi] (hi 0 = unbounded).
func copyRefs(ids []int, lo, hi int) ([]int, error) {
	if len(ids) < lo || (hi > 0 && len(ids) > hi) {
		if lo == hi {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrArity, len(ids), lo)
		}
		return nil, fmt.Errorf("%w: got %d, want at least %d", ErrArity, len(ids), lo)
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}
