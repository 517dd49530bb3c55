package mesh

import (
	"fmt"

	"github.com/Faultbox/meshstore/pkg/math"
)

// Attr names an optional attribute container.
type Attr string

const (
	AttrVertexNormals  Attr = "vertex_normals"
	AttrVertexColors   Attr = "vertex_colors"
	AttrVertexUVs      Attr = "vertex_uvs"
	AttrPolylineColors Attr = "polyline_colors"
	AttrFaceNormals    Attr = "face_normals"
	AttrFaceColors     Attr = "face_colors"
	AttrFaceMaterials  Attr = "face_materials"
	AttrWedgeNormals   Attr = "wedge_normals"
	AttrWedgeUVs       Attr = "wedge_uvs"
)

// Attrs lists every attribute name.
var Attrs = []Attr{
	AttrVertexNormals, AttrVertexColors, AttrVertexUVs,
	AttrPolylineColors,
	AttrFaceNormals, AttrFaceColors, AttrFaceMaterials, AttrWedgeNormals, AttrWedgeUVs,
}

// toggle is the type-erased part of an Attribute.
type toggle interface {
	Enabled() bool
	Enable()
	Disable()
	check() error
}

func (m *Mesh) toggle(a Attr) (toggle, error) {
	switch a {
	case AttrVertexNormals:
		return m.vertexNormals, nil
	case AttrVertexColors:
		return m.vertexColors, nil
	case AttrVertexUVs:
		return m.vertexUVs, nil
	}

	var t toggle
	switch a {
	case AttrPolylineColors:
		if m.polylines == nil {
			return nil, unsupported(string(a), m.kind)
		}
		return m.polylineColors, nil
	case AttrFaceNormals:
		t = m.faceNormals
	case AttrFaceColors:
		t = m.faceColors
	case AttrFaceMaterials:
		t = m.faceMaterials
	case AttrWedgeNormals:
		t = m.wedgeNormals
	case AttrWedgeUVs:
		t = m.wedgeUVs
	default:
		return nil, fmt.Errorf("unknown attribute %q", a)
	}
	if m.faces == nil {
		return nil, unsupported(string(a), m.kind)
	}
	return t, nil
}

// Enable enables the named attribute, back-filling defaults for every id.
func (m *Mesh) Enable(a Attr) error {
	t, err := m.toggle(a)
	if err != nil {
		return err
	}
	t.Enable()
	return nil
}

// Disable drops the values of the named attribute.
func (m *Mesh) Disable(a Attr) error {
	t, err := m.toggle(a)
	if err != nil {
		return err
	}
	t.Disable()
	return nil
}

// IsEnabled reports whether the named attribute is enabled.
func (m *Mesh) IsEnabled(a Attr) bool {
	t, err := m.toggle(a)
	return err == nil && t.Enabled()
}

// EnabledAttrs returns the enabled attributes in Attrs order.
func (m *Mesh) EnabledAttrs() []Attr {
	var out []Attr
	for _, a := range Attrs {
		if m.IsEnabled(a) {
			out = append(out, a)
		}
	}
	return out
}

// EnableVertexNormals enables per-vertex normals, zero by default.
func (m *Mesh) EnableVertexNormals() { m.vertexNormals.Enable() }

// DisableVertexNormals drops per-vertex normals.
func (m *Mesh) DisableVertexNormals() { m.vertexNormals.Disable() }

// VertexNormals returns the per-vertex normal container.
func (m *Mesh) VertexNormals() *Attribute[math.Vec3] { return m.vertexNormals }

// EnableVertexColors enables per-vertex colors, mid-gray by default.
func (m *Mesh) EnableVertexColors() { m.vertexColors.Enable() }

// DisableVertexColors drops per-vertex colors.
func (m *Mesh) DisableVertexColors() { m.vertexColors.Disable() }

// VertexColors returns the per-vertex color container.
func (m *Mesh) VertexColors() *Attribute[math.Color] { return m.vertexColors }

// EnableVertexUVs enables per-vertex texture coordinates, zero by default.
func (m *Mesh) EnableVertexUVs() { m.vertexUVs.Enable() }

// DisableVertexUVs drops per-vertex texture coordinates.
func (m *Mesh) DisableVertexUVs() { m.vertexUVs.Disable() }

// VertexUVs returns the per-vertex texture coordinate container.
func (m *Mesh) VertexUVs() *Attribute[math.Vec2] { return m.vertexUVs }

// EnablePolylineColors enables per-polyline colors.
func (m *Mesh) EnablePolylineColors() error { return m.Enable(AttrPolylineColors) }

// DisablePolylineColors drops per-polyline colors.
func (m *Mesh) DisablePolylineColors() error { return m.Disable(AttrPolylineColors) }

// PolylineColors returns the per-polyline color container, nil without
// polylines.
func (m *Mesh) PolylineColors() *Attribute[math.Color] { return m.polylineColors }

// EnableFaceNormals enables per-face normals.
func (m *Mesh) EnableFaceNormals() error { return m.Enable(AttrFaceNormals) }

// DisableFaceNormals drops per-face normals.
func (m *Mesh) DisableFaceNormals() error { return m.Disable(AttrFaceNormals) }

// FaceNormals returns the per-face normal container, nil without faces.
func (m *Mesh) FaceNormals() *Attribute[math.Vec3] { return m.faceNormals }

// EnableFaceColors enables per-face colors.
func (m *Mesh) EnableFaceColors() error { return m.Enable(AttrFaceColors) }

// DisableFaceColors drops per-face colors.
func (m *Mesh) DisableFaceColors() error { return m.Disable(AttrFaceColors) }

// FaceColors returns the per-face color container, nil without faces.
func (m *Mesh) FaceColors() *Attribute[math.Color] { return m.faceColors }

// EnableFaceMaterials enables per-face material ids, NullID by default.
func (m *Mesh) EnableFaceMaterials() error { return m.Enable(AttrFaceMaterials) }

// DisableFaceMaterials drops per-face material ids.
func (m *Mesh) DisableFaceMaterials() error { return m.Disable(AttrFaceMaterials) }

// FaceMaterials returns the per-face material container, nil without faces.
func (m *Mesh) FaceMaterials() *Attribute[int] { return m.faceMaterials }

// EnableWedgeNormals enables per-corner normals.
func (m *Mesh) EnableWedgeNormals() error { return m.Enable(AttrWedgeNormals) }

// DisableWedgeNormals drops per-corner normals.
func (m *Mesh) DisableWedgeNormals() error { return m.Disable(AttrWedgeNormals) }

// EnableWedgeUVs enables per-corner texture coordinates.
func (m *Mesh) EnableWedgeUVs() error { return m.Enable(AttrWedgeUVs) }

// DisableWedgeUVs drops per-corner texture coordinates.
func (m *Mesh) DisableWedgeUVs() error { return m.Disable(AttrWedgeUVs) }

// FaceWedgeNormals returns the per-corner normals of a face.
func (m *Mesh) FaceWedgeNormals(id int) ([]math.Vec3, error) {
	w, err := m.wedgeNormals.Get(id)
	return cloneOrNil(w), err
}

// SetFaceWedgeNormals sets one normal per corner of a face.
func (m *Mesh) SetFaceWedgeNormals(id int, normals []math.Vec3) error {
	return setWedges(m, m.wedgeNormals, id, normals)
}

// FaceWedgeUVs returns the per-corner texture coordinates of a face.
func (m *Mesh) FaceWedgeUVs(id int) ([]math.Vec2, error) {
	w, err := m.wedgeUVs.Get(id)
	return cloneOrNil(w), err
}

// SetFaceWedgeUVs sets one texture coordinate per corner of a face.
func (m *Mesh) SetFaceWedgeUVs(id int, uvs []math.Vec2) error {
	return setWedges(m, m.wedgeUVs, id, uvs)
}

func setWedges[T any](m *Mesh, a *Attribute[[]T], id int, values []T) error {
	if !a.Enabled() {
		return a.notEnabled()
	}
	f, err := m.faces.Get(id)
	if err != nil {
		return err
	}
	if len(values) != len(f.verts) {
		return fmt.Errorf("%w: %d %s for face %d with %d corners", ErrArity, len(values), a.name, id, len(f.verts))
	}
	return a.Set(id, cloneOrNil(values))
}

func cloneOrNil[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
