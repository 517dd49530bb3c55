package mesh

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks every invariant of the mesh and returns all violations
// combined, or nil. It reports entities whose stored id differs from their
// index, dangling references, attribute containers out of step with their
// owner and faces with a wrong vertex count.
func Validate(m *Mesh) error {
	var err error

	err = multierr.Append(err, m.vertices.CheckIDs())
	if m.polylines != nil {
		err = multierr.Append(err, m.polylines.CheckIDs())
	}
	if m.faces != nil {
		err = multierr.Append(err, m.faces.CheckIDs())
		err = multierr.Append(err, m.materials.CheckIDs())
	}
	if m.edges != nil {
		err = multierr.Append(err, m.edges.CheckIDs())
	}

	err = multierr.Append(err, allDangling(m.vertexRefs, m.vertices.Exists))
	if m.faces != nil {
		err = multierr.Append(err, allDangling(m.edgeFaceRefs, m.faces.Exists))
		err = multierr.Append(err, allDangling(m.materialRefs, m.materials.Exists))
	}

	for _, a := range Attrs {
		t, terr := m.toggle(a)
		if terr != nil {
			continue
		}
		err = multierr.Append(err, t.check())
	}

	if m.faces != nil {
		lo := max(3, m.faceArity)
		for id, f := range m.faces.All() {
			n := len(f.verts)
			if n < lo || (m.faceArity > 0 && n != m.faceArity) {
				err = multierr.Append(err, fmt.Errorf("%w: face %d has %d vertices", ErrArity, id, n))
			}
		}
		for id, w := range m.wedgeNormals.All() {
			err = multierr.Append(err, checkWedges(m, "wedge normals", id, len(w)))
		}
		for id, w := range m.wedgeUVs.All() {
			err = multierr.Append(err, checkWedges(m, "wedge uvs", id, len(w)))
		}
	}
	if m.polylines != nil {
		for id, p := range m.polylines.All() {
			if len(p.verts) < 2 {
				err = multierr.Append(err, fmt.Errorf("%w: polyline %d has %d vertices", ErrArity, id, len(p.verts)))
			}
		}
	}
	return err
}

func allDangling(refs func(func(ref) bool), live func(int) bool) error {
	var err error
	for r := range refs {
		if r.dangling(live) {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrDanglingReference, r))
		}
	}
	return err
}

func checkWedges(m *Mesh, name string, id, n int) error {
	if want := m.cornerCount(id); n != want {
		return fmt.Errorf("%w: face %d has %d %s for %d corners", ErrArity, id, n, name, want)
	}
	return nil
}
