package mesh

import (
	"github.com/Faultbox/meshstore/pkg/math"
)

// Transform applies mat to every live vertex position. Enabled vertex,
// face and wedge normals are transformed by the inverse transpose of mat
// and renormalized; they are left as they are when mat is singular.
func Transform(m *Mesh, mat math.Mat4) {
	for id := range m.vertices.IDs() {
		v, _ := m.vertices.ref(id)
		v.Point = mat.TransformPoint(v.Point)
	}

	nm, ok := mat.NormalMatrix()
	if !ok {
		return
	}
	transformNormal := func(n math.Vec3) math.Vec3 {
		return nm.TransformDirection(n).Normalize()
	}

	transformNormals(m.vertexNormals, transformNormal)
	if m.faces == nil {
		return
	}
	transformNormals(m.faceNormals, transformNormal)
	if m.wedgeNormals.Enabled() {
		for id := range m.faces.IDs() {
			w, _ := m.wedgeNormals.ref(id)
			out := make([]math.Vec3, len(*w))
			for k, n := range *w {
				out[k] = transformNormal(n)
			}
			*w = out
		}
	}
}

func transformNormals(a *Attribute[math.Vec3], fn func(math.Vec3) math.Vec3) {
	if !a.Enabled() {
		return
	}
	for id := 0; id < a.values.Len(); id++ {
		if n, err := a.values.Ref(id); err == nil {
			*n = fn(*n)
		}
	}
}
