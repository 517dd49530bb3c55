package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/meshstore/pkg/math"
)

func TestTransformMovesLiveVertices(t *testing.T) {
	m := New(KindFace)
	m.AddVertices(math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1})
	_ = m.DeleteVertex(2)

	Transform(m, math.Translate(math.Vec3{X: 10}))

	want := map[int]math.Vec3{0: {X: 11}, 1: {X: 10, Y: 1}}
	for id, w := range want {
		if p, _ := m.VertexPoint(id); p != w {
			t.Errorf("vertex %d: expected %v, got %v", id, w, p)
		}
	}
}

func TestTransformRotatesNormals(t *testing.T) {
	m := New(KindFace)
	m.AddVertices(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1})
	f, _ := m.AddFace(0, 1, 2)
	m.EnableVertexNormals()
	_ = m.EnableFaceNormals()
	_ = m.EnableWedgeNormals()
	_ = m.VertexNormals().Set(0, math.Vec3{X: 1})
	_ = m.FaceNormals().Set(f, math.Vec3{Z: 1})
	_ = m.SetFaceWedgeNormals(f, []math.Vec3{{X: 1}, {X: 1}, {X: 1}})

	Transform(m, math.RotateAxis(math.Vec3{Y: 1}, gomath.Pi/2))

	n, _ := m.VertexNormals().Get(0)
	if !n.ApproxEqual(math.Vec3{Z: -1}, 1e-9) {
		t.Errorf("vertex normal: expected (0,0,-1), got %v", n)
	}
	fn, _ := m.FaceNormals().Get(f)
	if !fn.ApproxEqual(math.Vec3{X: 1}, 1e-9) {
		t.Errorf("face normal: expected (1,0,0), got %v", fn)
	}
	w, _ := m.FaceWedgeNormals(f)
	for k, wn := range w {
		if !wn.ApproxEqual(math.Vec3{Z: -1}, 1e-9) {
			t.Errorf("wedge %d: expected (0,0,-1), got %v", k, wn)
		}
	}
}
