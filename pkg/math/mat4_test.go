package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(Vec3{10, 20, 30}), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(Vec3{2, 2, 2}), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"rotate z 90", RotateAxis(Vec3{0, 0, 1}, math.Pi/2), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(Vec3{5, 5, 5})
	d := Vec3{0, 1, 0}
	if got := m.TransformDirection(d); got != d {
		t.Errorf("TransformDirection: got %v, want %v", got, d)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(Scale(Vec3{2, 4, 8}))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible matrix")
	}
	p := Vec3{3, -1, 7}
	back := inv.TransformPoint(m.TransformPoint(p))
	if !back.ApproxEqual(p, 1e-9) {
		t.Errorf("inverse round trip: got %v, want %v", back, p)
	}

	if _, ok := Scale(Vec3{1, 0, 1}).Inverse(); ok {
		t.Error("expected singular matrix to report !ok")
	}
}

func TestNormalMatrixUnderNonUniformScale(t *testing.T) {
	m := Scale(Vec3{2, 1, 1})
	nm, ok := m.NormalMatrix()
	if !ok {
		t.Fatal("expected normal matrix")
	}
	// Plane x = y has normal (1,-1,0)/sqrt2; after scaling x by 2 the
	// plane is x = 2y with normal (1,-2,0).
	n := nm.TransformDirection(Vec3{1, -1, 0}).Normalize()
	want := Vec3{1, -2, 0}.Normalize()
	if !n.ApproxEqual(want, 1e-9) {
		t.Errorf("normal: got %v, want %v", n, want)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose: got %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should equal original")
	}
}
