package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math.Abs(length-1) > 1e-9 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4MatchesRotateAxis(t *testing.T) {
	axis := Vec3{0, 1, 0}
	angle := math.Pi / 3
	q := QuatFromAxisAngle(axis, angle).ToMat4()
	r := RotateAxis(axis, angle)
	for i := 0; i < 16; i++ {
		if math.Abs(q[i]-r[i]) > 1e-9 {
			t.Errorf("element %d: quat %v, axis %v", i, q[i], r[i])
		}
	}
}

func TestQuatMulComposes(t *testing.T) {
	z90 := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	both := z90.Mul(z90).ToMat4()
	got := both.TransformPoint(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{-1, 0, 0}, 1e-9) {
		t.Errorf("two 90 degree turns: got %v, want (-1,0,0)", got)
	}
}
