// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const StandardTol = float32(1.0e-5)

func AssertEqualVector(t *testing.T, tol float32, vt, va Vector3) {
	t.Helper()
	assert.InDelta(t, vt.X, va.X, float64(tol))
	assert.InDelta(t, vt.Y, va.Y, float64(tol))
	assert.InDelta(t, vt.Z, va.Z, float64(tol))
}

func TestBox3(t *testing.T) {
	var b Box3
	b.SetEmpty()
	assert.True(t, b.IsEmpty())

	b.ExpandByPoint(Vec3(1, 2, 3))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(1, 2, 3), b.Min)
	assert.Equal(t, Vec3(1, 2, 3), b.Max)

	b.ExpandByPoint(Vec3(-1, 4, 3))
	assert.Equal(t, Vec3(-1, 2, 3), b.Min)
	assert.Equal(t, Vec3(1, 4, 3), b.Max)
	assert.Equal(t, Vec3(0, 3, 3), b.Center())
}

func TestVector3(t *testing.T) {
	vx := Vec3(1, 0, 0)
	vy := Vec3(0, 1, 0)
	vz := Vec3(0, 0, 1)

	assert.Equal(t, vz, vx.Cross(vy))
	assert.Equal(t, vx, vy.Cross(vz))
	assert.Equal(t, float32(0), vx.Dot(vy))
	assert.Equal(t, float32(5), Vec3(3, 4, 0).Length())
	assert.Equal(t, float32(5), Vec3(0, 0, 0).DistanceTo(Vec3(0, 3, 4)))
	AssertEqualVector(t, StandardTol, Vec3(0.6, 0.8, 0), Vec3(3, 4, 0).Normal())
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
}

func TestQuatRotation(t *testing.T) {
	vx := Vec3(1, 0, 0)
	vy := Vec3(0, 1, 0)
	vz := Vec3(0, 0, 1)

	AssertEqualVector(t, StandardTol, vy, vx.MulQuat(NewQuatAxisAngle(vz, DegToRad(90))))
	AssertEqualVector(t, StandardTol, Vec3(-1, 0, 0), vy.MulQuat(NewQuatAxisAngle(vz, DegToRad(90))))
	AssertEqualVector(t, StandardTol, vz, vz.MulQuat(NewQuatAxisAngle(vz, DegToRad(33))))

	q := Quat{W: 1}
	assert.Equal(t, vx, vx.MulQuat(q))
}

func TestMatrix4LookAt(t *testing.T) {
	var view Matrix4
	view.SetLookAt(Vec3(0, 0, 10), Vec3(0, 0, 0), Vec3(0, 1, 0))

	// the target is straight ahead, down the negative Z axis
	AssertEqualVector(t, StandardTol, Vec3(0, 0, -10), view.MulVector3AsPoint(Vec3(0, 0, 0)))
	AssertEqualVector(t, StandardTol, Vec3(1, 0, -10), view.MulVector3AsPoint(Vec3(1, 0, 0)))
	AssertEqualVector(t, StandardTol, Vec3(0, 1, -10), view.MulVector3AsPoint(Vec3(0, 1, 0)))

	// looking from the +X axis, world -Z is to the right
	view.SetLookAt(Vec3(10, 0, 0), Vec3(0, 0, 0), Vec3(0, 1, 0))
	AssertEqualVector(t, StandardTol, Vec3(1, 0, -10), view.MulVector3AsPoint(Vec3(0, 0, -1)))
}

func TestMatrix4Perspective(t *testing.T) {
	var prjn Matrix4
	prjn.SetPerspective(90, 1.5, 1, 100)

	// near plane maps to -1 and far plane to +1 in NDC
	AssertEqualVector(t, StandardTol, Vec3(0, 0, -1), prjn.MulVector3AsPoint(Vec3(0, 0, -1)))
	AssertEqualVector(t, 1e-4, Vec3(0, 0, 1), prjn.MulVector3AsPoint(Vec3(0, 0, -100)))

	// with a 90 degree fov, the top edge of the near plane is at y = near
	AssertEqualVector(t, StandardTol, Vec3(0, 1, -1), prjn.MulVector3AsPoint(Vec3(0, 1, -1)))
	AssertEqualVector(t, StandardTol, Vec3(1, 0, -1), prjn.MulVector3AsPoint(Vec3(1.5, 0, -1)))
}

func TestMatrix4ViewProjection(t *testing.T) {
	var view, prjn Matrix4
	view.SetLookAt(Vec3(0, 0, 2), Vec3(0, 0, 0), Vec3(0, 1, 0))
	prjn.SetPerspective(45, 1, 1, 3)
	// the origin is midway between near (1) and far (3)
	p := prjn.MulVector3AsPoint(view.MulVector3AsPoint(Vec3(0, 0, 0)))
	assert.InDelta(t, 0, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 0.5, p.Z, 1e-5)
}

func TestMatrix4Identity(t *testing.T) {
	var m Matrix4
	m.SetIdentity()
	p := Vec3(1, -2, 3)
	assert.Equal(t, p, m.MulVector3AsPoint(p))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.1), Clamp(float32(0.01), 0.1, 10000))
	assert.Equal(t, float32(10000), Clamp(float32(1e9), 0.1, 10000))
	assert.Equal(t, 3, Clamp(3, 1, 5))
}
