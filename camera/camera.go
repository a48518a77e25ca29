// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides an orbit-style camera that navigates around a
// fixed target point, deriving its view and projection matrices from
// yaw, pitch, roll and field of view.
package camera

import (
	"cogentcore.org/roadview/math32"
)

const (
	// InitialYaw is the yaw of a new camera in degrees, looking down
	// the negative Z axis.
	InitialYaw = -90

	// MaxPitch is the largest absolute pitch in degrees.
	MaxPitch = 89

	// MinFov and MaxFov bound the field of view in degrees.
	MinFov = 1
	MaxFov = 179

	// MinMovementScale and MaxMovementScale bound [Camera.MovementScale].
	MinMovementScale = 0.1
	MaxMovementScale = 10000
)

// WorldUp is the up direction of the world.
var WorldUp = math32.Vec3(0, 1, 0)

// pose is the part of the camera state restored by [Camera.Reset].
type pose struct {
	Pos   math32.Vector3
	Yaw   float32
	Pitch float32
	Roll  float32
	Fov   float32
}

// Camera is an orbit camera. Every mutating method leaves the view and
// projection matrices consistent with the new state before returning.
// A Camera is not safe for concurrent use.
type Camera struct {
	// current is the current pose.
	current pose

	// initial is the pose captured at construction, for Reset.
	initial pose

	target math32.Vector3
	front  math32.Vector3
	right  math32.Vector3
	up     math32.Vector3

	near   float32
	far    float32
	aspect float32

	view       math32.Matrix4
	projection math32.Matrix4
}

// New returns a new camera for a scene with the given target (center)
// and radius, placed at target + (0, 0, 2*radius) and looking at the
// target, with near and far planes at radius and 3*radius.
// The radius must be positive for the projection to be valid.
func New(target math32.Vector3, radius, aspect, fov float32) *Camera {
	cm := &Camera{
		target: target,
		near:   radius,
		far:    3 * radius,
		aspect: aspect,
	}
	cm.current.Pos = target.Add(math32.Vec3(0, 0, 2*radius))
	cm.current.Yaw = InitialYaw
	cm.current.Fov = fov
	cm.initial = cm.current
	cm.UpdateVectors()
	cm.UpdateProjection()
	return cm
}

// Reset restores the position, orientation and field of view of the
// camera to those it had when it was created.
func (cm *Camera) Reset() {
	cm.current = cm.initial
	cm.UpdateVectors()
	cm.UpdateProjection()
}

// Position returns the position of the camera.
func (cm *Camera) Position() math32.Vector3 { return cm.current.Pos }

// Target returns the point the camera was created around.
func (cm *Camera) Target() math32.Vector3 { return cm.target }

// Front returns the unit direction the camera is looking in.
func (cm *Camera) Front() math32.Vector3 { return cm.front }

// Right returns the unit right direction of the camera, including roll.
func (cm *Camera) Right() math32.Vector3 { return cm.right }

// Up returns the unit up direction of the camera, including roll.
func (cm *Camera) Up() math32.Vector3 { return cm.up }

// Angles returns the yaw, pitch and roll of the camera in degrees.
func (cm *Camera) Angles() (yaw, pitch, roll float32) { return cm.current.Yaw, cm.current.Pitch, cm.current.Roll }

// Fov returns the vertical field of view in degrees.
func (cm *Camera) Fov() float32 { return cm.current.Fov }

// Near returns the near clipping plane distance.
func (cm *Camera) Near() float32 { return cm.near }

// Far returns the far clipping plane distance.
func (cm *Camera) Far() float32 { return cm.far }

// Aspect returns the aspect ratio (width / height).
func (cm *Camera) Aspect() float32 { return cm.aspect }

// View returns the view matrix.
func (cm *Camera) View() math32.Matrix4 { return cm.view }

// Projection returns the perspective projection matrix.
func (cm *Camera) Projection() math32.Matrix4 { return cm.projection }

// SetAspect sets the aspect ratio (width / height) and updates the projection.
func (cm *Camera) SetAspect(aspect float32) {
	cm.aspect = aspect
	cm.UpdateProjection()
}

// MovementScale returns the factor applied to movement speeds: a tenth
// of the width visible at the distance of the target, so that movement
// is proportional to what is on screen at any zoom level.
// It is clamped to [MinMovementScale, MaxMovementScale].
func (cm *Camera) MovementScale() float32 {
	return MovementScale(cm.current.Pos.DistanceTo(cm.target), cm.current.Fov)
}

// MovementScale returns the movement scale for the given distance
// to the target and field of view in degrees.
func MovementScale(dist, fov float32) float32 {
	visible := 2 * dist * math32.Tan(math32.DegToRad(fov*0.5))
	return math32.Clamp(visible/10, MinMovementScale, MaxMovementScale)
}

// MoveLeft moves the camera along its negative right direction.
func (cm *Camera) MoveLeft(speed float32) {
	cm.move(cm.right, -speed)
}

// MoveRight moves the camera along its right direction.
func (cm *Camera) MoveRight(speed float32) {
	cm.move(cm.right, speed)
}

// MoveUp moves the camera along its up direction.
func (cm *Camera) MoveUp(speed float32) {
	cm.move(cm.up, speed)
}

// MoveDown moves the camera along its negative up direction.
func (cm *Camera) MoveDown(speed float32) {
	cm.move(cm.up, -speed)
}

func (cm *Camera) move(dir math32.Vector3, speed float32) {
	cm.current.Pos.SetAdd(dir.MulScalar(cm.MovementScale() * speed))
	cm.UpdateView()
}

// RotateYaw adds the given angle in degrees to the yaw.
func (cm *Camera) RotateYaw(angle float32) {
	cm.current.Yaw += angle
	cm.UpdateVectors()
}

// RotatePitch adds the given angle in degrees to the pitch,
// which is clamped to [-MaxPitch, MaxPitch].
func (cm *Camera) RotatePitch(angle float32) {
	cm.current.Pitch = math32.Clamp(cm.current.Pitch+angle, -MaxPitch, MaxPitch)
	cm.UpdateVectors()
}

// RotateRoll rolls the camera about its front direction by the given
// angle in degrees; positive angles roll the view clockwise.
func (cm *Camera) RotateRoll(angle float32) {
	cm.current.Roll -= angle
	cm.UpdateVectors()
}

// IncreaseFov widens the field of view by the given degrees, up to [MaxFov].
func (cm *Camera) IncreaseFov(delta float32) {
	cm.current.Fov = math32.Min(MaxFov, cm.current.Fov+delta)
	cm.UpdateProjection()
}

// DecreaseFov narrows the field of view by the given degrees, down to [MinFov].
func (cm *Camera) DecreaseFov(delta float32) {
	cm.current.Fov = math32.Max(MinFov, cm.current.Fov-delta)
	cm.UpdateProjection()
}

// UpdateVectors recomputes the front, right and up directions from the
// yaw, pitch and roll, and then the view matrix.
func (cm *Camera) UpdateVectors() {
	yaw := math32.DegToRad(cm.current.Yaw)
	pitch := math32.DegToRad(cm.current.Pitch)
	cm.front = math32.Vec3(math32.Cos(yaw)*math32.Cos(pitch), math32.Sin(pitch), math32.Sin(yaw)*math32.Cos(pitch)).Normal()
	cm.right = cm.front.Cross(WorldUp).Normal()
	cm.up = cm.right.Cross(cm.front).Normal()

	roll := math32.NewQuatAxisAngle(cm.front, math32.DegToRad(cm.current.Roll))
	cm.right = cm.right.MulQuat(roll)
	cm.up = cm.up.MulQuat(roll)
	cm.UpdateView()
}

// UpdateView recomputes the view matrix from the position and directions.
func (cm *Camera) UpdateView() {
	cm.view.SetLookAt(cm.current.Pos, cm.current.Pos.Add(cm.front), cm.up)
}

// UpdateProjection recomputes the projection matrix.
func (cm *Camera) UpdateProjection() {
	cm.projection.SetPerspective(cm.current.Fov, cm.aspect, cm.near, cm.far)
}
