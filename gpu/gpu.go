// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu provides a batch renderer that draws independent groups of
// points and lines with one shared shading pipeline, on top of a
// minimal retained-mode [Device] backend.
package gpu

import (
	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/math32"
)

var (
	// ErrInvalidBatch is returned for a batch handle that does not exist.
	ErrInvalidBatch = errors.New("gpu: invalid batch handle")

	// ErrVertexLayout is returned when vertex data does not match its layout.
	ErrVertexLayout = errors.New("gpu: vertex data does not match layout")
)

// Primitives are the kinds of primitives a batch can draw.
type Primitives int32

const (
	// Points draws each vertex as a square point of the batch size.
	Points Primitives = iota

	// Lines draws each consecutive pair of vertices as a line segment
	// of the batch width.
	Lines
)

func (p Primitives) String() string {
	switch p {
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	}
	return "Primitives(unknown)"
}

// Layout is the layout of the interleaved float32 vertex data of a batch.
type Layout int32

const (
	// Position has 3 position floats per vertex.
	Position Layout = iota

	// PositionColor has 3 position floats followed by 3 RGB color floats
	// per vertex.
	PositionColor
)

// ColorOffset is the offset of the color within a [PositionColor] vertex.
const ColorOffset = 3

// Stride returns the number of floats per vertex.
func (l Layout) Stride() int {
	if l == PositionColor {
		return 6
	}
	return 3
}

// HasColor returns whether the layout has per-vertex color.
func (l Layout) HasColor() bool {
	return l == PositionColor
}

func (l Layout) String() string {
	switch l {
	case Position:
		return "Position"
	case PositionColor:
		return "PositionColor"
	}
	return "Layout(unknown)"
}

// Uniforms are the values shared by the shading pipeline for one draw.
type Uniforms struct {
	Model      math32.Matrix4
	View       math32.Matrix4
	Projection math32.Matrix4

	// UseVertexColor selects the per-vertex color over Color.
	UseVertexColor bool

	// Color is the RGB color used when UseVertexColor is false.
	Color math32.Vector3
}

// Device is a rendering backend.
type Device interface {
	// NewBuffer returns a new vertex buffer holding the given vertices.
	NewBuffer(vertices []float32, layout Layout) (Buffer, error)

	// SetViewport sets the region of the render target drawn into.
	SetViewport(x, y, width, height int)

	// Clear clears the color and depth of the render target.
	Clear(color math32.Vector4)

	// SetUniforms sets the uniforms for subsequent draws.
	SetUniforms(u *Uniforms)

	// Draw draws count vertices of the buffer as the given primitives,
	// using size as the point size or line width.
	Draw(buf Buffer, prim Primitives, count int, size float32)

	// Release releases all resources held by the device, other
	// than buffers, which are released individually.
	Release()
}

// Buffer is a vertex buffer owned by a [Device].
type Buffer interface {
	// SetSubData overwrites the floats starting at offset with data,
	// in place.
	SetSubData(offset int, data []float32) error

	// Len returns the number of floats in the buffer.
	Len() int

	// Release releases the buffer storage.
	Release()
}
