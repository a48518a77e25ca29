// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/math32"
)

// DefaultClearColor is the default background color.
var DefaultClearColor = math32.Vec4(0.7, 0.7, 0.7, 1)

// Batch is one group of vertices drawn with a single draw call.
type Batch struct {
	// Primitive is the kind of primitive drawn.
	Primitive Primitives

	// Layout is the vertex data layout.
	Layout Layout

	// Count is the number of vertices.
	Count int

	// Size is the point size or line width.
	Size float32

	// Color is the uniform color, used when the layout has no color.
	Color math32.Vector3

	buffer Buffer
}

// Buffer returns the device buffer of the batch.
func (b *Batch) Buffer() Buffer {
	return b.buffer
}

// Renderer draws a list of batches in creation order with shared
// model, view and projection transforms. Invalid batch handles are
// logged and ignored.
type Renderer struct {
	dev     Device
	batches []*Batch

	model      math32.Matrix4
	view       math32.Matrix4
	projection math32.Matrix4
	clearColor math32.Vector4
}

// NewRenderer returns a new renderer drawing on the given device.
func NewRenderer(dev Device) *Renderer {
	rn := &Renderer{dev: dev, clearColor: DefaultClearColor}
	rn.model.SetIdentity()
	rn.view.SetIdentity()
	rn.projection.SetIdentity()
	return rn
}

// Device returns the device of the renderer.
func (rn *Renderer) Device() Device {
	return rn.dev
}

// NumBatches returns the number of batches.
func (rn *Renderer) NumBatches() int {
	return len(rn.batches)
}

// Batch returns the batch with the given handle, or nil.
func (rn *Renderer) Batch(handle int) *Batch {
	if handle < 0 || handle >= len(rn.batches) {
		return nil
	}
	return rn.batches[handle]
}

// NewBatch creates a batch from the given vertices and returns its handle.
// The vertices have 3 position floats per vertex, followed by 3 color
// floats if vertexColor is true; otherwise the batch is drawn in color.
func (rn *Renderer) NewBatch(vertices []float32, prim Primitives, size float32, vertexColor bool, color math32.Vector3) (int, error) {
	layout := Position
	if vertexColor {
		layout = PositionColor
	}
	stride := layout.Stride()
	if len(vertices)%stride != 0 {
		return -1, fmt.Errorf("%w: %d floats is not a multiple of %d", ErrVertexLayout, len(vertices), stride)
	}
	buf, err := rn.dev.NewBuffer(vertices, layout)
	if err != nil {
		return -1, err
	}
	rn.batches = append(rn.batches, &Batch{
		Primitive: prim,
		Layout:    layout,
		Count:     len(vertices) / stride,
		Size:      size,
		Color:     color,
		buffer:    buf,
	})
	return len(rn.batches) - 1, nil
}

func (rn *Renderer) batch(handle int) (*Batch, error) {
	b := rn.Batch(handle)
	if b == nil {
		return nil, errors.Log(fmt.Errorf("%w: %d (have %d)", ErrInvalidBatch, handle, len(rn.batches)))
	}
	return b, nil
}

// UpdateBatch overwrites the colors of the given vertices of the batch in
// place, leaving positions and all other vertices untouched. Vertex
// indexes out of range are logged and skipped. It is an error to update
// a batch without per-vertex color.
func (rn *Renderer) UpdateBatch(handle int, colors map[int]math32.Vector3) error {
	b, err := rn.batch(handle)
	if err != nil {
		return err
	}
	if !b.Layout.HasColor() {
		return errors.Log(fmt.Errorf("%w: batch %d has no vertex colors", ErrVertexLayout, handle))
	}
	stride := b.Layout.Stride()
	var rgb [3]float32
	for _, v := range slices.Sorted(maps.Keys(colors)) {
		if v < 0 || v >= b.Count {
			slog.Warn("gpu: skipping color update for vertex out of range", "handle", handle, "vertex", v, "count", b.Count)
			continue
		}
		c := colors[v]
		rgb = [3]float32{c.X, c.Y, c.Z}
		if err := b.buffer.SetSubData(v*stride+ColorOffset, rgb[:]); err != nil {
			return errors.Log(err)
		}
	}
	return nil
}

// SetUniformColor sets the uniform color of the batch.
func (rn *Renderer) SetUniformColor(handle int, color math32.Vector3) error {
	b, err := rn.batch(handle)
	if err != nil {
		return err
	}
	b.Color = color
	return nil
}

// SetSize sets the point size or line width of the batch.
func (rn *Renderer) SetSize(handle int, size float32) error {
	b, err := rn.batch(handle)
	if err != nil {
		return err
	}
	b.Size = size
	return nil
}

// SetModelMatrix sets the model matrix for all batches.
func (rn *Renderer) SetModelMatrix(m math32.Matrix4) {
	rn.model = m
}

// SetViewMatrix sets the view matrix for all batches.
func (rn *Renderer) SetViewMatrix(m math32.Matrix4) {
	rn.view = m
}

// SetProjectionMatrix sets the projection matrix for all batches.
func (rn *Renderer) SetProjectionMatrix(m math32.Matrix4) {
	rn.projection = m
}

// SetClearColor sets the background color.
func (rn *Renderer) SetClearColor(c math32.Vector4) {
	rn.clearColor = c
}

// SetViewport sets the viewport of the device.
func (rn *Renderer) SetViewport(x, y, width, height int) {
	rn.dev.SetViewport(x, y, width, height)
}

// Render clears the render target and draws every batch in creation order.
func (rn *Renderer) Render() {
	rn.dev.Clear(rn.clearColor)
	u := Uniforms{Model: rn.model, View: rn.view, Projection: rn.projection}
	for _, b := range rn.batches {
		u.UseVertexColor = b.Layout.HasColor()
		u.Color = b.Color
		rn.dev.SetUniforms(&u)
		rn.dev.Draw(b.buffer, b.Primitive, b.Count, b.Size)
	}
}

// Release releases the storage of all batches, which are removed.
func (rn *Renderer) Release() {
	for _, b := range rn.batches {
		b.buffer.Release()
	}
	rn.batches = nil
}
