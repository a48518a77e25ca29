// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpugpu provides a headless [gpu.Device] that keeps vertex
// buffers in memory and records the draw calls made on it.
package cpugpu

import (
	"fmt"
	"slices"

	"cogentcore.org/roadview/gpu"
	"cogentcore.org/roadview/math32"
)

// DrawCall is one recorded [gpu.Device.Draw] call.
type DrawCall struct {
	Buffer    *Buffer
	Primitive gpu.Primitives
	Count     int
	Size      float32
	Uniforms  gpu.Uniforms
}

// Device is an in-memory [gpu.Device].
type Device struct {
	// Buffers are all buffers created on the device, in order.
	Buffers []*Buffer

	// Draws are the draw calls since the last Clear.
	Draws []DrawCall

	// Clears is the number of Clear calls.
	Clears int

	// ClearColor is the color of the last Clear.
	ClearColor math32.Vector4

	// Viewport is the last viewport: x, y, width, height.
	Viewport [4]int

	// Released is whether Release has been called.
	Released bool

	uniforms gpu.Uniforms
}

// NewDevice returns a new in-memory device.
func NewDevice() *Device {
	return &Device{}
}

func (d *Device) NewBuffer(vertices []float32, layout gpu.Layout) (gpu.Buffer, error) {
	if len(vertices)%layout.Stride() != 0 {
		return nil, fmt.Errorf("%w: %d floats for %v", gpu.ErrVertexLayout, len(vertices), layout)
	}
	b := &Buffer{Data: slices.Clone(vertices), Layout: layout}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) SetViewport(x, y, width, height int) {
	d.Viewport = [4]int{x, y, width, height}
}

func (d *Device) Clear(color math32.Vector4) {
	d.Clears++
	d.ClearColor = color
	d.Draws = d.Draws[:0]
}

func (d *Device) SetUniforms(u *gpu.Uniforms) {
	d.uniforms = *u
}

func (d *Device) Draw(buf gpu.Buffer, prim gpu.Primitives, count int, size float32) {
	b, _ := buf.(*Buffer)
	d.Draws = append(d.Draws, DrawCall{Buffer: b, Primitive: prim, Count: count, Size: size, Uniforms: d.uniforms})
}

func (d *Device) Release() {
	d.Released = true
}

// Buffer is an in-memory [gpu.Buffer].
type Buffer struct {
	// Data is the vertex data, which is never reallocated.
	Data []float32

	Layout gpu.Layout

	// Updates is the number of SetSubData calls.
	Updates int

	// Released is whether Release has been called.
	Released bool
}

func (b *Buffer) SetSubData(offset int, data []float32) error {
	if b.Released {
		return fmt.Errorf("cpugpu: buffer released")
	}
	if offset < 0 || offset+len(data) > len(b.Data) {
		return fmt.Errorf("cpugpu: sub data [%d:%d] out of range for %d floats", offset, offset+len(data), len(b.Data))
	}
	copy(b.Data[offset:], data)
	b.Updates++
	return nil
}

func (b *Buffer) Len() int {
	return len(b.Data)
}

func (b *Buffer) Release() {
	b.Released = true
}
