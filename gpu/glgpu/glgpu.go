// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu implements [gpu.Device] on OpenGL 4.1 core profile.
// All calls must be made on the thread that owns the current context.
package glgpu

import (
	"fmt"
	"log/slog"
	"unsafe"

	"cogentcore.org/roadview/gpu"
	"cogentcore.org/roadview/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const floatSize = 4

// Device is an OpenGL [gpu.Device] with a single shader program.
type Device struct {
	program uint32

	model          int32
	view           int32
	projection     int32
	useVertexColor int32
	uniformColor   int32
}

// NewDevice initializes OpenGL on the current context and returns a
// new device with its shader program compiled.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glgpu: initializing OpenGL: %w", err)
	}
	slog.Info("glgpu: initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)), "renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := linkProgram()
	if err != nil {
		return nil, err
	}
	d := &Device{program: prog}
	d.model = d.uniformLocation("model")
	d.view = d.uniformLocation("view")
	d.projection = d.uniformLocation("projection")
	d.useVertexColor = d.uniformLocation("useVertexColor")
	d.uniformColor = d.uniformLocation("uniformColor")

	gl.Enable(gl.DEPTH_TEST)
	return d, nil
}

func (d *Device) uniformLocation(name string) int32 {
	loc := gl.GetUniformLocation(d.program, gl.Str(name+"\x00"))
	if loc < 0 {
		slog.Warn("glgpu: uniform not found in program", "uniform", name)
	}
	return loc
}

// NewBuffer uploads the vertices into a new vertex buffer with
// glBufferData, binding the position and color attributes of the layout
// in a new vertex array object.
func (d *Device) NewBuffer(vertices []float32, layout gpu.Layout) (gpu.Buffer, error) {
	stride := layout.Stride()
	if len(vertices)%stride != 0 {
		return nil, fmt.Errorf("%w: %d floats for %v", gpu.ErrVertexLayout, len(vertices), layout)
	}
	b := &Buffer{n: len(vertices)}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, ptr(vertices), gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(stride*floatSize), 0)
	gl.EnableVertexAttribArray(0)
	if layout.HasColor() {
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(stride*floatSize), gpu.ColorOffset*floatSize)
		gl.EnableVertexAttribArray(1)
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b, nil
}

// SetViewport sets the viewport with glViewport.
func (d *Device) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Clear clears the color and depth buffers to the given color with glClear.
func (d *Device) Clear(color math32.Vector4) {
	gl.ClearColor(color.X, color.Y, color.Z, color.W)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetUniforms uses the shader program and sets its uniforms with
// glUniformMatrix4fv, glUniform1i and glUniform3f.
func (d *Device) SetUniforms(u *gpu.Uniforms) {
	gl.UseProgram(d.program)
	gl.UniformMatrix4fv(d.model, 1, false, &u.Model[0])
	gl.UniformMatrix4fv(d.view, 1, false, &u.View[0])
	gl.UniformMatrix4fv(d.projection, 1, false, &u.Projection[0])
	vc := int32(0)
	if u.UseVertexColor {
		vc = 1
	}
	gl.Uniform1i(d.useVertexColor, vc)
	gl.Uniform3f(d.uniformColor, u.Color.X, u.Color.Y, u.Color.Z)
}

// Draw sets glPointSize or glLineWidth to size and draws count
// vertices of the buffer with glDrawArrays.
func (d *Device) Draw(buf gpu.Buffer, prim gpu.Primitives, count int, size float32) {
	b, ok := buf.(*Buffer)
	if !ok || b.vao == 0 || count == 0 {
		return
	}
	gl.UseProgram(d.program)
	gl.BindVertexArray(b.vao)
	switch prim {
	case gpu.Points:
		gl.PointSize(size)
		gl.DrawArrays(gl.POINTS, 0, int32(count))
	case gpu.Lines:
		gl.LineWidth(size)
		gl.DrawArrays(gl.LINES, 0, int32(count))
	}
	gl.BindVertexArray(0)
}

// Release deletes the shader program with glDeleteProgram.
func (d *Device) Release() {
	if d.program == 0 {
		return
	}
	gl.DeleteProgram(d.program)
	d.program = 0
}

// Buffer is a vertex array object with its vertex buffer.
type Buffer struct {
	vao uint32
	vbo uint32
	n   int
}

// SetSubData overwrites the floats starting at offset with
// glBufferSubData.
func (b *Buffer) SetSubData(offset int, data []float32) error {
	if b.vbo == 0 {
		return fmt.Errorf("glgpu: buffer released")
	}
	if offset < 0 || offset+len(data) > b.n {
		return fmt.Errorf("glgpu: sub data [%d:%d] out of range for %d floats", offset, offset+len(data), b.n)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*floatSize, len(data)*floatSize, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Len returns the number of floats in the buffer.
func (b *Buffer) Len() int {
	return b.n
}

// Release deletes the vertex buffer and vertex array object.
func (b *Buffer) Release() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}

// ptr returns a pointer to the first float, or nil for no data.
func ptr(data []float32) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
