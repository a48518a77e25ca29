// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

//go:embed shaders/graph.vert
var vertexSource string

//go:embed shaders/graph.frag
var fragmentSource string

// compileShader compiles the given GLSL 410 source as a shader of the given type.
func compileShader(name, src string, typ uint32) (uint32, error) {
	handle := gl.CreateShader(typ)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("glgpu: failed to compile %s shader: %s", name, strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

// linkProgram compiles and links the vertex and fragment shaders into a program.
func linkProgram() (uint32, error) {
	vs, err := compileShader("vertex", vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader("fragment", fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vs)
	gl.AttachShader(handle, fs)
	gl.LinkProgram(handle)
	gl.DetachShader(handle, vs)
	gl.DetachShader(handle, fs)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var lgLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &lgLength)
		lg := strings.Repeat("\x00", int(lgLength+1))
		gl.GetProgramInfoLog(handle, lgLength, nil, gl.Str(lg))
		gl.DeleteProgram(handle)
		return 0, fmt.Errorf("glgpu: failed to link program: %s", strings.TrimRight(lg, "\x00"))
	}
	return handle, nil
}
