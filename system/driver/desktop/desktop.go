// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements [system.Window] on desktop platforms using GLFW,
// with an OpenGL 4.1 core profile context.
package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"cogentcore.org/roadview/system"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// glfwKeys maps each key to its GLFW key.
var glfwKeys = [system.KeysN]glfw.Key{
	system.KeyW:      glfw.KeyW,
	system.KeyA:      glfw.KeyA,
	system.KeyS:      glfw.KeyS,
	system.KeyD:      glfw.KeyD,
	system.KeyR:      glfw.KeyR,
	system.KeyC:      glfw.KeyC,
	system.KeyUp:     glfw.KeyUp,
	system.KeyDown:   glfw.KeyDown,
	system.KeyLeft:   glfw.KeyLeft,
	system.KeyRight:  glfw.KeyRight,
	system.KeyEscape: glfw.KeyEscape,
}

// Window is a GLFW window.
type Window struct {
	glw *glfw.Window
}

// NewWindow initializes GLFW and returns a new window of the given
// size and title whose OpenGL context is current.
// IMPORTANT: must be called on the main initial thread!
func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("desktop: initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glw, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("desktop: creating window: %w", err)
	}
	glw.MakeContextCurrent()
	glfw.SwapInterval(1)
	fw, fh := glw.GetFramebufferSize()
	slog.Info("desktop: created window", "title", title, "width", width, "height", height, "framebufferWidth", fw, "framebufferHeight", fh)
	return &Window{glw: glw}, nil
}

// ShouldClose returns the close flag of the window from glfwWindowShouldClose.
func (w *Window) ShouldClose() bool {
	return w.glw.ShouldClose()
}

// SetShouldClose sets the close flag with glfwSetWindowShouldClose.
func (w *Window) SetShouldClose(b bool) {
	w.glw.SetShouldClose(b)
}

// Size returns the framebuffer size in pixels from glfwGetFramebufferSize.
func (w *Window) Size() (width, height int) {
	return w.glw.GetFramebufferSize()
}

// KeyPressed returns whether the key is held down, using glfwGetKey.
func (w *Window) KeyPressed(k system.Key) bool {
	if k < 0 || k >= system.KeysN {
		return false
	}
	return w.glw.GetKey(glfwKeys[k]) == glfw.Press
}

// SwapBuffers presents the frame with glfwSwapBuffers.
func (w *Window) SwapBuffers() {
	w.glw.SwapBuffers()
}

// PollEvents processes pending events with glfwPollEvents.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Destroy destroys the window and terminates GLFW.
func (w *Window) Destroy() {
	if w.glw == nil {
		return
	}
	w.glw.Destroy()
	w.glw = nil
	glfw.Terminate()
}
