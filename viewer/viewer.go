// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer provides the interactive road network viewer: it loads
// a road graph, draws its nodes and roads, and maps keyboard input to
// camera navigation once per frame.
package viewer

import (
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/camera"
	"cogentcore.org/roadview/config"
	"cogentcore.org/roadview/gpu"
	"cogentcore.org/roadview/roadgraph"
	"cogentcore.org/roadview/system"
)

const (
	// MoveSpeed is the camera movement per frame while a move key is held.
	MoveSpeed = 0.1

	// ZoomSpeed is the field of view change in degrees per frame.
	ZoomSpeed = 0.3

	// RollSpeed is the roll in degrees per frame.
	RollSpeed = 0.5
)

// Instructions describes the keyboard controls.
const Instructions = `Use WASD keys to move around
Use up/down arrow keys to zoom in/out
Use left/right key to roll the camera
Press R key to reset camera view
Press C key to toggle coloring roads by speed limit
Press Escape to quit
`

// PrintInstructions writes the keyboard controls to w.
func PrintInstructions(w io.Writer) {
	fmt.Fprint(w, Instructions)
}

// App is the viewer application. It owns the graph, camera and renderer,
// and is driven by calling [App.Frame] from the main thread.
type App struct {
	Config *config.Config

	Graph    *roadgraph.Graph
	Camera   *camera.Camera
	Renderer *gpu.Renderer

	// ColorBySpeed is whether roads are colored by their speed limit.
	ColorBySpeed bool

	win     system.Window
	watcher *watcher

	nodes int
	roads int

	width  int
	height int

	// pressed are the key states of the previous frame.
	pressed [system.KeysN]bool
}

// New returns a new app showing the graph from the config files in the
// given window, rendering on the given device.
// Graph loading problems are logged and leave the graph partly or
// wholly empty.
func New(cfg *config.Config, win system.Window, dev gpu.Device) (*App, error) {
	a := &App{
		Config:       cfg,
		ColorBySpeed: cfg.ColorBySpeed,
		win:          win,
		Renderer:     gpu.NewRenderer(dev),
	}
	a.width, a.height = win.Size()
	a.Renderer.SetViewport(0, 0, a.width, a.height)
	if err := a.Reload(); err != nil {
		return nil, err
	}
	if cfg.WatchFiles {
		a.watcher = errors.Log1(newWatcher(cfg.NodesFile, cfg.EdgesFile))
	}
	return a, nil
}

// Reload loads the graph from its files and rebuilds the scene.
// The camera is rebuilt only when the center or radius of the
// graph has changed.
func (a *App) Reload() error {
	g, err := roadgraph.Open(a.Config.NodesFile, a.Config.EdgesFile)
	if err != nil {
		slog.Warn("viewer: graph loaded partially", "err", err)
	}
	slog.Info("viewer: loaded graph", "nodes", g.NumNodes(), "roads", g.NumRoads())
	a.Graph = g
	a.Renderer.Release()

	a.nodes, err = a.Renderer.NewBatch(NodeVertices(g), gpu.Points, a.Config.NodeSize, false, NodeColor)
	if err != nil {
		return err
	}
	a.roads, err = a.Renderer.NewBatch(RoadVertices(g, RoadColor), gpu.Lines, a.Config.EdgeSize, true, RoadColor)
	if err != nil {
		return err
	}
	if a.ColorBySpeed {
		errors.Log(a.Renderer.UpdateBatch(a.roads, SpeedColors(g)))
	}

	center, radius := g.Center(), g.Radius()
	if radius <= 0 {
		radius = 1
	}
	// the camera keeps its navigation while the scene extent is the same
	if a.Camera != nil && a.Camera.Target() == center && a.Camera.Near() == radius {
		return nil
	}
	a.Camera = camera.New(center, radius, a.aspect(), a.Config.CameraFov)
	return nil
}

func (a *App) aspect() float32 {
	if a.height <= 0 {
		return 1
	}
	return float32(a.width) / float32(a.height)
}

// Run prints the instructions and runs frames until the window
// should close, then releases all resources.
func (a *App) Run(w io.Writer) {
	PrintInstructions(w)
	for !a.win.ShouldClose() {
		a.Frame()
	}
	a.Release()
}

// Frame runs one frame: it reloads the graph if its files changed,
// handles input and resizing, updates the renderer transforms, renders,
// and presents the frame.
func (a *App) Frame() {
	if a.watcher != nil && a.watcher.changed() {
		errors.Log(a.Reload())
	}
	a.HandleInput()
	a.HandleResize()
	a.Renderer.SetViewMatrix(a.Camera.View())
	a.Renderer.SetProjectionMatrix(a.Camera.Projection())
	a.Renderer.Render()
	a.win.SwapBuffers()
	a.win.PollEvents()
}

// HandleInput applies the camera commands for the keys that are held down.
// Toggle keys act only on the frame they are first pressed.
func (a *App) HandleInput() {
	var now [system.KeysN]bool
	for _, k := range system.Keys() {
		now[k] = a.win.KeyPressed(k)
	}
	pressed := func(k system.Key) bool { return now[k] && !a.pressed[k] }

	cm := a.Camera
	if now[system.KeyR] {
		cm.Reset()
	}
	if now[system.KeyW] {
		cm.MoveUp(MoveSpeed)
	}
	if now[system.KeyS] {
		cm.MoveDown(MoveSpeed)
	}
	if now[system.KeyA] {
		cm.MoveLeft(MoveSpeed)
	}
	if now[system.KeyD] {
		cm.MoveRight(MoveSpeed)
	}
	if now[system.KeyUp] {
		cm.DecreaseFov(ZoomSpeed)
	}
	if now[system.KeyDown] {
		cm.IncreaseFov(ZoomSpeed)
	}
	if now[system.KeyLeft] {
		cm.RotateRoll(-RollSpeed)
	}
	if now[system.KeyRight] {
		cm.RotateRoll(RollSpeed)
	}
	if pressed(system.KeyC) {
		a.SetColorBySpeed(!a.ColorBySpeed)
	}
	if pressed(system.KeyEscape) {
		a.win.SetShouldClose(true)
	}
	a.pressed = now
}

// HandleResize updates the camera aspect ratio and the viewport when
// the window size has changed. A zero-sized (minimized) window is ignored.
func (a *App) HandleResize() {
	w, h := a.win.Size()
	if (w == a.width && h == a.height) || w <= 0 || h <= 0 {
		return
	}
	a.width, a.height = w, h
	a.Camera.SetAspect(a.aspect())
	a.Renderer.SetViewport(0, 0, w, h)
}

// SetColorBySpeed sets whether roads are colored by their speed limit,
// updating the road colors in place.
func (a *App) SetColorBySpeed(on bool) {
	a.ColorBySpeed = on
	colors := RoadColors(a.Graph, RoadColor)
	if on {
		colors = SpeedColors(a.Graph)
	}
	errors.Log(a.Renderer.UpdateBatch(a.roads, colors))
}

// NodesBatch returns the renderer batch handle of the nodes.
func (a *App) NodesBatch() int { return a.nodes }

// RoadsBatch returns the renderer batch handle of the roads.
func (a *App) RoadsBatch() int { return a.roads }

// Release releases the renderer, the device, and the file watcher.
func (a *App) Release() {
	if a.watcher != nil {
		errors.Log(a.watcher.Close())
		a.watcher = nil
	}
	a.Renderer.Release()
	a.Renderer.Device().Release()
}
