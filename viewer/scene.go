// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/math32"
	"cogentcore.org/roadview/roadgraph"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// NodeColor is the color of nodes.
	NodeColor = math32.Vec3(0, 0, 0)

	// RoadColor is the color of roads when not colored by speed.
	RoadColor = math32.Vec3(0, 0, 0)

	// SlowColor and FastColor are the ends of the speed color ramp.
	SlowColor = colorful.Color{R: 0.1, G: 0.3, B: 0.9}
	FastColor = colorful.Color{R: 0.9, G: 0.1, B: 0.1}
)

// NodeVertices returns the position vertices of all nodes of the graph,
// in ascending id order.
func NodeVertices(g *roadgraph.Graph) []float32 {
	vs := make([]float32, 0, 3*g.NumNodes())
	for nd := range g.Nodes() {
		vs = nd.Pos.ToSlice(vs)
	}
	return vs
}

// RoadVertices returns position and color vertices for all roads of the
// graph, two per road in road order, all with the given color.
func RoadVertices(g *roadgraph.Graph, color math32.Vector3) []float32 {
	vs := make([]float32, 0, 12*g.NumRoads())
	for _, rd := range g.Roads() {
		from := errors.Must1(g.NodePosition(rd.From))
		to := errors.Must1(g.NodePosition(rd.To))
		vs = color.ToSlice(from.ToSlice(vs))
		vs = color.ToSlice(to.ToSlice(vs))
	}
	return vs
}

// RoadColors returns the given color for both vertices of every road,
// as a vertex color update.
func RoadColors(g *roadgraph.Graph, color math32.Vector3) map[int]math32.Vector3 {
	cs := make(map[int]math32.Vector3, 2*g.NumRoads())
	for id := range g.Roads() {
		cs[2*int(id)] = color
		cs[2*int(id)+1] = color
	}
	return cs
}

// SpeedColors returns a color for both vertices of every road,
// blending from [SlowColor] for the lowest speed limit in the graph
// to [FastColor] for the highest, as a vertex color update.
func SpeedColors(g *roadgraph.Graph) map[int]math32.Vector3 {
	lo, hi := math32.Infinity, -math32.Infinity
	for _, rd := range g.Roads() {
		lo = math32.Min(lo, rd.MaxSpeed)
		hi = math32.Max(hi, rd.MaxSpeed)
	}
	cs := make(map[int]math32.Vector3, 2*g.NumRoads())
	for id, rd := range g.Roads() {
		t := 0.0
		if hi > lo {
			t = float64((rd.MaxSpeed - lo) / (hi - lo))
		}
		c := SpeedColor(t)
		cs[2*int(id)] = c
		cs[2*int(id)+1] = c
	}
	return cs
}

// SpeedColor returns the color at t in [0, 1] along the speed color ramp.
func SpeedColor(t float64) math32.Vector3 {
	c := SlowColor.BlendHcl(FastColor, t).Clamped()
	return math32.Vec3(float32(c.R), float32(c.G), float32(c.B))
}
