// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roadgraph

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"cogentcore.org/roadview/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoNodes = "1 0 0 0\n2 10 0 0\n"

func load(t *testing.T, nodes, edges string) *Graph {
	t.Helper()
	g := New()
	_, err := g.ReadNodes(strings.NewReader(nodes), "nodes")
	require.NoError(t, err)
	_, err = g.ReadEdges(strings.NewReader(edges), "edges")
	require.NoError(t, err)
	return g
}

func roads(g *Graph) []Road {
	var rds []Road
	for _, rd := range g.Roads() {
		rds = append(rds, rd)
	}
	return rds
}

func TestOneWay(t *testing.T) {
	g := load(t, twoNodes, "1 2 10 50 2 1\n")
	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 1, g.NumRoads())
	assert.Equal(t, []Road{{From: 1, To: 2, Meters: 10, MaxSpeed: 50, Lanes: 2}}, roads(g))
	assert.Equal(t, math32.Vec3(5, 0, 0), g.Center())
	assert.Equal(t, float32(5), g.Radius())
	assert.True(t, g.RoadExists(1, 2))
	assert.False(t, g.RoadExists(2, 1))
}

func TestTwoWay(t *testing.T) {
	g := load(t, twoNodes, "1 2 10 50 2 0\n")
	require.Equal(t, 2, g.NumRoads())
	rds := roads(g)
	assert.Equal(t, 1, rds[0].From)
	assert.Equal(t, 2, rds[0].To)
	assert.Equal(t, 2, rds[1].From)
	assert.Equal(t, 1, rds[1].To)
	assert.True(t, g.RoadExists(1, 2))
	assert.True(t, g.RoadExists(2, 1))
}

func TestRoadCount(t *testing.T) {
	nodes := "1 0 0 0\n2 1 0 0\n3 1 1 0\n4 0 1 1\n"
	edges := "1 2 1 30 1 1\n2 3 1 30 1 0\n3 4 1 30 1 0\n4 1 1 30 1 7\n"
	g := load(t, nodes, edges)
	// 2 one-way + 2 two-way
	assert.Equal(t, 2+2*2, g.NumRoads())
	for id, rd := range g.Roads() {
		assert.True(t, g.RoadIDExists(id))
		assert.True(t, g.NodeExists(rd.From))
		assert.True(t, g.NodeExists(rd.To))
	}
	assert.False(t, g.RoadIDExists(RoadID(g.NumRoads())))
	assert.False(t, g.RoadIDExists(-1))
}

func TestMalformedLines(t *testing.T) {
	nodes := "1 0 0 0\n\nbad line\n2 x 0 0\n2 10 0 0 extra\n3 1 2\n"
	g := New()
	n, err := g.ReadNodes(strings.NewReader(nodes), "nodes")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, g.NodeExists(1))
	assert.True(t, g.NodeExists(2))
	assert.False(t, g.NodeExists(3))

	edges := "1 2 10 50 2 1\n1 9 10 50 2 1\n1 2 ten 50 2 1\n1 2 10 50\n"
	n, err = g.ReadEdges(strings.NewReader(edges), "edges")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, g.NumRoads())
}

func TestAddRoadUnknownNode(t *testing.T) {
	g := New()
	g.AddNode(1, math32.Vec3(0, 0, 0))
	_, err := g.AddRoad(1, 2, 1, 1, 1)
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = g.AddRoad(2, 1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.Equal(t, 0, g.NumRoads())
}

func TestNodePosition(t *testing.T) {
	g := load(t, twoNodes, "")
	pos, err := g.NodePosition(2)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(10, 0, 0), pos)
	_, err = g.NodePosition(3)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestAddNodeOverwrite(t *testing.T) {
	g := New()
	g.AddNode(1, math32.Vec3(0, 0, 0))
	g.AddNode(1, math32.Vec3(4, 0, 0))
	assert.Equal(t, 1, g.NumNodes())
	pos, err := g.NodePosition(1)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(4, 0, 0), pos)
	// bounds keep the overwritten position
	assert.Equal(t, math32.Vec3(2, 0, 0), g.Center())
}

func TestNodesOrder(t *testing.T) {
	g := load(t, "5 0 0 0\n1 1 0 0\n3 2 0 0\n", "")
	var ids []int
	for nd := range g.Nodes() {
		ids = append(ids, nd.ID)
	}
	assert.Equal(t, []int{1, 3, 5}, ids)
}

func TestEmptyGraph(t *testing.T) {
	g := New()
	assert.True(t, g.Bounds().IsEmpty())
	assert.Equal(t, math32.Vector3{}, g.Center())
	assert.Equal(t, float32(0), g.Radius())
}

func TestSingleNode(t *testing.T) {
	g := New()
	g.AddNode(7, math32.Vec3(1, 2, 3))
	assert.False(t, g.Bounds().IsEmpty())
	assert.Equal(t, math32.Vec3(1, 2, 3), g.Center())
	assert.Equal(t, float32(0), g.Radius())
}

func TestOrderInvariance(t *testing.T) {
	pts := []math32.Vector3{
		math32.Vec3(-3, 2, 1), math32.Vec3(4, -1, 0.5), math32.Vec3(0, 7, -2),
		math32.Vec3(1.5, 0, 9), math32.Vec3(-8, -8, -8),
	}
	a := New()
	for i, p := range pts {
		a.AddNode(i, p)
	}
	b := New()
	for i, p := range slices.Backward(pts) {
		b.AddNode(i, p)
	}
	assert.Equal(t, a.Bounds(), b.Bounds())
	assert.InDelta(t, a.Radius(), b.Radius(), 1e-6)
	ca, cb := a.Center(), b.Center()
	assert.InDelta(t, ca.X, cb.X, 1e-6)
	assert.InDelta(t, ca.Y, cb.Y, 1e-6)
	assert.InDelta(t, ca.Z, cb.Z, 1e-6)
	bb := a.Bounds()
	for _, p := range pts {
		assert.True(t, p.X >= bb.Min.X && p.X <= bb.Max.X)
		assert.True(t, p.Y >= bb.Min.Y && p.Y <= bb.Max.Y)
		assert.True(t, p.Z >= bb.Min.Z && p.Z <= bb.Max.Z)
	}
}

func TestPaths(t *testing.T) {
	g := load(t, twoNodes, "")
	require.NoError(t, g.AddPath("commute", []int{1, 2}))
	err := g.AddPath("commute", []int{2, 1})
	assert.ErrorIs(t, err, ErrPathExists)
	assert.True(t, g.PathExists("commute"))
	p, ok := g.Path("commute")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, p)

	// stored and returned paths are copies
	p[0] = 99
	p, _ = g.Path("commute")
	assert.Equal(t, []int{1, 2}, p)

	require.NoError(t, g.AddPath("another", []int{42}))
	assert.Equal(t, []string{"another", "commute"}, g.PathNames())

	require.NoError(t, g.RemovePath("commute"))
	assert.False(t, g.PathExists("commute"))
	assert.ErrorIs(t, g.RemovePath("commute"), ErrPathNotFound)
	_, ok = g.Path("commute")
	assert.False(t, ok)
	assert.Equal(t, 1, g.NumPaths())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	nf := filepath.Join(dir, "nodes.txt")
	ef := filepath.Join(dir, "edges.txt")
	require.NoError(t, os.WriteFile(nf, []byte(twoNodes), 0666))
	require.NoError(t, os.WriteFile(ef, []byte("1 2 10 50 2 0\n"), 0666))

	g, err := Open(nf, ef)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 2, g.NumRoads())

	g, err = Open(nf, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 0, g.NumRoads())

	g, err = Open(filepath.Join(dir, "missing.txt"), ef)
	assert.Error(t, err)
	assert.Equal(t, 0, g.NumNodes())
	assert.Equal(t, 0, g.NumRoads())
}

func TestWrite(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteNodes(&b, []Node{{ID: 0, Pos: math32.Vec3(1.5, -2, 0)}}))
	assert.Equal(t, "0 1.500000 -2.000000 0.000000\n", b.String())

	b.Reset()
	require.NoError(t, WriteEdges(&b, []Edge{
		{From: 0, To: 1, Meters: 12.345, MaxSpeed: 50, Lanes: 2, OneWay: true},
		{From: 1, To: 2, Meters: 3, MaxSpeed: 30, Lanes: 1},
	}))
	assert.Equal(t, "0 1 12.345 50 2 1\n1 2 3 30 1 0\n", b.String())

	e, err := ParseEdgeLine("0 1 12.345 50 2 1")
	require.NoError(t, err)
	assert.Equal(t, Edge{From: 0, To: 1, Meters: 12.345, MaxSpeed: 50, Lanes: 2, OneWay: true}, e)
}

func TestSummarize(t *testing.T) {
	nodes := "1 0 0 0\n2 10 0 0\n3 10 10 0\n"
	edges := "1 2 10 50 2 1\n2 3 20 30 1 1\n3 1 30 90 3 1\n"
	g := load(t, nodes, edges)
	require.NoError(t, g.AddPath("loop", []int{1, 2, 3, 1}))
	s := Summarize(g)
	assert.Equal(t, 3, s.Nodes)
	assert.Equal(t, 3, s.Roads)
	assert.Equal(t, 1, s.Paths)
	assert.InDelta(t, 60, s.TotalMeters, 1e-9)
	assert.InDelta(t, 20, s.MeanMeters, 1e-9)
	assert.InDelta(t, 50, s.MedianSpeed, 1e-9)
	assert.InDelta(t, 90, s.MaxSpeed, 1e-9)
	assert.InDelta(t, 2, s.MeanLanes, 1e-9)
	assert.Contains(t, s.String(), "roads:        3")

	s = Summarize(New())
	assert.Equal(t, Summary{}, s)
}
