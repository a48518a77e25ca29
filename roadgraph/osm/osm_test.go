// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/roadview/roadgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNodes = `{
  "type": "FeatureCollection",
  "features": [
    {"id": "100", "type": "Feature", "properties": {"street_count": 3},
     "geometry": {"type": "Point", "coordinates": [2.0, 48.0]}},
    {"id": "200", "type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [2.01, 48.0]}},
    {"id": "300", "type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [2.01, 48.01]}}
  ]
}`

const testEdges = `{
  "type": "FeatureCollection",
  "features": [
    {"id": "(100, 200, 0)", "type": "Feature",
     "properties": {"length": 744.1234, "highway": "primary", "maxspeed": "50", "lanes": "3", "oneway": true},
     "geometry": {"type": "LineString", "coordinates": [[2.0, 48.0], [2.01, 48.0]]}},
    {"id": "(200, 300, 0)", "type": "Feature",
     "properties": {"length": 1111.9, "highway": ["primary", "secondary"], "lanes": ["2", "4"], "oneway": false},
     "geometry": {"type": "LineString", "coordinates": [[2.01, 48.0], [2.01, 48.01]]}},
    {"id": "(300, 100, 0)", "type": "Feature",
     "properties": {"length": 10, "highway": "residential"},
     "geometry": {"type": "LineString", "coordinates": [[2.01, 48.01], [2.0, 48.0]]}},
    {"id": "(300, 999, 0)", "type": "Feature",
     "properties": {"length": 10},
     "geometry": {"type": "LineString", "coordinates": [[2.01, 48.01], [3.0, 49.0]]}}
  ]
}`

func convertTest(t *testing.T) *Network {
	t.Helper()
	nodes, err := Decode(strings.NewReader(testNodes))
	require.NoError(t, err)
	edges, err := Decode(strings.NewReader(testEdges))
	require.NoError(t, err)
	nw, err := Convert(nodes, edges)
	require.NoError(t, err)
	return nw
}

func TestConvert(t *testing.T) {
	nw := convertTest(t)
	require.Len(t, nw.Nodes, 3)
	for i, nd := range nw.Nodes {
		assert.Equal(t, i, nd.ID)
		assert.Equal(t, float32(0), nd.Pos.Z)
	}
	// centered on the bounding box, signed by direction
	assert.Less(t, nw.Nodes[0].Pos.X, float32(0))
	assert.Less(t, nw.Nodes[0].Pos.Y, float32(0))
	assert.Greater(t, nw.Nodes[2].Pos.X, float32(0))
	assert.Greater(t, nw.Nodes[2].Pos.Y, float32(0))
	assert.InDelta(t, -nw.Nodes[0].Pos.X, nw.Nodes[2].Pos.X, 1e-3)
	// 0.005 degrees of latitude
	assert.InDelta(t, 555.97, nw.Nodes[2].Pos.Y, 0.1)

	require.Len(t, nw.Edges, 3)
	assert.Equal(t, roadgraph.Edge{From: 0, To: 1, Meters: 744.123, MaxSpeed: 50, Lanes: 3, OneWay: true}, nw.Edges[0])
	// primary has seen 50 so far
	assert.Equal(t, roadgraph.Edge{From: 1, To: 2, Meters: 1111.9, MaxSpeed: 50, Lanes: 4}, nw.Edges[1])
	assert.Equal(t, roadgraph.Edge{From: 2, To: 0, Meters: 10, MaxSpeed: 30, Lanes: 2}, nw.Edges[2])

	g, err := nw.Graph()
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 1+2+2, g.NumRoads())
}

func TestWrite(t *testing.T) {
	nw := convertTest(t)
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, nw.Write(dir))

	g, err := roadgraph.Open(filepath.Join(dir, "nodes.txt"), filepath.Join(dir, "edges.txt"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 5, g.NumRoads())

	b, err := os.ReadFile(filepath.Join(dir, "edges.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0 1 744.123 50 3 1\n1 2 1111.9 50 4 0\n2 0 10 30 2 0\n", string(b))
}

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{50.0, 50, true},
		{47.9, 47, true},
		{"30", 30, true},
		{"Walk", WalkSpeed, true},
		{"50 mph", 0, false},
		{[]any{"30", "50"}, 40, true},
		{[]any{"none", "0"}, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSpeed(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestSpeeds(t *testing.T) {
	assert.Equal(t, 20.0, RoundSpeed(25))
	assert.Equal(t, 40.0, RoundSpeed(35))
	assert.Equal(t, 50.0, RoundSpeed(47))
	assert.Equal(t, 120.0, EstimateSpeed("motorway"))
	assert.Equal(t, 40.0, EstimateSpeed("unclassified"))

	s := NewSpeeds()
	assert.Equal(t, 40.0, s.Speed(map[string]any{}))
	assert.Equal(t, 60.0, s.Speed(map[string]any{"highway": "residential", "maxspeed": 57.0}))
	assert.Equal(t, 60.0, s.Speed(map[string]any{"highway": "residential"}))
	// walking speed rounds to even tens
	assert.Equal(t, 0.0, s.Speed(map[string]any{"highway": "living_street", "maxspeed": "walk"}))
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{12.25, 12.25, true},
		{"12.5", 12.5, true},
		{" 7 ", 7, true},
		{"long", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestConvertLength(t *testing.T) {
	const edgesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"id": "(100, 200, 0)", "type": "Feature",
     "properties": {"length": "12.3456", "highway": "residential"}},
    {"id": "(200, 300, 0)", "type": "Feature",
     "properties": {"highway": "residential"}}
  ]
}`
	nodes, err := Decode(strings.NewReader(testNodes))
	require.NoError(t, err)
	edges, err := Decode(strings.NewReader(edgesJSON))
	require.NoError(t, err)
	nw, err := Convert(nodes, edges)
	require.NoError(t, err)
	require.Len(t, nw.Edges, 2)
	assert.Equal(t, float32(12.346), nw.Edges[0].Meters)
	assert.Equal(t, float32(0), nw.Edges[1].Meters)
}

func TestLanesOneWay(t *testing.T) {
	assert.Equal(t, DefaultLanes, ParseLanes(nil))
	assert.Equal(t, 3, ParseLanes(3.0))
	assert.Equal(t, 4, ParseLanes([]any{"2", "4", "1"}))
	assert.Equal(t, DefaultLanes, ParseLanes("two"))

	assert.True(t, ParseOneWay(true))
	assert.True(t, ParseOneWay("True"))
	assert.False(t, ParseOneWay("yes"))
	assert.False(t, ParseOneWay(nil))
}

func TestEdgeEnds(t *testing.T) {
	u, v, err := EdgeEnds("(12, 34, 0)")
	require.NoError(t, err)
	assert.Equal(t, "12", u)
	assert.Equal(t, "34", v)
	_, _, err = EdgeEnds("12")
	assert.Error(t, err)
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 111195, Haversine(0, 0, 1, 0), 1)
	assert.InDelta(t, 0, Haversine(48, 2, 48, 2), 1e-9)
}
