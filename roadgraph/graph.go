// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package roadgraph provides the spatial road network model: nodes with
// 3D positions, directed roads between them, optional named paths,
// and a running bounding box from which the scene center and radius
// are derived.
package roadgraph

import (
	"fmt"
	"iter"

	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/math32"
	"github.com/tidwall/btree"
)

var (
	// ErrNodeNotFound is returned when a node id is not in the graph.
	ErrNodeNotFound = errors.New("roadgraph: node not found")

	// ErrPathExists is returned when adding a path whose name is already used.
	ErrPathExists = errors.New("roadgraph: path already exists")

	// ErrPathNotFound is returned when removing a path that does not exist.
	ErrPathNotFound = errors.New("roadgraph: path not found")
)

// Node is a point in 3D space identified by an integer id.
type Node struct {
	ID  int
	Pos math32.Vector3
}

// RoadID is the stable address of a [Road] within its [Graph]:
// the order in which the road was added, starting at 0.
type RoadID int

// Road is a directed segment between two node ids with
// physical attributes.
type Road struct {
	From int
	To   int

	// Meters is the length of the road in meters.
	Meters float32

	// MaxSpeed is the speed limit, in km/h.
	MaxSpeed float32

	// Lanes is the number of lanes.
	Lanes int
}

// Graph is a spatial road network. Nodes are kept in ascending id
// order, roads are append-only and addressed by [RoadID].
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes    btree.Map[int, Node]
	roads    []Road
	adjacent map[int][]int
	paths    map[string][]int
	bounds   math32.Box3
}

// New returns a new empty graph.
func New() *Graph {
	g := &Graph{
		adjacent: make(map[int][]int),
		paths:    make(map[string][]int),
	}
	g.bounds.SetEmpty()
	return g
}

// AddNode inserts the node at the given id, overwriting any existing
// node with that id. The bounding box is always expanded to include pos,
// even on overwrite.
func (g *Graph) AddNode(id int, pos math32.Vector3) {
	g.nodes.Set(id, Node{ID: id, Pos: pos})
	g.bounds.ExpandByPoint(pos)
}

// AddRoad appends a directed road from -> to and records to as
// adjacent to from. Both nodes must already exist, otherwise
// [ErrNodeNotFound] is returned and nothing is added.
func (g *Graph) AddRoad(from, to int, meters, maxSpeed float32, lanes int) (RoadID, error) {
	if !g.NodeExists(from) {
		return -1, fmt.Errorf("road %d -> %d: from %w", from, to, ErrNodeNotFound)
	}
	if !g.NodeExists(to) {
		return -1, fmt.Errorf("road %d -> %d: to %w", from, to, ErrNodeNotFound)
	}
	id := RoadID(len(g.roads))
	g.roads = append(g.roads, Road{From: from, To: to, Meters: meters, MaxSpeed: maxSpeed, Lanes: lanes})
	g.adjacent[from] = append(g.adjacent[from], to)
	return id, nil
}

// AddEdge adds the roads described by one undirected input edge:
// the road From -> To, plus the mirrored To -> From road unless
// the edge is one-way. It returns the ids of the added roads.
func (g *Graph) AddEdge(e Edge) ([]RoadID, error) {
	id, err := g.AddRoad(e.From, e.To, e.Meters, e.MaxSpeed, e.Lanes)
	if err != nil {
		return nil, err
	}
	ids := []RoadID{id}
	if e.OneWay {
		return ids, nil
	}
	id, err = g.AddRoad(e.To, e.From, e.Meters, e.MaxSpeed, e.Lanes)
	if err != nil {
		return ids, err
	}
	return append(ids, id), nil
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return g.nodes.Len()
}

// NumRoads returns the number of directed roads.
func (g *Graph) NumRoads() int {
	return len(g.roads)
}

// NodeExists returns whether a node with the given id exists.
func (g *Graph) NodeExists(id int) bool {
	_, ok := g.nodes.Get(id)
	return ok
}

// Node returns the node with the given id, or [ErrNodeNotFound].
func (g *Graph) Node(id int) (Node, error) {
	nd, ok := g.nodes.Get(id)
	if !ok {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	return nd, nil
}

// NodePosition returns the position of the node with the given id,
// or [ErrNodeNotFound]. An unknown id indicates a caller bug; callers
// that cannot recover should use [errors.Must1].
func (g *Graph) NodePosition(id int) (math32.Vector3, error) {
	nd, err := g.Node(id)
	return nd.Pos, err
}

// Nodes returns an iterator over all nodes in ascending id order.
func (g *Graph) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		g.nodes.Scan(func(_ int, nd Node) bool {
			return yield(nd)
		})
	}
}

// Road returns the road with the given id.
func (g *Graph) Road(id RoadID) (Road, bool) {
	if !g.RoadIDExists(id) {
		return Road{}, false
	}
	return g.roads[id], true
}

// Roads returns an iterator over all roads in the order they were added.
func (g *Graph) Roads() iter.Seq2[RoadID, Road] {
	return func(yield func(RoadID, Road) bool) {
		for i, rd := range g.roads {
			if !yield(RoadID(i), rd) {
				return
			}
		}
	}
}

// RoadIDExists returns whether a road with the given id exists.
func (g *Graph) RoadIDExists(id RoadID) bool {
	return id >= 0 && int(id) < len(g.roads)
}

// RoadExists returns whether there is a road from -> to.
// It is a linear scan of the nodes adjacent to from.
func (g *Graph) RoadExists(from, to int) bool {
	for _, adj := range g.adjacent[from] {
		if adj == to {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of every position ever added.
// It is empty (see [math32.Box3.IsEmpty]) when no node has been added.
func (g *Graph) Bounds() math32.Box3 {
	return g.bounds
}

// Center returns the midpoint of the bounding box,
// or the origin for an empty graph.
func (g *Graph) Center() math32.Vector3 {
	if g.bounds.IsEmpty() {
		return math32.Vector3{}
	}
	return g.bounds.Center()
}

// Radius returns the distance from [Graph.Center] to the maximum
// corner of the bounding box, or 0 for an empty graph.
func (g *Graph) Radius() float32 {
	if g.bounds.IsEmpty() {
		return 0
	}
	return g.Center().DistanceTo(g.bounds.Max)
}
