// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roadgraph

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary contains descriptive statistics about a [Graph].
type Summary struct {
	Nodes int
	Roads int
	Paths int

	// TotalMeters is the summed length of all roads, in meters.
	TotalMeters float64

	// MeanMeters is the mean road length, in meters.
	MeanMeters float64

	// MedianSpeed is the median road speed limit, in km/h.
	MedianSpeed float64

	// MaxSpeed is the largest road speed limit, in km/h.
	MaxSpeed float64

	// MeanLanes is the mean number of lanes per road.
	MeanLanes float64

	// Radius is the scene radius of the graph.
	Radius float32
}

// Summarize returns the [Summary] of the given graph.
// The road statistics are all zero when the graph has no roads.
func Summarize(g *Graph) Summary {
	s := Summary{
		Nodes:  g.NumNodes(),
		Roads:  g.NumRoads(),
		Paths:  g.NumPaths(),
		Radius: g.Radius(),
	}
	if s.Roads == 0 {
		return s
	}
	meters := make([]float64, 0, s.Roads)
	speeds := make([]float64, 0, s.Roads)
	lanes := make([]float64, 0, s.Roads)
	for _, rd := range g.Roads() {
		meters = append(meters, float64(rd.Meters))
		speeds = append(speeds, float64(rd.MaxSpeed))
		lanes = append(lanes, float64(rd.Lanes))
	}
	s.TotalMeters = floats.Sum(meters)
	s.MeanMeters = stat.Mean(meters, nil)
	s.MeanLanes = stat.Mean(lanes, nil)
	s.MaxSpeed = floats.Max(speeds)
	slices.Sort(speeds)
	s.MedianSpeed = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	return s
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nodes:        %d\n", s.Nodes)
	fmt.Fprintf(&b, "roads:        %d\n", s.Roads)
	fmt.Fprintf(&b, "paths:        %d\n", s.Paths)
	fmt.Fprintf(&b, "radius:       %g\n", s.Radius)
	fmt.Fprintf(&b, "total length: %.3f m\n", s.TotalMeters)
	fmt.Fprintf(&b, "mean length:  %.3f m\n", s.MeanMeters)
	fmt.Fprintf(&b, "median speed: %g km/h\n", s.MedianSpeed)
	fmt.Fprintf(&b, "max speed:    %g km/h\n", s.MaxSpeed)
	fmt.Fprintf(&b, "mean lanes:   %.2f\n", s.MeanLanes)
	return b.String()
}
