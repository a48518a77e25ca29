// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package osm converts OpenStreetMap road networks, exported as GeoJSON
// feature collections of nodes and edges (as produced by osmnx), into
// the node and edge text files read by [roadgraph].
package osm

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/math32"
	"cogentcore.org/roadview/roadgraph"
	"github.com/goccy/go-json"
)

// EarthRadius is the mean radius of the earth in meters,
// used for haversine distances.
const EarthRadius = 6371000

// Collection is a GeoJSON feature collection.
type Collection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON feature. Node features have a Point geometry;
// edge features have an id of the form "(u, v, key)".
type Feature struct {
	ID         any            `json:"id"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON geometry. The coordinates are kept raw since
// their shape depends on the geometry type.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Point returns the longitude and latitude of a Point geometry.
func (g Geometry) Point() (lon, lat float64, err error) {
	var c []float64
	if err = json.Unmarshal(g.Coordinates, &c); err != nil {
		return 0, 0, err
	}
	if len(c) < 2 {
		return 0, 0, fmt.Errorf("osm: point has %d coordinates", len(c))
	}
	return c[0], c[1], nil
}

// Decode decodes a GeoJSON feature collection from r.
func Decode(r io.Reader) (*Collection, error) {
	c := &Collection{}
	if err := json.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("osm: decoding feature collection: %w", err)
	}
	return c, nil
}

// OpenCollection decodes a GeoJSON feature collection from the given file.
func OpenCollection(filename string) (*Collection, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Network is a road network ready to be written as node and edge files.
type Network struct {
	Nodes []roadgraph.Node
	Edges []roadgraph.Edge
}

// Convert converts the given node and edge collections into a [Network].
// Nodes are renumbered 0..n-1 in feature order and their lon/lat
// coordinates are projected to meters around the center of their
// bounding box, with z = 0. Edges referencing unknown nodes are
// logged and skipped.
func Convert(nodes, edges *Collection) (*Network, error) {
	nw := &Network{}
	lonlat := make([][2]float64, len(nodes.Features))
	ids := make(map[string]int, len(nodes.Features))
	for i, ft := range nodes.Features {
		lon, lat, err := ft.Geometry.Point()
		if err != nil {
			return nil, fmt.Errorf("osm: node %v: %w", ft.ID, err)
		}
		lonlat[i] = [2]float64{lon, lat}
		ids[idString(ft.ID)] = i
	}
	for i, xy := range ProjectMeters(lonlat) {
		nw.Nodes = append(nw.Nodes, roadgraph.Node{ID: i, Pos: math32.Vec3(float32(xy[0]), float32(xy[1]), 0)})
	}

	speeds := NewSpeeds()
	for _, ft := range edges.Features {
		u, v, err := EdgeEnds(idString(ft.ID))
		if err != nil {
			slog.Warn("osm: skipping edge", "id", ft.ID, "err", err)
			continue
		}
		from, okf := ids[u]
		to, okt := ids[v]
		if !okf || !okt {
			slog.Warn("osm: skipping edge with unknown node", "id", ft.ID)
			continue
		}
		props := ft.Properties
		length, ok := ParseLength(props["length"])
		if !ok {
			slog.Warn("osm: edge without a valid length", "id", ft.ID, "length", props["length"])
		}
		nw.Edges = append(nw.Edges, roadgraph.Edge{
			From:     from,
			To:       to,
			Meters:   float32(math.Round(length*1000) / 1000),
			MaxSpeed: float32(speeds.Speed(props)),
			Lanes:    ParseLanes(props["lanes"]),
			OneWay:   ParseOneWay(props["oneway"]),
		})
	}
	return nw, nil
}

// Import decodes the given GeoJSON node and edge files and
// converts them into a [Network].
func Import(nodesFile, edgesFile string) (*Network, error) {
	nodes, err := OpenCollection(nodesFile)
	if err != nil {
		return nil, err
	}
	edges, err := OpenCollection(edgesFile)
	if err != nil {
		return nil, err
	}
	return Convert(nodes, edges)
}

// Write writes the network as nodes.txt and edges.txt in the given
// directory, creating it if needed.
func (nw *Network) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return errors.Join(
		writeFile(filepath.Join(dir, "nodes.txt"), func(w io.Writer) error { return roadgraph.WriteNodes(w, nw.Nodes) }),
		writeFile(filepath.Join(dir, "edges.txt"), func(w io.Writer) error { return roadgraph.WriteEdges(w, nw.Edges) }),
	)
}

// Graph returns a new [roadgraph.Graph] containing the network.
func (nw *Network) Graph() (*roadgraph.Graph, error) {
	g := roadgraph.New()
	for _, nd := range nw.Nodes {
		g.AddNode(nd.ID, nd.Pos)
	}
	var errs []error
	for _, e := range nw.Edges {
		if _, err := g.AddEdge(e); err != nil {
			errs = append(errs, err)
		}
	}
	return g, errors.Join(errs...)
}

func writeFile(filename string, fn func(w io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EdgeEnds returns the u and v node ids of an edge id of the form "(u, v, key)".
func EdgeEnds(id string) (u, v string, err error) {
	parts := strings.Split(strings.Trim(id, "()"), ", ")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("osm: invalid edge id %q", id)
	}
	return parts[0], parts[1], nil
}

// ProjectMeters converts lon/lat pairs in degrees to x/y offsets in meters
// from the center of their bounding box. Each offset is the haversine
// distance along one axis, signed by its direction from the center.
func ProjectMeters(lonlat [][2]float64) [][2]float64 {
	if len(lonlat) == 0 {
		return nil
	}
	minLon, maxLon := lonlat[0][0], lonlat[0][0]
	minLat, maxLat := lonlat[0][1], lonlat[0][1]
	for _, ll := range lonlat[1:] {
		minLon, maxLon = min(minLon, ll[0]), max(maxLon, ll[0])
		minLat, maxLat = min(minLat, ll[1]), max(maxLat, ll[1])
	}
	clon := (minLon + maxLon) / 2
	clat := (minLat + maxLat) / 2
	xy := make([][2]float64, len(lonlat))
	for i, ll := range lonlat {
		dlon := ll[0] - clon
		dlat := ll[1] - clat
		xy[i] = [2]float64{
			math.Copysign(Haversine(clat, clon, clat, dlon+clon), dlon),
			math.Copysign(Haversine(clat, clon, dlat+clat, clon), dlat),
		}
	}
	return xy
}

// Haversine returns the great-circle distance in meters between two
// latitude/longitude points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	lat1, lon1, lat2, lon2 = lat1*rad, lon1*rad, lat2*rad, lon2*rad
	sdlat := math.Sin((lat2 - lat1) / 2)
	sdlon := math.Sin((lon2 - lon1) / 2)
	a := sdlat*sdlat + math.Cos(lat1)*math.Cos(lat2)*sdlon*sdlon
	return EarthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func idString(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(id)
}
