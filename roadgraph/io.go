// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roadgraph

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/math32"
)

// Edge is one line of an edge file: an undirected road description
// that expands into one or two directed [Road]s.
type Edge struct {
	From     int
	To       int
	Meters   float32
	MaxSpeed float32
	Lanes    int

	// OneWay is whether only the From -> To road exists.
	OneWay bool
}

// Open returns a new graph loaded from the given node and edge files.
// Loading is best-effort: malformed lines are logged and skipped, and a
// file that cannot be opened is logged and contributes nothing, so the
// returned graph is never nil. The returned error reports any file that
// could not be read.
func Open(nodesFile, edgesFile string) (*Graph, error) {
	g := New()
	nerr := g.OpenNodes(nodesFile)
	eerr := g.OpenEdges(edgesFile)
	return g, errors.Join(nerr, eerr)
}

// OpenNodes reads nodes from the given file. See [Graph.ReadNodes].
func (g *Graph) OpenNodes(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		slog.Warn("roadgraph: failed to open nodes file", "file", filename, "err", err)
		return err
	}
	defer f.Close()
	_, err = g.ReadNodes(f, filename)
	return err
}

// OpenEdges reads edges from the given file. See [Graph.ReadEdges].
func (g *Graph) OpenEdges(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		slog.Warn("roadgraph: failed to open edges file", "file", filename, "err", err)
		return err
	}
	defer f.Close()
	_, err = g.ReadEdges(f, filename)
	return err
}

// ReadNodes reads node lines of the form `<id> <x> <y> <z>` from r,
// adding each one to the graph. Lines that cannot be parsed are logged
// and skipped. The name is only used for logging. It returns the
// number of nodes added and any read error.
func (g *Graph) ReadNodes(r io.Reader, name string) (int, error) {
	return scanLines(r, name, "node", func(line string) error {
		id, pos, err := ParseNodeLine(line)
		if err != nil {
			return err
		}
		g.AddNode(id, pos)
		return nil
	})
}

// ReadEdges reads edge lines of the form
// `<from> <to> <meters> <maxSpeed> <lanes> <oneWay>` from r, adding
// the roads of each edge to the graph (see [Graph.AddEdge]).
// Lines that cannot be parsed or that reference unknown nodes are logged
// and skipped. The name is only used for logging. It returns the number
// of edge lines accepted and any read error.
func (g *Graph) ReadEdges(r io.Reader, name string) (int, error) {
	return scanLines(r, name, "edge", func(line string) error {
		e, err := ParseEdgeLine(line)
		if err != nil {
			return err
		}
		_, err = g.AddEdge(e)
		return err
	})
}

// scanLines calls fn for each non-blank line of r, logging and
// skipping lines for which fn returns an error.
func scanLines(r io.Reader, name, kind string, fn func(line string) error) (int, error) {
	sc := bufio.NewScanner(r)
	n := 0
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			slog.Debug("roadgraph: skipping blank line", "file", name, "line", ln)
			continue
		}
		if err := fn(line); err != nil {
			slog.Warn("roadgraph: skipping "+kind+" line", "file", name, "line", ln, "text", line, "err", err)
			continue
		}
		n++
	}
	return n, sc.Err()
}

// ParseNodeLine parses a node line of the form `<id> <x> <y> <z>`.
// Extra trailing fields are ignored.
func ParseNodeLine(line string) (int, math32.Vector3, error) {
	fs := strings.Fields(line)
	if len(fs) < 4 {
		return 0, math32.Vector3{}, fmt.Errorf("expected 4 fields, got %d", len(fs))
	}
	id, err := strconv.Atoi(fs[0])
	if err != nil {
		return 0, math32.Vector3{}, fmt.Errorf("id: %w", err)
	}
	var xyz [3]float32
	for i := range xyz {
		xyz[i], err = parseFloat(fs[1+i])
		if err != nil {
			return 0, math32.Vector3{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
	}
	return id, math32.Vec3(xyz[0], xyz[1], xyz[2]), nil
}

// ParseEdgeLine parses an edge line of the form
// `<from> <to> <meters> <maxSpeed> <lanes> <oneWay>`, where a oneWay
// of 0 means the edge is two-way. Extra trailing fields are ignored.
func ParseEdgeLine(line string) (Edge, error) {
	fs := strings.Fields(line)
	if len(fs) < 6 {
		return Edge{}, fmt.Errorf("expected 6 fields, got %d", len(fs))
	}
	var e Edge
	var err error
	if e.From, err = strconv.Atoi(fs[0]); err != nil {
		return Edge{}, fmt.Errorf("from: %w", err)
	}
	if e.To, err = strconv.Atoi(fs[1]); err != nil {
		return Edge{}, fmt.Errorf("to: %w", err)
	}
	if e.Meters, err = parseFloat(fs[2]); err != nil {
		return Edge{}, fmt.Errorf("meters: %w", err)
	}
	if e.MaxSpeed, err = parseFloat(fs[3]); err != nil {
		return Edge{}, fmt.Errorf("max speed: %w", err)
	}
	if e.Lanes, err = strconv.Atoi(fs[4]); err != nil {
		return Edge{}, fmt.Errorf("lanes: %w", err)
	}
	oneWay, err := strconv.Atoi(fs[5])
	if err != nil {
		return Edge{}, fmt.Errorf("one way: %w", err)
	}
	e.OneWay = oneWay != 0
	return e, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

// WriteNodes writes the given nodes to w in the node file format.
func WriteNodes(w io.Writer, nodes []Node) error {
	bw := bufio.NewWriter(w)
	for _, nd := range nodes {
		fmt.Fprintf(bw, "%d %.6f %.6f %.6f\n", nd.ID, nd.Pos.X, nd.Pos.Y, nd.Pos.Z)
	}
	return bw.Flush()
}

// WriteEdges writes the given edges to w in the edge file format.
func WriteEdges(w io.Writer, edges []Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		oneWay := 0
		if e.OneWay {
			oneWay = 1
		}
		fmt.Fprintf(bw, "%d %d %s %s %d %d\n", e.From, e.To, formatFloat(e.Meters), formatFloat(e.MaxSpeed), e.Lanes, oneWay)
	}
	return bw.Flush()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
