// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roadgraph

import (
	"fmt"
	"maps"
	"slices"
)

// Paths are named, ordered sequences of node ids. They are metadata
// only: node ids are not checked against the graph and no geometry or
// routing is derived from them.

// AddPath adds a path with the given unique name.
// It returns [ErrPathExists] if the name is already used, in which
// case the existing path is left unchanged.
func (g *Graph) AddPath(name string, nodes []int) error {
	if _, has := g.paths[name]; has {
		return fmt.Errorf("path %q: %w", name, ErrPathExists)
	}
	g.paths[name] = slices.Clone(nodes)
	return nil
}

// RemovePath removes the path with the given name,
// returning [ErrPathNotFound] if there is no such path.
func (g *Graph) RemovePath(name string) error {
	if _, has := g.paths[name]; !has {
		return fmt.Errorf("path %q: %w", name, ErrPathNotFound)
	}
	delete(g.paths, name)
	return nil
}

// PathExists returns whether a path with the given name exists.
func (g *Graph) PathExists(name string) bool {
	_, has := g.paths[name]
	return has
}

// Path returns a copy of the node ids of the path with the given name.
func (g *Graph) Path(name string) ([]int, bool) {
	nodes, has := g.paths[name]
	if !has {
		return nil, false
	}
	return slices.Clone(nodes), true
}

// PathNames returns the names of all paths in sorted order.
func (g *Graph) PathNames() []string {
	return slices.Sorted(maps.Keys(g.paths))
}

// NumPaths returns the number of paths.
func (g *Graph) NumPaths() int {
	return len(g.paths)
}
