// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the roadview configuration: a fixed schema of
// options, each with a kind and a default, loaded once at startup from a
// key=value, TOML or YAML file.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/roadview/base/errors"
	"cogentcore.org/roadview/base/fsx"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the viewer.
type Config struct {
	// NodesFile is the node file of the road graph.
	NodesFile string

	// EdgesFile is the edge file of the road graph.
	EdgesFile string

	// WindowWidth is the initial width of the window.
	WindowWidth int

	// WindowHeight is the initial height of the window.
	WindowHeight int

	// WindowTitle is the title of the window.
	WindowTitle string

	// CameraFov is the initial vertical field of view of the camera, in degrees.
	CameraFov float32

	// NodeSize is the point size of nodes.
	NodeSize float32

	// EdgeSize is the line width of roads.
	EdgeSize float32

	// WatchFiles is whether to reload the graph when its files change.
	// The camera is reset when a reload changes the graph extent.
	WatchFiles bool

	// ColorBySpeed is whether roads start colored by their speed limit.
	ColorBySpeed bool
}

// Kinds are the kinds of option values.
type Kinds int32

const (
	String Kinds = iota
	Int
	Float
	Bool
)

func (k Kinds) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	}
	return "Kinds(unknown)"
}

// Option is one entry of the configuration [Schema].
type Option struct {
	// Name is the key of the option in a configuration file.
	Name string

	// Kind is the kind of value of the option.
	Kind Kinds

	// Default is the value used when the option is absent or invalid.
	Default any

	// field returns a pointer to the option field of the given config.
	field func(c *Config) any

	// valid returns whether a converted value is acceptable, if non-nil.
	valid func(v any) bool
}

func positive(v any) bool {
	switch x := v.(type) {
	case int:
		return x > 0
	case float32:
		return x > 0
	}
	return true
}

// Schema is the fixed list of options, in file order.
var Schema = []Option{
	{Name: "nodesFile", Kind: String, Default: "data/nodes.txt", field: func(c *Config) any { return &c.NodesFile }},
	{Name: "edgesFile", Kind: String, Default: "data/edges.txt", field: func(c *Config) any { return &c.EdgesFile }},
	{Name: "windowWidth", Kind: Int, Default: 800, field: func(c *Config) any { return &c.WindowWidth }, valid: positive},
	{Name: "windowHeight", Kind: Int, Default: 600, field: func(c *Config) any { return &c.WindowHeight }, valid: positive},
	{Name: "windowTitle", Kind: String, Default: "Graph Visualizer", field: func(c *Config) any { return &c.WindowTitle }},
	{Name: "cameraFov", Kind: Float, Default: float32(45), field: func(c *Config) any { return &c.CameraFov },
		valid: func(v any) bool { f := v.(float32); return f >= 1 && f <= 179 }},
	{Name: "nodeSize", Kind: Float, Default: float32(0.1), field: func(c *Config) any { return &c.NodeSize }, valid: positive},
	{Name: "edgeSize", Kind: Float, Default: float32(0.1), field: func(c *Config) any { return &c.EdgeSize }, valid: positive},
	{Name: "watchFiles", Kind: Bool, Default: false, field: func(c *Config) any { return &c.WatchFiles }},
	{Name: "colorBySpeed", Kind: Bool, Default: false, field: func(c *Config) any { return &c.ColorBySpeed }},
}

// Default returns a new config with every option at its default.
func Default() *Config {
	c := &Config{}
	for _, opt := range Schema {
		errors.Must(opt.set(c, opt.Default))
	}
	return c
}

// convert converts v to the kind of the option.
func (opt *Option) convert(v any) (any, error) {
	switch opt.Kind {
	case String:
		return cast.ToStringE(v)
	case Int:
		return cast.ToIntE(v)
	case Float:
		return cast.ToFloat32E(v)
	case Bool:
		return cast.ToBoolE(v)
	}
	return nil, fmt.Errorf("config: unknown kind %v", opt.Kind)
}

// set converts v and sets it as the value of the option in c.
func (opt *Option) set(c *Config, v any) error {
	cv, err := opt.convert(v)
	if err != nil {
		return err
	}
	if opt.valid != nil && !opt.valid(cv) {
		return fmt.Errorf("value %v is out of range", cv)
	}
	switch fp := opt.field(c).(type) {
	case *string:
		*fp = cv.(string)
	case *int:
		*fp = cv.(int)
	case *float32:
		*fp = cv.(float32)
	case *bool:
		*fp = cv.(bool)
	}
	return nil
}

// FromValues returns a new config from the given raw values keyed by
// option name. Absent options, values that cannot be converted to the
// option kind, and unknown keys are logged, and the defaults are used.
func FromValues(vals map[string]any) *Config {
	c := Default()
	for _, opt := range Schema {
		v, has := vals[opt.Name]
		if !has {
			slog.Warn("config: key not found, using default", "key", opt.Name, "default", opt.Default)
			continue
		}
		if err := opt.set(c, v); err != nil {
			slog.Warn("config: invalid value, using default", "key", opt.Name, "kind", opt.Kind, "value", v, "default", opt.Default, "err", err)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(vals)) {
		if !slices.ContainsFunc(Schema, func(opt Option) bool { return opt.Name == k }) {
			slog.Warn("config: unknown key", "key", k)
		}
	}
	c.NodesFile = expand(c.NodesFile)
	c.EdgesFile = expand(c.EdgesFile)
	return c
}

func expand(path string) string {
	ex, err := fsx.ExpandPath(path)
	if err != nil {
		slog.Warn("config: cannot expand path", "path", path, "err", err)
		return path
	}
	return ex
}

// Open loads the config from the given file, whose format is determined
// by its extension: .toml, .yaml or .yml, and otherwise key=value lines,
// with blank and #-prefixed lines ignored. A missing file is logged and
// yields the defaults. An error is returned only if the file cannot be
// read or parsed.
func Open(filename string) (*Config, error) {
	ok, err := fsx.FileExists(filename)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Warn("config: file not found, using defaults", "file", filename)
		return Default(), nil
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	vals, err := Parse(b, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return FromValues(vals), nil
}

// Parse parses raw option values from the given data in the format
// given by the file extension ext (see [Open]).
func Parse(b []byte, ext string) (map[string]any, error) {
	vals := map[string]any{}
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(b, &vals); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &vals); err != nil {
			return nil, err
		}
	default:
		kv, err := godotenv.Parse(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		for k, v := range kv {
			vals[k] = v
		}
	}
	return vals, nil
}
