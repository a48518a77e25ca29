// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command roadview is an interactive 3D viewer for road networks.
// It also prints statistics about a road graph and imports road
// networks exported from OpenStreetMap.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/roadview/base/logx"
	"cogentcore.org/roadview/config"
	"cogentcore.org/roadview/gpu/glgpu"
	"cogentcore.org/roadview/roadgraph"
	"cogentcore.org/roadview/roadgraph/osm"
	"cogentcore.org/roadview/system/driver/desktop"
	"cogentcore.org/roadview/viewer"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags are the persistent flags of all commands.
type flags struct {
	config string
	vv     bool
	v      bool
	q      bool
}

func newRootCmd() *cobra.Command {
	fl := &flags{}
	root := &cobra.Command{
		Use:   "roadview",
		Short: "roadview is an interactive 3D viewer for road networks",
		Long: `roadview loads a road graph from node and edge files and shows it
in a window, where the camera is navigated with the keyboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(fl.vv, fl.v, fl.q)
			logx.SetDefaultLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Open(fl.config)
			if err != nil {
				return err
			}
			view(cfg)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&fl.config, "config", "c", "config.txt", "the configuration file (key=value, .toml, or .yaml)")
	pf.BoolVar(&fl.vv, "vv", false, "print debug messages")
	pf.BoolVarP(&fl.v, "verbose", "v", false, "print informational messages")
	pf.BoolVarP(&fl.q, "quiet", "q", false, "only print errors")

	root.AddCommand(newStatsCmd(fl), newImportCmd())
	return root
}

// view runs the viewer until its window is closed.
// Failure to set up the window or OpenGL is fatal.
func view(cfg *config.Config) {
	win, err := desktop.NewWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle)
	if err != nil {
		fatal(err)
	}
	defer win.Destroy()
	dev, err := glgpu.NewDevice()
	if err != nil {
		win.Destroy()
		fatal(err)
	}
	app, err := viewer.New(cfg, win, dev)
	if err != nil {
		dev.Release()
		win.Destroy()
		fatal(err)
	}
	app.Run(os.Stdout)
}

func fatal(err error) {
	slog.Error("roadview: fatal", "err", err)
	os.Exit(1)
}

func newStatsCmd(fl *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "print statistics about the configured road graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Open(fl.config)
			if err != nil {
				return err
			}
			g, err := roadgraph.Open(cfg.NodesFile, cfg.EdgesFile)
			if err != nil {
				slog.Warn("roadview: graph loaded partially", "err", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), roadgraph.Summarize(g))
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var nodes, edges, out string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "convert OpenStreetMap GeoJSON nodes and edges into node and edge files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nw, err := osm.Import(nodes, edges)
			if err != nil {
				return err
			}
			if err := nw.Write(out); err != nil {
				return err
			}
			g, err := nw.Graph()
			if err != nil {
				slog.Warn("roadview: imported graph has invalid edges", "err", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d nodes and %d edges to %s\n", len(nw.Nodes), len(nw.Edges), out)
			fmt.Fprint(cmd.OutOrStdout(), roadgraph.Summarize(g))
			return nil
		},
	}
	cmd.Flags().StringVar(&nodes, "nodes", "data/json/nodes.json", "the GeoJSON nodes file")
	cmd.Flags().StringVar(&edges, "edges", "data/json/edges.json", "the GeoJSON edges file")
	cmd.Flags().StringVar(&out, "out", "data", "the output directory for nodes.txt and edges.txt")
	return cmd
}
