// Command planar evaluates a hull script and prints the resulting meshes,
// hull summaries and probe values as JSON.
//
// Usage:
//
//	planar [-v] [-geojson] [-merged] [-cells N] [script]
//
// With no script argument the source is read from stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chazu/planar/pkg/kernel/sdfx"
	"github.com/chazu/planar/pkg/polygon"
)

func main() {
	verbose := flag.Bool("v", false, "log hull updates to stderr")
	geo := flag.Bool("geojson", false, "print the scene as a GeoJSON FeatureCollection instead of meshes")
	merged := flag.Bool("merged", false, "union all hulls into a single mesh")
	cells := flag.Int("cells", sdfx.DefaultMeshCells, "marching cubes resolution along the longest axis")
	flag.Parse()

	if *verbose {
		polygon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts := runOptions{geoJSON: *geo, merged: *merged, cells: *cells}
	if err := run(flag.Args(), os.Stdin, os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "planar: %v\n", err)
		os.Exit(1)
	}
}

type runOptions struct {
	geoJSON bool
	merged  bool
	cells   int
}

func run(args []string, stdin io.Reader, stdout io.Writer, opts runOptions) error {
	var src []byte
	var err error
	switch len(args) {
	case 0:
		src, err = io.ReadAll(stdin)
	case 1:
		src, err = os.ReadFile(args[0])
	default:
		return fmt.Errorf("expected at most one script, got %d", len(args))
	}
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	app := NewAppWithKernel(sdfx.NewWithCells(opts.cells))
	app.Merged = opts.merged
	if opts.geoJSON {
		out, err := app.GeoJSON(string(src))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(out))
		return err
	}

	result := app.Evaluate(string(src))
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d error(s) in script", len(result.Errors))
	}
	return nil
}
