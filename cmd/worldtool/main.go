package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang/geo/r3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"

	"motion-world/internal/config"
	"motion-world/internal/server"
	"motion-world/world"
	"motion-world/worldio"
)

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "worldtool"
	app.Usage = "Generate and query obstacle worlds"

	app.Commands = []cli.Command{
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "Generate a world and save it (.json, .msgpack, .geojson)",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config", Usage: "YAML configuration file; its generator section is used"},
				cli.StringFlag{Name: "kind", Usage: "Generator kind, overrides the configuration"},
				cli.Int64Flag{Name: "seed", Usage: "Random seed, overrides the configuration"},
				cli.IntFlag{Name: "blocks", Usage: "Number of blocks (random_block)"},
				cli.StringFlag{Name: "out", Value: "world.json", Usage: "Destination file"},
			},
			Action: func(c *cli.Context) error {
				cfg, err := config.Load(c.String("config"))
				if err != nil {
					return err
				}
				gc := cfg.Generator
				if c.IsSet("kind") {
					gc.Kind = c.String("kind")
				}
				if c.IsSet("seed") {
					gc.Seed = c.Int64("seed")
				}
				if c.IsSet("blocks") {
					gc.NumBlocks = c.Int("blocks")
				}
				return generateAction(gc, c.String("out"))
			},
		},
		{
			Name:      "inspect",
			Aliases:   []string{"i"},
			Usage:     "Print a summary of a saved world",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errors.New("inspect needs exactly one file")
				}
				return inspectAction(c.Args().First())
			},
		},
		{
			Name:      "collisions",
			Aliases:   []string{"c"},
			Usage:     "List the samples of a path that come closer than margin to an obstacle",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "path", Usage: "Waypoints as \"x,y,z;x,y,z;...\"; required"},
				cli.Float64Flag{Name: "margin", Value: 0.25, Usage: "Clearance below which a sample collides"},
				cli.Float64Flag{Name: "resolution", Value: world.CollisionResolution, Usage: "Sampling step along the path"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errors.New("collisions needs exactly one file")
				}
				path, err := parsePath(c.String("path"))
				if err != nil {
					return err
				}
				return collisionsAction(c.Args().First(), path, c.Float64("margin"), c.Float64("resolution"))
			},
		},
		{
			Name:  "serve",
			Usage: "Serve world generation and queries over HTTP",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config", Usage: "YAML configuration file"},
				cli.StringFlag{Name: "addr", Usage: "Listen address, overrides the configuration"},
			},
			Action: func(c *cli.Context) error {
				cfg, err := config.Load(c.String("config"))
				if err != nil {
					return err
				}
				if c.IsSet("addr") {
					cfg.Server.Addr = c.String("addr")
				}
				s := server.New(cfg, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
				return s.ListenAndServe()
			},
		},
	}

	return app
}

func generateAction(gc config.GeneratorConfig, out string) error {
	w, err := gc.Generate(log.Default())
	if err != nil {
		return fmt.Errorf("generating %s world: %w", gc.Kind, err)
	}
	if err := worldio.Save(out, w); err != nil {
		return err
	}
	log.Printf("✅ %s world with %d blocks written to %s\n", gc.Kind, w.NumBlocks(), out)
	return nil
}

func inspectAction(file string) error {
	w, err := worldio.Load(file)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, w)
	return nil
}

func collisionsAction(file string, path []r3.Vector, margin, resolution float64) error {
	w, err := worldio.Load(file)
	if err != nil {
		return err
	}
	hits, err := w.PathCollisionsAt(path, margin, resolution)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("✅ Path is clear")
		return nil
	}
	fmt.Printf("⚠️  %d colliding samples\n", len(hits))
	for _, h := range hits {
		fmt.Printf("   (%.3f, %.3f, %.3f)\n", h.X, h.Y, h.Z)
	}
	return nil
}
