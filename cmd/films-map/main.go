package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ray1729/films-map/pkg/config"
	"github.com/ray1729/films-map/pkg/logger"
	"github.com/ray1729/films-map/pkg/topk"
)

var cfg *config.Config

func main() {
	log.SetFlags(0)
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "films-map",
		Usage:     "Generates a map of the closest filming locations for a year",
		ArgsUsage: "YEAR LATITUDE LONGITUDE DATASET",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the map to `FILE`",
				Value:   "index.html",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Show the `N` closest films",
				Value:   topk.DefaultK,
			},
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Do not open the map in a browser",
			},
			&cli.StringFlag{
				Name:  "gpx",
				Usage: "Also write the results as GPX waypoints to `FILE`",
			},
			&cli.StringFlag{
				Name:  "xlsx",
				Usage: "Also write the results as a spreadsheet to `FILE`",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger.Setup(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
		Action: mapAction,
		Commands: []*cli.Command{
			serveCommand,
			placesCommand,
		},
	}
}
