package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ray1729/films-map/pkg/geocode"
	"github.com/ray1729/films-map/pkg/places"
	"github.com/ray1729/films-map/pkg/topk"
)

var placesCommand = &cli.Command{
	Name:      "places",
	Usage:     "List cached filming locations closest to a point, without geocoding",
	ArgsUsage: "[--] LATITUDE LONGITUDE",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "k",
			Usage: "Show the `N` closest places",
			Value: topk.DefaultK,
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Read places from geocode cache `FILE` (default FILMS_CACHE_FILE)",
		},
	},
	Action: placesAction,
}

func placesAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: films-map places [--k N] [--cache FILE] [--] LATITUDE LONGITUDE")
	}
	lat, lon, err := parsePoint(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	cacheFile := c.String("cache")
	if cacheFile == "" {
		cacheFile = cfg.CacheFile
	}
	if cacheFile == "" {
		return errors.New("no geocode cache: set FILMS_CACHE_FILE or pass --cache")
	}
	store, err := geocode.OpenGobStore(cacheFile)
	if err != nil {
		return err
	}
	ix := places.FromEntries(store.Entries())
	for _, r := range ix.Nearest(geocode.Point{Lat: lat, Lon: lon}, c.Int("k")) {
		fmt.Printf("%.2f km\t%s\t(%.6f, %.6f)\n", r.Distance, r.Name, r.Point.Lat, r.Point.Lon)
	}
	return nil
}
