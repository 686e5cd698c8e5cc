package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/pkg/browser"
	"github.com/urfave/cli/v2"

	"github.com/ray1729/films-map/pkg/films"
	"github.com/ray1729/films-map/pkg/geocode"
	"github.com/ray1729/films-map/pkg/logger"
	"github.com/ray1729/films-map/pkg/render"
)

func mapAction(c *cli.Context) error {
	if c.NArg() != 4 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("expected 4 arguments, got %d", c.NArg())
	}
	q, err := parseQuery(c.Args().Slice()[:3])
	if err != nil {
		return err
	}
	q.Limit = c.Int("limit")
	path := c.Args().Get(3)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, err := newGeocoder(ctx, cfg)
	if err != nil {
		return err
	}
	results, _, err := films.NearestInFile(ctx, path, q, g)
	if cerr := g.Close(); cerr != nil {
		logger.L().Warn("geocode_cache_close_error", "err", cerr)
	}
	if err != nil {
		return err
	}

	origin := geocode.Point{Lat: q.Lat, Lon: q.Lon}
	output := c.String("output")
	if err := render.SaveHTML(output, origin, results); err != nil {
		return err
	}
	logger.L().Info("map_written", "path", output, "results", len(results))
	if p := c.String("gpx"); p != "" {
		if err := render.SaveGPX(p, origin, results); err != nil {
			return err
		}
	}
	if p := c.String("xlsx"); p != "" {
		if err := render.SaveXLSX(p, results); err != nil {
			return err
		}
	}
	if c.Bool("no-browser") {
		return nil
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	if err := browser.OpenFile(abs); err != nil {
		logger.L().Warn("browser_open_error", "path", abs, "err", err)
	}
	return nil
}

// parseQuery parses YEAR LATITUDE LONGITUDE.
func parseQuery(args []string) (films.Query, error) {
	var q films.Query
	if len(args) != 3 {
		return q, fmt.Errorf("expected YEAR LATITUDE LONGITUDE, got %d arguments", len(args))
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return q, fmt.Errorf("invalid year %q: %w", args[0], err)
	}
	lat, lon, err := parsePoint(args[1], args[2])
	if err != nil {
		return q, err
	}
	return films.Query{Year: year, Lat: lat, Lon: lon}, nil
}

func parsePoint(rawLat, rawLon string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", rawLat, err)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude %v out of range", lat)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", rawLon, err)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("longitude %v out of range", lon)
	}
	return lat, lon, nil
}
