package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ray1729/films-map/pkg/config"
	"github.com/ray1729/films-map/pkg/geocode"
	"github.com/ray1729/films-map/pkg/logger"
)

// geocoder is the memoizing geocoder together with the stores it owns.
type geocoder struct {
	*geocode.Cache
	gob   *geocode.GobStore
	redis *redis.Client
}

func newGeocoder(ctx context.Context, c *config.Config) (*geocoder, error) {
	l := logger.L()
	client, err := geocode.NewHTTPClient(c.HTTPTimeout, c.CABundle)
	if err != nil {
		return nil, err
	}
	var resolver geocode.Resolver
	if c.GoogleAPIKey != "" {
		g, err := geocode.NewGoogle(c.GoogleAPIKey, client)
		if err != nil {
			return nil, err
		}
		l.Debug("geocoder_google")
		resolver = g
	} else {
		l.Debug("geocoder_nominatim", "url", c.NominatimURL, "user_agent", c.UserAgent, "min_delay", c.GeocodeDelay)
		resolver = geocode.NewNominatim(
			geocode.WithBaseURL(c.NominatimURL),
			geocode.WithUserAgent(c.UserAgent),
			geocode.WithMinDelay(c.GeocodeDelay),
			geocode.WithHTTPClient(client),
		)
	}

	g := &geocoder{}
	var chain geocode.Chain
	if c.CacheFile != "" {
		g.gob, err = geocode.OpenGobStore(c.CacheFile)
		if err != nil {
			return nil, err
		}
		l.Debug("geocode_cache_file", "path", c.CacheFile, "entries", len(g.gob.Entries()))
		chain = append(chain, g.gob)
	}
	if rc := geocode.OpenRedis(c.RedisAddr, c.RedisPass, c.RedisDB); rc != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			l.Warn("redis_ping_error", "addr", c.RedisAddr, "err", err)
			rc.Close()
		} else {
			g.redis = rc
			chain = append(chain, geocode.NewRedisStore(rc, c.RedisTTL))
		}
	}
	var store geocode.Store
	if len(chain) > 0 {
		store = chain
	}
	g.Cache = geocode.NewCache(resolver, store)
	return g, nil
}

func (g *geocoder) Close() error {
	var errs []error
	if g.gob != nil {
		if err := g.gob.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if g.redis != nil {
		if err := g.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing redis client: %w", err))
		}
	}
	return errors.Join(errs...)
}
