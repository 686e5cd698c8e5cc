// Package server answers nearest-film queries over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ray1729/films-map/pkg/films"
	"github.com/ray1729/films-map/pkg/geocode"
	"github.com/ray1729/films-map/pkg/logger"
	"github.com/ray1729/films-map/pkg/metrics"
	"github.com/ray1729/films-map/pkg/render"
)

const maxLimit = 100

type Handler struct {
	dataset  string
	geocoder geocode.Geocoder
}

func NewHandler(dataset string, g geocode.Geocoder) *Handler {
	return &Handler{dataset: dataset, geocoder: g}
}

// Router returns a gin engine serving /nearest, /map, /healthz and /metrics.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), accessLog(logger.L()))
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/nearest", h.nearest)
	r.GET("/map", h.renderMap)
	return r
}

func (h *Handler) nearest(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, ok := h.search(c, q)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) renderMap(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	results, ok := h.search(c, q)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.HTML(&buf, geocode.Point{Lat: q.Lat, Lon: q.Lon}, results); err != nil {
		logger.L().Error("render_error", "err", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) search(c *gin.Context, q films.Query) ([]films.Result, bool) {
	results, _, err := films.NearestInFile(c.Request.Context(), h.dataset, q, h.geocoder)
	if err != nil {
		logger.L().Error("search_error", "year", q.Year, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return results, true
}

var errMissing = errors.New("year, lat and lon are required")

func parseQuery(c *gin.Context) (films.Query, error) {
	var q films.Query
	rawYear, rawLat, rawLon := c.Query("year"), c.Query("lat"), c.Query("lon")
	if rawYear == "" || rawLat == "" || rawLon == "" {
		return q, errMissing
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return q, fmt.Errorf("invalid year: %s", rawYear)
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return q, fmt.Errorf("invalid lat: %s", rawLat)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return q, fmt.Errorf("invalid lon: %s", rawLon)
	}
	q = films.Query{Year: year, Lat: lat, Lon: lon}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			return q, fmt.Errorf("invalid limit: %s", raw)
		}
		q.Limit = n
	}
	return q, nil
}

func accessLog(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start).Milliseconds()
		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDurationMs.WithLabelValues(route).Observe(float64(elapsed))
		l.Debug("http_access",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration_ms", elapsed,
			"ip", c.ClientIP(),
		)
	}
}
