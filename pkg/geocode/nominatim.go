package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ray1729/films-map/pkg/logger"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent    = "films_app"
)

type config struct {
	BaseURL   string
	UserAgent string
	MinDelay  time.Duration
	Client    *http.Client
}

type Option func(*config)

func WithBaseURL(u string) Option {
	return func(c *config) {
		c.BaseURL = u
	}
}

// WithUserAgent sets the client identifier; the public Nominatim service
// rejects requests without a descriptive one.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.UserAgent = ua
	}
}

// WithMinDelay sets the minimum interval between consecutive requests.
// Zero disables rate limiting.
func WithMinDelay(d time.Duration) Option {
	return func(c *config) {
		c.MinDelay = d
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.Client = client
	}
}

// Nominatim resolves places with the OpenStreetMap search API.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func NewNominatim(opt ...Option) *Nominatim {
	c := config{
		BaseURL:   defaultNominatimURL,
		UserAgent: defaultUserAgent,
		MinDelay:  time.Second,
	}
	for _, f := range opt {
		f(&c)
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	limit := rate.Inf
	if c.MinDelay > 0 {
		limit = rate.Every(c.MinDelay)
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(c.BaseURL, "/"),
		userAgent: c.UserAgent,
		client:    c.Client,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) Resolve(ctx context.Context, place string) (Point, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return Point{}, err
	}
	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	u := n.baseURL + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Point{}, err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	t0 := time.Now()
	resp, err := n.client.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("error getting %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("unexpected status fetching %s: %s", u, resp.Status)
	}
	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Point{}, fmt.Errorf("error decoding response from %s: %w", u, err)
	}
	logger.L().Debug("nominatim_resp", "place", place, "results", len(places), "duration_ms", time.Since(t0).Milliseconds())
	if len(places) == 0 {
		return Point{}, fmt.Errorf("%w: %s", ErrNotFound, place)
	}
	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude %q for %s: %w", places[0].Lat, place, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude %q for %s: %w", places[0].Lon, place, err)
	}
	return Point{Lat: lat, Lon: lon}, nil
}
