package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

const (
	DefaultGeoURL      = "http://ip-api.com/json/"
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultTimeout     = 5 * time.Second

	// DefaultBreakerTimeout is how long a tripped breaker stays open.
	DefaultBreakerTimeout = 2 * time.Minute
)

var (
	ErrStatus      = errors.New("unexpected status code")
	ErrMalformed   = errors.New("malformed response")
	ErrRejected    = errors.New("request rejected by service")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// Location is the caller's approximate position from IP geolocation.
type Location struct {
	Lat  float64
	Lon  float64
	City string
}

// Daily is today's forecast extremes in Fahrenheit.
type Daily struct {
	MaxF float64
	MinF float64
}

// endpoint is one GET target with its own timeout and breaker.
type endpoint struct {
	mu      sync.Mutex
	url     string
	timeout time.Duration
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

// Option tunes an endpoint.
type Option func(*options)

type options struct {
	breakerTimeout time.Duration
}

// WithBreakerTimeout sets how long the breaker stays open after tripping.
func WithBreakerTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.breakerTimeout = d
		}
	}
}

// BreakerTimeoutFor keeps the open window at most half a polling interval,
// so every scheduled poll reaches the service at least half-open.
func BreakerTimeoutFor(interval time.Duration) time.Duration {
	half := interval / 2
	if half <= 0 || half > DefaultBreakerTimeout {
		return DefaultBreakerTimeout
	}
	return half
}

func newEndpoint(name, rawURL string, timeout time.Duration, hc *http.Client, opts []Option) *endpoint {
	if hc == nil {
		hc = &http.Client{}
	}
	o := options{breakerTimeout: DefaultBreakerTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &endpoint{
		url:     rawURL,
		timeout: timeout,
		http:    hc,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     o.breakerTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 3 },
		}),
	}
}

func (e *endpoint) target() (string, time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.url, e.timeout
}

func (e *endpoint) setTarget(rawURL string, timeout time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.url = rawURL
	e.timeout = timeout
}

// getJSON issues one GET bounded by the endpoint timeout and decodes the body
// into out. Failures count against the breaker.
func (e *endpoint) getJSON(ctx context.Context, query url.Values, out any) error {
	base, timeout := e.target()
	full := base
	if len(query) > 0 {
		full = base + "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := e.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := e.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("%w: %d: %s", ErrStatus, resp.StatusCode, body)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}

/* IP geolocation */

// Geo talks to an ip-api.com compatible endpoint.
type Geo struct{ ep *endpoint }

func NewGeo(rawURL string, timeout time.Duration, hc *http.Client, opts ...Option) *Geo {
	return &Geo{ep: newEndpoint("geolocate", rawURL, timeout, hc, opts)}
}

func (g *Geo) SetTarget(rawURL string, timeout time.Duration) { g.ep.setTarget(rawURL, timeout) }

type geoResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	City    *string  `json:"city"`
}

// Locate resolves the caller's position from its public IP.
func (g *Geo) Locate(ctx context.Context) (Location, error) {
	var r geoResponse
	if err := g.ep.getJSON(ctx, nil, &r); err != nil {
		return Location{}, err
	}
	if r.Status != "" && r.Status != "success" {
		return Location{}, fmt.Errorf("%w: %s %s", ErrRejected, r.Status, r.Message)
	}
	if r.Lat == nil || r.Lon == nil || r.City == nil {
		return Location{}, fmt.Errorf("%w: lat, lon and city are required", ErrMalformed)
	}
	return Location{Lat: *r.Lat, Lon: *r.Lon, City: *r.City}, nil
}

/* Daily forecast */

// Forecast talks to an Open-Meteo compatible forecast endpoint.
type Forecast struct{ ep *endpoint }

func NewForecast(rawURL string, timeout time.Duration, hc *http.Client, opts ...Option) *Forecast {
	return &Forecast{ep: newEndpoint("forecast", rawURL, timeout, hc, opts)}
}

func (f *Forecast) SetTarget(rawURL string, timeout time.Duration) { f.ep.setTarget(rawURL, timeout) }

type forecastResponse struct {
	Daily *struct {
		Max []*float64 `json:"temperature_2m_max"`
		Min []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func coord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Daily fetches today's max/min temperature in Fahrenheit for lat/lon.
func (f *Forecast) Daily(ctx context.Context, lat, lon float64) (Daily, error) {
	q := url.Values{
		"latitude":         {coord(lat)},
		"longitude":        {coord(lon)},
		"daily":            {"temperature_2m_max,temperature_2m_min"},
		"temperature_unit": {"fahrenheit"},
		"timezone":         {"auto"},
		"forecast_days":    {"1"},
	}
	var r forecastResponse
	if err := f.ep.getJSON(ctx, q, &r); err != nil {
		return Daily{}, err
	}
	if r.Daily == nil || len(r.Daily.Max) == 0 || len(r.Daily.Min) == 0 {
		return Daily{}, fmt.Errorf("%w: daily temperature_2m_max/min missing", ErrMalformed)
	}
	// open-meteo reports missing values as null
	if r.Daily.Max[0] == nil || r.Daily.Min[0] == nil {
		return Daily{}, fmt.Errorf("%w: daily temperature_2m_max/min is null", ErrMalformed)
	}
	return Daily{MaxF: *r.Daily.Max[0], MinF: *r.Daily.Min[0]}, nil
}
