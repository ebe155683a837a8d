// Package weather resolves the caller's location and today's high/low
// temperature, collapsing every failure into an Unavailable snapshot.
package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/SiirRandall/hud-banner/internal/client"
)

// State is the snapshot's variant.
type State int

const (
	Loading State = iota
	Available
	Unavailable
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is the latest fetch result. City and temperatures are only set
// when State is Available; Err only when State is Unavailable.
type Snapshot struct {
	State State
	City  string
	HighF int
	LowF  int
	Err   *FetchError
}

func LoadingSnapshot() Snapshot { return Snapshot{State: Loading} }

func AvailableSnapshot(city string, highF, lowF int) Snapshot {
	return Snapshot{State: Available, City: city, HighF: highF, LowF: lowF}
}

func UnavailableSnapshot(err *FetchError) Snapshot {
	return Snapshot{State: Unavailable, Err: err}
}

/* Error kinds */

type Stage string

const (
	StageGeolocate Stage = "geolocate"
	StageForecast  Stage = "forecast"
)

type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
	KindStatus
	KindMalformed
	KindRejected
	KindCircuitOpen
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	case KindRejected:
		return "rejected"
	case KindCircuitOpen:
		return "circuit-open"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FetchError records which step failed and why.
type FetchError struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func classify(stage Stage, err error) *FetchError {
	fe := &FetchError{Stage: stage, Kind: KindNetwork, Err: err}
	var ne net.Error
	switch {
	case errors.Is(err, client.ErrCircuitOpen):
		fe.Kind = KindCircuitOpen
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		fe.Kind = KindTimeout
	case errors.Is(err, client.ErrStatus):
		fe.Kind = KindStatus
	case errors.Is(err, client.ErrMalformed):
		fe.Kind = KindMalformed
	case errors.Is(err, client.ErrRejected):
		fe.Kind = KindRejected
	}
	return fe
}

/* Fetcher */

// Locator resolves the caller's approximate location.
type Locator interface {
	Locate(ctx context.Context) (client.Location, error)
}

// Forecaster returns today's extremes for a coordinate.
type Forecaster interface {
	Daily(ctx context.Context, lat, lon float64) (client.Daily, error)
}

type Fetcher struct {
	geo      Locator
	forecast Forecaster
}

func NewFetcher(geo Locator, forecast Forecaster) *Fetcher {
	return &Fetcher{geo: geo, forecast: forecast}
}

// Fetch geolocates, then asks for today's forecast at that spot. It never
// returns Loading; any failure at either step yields Unavailable.
func (f *Fetcher) Fetch(ctx context.Context) (snap Snapshot) {
	defer func() {
		if snap.Err != nil {
			log.Printf("[wx] fetch failed: %v\n", snap.Err)
		}
	}()

	loc, err := f.geo.Locate(ctx)
	if err != nil {
		return UnavailableSnapshot(classify(StageGeolocate, err))
	}
	d, err := f.forecast.Daily(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return UnavailableSnapshot(classify(StageForecast, err))
	}
	// int() truncates toward zero: 72.9 -> 72, -3.7 -> -3
	return AvailableSnapshot(loc.City, int(d.MaxF), int(d.MinF))
}
