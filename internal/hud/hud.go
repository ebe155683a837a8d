// Package hud owns the banner's runtime state: settings, the current weather
// snapshot and the render sink the scheduler's tasks feed.
package hud

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/SiirRandall/hud-banner/internal/clock"
	"github.com/SiirRandall/hud-banner/internal/config"
	"github.com/SiirRandall/hud-banner/internal/display"
	"github.com/SiirRandall/hud-banner/internal/scheduler"
	"github.com/SiirRandall/hud-banner/internal/weather"
	"github.com/jonboulle/clockwork"
)

const ClockInterval = time.Second

// Fetcher produces a weather snapshot; it must not return Loading.
type Fetcher interface {
	Fetch(ctx context.Context) weather.Snapshot
}

// RenderFunc receives every composed banner.
type RenderFunc func(display.Text)

type HUD struct {
	settings  config.Settings
	warn      bool
	formatter *clock.Formatter
	fetcher   Fetcher
	clock     clockwork.Clock
	render    RenderFunc

	snapMu sync.Mutex
	snap   weather.Snapshot

	fetchMu  sync.Mutex
	renderMu sync.Mutex
}

func New(s config.Settings, configOK bool, f Fetcher, c clockwork.Clock, render RenderFunc) *HUD {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	if render == nil {
		render = func(display.Text) {}
	}
	fm := clock.NewFormatter(s.Timezone)
	if !fm.Valid() {
		log.Printf("[hud] unknown timezone %q, showing UTC as local time\n", s.Timezone)
	}
	return &HUD{
		settings:  s,
		warn:      !configOK,
		formatter: fm,
		fetcher:   f,
		clock:     c,
		render:    render,
		snap:      weather.LoadingSnapshot(),
	}
}

func (h *HUD) Settings() config.Settings { return h.settings }

// Snapshot returns the current weather state.
func (h *HUD) Snapshot() weather.Snapshot {
	h.snapMu.Lock()
	defer h.snapMu.Unlock()
	return h.snap
}

// Text composes the banner for the current instant.
func (h *HUD) Text() display.Text {
	return display.Compose(h.settings, h.formatter.Format(h.clock.Now()), h.Snapshot(), h.warn)
}

// RefreshClock re-renders with the current time.
func (h *HUD) RefreshClock(context.Context) {
	h.renderMu.Lock()
	defer h.renderMu.Unlock()
	h.render(h.Text())
}

// RefreshWeather fetches a new snapshot, replaces the old one and
// re-renders. Concurrent calls are serialized.
func (h *HUD) RefreshWeather(ctx context.Context) {
	h.fetchMu.Lock()
	snap := h.fetcher.Fetch(ctx)
	if snap.State == weather.Loading {
		snap = weather.UnavailableSnapshot(nil)
	}
	h.snapMu.Lock()
	h.snap = snap
	h.snapMu.Unlock()
	h.fetchMu.Unlock()

	h.RefreshClock(ctx)
}

// Tasks are the clock and weather triggers for a scheduler.
func (h *HUD) Tasks() []scheduler.Task {
	return []scheduler.Task{
		{Name: "clock", Interval: ClockInterval, Run: h.RefreshClock},
		{Name: "weather", Interval: h.settings.WeatherRefresh, Run: h.RefreshWeather},
	}
}

// Scheduler builds a scheduler driving both triggers on the HUD's clock.
func (h *HUD) Scheduler() (*scheduler.Scheduler, error) {
	return scheduler.New(h.clock, h.Tasks()...)
}
