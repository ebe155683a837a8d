package ui

import (
	"fmt"

	"github.com/SiirRandall/hud-banner/internal/clock"
	"github.com/SiirRandall/hud-banner/internal/weather"
)

// StatusLines describes the running configuration and the last weather
// result, for the About window.
func (u *AppUI) StatusLines() []string {
	s := u.hud.Settings()

	cfgLine := "Config: " + u.cfgPath
	if !u.configOK {
		cfgLine += " (missing or invalid, defaults in use)"
	}

	tzLine := "Timezone: " + s.Timezone
	if !clock.NewFormatter(s.Timezone).Valid() {
		tzLine += " (unknown, showing UTC)"
	}

	return []string{
		cfgLine,
		"Callsign: " + s.Callsign,
		tzLine,
		fmt.Sprintf("Weather refresh: every %s", s.WeatherRefresh),
		"Weather: " + describe(u.hud.Snapshot()),
	}
}

func describe(snap weather.Snapshot) string {
	switch snap.State {
	case weather.Available:
		return fmt.Sprintf("%s, high %d°F, low %d°F", snap.City, snap.HighF, snap.LowF)
	case weather.Unavailable:
		if snap.Err != nil {
			return fmt.Sprintf("unavailable (%s failed: %s)", snap.Err.Stage, snap.Err.Kind)
		}
		return "unavailable"
	default:
		return "loading"
	}
}
