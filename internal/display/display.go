// Package display turns settings, clock fields and the weather snapshot into
// the banner's styled text. Compose has no side effects.
package display

import (
	"fmt"
	"strings"

	"github.com/SiirRandall/hud-banner/internal/clock"
	"github.com/SiirRandall/hud-banner/internal/config"
	"github.com/SiirRandall/hud-banner/internal/weather"
)

// Role tells the shell how to style a segment.
type Role int

const (
	RoleCallsign Role = iota
	RoleUTCLabel
	RoleUTCTime
	RoleDate
	RoleTZLabel
	RoleLocalTime
	RoleWXLabel
	RoleCity
	RoleHigh
	RoleLow
	RoleWXPlaceholder
	RoleWarning
)

const (
	LoadingText     = "Loading WX..."
	UnavailableText = "WX Unavailable"
	WarningText     = "! CONFIG MISSING !"
)

type Segment struct {
	Role Role
	Text string
}

// Text is the renderable banner, in display order.
type Text struct {
	Segments []Segment
}

// String is the plain single-line form.
func (t Text) String() string {
	parts := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// Compose builds the banner text. Equal inputs give equal output.
func Compose(s config.Settings, f clock.Fields, snap weather.Snapshot, configWarning bool) Text {
	segs := []Segment{
		{RoleCallsign, s.Callsign},
		{RoleUTCLabel, "UTC"},
		{RoleUTCTime, f.UTC},
		{RoleDate, f.LocalDate},
		{RoleTZLabel, f.TZLabel},
		{RoleLocalTime, f.LocalTime},
		{RoleWXLabel, "WX"},
	}
	segs = append(segs, weatherSegments(snap)...)
	if configWarning {
		segs = append(segs, Segment{RoleWarning, WarningText})
	}
	return Text{Segments: segs}
}

func weatherSegments(snap weather.Snapshot) []Segment {
	switch snap.State {
	case weather.Available:
		return []Segment{
			{RoleCity, snap.City},
			{RoleHigh, fmt.Sprintf("H:%d°", snap.HighF)},
			{RoleLow, fmt.Sprintf("L:%d°", snap.LowF)},
		}
	case weather.Unavailable:
		return []Segment{{RoleWXPlaceholder, UnavailableText}}
	default:
		return []Segment{{RoleWXPlaceholder, LoadingText}}
	}
}

// IsTimeRole reports whether r changes from one clock tick to the next.
func IsTimeRole(r Role) bool {
	return r == RoleUTCTime || r == RoleLocalTime || r == RoleDate
}
