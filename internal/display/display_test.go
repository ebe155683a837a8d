package display

import (
	"regexp"
	"testing"
	"time"

	"github.com/SiirRandall/hud-banner/internal/clock"
	"github.com/SiirRandall/hud-banner/internal/config"
	"github.com/SiirRandall/hud-banner/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	settings = config.Settings{Callsign: "W1AW", Timezone: "America/New_York", WeatherRefresh: 10 * time.Minute}
	fields   = clock.Fields{UTC: "14:03:22", LocalDate: "2026-10-19", LocalTime: "10:03:22", TZLabel: "New York"}
)

func TestCompose_Available(t *testing.T) {
	txt := Compose(settings, fields, weather.AvailableSnapshot("Austin", 72, 55), false)

	assert.Equal(t, "W1AW UTC 14:03:22 2026-10-19 New York 10:03:22 WX Austin H:72° L:55°", txt.String())
}

func TestCompose_Placeholders(t *testing.T) {
	loading := Compose(settings, fields, weather.LoadingSnapshot(), false)
	assert.Contains(t, loading.String(), LoadingText)

	unavail := Compose(settings, fields, weather.UnavailableSnapshot(&weather.FetchError{Stage: weather.StageGeolocate, Kind: weather.KindTimeout}), false)
	s := unavail.String()
	assert.Contains(t, s, UnavailableText)
	assert.NotContains(t, s, "H:")
	assert.NotContains(t, s, "L:")

	// the only digits left are the clock fields
	wx := s[len("W1AW UTC 14:03:22 2026-10-19 New York 10:03:22 "):]
	assert.False(t, regexp.MustCompile(`\d`).MatchString(wx), wx)
	assert.NotEqual(t, loading.String(), s)
}

func TestCompose_Warning(t *testing.T) {
	txt := Compose(config.Default(), fields, weather.LoadingSnapshot(), true)

	require.NotEmpty(t, txt.Segments)
	last := txt.Segments[len(txt.Segments)-1]
	assert.Equal(t, Segment{RoleWarning, WarningText}, last)
	assert.NotContains(t, Compose(config.Default(), fields, weather.LoadingSnapshot(), false).String(), WarningText)
}

func TestCompose_Deterministic(t *testing.T) {
	snap := weather.AvailableSnapshot("Austin", 72, 55)
	first := Compose(settings, fields, snap, true)
	for i := 0; i < 5; i++ {
		again := Compose(settings, fields, snap, true)
		assert.Equal(t, first, again)
		assert.Equal(t, first.String(), again.String())
	}
}

func TestCompose_ConsecutiveTicksDifferOnlyInTime(t *testing.T) {
	fm := clock.NewFormatter("America/New_York")
	at := time.Date(2026, 10, 19, 14, 3, 22, 0, time.UTC)
	snap := weather.AvailableSnapshot("Austin", 72, 55)

	a := Compose(settings, fm.Format(at), snap, false)
	b := Compose(settings, fm.Format(at.Add(time.Second)), snap, false)

	require.Len(t, b.Segments, len(a.Segments))
	changed := 0
	for i := range a.Segments {
		if a.Segments[i] == b.Segments[i] {
			continue
		}
		changed++
		assert.True(t, IsTimeRole(a.Segments[i].Role), "segment %d (%v) changed", i, a.Segments[i].Role)
	}
	assert.Equal(t, 2, changed)
}
