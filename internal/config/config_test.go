package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingFile(t *testing.T) {
	s, ok := Load(filepath.Join(t.TempDir(), "config.ini"))

	assert.False(t, ok)
	assert.Equal(t, "N0CALL", s.Callsign)
	assert.Equal(t, "UTC", s.Timezone)
	assert.Equal(t, int64(1_800_000), s.WeatherRefreshMs())
}

func TestLoad_FullINI(t *testing.T) {
	p := writeFile(t, "config.ini", `[SETTINGS]
callsign = W1AW
timezone = America/New_York
weather_refresh = 10
`)
	s, ok := Load(p)

	assert.True(t, ok)
	assert.Equal(t, Settings{Callsign: "W1AW", Timezone: "America/New_York", WeatherRefresh: 10 * time.Minute}, s)
	assert.Equal(t, int64(600_000), s.WeatherRefreshMs())
}

func TestLoad_PartialINI(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Settings
	}{
		{
			name: "callsign only",
			body: "[SETTINGS]\ncallsign = K1ABC\n",
			want: Settings{Callsign: "K1ABC", Timezone: DefaultTimezone, WeatherRefresh: DefaultWeatherRefresh},
		},
		{
			name: "timezone only",
			body: "[SETTINGS]\ntimezone = Europe/Berlin\n",
			want: Settings{Callsign: DefaultCallsign, Timezone: "Europe/Berlin", WeatherRefresh: DefaultWeatherRefresh},
		},
		{
			name: "refresh only, mixed case key",
			body: "[SETTINGS]\nWeather_Refresh = 5\n",
			want: Settings{Callsign: DefaultCallsign, Timezone: DefaultTimezone, WeatherRefresh: 5 * time.Minute},
		},
		{
			name: "missing section",
			body: "[OTHER]\ncallsign = K1ABC\n",
			want: Default(),
		},
		{
			name: "empty values",
			body: "[SETTINGS]\ncallsign =\ntimezone =   \n",
			want: Default(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Load(writeFile(t, "config.ini", tt.body))
			assert.True(t, ok)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestLoad_InvalidRefresh(t *testing.T) {
	for _, v := range []string{"abc", "0", "-3", "200000000", "99999999999999999999"} {
		t.Run(v, func(t *testing.T) {
			p := writeFile(t, "config.ini", "[SETTINGS]\ncallsign = W1AW\nweather_refresh = "+v+"\n")
			s, ok := Load(p)

			assert.False(t, ok)
			assert.Equal(t, "W1AW", s.Callsign)
			assert.Equal(t, DefaultWeatherRefresh, s.WeatherRefresh)
			assert.Positive(t, s.WeatherRefreshMs())
		})
	}
}

func TestLoad_LargestRefreshFits(t *testing.T) {
	maxMins := math.MaxInt64 / int64(time.Minute)
	s, ok := Load(writeFile(t, "config.ini", fmt.Sprintf("[SETTINGS]\nweather_refresh = %d\n", maxMins)))

	assert.True(t, ok)
	assert.Equal(t, time.Duration(maxMins)*time.Minute, s.WeatherRefresh)
	assert.Positive(t, s.WeatherRefreshMs())
}

func TestLoad_YAML(t *testing.T) {
	p := writeFile(t, "config.yaml", `SETTINGS:
  callsign: W1AW
  timezone: America/New_York
  weather_refresh: 10
`)
	s, ok := Load(p)

	assert.True(t, ok)
	assert.Equal(t, Settings{Callsign: "W1AW", Timezone: "America/New_York", WeatherRefresh: 10 * time.Minute}, s)
}

func TestLoad_YAMLPartialAndMalformed(t *testing.T) {
	s, ok := Load(writeFile(t, "config.yml", "SETTINGS:\n  timezone: Asia/Tokyo\n"))
	assert.True(t, ok)
	assert.Equal(t, Settings{Callsign: DefaultCallsign, Timezone: "Asia/Tokyo", WeatherRefresh: DefaultWeatherRefresh}, s)

	s, ok = Load(writeFile(t, "config.yaml", "SETTINGS: [unclosed\n"))
	assert.False(t, ok)
	assert.Equal(t, Default(), s)
}

func TestDir(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b"), Dir(filepath.Join("a", "b", "config.ini")))
}

func TestLocate_FallsBackToExecutableDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	exe, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(exe), "config.ini"), Locate())
}

func TestLocate_UserConfigDir(t *testing.T) {
	if _, err := os.UserConfigDir(); err != nil {
		t.Skip("no user config dir")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("HOME", base)
	t.Setenv("AppData", base)

	dir, err := os.UserConfigDir()
	require.NoError(t, err)
	want := filepath.Join(dir, appDir, "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(want), 0o755))
	require.NoError(t, os.WriteFile(want, []byte("SETTINGS: {}\n"), 0o644))

	assert.Equal(t, want, Locate())
}
