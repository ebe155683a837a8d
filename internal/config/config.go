package config

import (
	"errors"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCallsign       = "N0CALL"
	DefaultTimezone       = "UTC"
	DefaultWeatherRefresh = 30 * time.Minute

	section = "SETTINGS"
	appDir  = "hud-banner"
)

// Settings is immutable once loaded.
type Settings struct {
	Callsign       string
	Timezone       string
	WeatherRefresh time.Duration
}

func Default() Settings {
	return Settings{
		Callsign:       DefaultCallsign,
		Timezone:       DefaultTimezone,
		WeatherRefresh: DefaultWeatherRefresh,
	}
}

func (s Settings) WeatherRefreshMs() int64 { return s.WeatherRefresh.Milliseconds() }

// raw holds the values found in the file; nil means absent.
type raw struct {
	Callsign       *string `yaml:"callsign"`
	Timezone       *string `yaml:"timezone"`
	WeatherRefresh *string `yaml:"weather_refresh"`
}

type yamlFile struct {
	Settings *raw `yaml:"SETTINGS"`
}

// Load reads the settings file at path. It never fails: every field missing
// from the file (or the whole file) falls back to its default on its own.
// ok is false when the file could not be read or parsed, or when a present
// value was invalid.
func Load(path string) (Settings, bool) {
	var (
		r   raw
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		r, err = readYAML(path)
	default:
		r, err = readINI(path)
	}
	ok := true
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[config] %s not found, using defaults\n", path)
		} else {
			log.Printf("[config] %s: %v\n", path, err)
		}
		ok = false
	}

	s := Default()
	if v := trimmed(r.Callsign); v != "" {
		s.Callsign = v
	}
	if v := trimmed(r.Timezone); v != "" {
		s.Timezone = v
	}
	if v := trimmed(r.WeatherRefresh); v != "" {
		mins, perr := strconv.Atoi(v)
		if perr != nil || mins <= 0 || int64(mins) > math.MaxInt64/int64(time.Minute) {
			log.Printf("[config] invalid weather_refresh %q, using %s\n", v, DefaultWeatherRefresh)
			ok = false
		} else {
			s.WeatherRefresh = time.Duration(mins) * time.Minute
		}
	}
	return s, ok
}

func readINI(path string) (raw, error) {
	var r raw
	f, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, path)
	if err != nil {
		return r, err
	}
	sec, err := f.GetSection(section)
	if err != nil {
		// missing section is not a load failure
		return r, nil
	}
	get := func(key string) *string {
		if !sec.HasKey(key) {
			return nil
		}
		v := sec.Key(key).String()
		return &v
	}
	r.Callsign = get("callsign")
	r.Timezone = get("timezone")
	r.WeatherRefresh = get("weather_refresh")
	return r, nil
}

func readYAML(path string) (raw, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return raw{}, err
	}
	var doc yamlFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return raw{}, err
	}
	if doc.Settings == nil {
		return raw{}, nil
	}
	return *doc.Settings, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Locate returns the first existing config file among the executable's
// directory and the user config dir. When none exists the path next to the
// executable is returned, which then loads as missing.
func Locate() string {
	cands := candidates()
	for _, c := range cands {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return cands[0]
}

func candidates() []string {
	var out []string
	if exe, err := os.Executable(); err == nil {
		out = append(out, filepath.Join(filepath.Dir(exe), "config.ini"))
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, appDir)
	out = append(out, filepath.Join(dir, "config.ini"), filepath.Join(dir, "config.yaml"))
	return out
}

// Dir is the folder holding the config file at path.
func Dir(path string) string { return filepath.Dir(path) }
