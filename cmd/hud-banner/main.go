package main

import (
	"fmt"
	"log"
	"os"

	"github.com/SiirRandall/hud-banner/internal/client"
	"github.com/SiirRandall/hud-banner/internal/config"
	"github.com/SiirRandall/hud-banner/internal/ui"
	"github.com/SiirRandall/hud-banner/internal/weather"
)

func main() {
	path := config.Locate()
	settings, ok := config.Load(path)
	log.Printf("[config] %s: callsign=%s timezone=%s weather_refresh=%s\n",
		path, settings.Callsign, settings.Timezone, settings.WeatherRefresh)

	breaker := client.WithBreakerTimeout(client.BreakerTimeoutFor(settings.WeatherRefresh))
	fetcher := weather.NewFetcher(
		client.NewGeo(client.DefaultGeoURL, client.DefaultTimeout, nil, breaker),
		client.NewForecast(client.DefaultForecastURL, client.DefaultTimeout, nil, breaker),
	)

	app := ui.NewAppUI(settings, ok, path, fetcher)
	app.EnableSystemTray()
	if err := app.Run(); err != nil {
		fmt.Println("HUD error:", err)
		os.Exit(1)
	}
}
