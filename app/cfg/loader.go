package cfg

import (
	"cmp"
	"fmt"
	"time"

	// Timezone database bundled so TZ handling works without host zoneinfo.
	_ "time/tzdata"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Hosted data service
	DataServiceURL string `long:"data-service-url" env:"DATA_SERVICE_URL" default:"http://localhost:54321" description:"Base URL of the hosted data service"`
	DataServiceKey string `long:"data-service-key" env:"DATA_SERVICE_KEY" description:"Service key for the hosted data service (required)" required:"true"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://scolamia.it)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for refresh tasks"`
	RefreshInterval   int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"300" description:"Content refresh interval in seconds"`
	BoardTickInterval int    `long:"board-tick-interval" env:"BOARD_TICK_INTERVAL" default:"60" description:"Home countdown board tick interval in seconds"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the admin endpoints (optional)"`
	PinnedSlug        string `long:"pinned-slug" env:"PINNED_SLUG" default:"termine-lezioni" description:"Slug of the countdown promoted to the featured slot"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"Europe/Rome" description:"Timezone for timestamps (e.g., UTC, Europe/Rome)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DataServiceURL:    raw.DataServiceURL,
		DataServiceKey:    raw.DataServiceKey,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		WorkerCount:       raw.WorkerCount,
		RefreshInterval:   raw.RefreshInterval,
		BoardTickInterval: raw.BoardTickInterval,
		APIAccessKey:      raw.APIAccessKey,
		PinnedSlug:        raw.PinnedSlug,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
