package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-journeys/batched/grid"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/parser"
	"github.com/ttpr0/go-journeys/routing"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// Reads the config file on top of the defaults and validates it.
func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file")
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

type Config struct {
	Source parser.NetworkSource `yaml:"source"`
	Build  graph.BuildOptions   `yaml:"build"`
	// directory holding precomputed components
	Data string `yaml:"data" validate:"required"`
	// recompute components even if stored ones exist
	Rebuild bool             `yaml:"rebuild"`
	Search  SearchOptions    `yaml:"search"`
	Grid    grid.GridOptions `yaml:"grid"`
	Cache   CacheOptions     `yaml:"cache"`
	Log     LogOptions       `yaml:"log"`
}

type SearchOptions struct {
	// limits per transport mode (tram, bus, train, metro)
	Limits        Dict[string, routing.Limits] `yaml:"limits" validate:"dive"`
	KeepEqualCost bool                         `yaml:"keep-equal-cost"`
	MaxResults    int                          `yaml:"max-results" validate:"gte=0"`
	QueryTimes    routing.QueryTimeOptions     `yaml:"query-times"`
	// walking to and from locations
	Walk WalkOptions `yaml:"walk"`
}

type WalkOptions struct {
	// metres per minute
	Speed       float64 `yaml:"speed" validate:"gt=0"`
	MaxDistance float64 `yaml:"max-distance" validate:"gt=0"`
	MaxStations int     `yaml:"max-stations" validate:"gt=0"`
}

type CacheOptions struct {
	// dates kept in the running services cache
	Size       int           `yaml:"size" validate:"gt=0"`
	Expiration time.Duration `yaml:"expiration"`
}

type LogOptions struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

func DefaultConfig() Config {
	return Config{
		Build: graph.DefaultBuildOptions(),
		Data:  "./data",
		Search: SearchOptions{
			Limits: Dict[string, routing.Limits]{
				"tram": routing.DefaultLimits(structs.TRAM),
				"bus":  routing.DefaultLimits(structs.BUS),
			},
			KeepEqualCost: true,
			MaxResults:    5,
			QueryTimes:    routing.DefaultQueryTimeOptions(),
			Walk: WalkOptions{
				Speed:       80,
				MaxDistance: 800,
				MaxStations: 5,
			},
		},
		Grid: grid.DefaultGridOptions(),
		Cache: CacheOptions{
			Size:       16,
			Expiration: time.Hour,
		},
		Log: LogOptions{
			Level: "info",
		},
	}
}

func (self Config) Validate() error {
	v := validator.New()
	if err := v.Struct(self); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for name := range self.Search.Limits {
		if _, err := structs.TransportModeFromString(name); err != nil {
			return fmt.Errorf("invalid config: limits for %q: %w", name, err)
		}
	}
	return nil
}

// Limits keyed by transport mode.
func (self SearchOptions) ModeLimits() map[structs.TransportMode]routing.Limits {
	limits := make(map[structs.TransportMode]routing.Limits, len(self.Limits))
	for name, l := range self.Limits {
		mode, err := structs.TransportModeFromString(name)
		if err != nil {
			continue
		}
		limits[mode] = l
	}
	return limits
}

func (self LogOptions) SlogLevel() slog.Level {
	switch self.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
