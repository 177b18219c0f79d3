// Package config holds the tunables of the measurement core
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/landdraw/landdraw/server/internal/lib/geometry"
	"github.com/landdraw/landdraw/server/internal/lib/repair"
)

// Config is the complete configuration of the measurement core
type Config struct {
	Cache  CacheConfig  `yaml:"cache"`
	Repair RepairConfig `yaml:"repair"`
}

// CacheConfig bounds the area and perimeter caches
type CacheConfig struct {
	AreaCapacity      int `yaml:"area_capacity"`
	PerimeterCapacity int `yaml:"perimeter_capacity"`
}

// RepairConfig holds the coordinate sanity checker's tunables
type RepairConfig struct {
	LargeMagnitude      float64         `yaml:"large_magnitude"`
	ScaleLadder         []float64       `yaml:"scale_ladder"`
	OffsetLadder        []float64       `yaml:"offset_ladder"`
	RescueLadder        []float64       `yaml:"rescue_ladder"`
	UTMZones            []UTMZoneConfig `yaml:"utm_zones"`
	Datum               DatumConfig     `yaml:"datum"`
	ViewWarnDegrees     float64         `yaml:"view_warn_degrees"`
	FallbackAnchor      CoordinatesYAML `yaml:"fallback_anchor"`
	FallbackSpanDegrees float64         `yaml:"fallback_span_degrees"`
}

// UTMZoneConfig is one candidate zone for the UTM inverse heuristic
type UTMZoneConfig struct {
	Zone            int     `yaml:"zone"`
	CentralMeridian float64 `yaml:"central_meridian"`
	Region          string  `yaml:"region"`
}

// DatumConfig parameterizes the rectangle-gated regional datum inverse
type DatumConfig struct {
	Name            string  `yaml:"name"`
	SemiMajorAxis   float64 `yaml:"semi_major_axis"`
	EccentricitySq  float64 `yaml:"eccentricity_sq"`
	CentralMeridian float64 `yaml:"central_meridian"`
	ScaleFactor     float64 `yaml:"scale_factor"`
	FalseEasting    float64 `yaml:"false_easting"`
	FalseNorthing   float64 `yaml:"false_northing"`
	MinEasting      float64 `yaml:"min_easting"`
	MaxEasting      float64 `yaml:"max_easting"`
	MinNorthing     float64 `yaml:"min_northing"`
	MaxNorthing     float64 `yaml:"max_northing"`
	LatShift        float64 `yaml:"lat_shift"`
	LngShift        float64 `yaml:"lng_shift"`
}

// CoordinatesYAML represents lat/lng coordinates in YAML config
type CoordinatesYAML struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	opts := repair.DefaultOptions()

	zones := make([]UTMZoneConfig, 0, len(opts.UTMZones))
	for _, z := range opts.UTMZones {
		zones = append(zones, UTMZoneConfig{
			Zone:            z.Zone,
			CentralMeridian: z.CentralMeridian,
			Region:          z.Region,
		})
	}

	return &Config{
		Cache: CacheConfig{
			AreaCapacity:      100,
			PerimeterCapacity: 100,
		},
		Repair: RepairConfig{
			LargeMagnitude: opts.LargeMagnitude,
			ScaleLadder:    opts.ScaleLadder,
			OffsetLadder:   opts.OffsetLadder,
			RescueLadder:   opts.RescueLadder,
			UTMZones:       zones,
			Datum: DatumConfig{
				Name:            opts.Datum.Name,
				SemiMajorAxis:   opts.Datum.SemiMajorAxis,
				EccentricitySq:  opts.Datum.EccentricitySq,
				CentralMeridian: opts.Datum.CentralMeridian,
				ScaleFactor:     opts.Datum.ScaleFactor,
				FalseEasting:    opts.Datum.FalseEasting,
				FalseNorthing:   opts.Datum.FalseNorthing,
				MinEasting:      opts.Datum.MinEasting,
				MaxEasting:      opts.Datum.MaxEasting,
				MinNorthing:     opts.Datum.MinNorthing,
				MaxNorthing:     opts.Datum.MaxNorthing,
				LatShift:        opts.Datum.LatShift,
				LngShift:        opts.Datum.LngShift,
			},
			ViewWarnDegrees: opts.ViewWarnDegrees,
			FallbackAnchor: CoordinatesYAML{
				Latitude:  opts.FallbackAnchor.Latitude,
				Longitude: opts.FallbackAnchor.Longitude,
			},
			FallbackSpanDegrees: opts.FallbackSpanDegrees,
		},
	}
}

// Load reads a YAML config file over the defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// RepairOptions converts the config into the checker's options
func (c *Config) RepairOptions() repair.Options {
	r := c.Repair

	zones := make([]repair.UTMZone, 0, len(r.UTMZones))
	for _, z := range r.UTMZones {
		zones = append(zones, repair.UTMZone{
			Zone:            z.Zone,
			CentralMeridian: z.CentralMeridian,
			Region:          z.Region,
		})
	}

	return repair.Options{
		LargeMagnitude: r.LargeMagnitude,
		ScaleLadder:    r.ScaleLadder,
		OffsetLadder:   r.OffsetLadder,
		RescueLadder:   r.RescueLadder,
		UTMZones:       zones,
		Datum: repair.RegionalDatum{
			Name:            r.Datum.Name,
			SemiMajorAxis:   r.Datum.SemiMajorAxis,
			EccentricitySq:  r.Datum.EccentricitySq,
			CentralMeridian: r.Datum.CentralMeridian,
			ScaleFactor:     r.Datum.ScaleFactor,
			FalseEasting:    r.Datum.FalseEasting,
			FalseNorthing:   r.Datum.FalseNorthing,
			MinEasting:      r.Datum.MinEasting,
			MaxEasting:      r.Datum.MaxEasting,
			MinNorthing:     r.Datum.MinNorthing,
			MaxNorthing:     r.Datum.MaxNorthing,
			LatShift:        r.Datum.LatShift,
			LngShift:        r.Datum.LngShift,
		},
		ViewWarnDegrees: r.ViewWarnDegrees,
		FallbackAnchor: geometry.Point{
			Latitude:  r.FallbackAnchor.Latitude,
			Longitude: r.FallbackAnchor.Longitude,
		},
		FallbackSpanDegrees: r.FallbackSpanDegrees,
	}
}
