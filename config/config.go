package config

import (
	"os"
	"path/filepath"
	"time"

	"npp-server/models"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// NPP Refresher config
// Once per day: the provider composites are 8/16-day products, more
// often than daily buys nothing.
const NPP_REFRESHER_SERVICE_SCHEDULE_MINUTES = 60 * 24

// Raster provider / productivity model endpoints
const RASTER_PROVIDER_ENDPOINT_BASE_V1 = "https://rastercompute.example.com/api/v1"
const RASTER_PROVIDER_API_KEY_ENV = "RASTER_PROVIDER_API_KEY"
const PRODUCTIVITY_MODEL_ENDPOINT_BASE_V1 = "https://npp-model.example.com/api/v1"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const COLLECTION_CATALOG_RESOURCE = "collection_catalog.json"
const REGIONS_RESOURCE = "regions.json"

// Shared output grid defaults
const DEFAULT_PIXEL_SCALE_METERS = 500.0
const DEFAULT_CRS = "EPSG:4326"

// Model scalar defaults (optimal temperature in the LST unit after
// conversion, i.e. Celsius; maximum light-use efficiency in gC/MJ).
const DEFAULT_TOPT = 21.5
const DEFAULT_LUE_MAX = 0.389

// Shared categorical mask asset applied to all four series.
const DEFAULT_MASK_ASSET = "MODIS/006/MCD12Q1/2018_vegetated_mask"

// PipelineConfig is the immutable configuration value passed into
// every pipeline component constructor. There is no process-wide
// mutable state: build one of these and hand it around.
type PipelineConfig struct {
	Region    models.Region
	Scale     float64
	CRS       string
	Anchors   []time.Time
	Topt      float64
	LueMax    float64
	MaskAsset string
}

// DefaultPipelineConfig builds the standard configuration for a
// region: a full 2018 schedule at 16-day cadence and the default grid
// and model scalars.
func DefaultPipelineConfig(region models.Region) PipelineConfig {
	var anchors []time.Time
	anchor := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	for anchor.Year() == 2018 {
		anchors = append(anchors, anchor)
		anchor = anchor.AddDate(0, 0, models.WindowDays)
	}

	return PipelineConfig{
		Region:    region,
		Scale:     DEFAULT_PIXEL_SCALE_METERS,
		CRS:       DEFAULT_CRS,
		Anchors:   anchors,
		Topt:      DEFAULT_TOPT,
		LueMax:    DEFAULT_LUE_MAX,
		MaskAsset: DEFAULT_MASK_ASSET,
	}
}

// ParseAnchors parses ISO-8601 anchor dates from configuration.
func ParseAnchors(dates []string) ([]time.Time, error) {
	anchors := make([]time.Time, len(dates))
	for i, d := range dates {
		parsed, err := time.Parse(models.DateLayout, d)
		if err != nil {
			return nil, err
		}
		anchors[i] = parsed
	}
	return anchors, nil
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
