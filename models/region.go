package models

import "math"

// Meters per degree of latitude, and per degree of longitude at the
// equator. Good enough for pixel-count estimates over small regions.
const metersPerDegLat = 110574.0
const metersPerDegLng = 111320.0

// BoundingBox delimits a region of interest in WGS84 degrees.
type BoundingBox struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LngMin float64 `json:"lng_min"`
	LngMax float64 `json:"lng_max"`
}

// Region is a named region of interest used to clip and materialize
// raster computations.
type Region struct {
	RegionID    string      `json:"region_id"`
	RegionName  string      `json:"region_name"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// Centroid returns the center of the region's bounding box.
func (r Region) Centroid() (lat, lng float64) {
	return (r.BoundingBox.LatMin + r.BoundingBox.LatMax) / 2,
		(r.BoundingBox.LngMin + r.BoundingBox.LngMax) / 2
}

// PixelCount estimates how many pixels cover the region at the given
// scale (meters per pixel).
func (r Region) PixelCount(scale float64) int64 {
	if scale <= 0 {
		return 0
	}
	midLat, _ := r.Centroid()
	heightM := (r.BoundingBox.LatMax - r.BoundingBox.LatMin) * metersPerDegLat
	widthM := (r.BoundingBox.LngMax - r.BoundingBox.LngMin) * metersPerDegLng *
		math.Cos(midLat*math.Pi/180)
	rows := int64(math.Ceil(heightM / scale))
	cols := int64(math.Ceil(widthM / scale))
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return rows * cols
}
