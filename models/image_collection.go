package models

// ImageCollection is a lazy handle over a provider collection filtered
// by region and date range. Nothing is fetched until the handle is
// reduced and materialized.
type ImageCollection struct {
	Name   string    `json:"name"`
	Band   string    `json:"band,omitempty"`
	Region Region    `json:"region"`
	Dates  DateRange `json:"dates"`
}

// Select returns a copy of the handle restricted to a single band.
func (c *ImageCollection) Select(band string) *ImageCollection {
	col := *c
	col.Band = band
	return &col
}
