package models

// RasterSeriesEntry is one normalized raster image produced for one
// period: a fixed band name, the window's start date and the shared
// pixel scale.
type RasterSeriesEntry struct {
	Image *RasterImage `json:"image"`
	Band  string       `json:"band"`
	Date  string       `json:"date"`
	Scale float64      `json:"scale"`
}

// RasterSeries is an ordered sequence of entries, one per period, in
// schedule order.
type RasterSeries []RasterSeriesEntry

// Dates returns the series' period start dates in order.
func (s RasterSeries) Dates() []string {
	dates := make([]string, len(s))
	for i, e := range s {
		dates[i] = e.Date
	}
	return dates
}

// ModelInputBundle carries the four aligned entries for one period
// plus the two model scalars.
type ModelInputBundle struct {
	Ndvi   RasterSeriesEntry `json:"ndvi"`
	Lst    RasterSeriesEntry `json:"lst"`
	Sol    RasterSeriesEntry `json:"sol"`
	We     RasterSeriesEntry `json:"we"`
	Topt   float64           `json:"topt"`
	LueMax float64           `json:"lue_max"`
}

// Entries returns the bundle's four entries in model argument order.
func (b ModelInputBundle) Entries() []RasterSeriesEntry {
	return []RasterSeriesEntry{b.Ndvi, b.Lst, b.Sol, b.We}
}

// PeriodDiagnostics holds per-source valid-pixel counts for one
// period, computed over the region of interest at the shared scale.
// Purely informational; a caller can use it to spot footprint or
// resolution mismatches between sources.
type PeriodDiagnostics struct {
	RegionID    string           `json:"region_id"`
	Date        string           `json:"date"`
	ValidPixels map[string]int64 `json:"valid_pixels"`
}

// ExportTask is the provider's record for a requested image export.
type ExportTask struct {
	TaskID   string `json:"task_id"`
	Name     string `json:"name"`
	RegionID string `json:"region_id"`
	Date     string `json:"date"`
	URL      string `json:"url,omitempty"`
	Status   string `json:"status"`
}
