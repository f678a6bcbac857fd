package util

import (
	"fmt"
	"log"
	"os"
	"sort"

	"npp-server/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotRegionBoundingBox generates an HTML file rendering the bounding box of a region.
func PlotRegionBoundingBox(region models.Region) {
	latMin := region.BoundingBox.LatMin
	latMax := region.BoundingBox.LatMax
	lngMin := region.BoundingBox.LngMin
	lngMax := region.BoundingBox.LngMax

	// Define the points forming the bounding box polygon.
	points := []opts.GeoData{
		{Name: "SW", Value: []float64{lngMin, latMin}},
		{Name: "NW", Value: []float64{lngMin, latMax}},
		{Name: "NE", Value: []float64{lngMax, latMax}},
		{Name: "SE", Value: []float64{lngMax, latMin}},
		{Name: "SW", Value: []float64{lngMin, latMin}}, // Close the polygon.
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Region Bounding Box Map",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true), // Disables interactivity on the map background.
		}),
	)

	geo.AddSeries(region.RegionName, types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	fileName := fmt.Sprintf("region_bounding_box_%s.html", region.RegionID)
	f, err := os.Create(fileName)
	if err != nil {
		log.Fatalf("Failed to create HTML file: %v", err)
	}
	defer f.Close()

	if err := geo.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}

	fmt.Println("Region bounding box map generated:", fileName)
}

// PlotValidPixelCounts renders the per-source valid pixel counts of
// cached period diagnostics as a bar chart, one bar group per band.
func PlotValidPixelCounts(diagnostics *models.PeriodDiagnostics) {
	bands := make([]string, 0, len(diagnostics.ValidPixels))
	for band := range diagnostics.ValidPixels {
		bands = append(bands, band)
	}
	sort.Strings(bands)

	values := make([]opts.BarData, 0, len(bands))
	for _, band := range bands {
		values = append(values, opts.BarData{Value: diagnostics.ValidPixels[band]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Valid Pixel Counts",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Valid pixels - %s", diagnostics.RegionID),
			Subtitle: diagnostics.Date,
		}),
	)
	bar.SetXAxis(bands).AddSeries("valid_pixels", values)

	fileName := fmt.Sprintf("valid_pixels_%s_%s.html", diagnostics.RegionID, diagnostics.Date)
	f, err := os.Create(fileName)
	if err != nil {
		log.Fatalf("Failed to create HTML file: %v", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}

	fmt.Println("Valid pixel chart generated:", fileName)
}
