package util

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"npp-server/api/rasterprovider"
	"npp-server/models"
	"npp-server/pipeline"
)

// ReadCollectionCatalogFromJSON loads a mock raster catalog from JSON on disk.
func ReadCollectionCatalogFromJSON(filePath string) (*rasterprovider.Catalog, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var catalog rasterprovider.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Catalog: %w", err)
	}
	return &catalog, nil
}

// ReadRegionsFromJSON loads the configured regions of interest from JSON on disk.
func ReadRegionsFromJSON(filePath string) ([]models.Region, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var regions []models.Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal regions: %w", err)
	}
	return regions, nil
}

// PrintSchedulePartially prints key fields of a harmonization schedule.
func PrintSchedulePartially(schedule *pipeline.Schedule) {
	fmt.Printf("Periods: %d\n", len(schedule.Periods))
	if len(schedule.Periods) > 0 {
		fmt.Printf("First period: %s\n", schedule.Periods[0].StartDate())
		fmt.Printf("Last period: %s\n", schedule.Periods[len(schedule.Periods)-1].StartDate())
	}
	fmt.Printf("Native filter range: [%s, %s)\n",
		schedule.NativeFilterRange.Start.Format(models.DateLayout),
		schedule.NativeFilterRange.End.Format(models.DateLayout))
}

// PrintDiagnosticsPartially prints the per-source valid pixel counts.
func PrintDiagnosticsPartially(diagnostics *models.PeriodDiagnostics) {
	fmt.Printf("Region: %s, period: %s\n", diagnostics.RegionID, diagnostics.Date)
	for band, count := range diagnostics.ValidPixels {
		fmt.Printf("  %s: %d valid pixels\n", band, count)
	}
}
