package services

import (
	"context"
	"testing"
	"time"

	"npp-server/api/prodmodel"
	"npp-server/api/rasterprovider"
	"npp-server/config"
	"npp-server/dao/redis"
	"npp-server/db"
	"npp-server/models"
	"npp-server/pipeline"
)

// fullYearCatalog aligns every source with the default 2018 schedule.
func fullYearCatalog() *rasterprovider.Catalog {
	collections := map[string][]rasterprovider.FixtureImage{}
	anchor := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	for anchor.Year() == 2018 {
		date := anchor.Format(models.DateLayout)
		collections[pipeline.VEGETATION_COLLECTION] = append(collections[pipeline.VEGETATION_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.NDVI_BAND: 6000}})
		collections[pipeline.TEMPERATURE_COLLECTION] = append(collections[pipeline.TEMPERATURE_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.LST_BAND: 302}})
		collections[pipeline.RADIATION_COLLECTION] = append(collections[pipeline.RADIATION_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.RADIATION_BAND: 3.0e6}})
		collections[pipeline.WATERSTRESS_COLLECTION] = append(collections[pipeline.WATERSTRESS_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.ET_BAND: 12, pipeline.PET_BAND: 16}})
		anchor = anchor.AddDate(0, 0, models.WindowDays)
	}

	return &rasterprovider.Catalog{
		Collections: collections,
		Assets:      map[string]float64{config.DEFAULT_MASK_ASSET: 1},
	}
}

func TestRefreshRegion_CachesOutputs(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := redis.NewRedisNppDAO(mockClient)
	provider := rasterprovider.NewRasterProviderMock(fullYearCatalog())
	refresher := NewNppRefresherService(dao, provider, prodmodel.NewProductivityModelMock(), []models.Region{testRegion()})

	// Act
	if err := refresher.RefreshRegion(testRegion()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert: first-period diagnostics cached
	diagnostics, err := dao.GetPeriodDiagnostics("roi-1", "2018-01-01")
	if err != nil {
		t.Fatalf("Expected cached diagnostics, got error: %v", err)
	}
	if len(diagnostics.ValidPixels) != 4 {
		t.Errorf("Expected 4 per-source counts, got %d", len(diagnostics.ValidPixels))
	}

	// Assert: one export task per schedule period
	tasks, err := dao.ListExportTasks("roi-1")
	if err != nil {
		t.Fatalf("ListExportTasks failed: %v", err)
	}
	schedule, err := pipeline.BuildSchedule(config.DefaultPipelineConfig(testRegion()).Anchors)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != len(schedule.Periods) {
		t.Errorf("Expected %d export tasks, got %d", len(schedule.Periods), len(tasks))
	}

	// Assert: region geo-indexed for the nearby lookup
	regions, err := dao.GetNearbyRegions(-8.1, -35.0, 100000)
	if err != nil {
		t.Fatalf("GetNearbyRegions failed: %v", err)
	}
	if len(regions) != 1 {
		t.Errorf("Expected 1 nearby region, got %d", len(regions))
	}
}

func TestRefreshAllRegions_KeepsGoingOnFailure(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := redis.NewRedisNppDAO(mockClient)

	// Empty catalog: every materialize call fails, every region fails.
	provider := rasterprovider.NewRasterProviderMock(&rasterprovider.Catalog{})
	refresher := NewNppRefresherService(dao, provider, prodmodel.NewProductivityModelMock(),
		[]models.Region{testRegion(), {RegionID: "roi-2", RegionName: "Other"}})

	err := refresher.RefreshAllRegions()
	if err == nil {
		t.Fatal("Expected an error from failing regions, got nil")
	}
}
