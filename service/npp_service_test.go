package services

import (
	"errors"
	"testing"
	"time"

	"npp-server/api/prodmodel"
	"npp-server/api/rasterprovider"
	"npp-server/config"
	"npp-server/models"
	"npp-server/pipeline"
)

func testRegion() models.Region {
	return models.Region{
		RegionID:   "roi-1",
		RegionName: "Test ROI",
		BoundingBox: models.BoundingBox{
			LatMin: -8.2, LatMax: -8.0,
			LngMin: -35.1, LngMax: -34.9,
		},
	}
}

func testConfig(t *testing.T) config.PipelineConfig {
	t.Helper()
	cfg := config.DefaultPipelineConfig(testRegion())
	anchors, err := config.ParseAnchors([]string{"2018-01-01", "2018-01-17", "2018-02-02", "2018-02-18"})
	if err != nil {
		t.Fatal(err)
	}
	cfg.Anchors = anchors
	return cfg
}

// serviceCatalog aligns every source with the four-anchor schedule so
// all four series come out with equal length.
func serviceCatalog() *rasterprovider.Catalog {
	collections := map[string][]rasterprovider.FixtureImage{}
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		date := start.AddDate(0, 0, i*models.WindowDays).Format(models.DateLayout)
		collections[pipeline.VEGETATION_COLLECTION] = append(collections[pipeline.VEGETATION_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.NDVI_BAND: 5000}})
		collections[pipeline.TEMPERATURE_COLLECTION] = append(collections[pipeline.TEMPERATURE_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.LST_BAND: 300}})
		collections[pipeline.RADIATION_COLLECTION] = append(collections[pipeline.RADIATION_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.RADIATION_BAND: 2.0e6}})
		collections[pipeline.WATERSTRESS_COLLECTION] = append(collections[pipeline.WATERSTRESS_COLLECTION],
			rasterprovider.FixtureImage{Date: date, Bands: map[string]float64{pipeline.ET_BAND: 10, pipeline.PET_BAND: 20}})
	}

	return &rasterprovider.Catalog{
		Collections: collections,
		Assets:      map[string]float64{config.DEFAULT_MASK_ASSET: 1},
	}
}

func newTestService(t *testing.T) (*NppService, *rasterprovider.RasterProviderMock, config.PipelineConfig) {
	t.Helper()
	cfg := testConfig(t)
	mock := rasterprovider.NewRasterProviderMock(serviceCatalog())
	return NewNppService(mock, prodmodel.NewProductivityModelMock(), cfg), mock, cfg
}

func buildHarmonized(t *testing.T, service *NppService) ([]models.RasterSeries, []models.RasterSeries) {
	t.Helper()
	schedule, err := service.BuildSchedule()
	if err != nil {
		t.Fatal(err)
	}
	series, err := service.BuildAllSeries(schedule)
	if err != nil {
		t.Fatal(err)
	}
	return series, service.Harmonize(series)
}

func TestComputeForSchedule_OrderedBatch(t *testing.T) {
	service, _, _ := newTestService(t)
	_, harmonized := buildHarmonized(t, service)

	images, err := service.ComputeForSchedule(harmonized[0], harmonized[1], harmonized[2], harmonized[3])
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(images) != 4 {
		t.Fatalf("Expected 4 NPP images, got %d", len(images))
	}
	for i, image := range images {
		want := harmonized[0][i].Date
		if got := image.Property("date"); got != want {
			t.Errorf("image %d date = %q; want %q (schedule order)", i, got, want)
		}
	}
}

func TestComputeForSchedule_MismatchedLengths(t *testing.T) {
	service, _, _ := newTestService(t)
	_, harmonized := buildHarmonized(t, service)

	// 4,4,4,3: the model cannot align mismatched period counts.
	_, err := service.ComputeForSchedule(harmonized[0], harmonized[1], harmonized[2], harmonized[3][:3])
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
	var confErr *models.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Errorf("Expected a ConfigurationError, got %T: %v", err, err)
	}
}

func TestComputeForPeriod_Diagnostics(t *testing.T) {
	service, _, cfg := newTestService(t)
	series, _ := buildHarmonized(t, service)

	bundle, err := service.Bundle(series, 0)
	if err != nil {
		t.Fatal(err)
	}
	image, diagnostics, err := service.ComputeForPeriod(bundle)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if image == nil {
		t.Fatal("Expected an NPP image handle")
	}

	if diagnostics.RegionID != cfg.Region.RegionID {
		t.Errorf("diagnostics region = %q; want %q", diagnostics.RegionID, cfg.Region.RegionID)
	}
	if diagnostics.Date != "2018-01-01" {
		t.Errorf("diagnostics date = %q; want 2018-01-01", diagnostics.Date)
	}
	want := cfg.Region.PixelCount(cfg.Scale)
	for _, band := range []string{"ndvi", "lst", "sol", "we"} {
		if got := diagnostics.ValidPixels[band]; got != want {
			t.Errorf("%s valid pixels = %d; want %d", band, got, want)
		}
	}
}

func TestBundle_IndexOutOfRange(t *testing.T) {
	service, _, _ := newTestService(t)
	series, _ := buildHarmonized(t, service)

	_, err := service.Bundle(series, 99)
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
	var confErr *models.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Errorf("Expected a ConfigurationError, got %T: %v", err, err)
	}
}
