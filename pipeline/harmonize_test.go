package pipeline

import (
	"testing"

	"npp-server/api/rasterprovider"
	"npp-server/models"
)

func TestHarmonizer_SharedFootprint(t *testing.T) {
	cfg := testConfig(t)
	mock := rasterprovider.NewRasterProviderMock(pipelineCatalog())
	schedule, err := BuildSchedule(cfg.Anchors)
	if err != nil {
		t.Fatal(err)
	}

	var built []models.RasterSeries
	for _, spec := range []SourceSpec{TemperatureSource(), RadiationSource(), WaterStressSource()} {
		series, err := NewSeriesBuilder(mock, spec, cfg).Build(schedule)
		if err != nil {
			t.Fatal(err)
		}
		built = append(built, series)
	}

	harmonizer := NewHarmonizer(mock.Asset(cfg.MaskAsset))
	masked := harmonizer.Apply(built...)

	if len(masked) != len(built) {
		t.Fatalf("Expected %d series back, got %d", len(built), len(masked))
	}

	// First period has coverage in every source: after masking, all
	// series must expose the same valid-pixel footprint.
	want, err := mock.ValidPixelCount(masked[0][0].Image, cfg.Region, cfg.Scale)
	if err != nil {
		t.Fatal(err)
	}
	if want == 0 {
		t.Fatal("Expected a non-empty footprint for the first period")
	}
	for i, series := range masked {
		got, err := mock.ValidPixelCount(series[0].Image, cfg.Region, cfg.Scale)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("series %d footprint = %d; want %d", i, got, want)
		}
	}
}

func TestHarmonizer_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	mock := rasterprovider.NewRasterProviderMock(pipelineCatalog())
	schedule, err := BuildSchedule(cfg.Anchors)
	if err != nil {
		t.Fatal(err)
	}
	series, err := NewSeriesBuilder(mock, TemperatureSource(), cfg).Build(schedule)
	if err != nil {
		t.Fatal(err)
	}

	harmonizer := NewHarmonizer(mock.Asset(cfg.MaskAsset))
	once := harmonizer.Apply(series)[0]
	twice := harmonizer.Apply(once)[0]

	for i := range once {
		countOnce, err := mock.ValidPixelCount(once[i].Image, cfg.Region, cfg.Scale)
		if err != nil {
			t.Fatal(err)
		}
		countTwice, err := mock.ValidPixelCount(twice[i].Image, cfg.Region, cfg.Scale)
		if err != nil {
			t.Fatal(err)
		}
		if countOnce != countTwice {
			t.Errorf("entry %d: footprint changed on second application: %d != %d", i, countOnce, countTwice)
		}

		valueOnce, err := mock.ReduceRegion(once[i].Image, cfg.Region, cfg.Scale, models.ReduceMean)
		if err != nil {
			t.Fatal(err)
		}
		valueTwice, err := mock.ReduceRegion(twice[i].Image, cfg.Region, cfg.Scale, models.ReduceMean)
		if err != nil {
			t.Fatal(err)
		}
		// NaN == NaN is false; both-NaN means both no-data, which is equal here.
		if valueOnce != valueTwice && !(valueOnce != valueOnce && valueTwice != valueTwice) {
			t.Errorf("entry %d: value changed on second application: %v != %v", i, valueOnce, valueTwice)
		}
	}
}

func TestHarmonizer_InvalidMaskBlanksEverything(t *testing.T) {
	catalog := pipelineCatalog()
	catalog.Assets["landcover/none"] = 0
	cfg := testConfig(t)
	mock := rasterprovider.NewRasterProviderMock(catalog)
	schedule, err := BuildSchedule(cfg.Anchors)
	if err != nil {
		t.Fatal(err)
	}
	series, err := NewSeriesBuilder(mock, RadiationSource(), cfg).Build(schedule)
	if err != nil {
		t.Fatal(err)
	}

	masked := NewHarmonizer(mock.Asset("landcover/none")).Apply(series)[0]
	for i, entry := range masked {
		count, err := mock.ValidPixelCount(entry.Image, cfg.Region, cfg.Scale)
		if err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("entry %d: expected 0 valid pixels under an all-invalid mask, got %d", i, count)
		}
	}
}
