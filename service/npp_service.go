package services

import (
	"fmt"
	"log"

	"npp-server/api/prodmodel"
	"npp-server/api/rasterprovider"
	"npp-server/config"
	"npp-server/models"
	"npp-server/pipeline"
)

// NppService orchestrates the productivity model over the harmonized
// input series: one batch invocation per aligned schedule and one
// single-period invocation for ad-hoc inspection.
type NppService struct {
	provider rasterprovider.RasterProvider
	model    prodmodel.ProductivityModel
	cfg      config.PipelineConfig
}

// NewNppService constructs a new NppService with its dependencies.
func NewNppService(
	provider rasterprovider.RasterProvider,
	model prodmodel.ProductivityModel,
	cfg config.PipelineConfig) *NppService {

	return &NppService{
		provider: provider,
		model:    model,
		cfg:      cfg,
	}
}

// BuildSchedule derives the period grid from the configured anchors.
func (s *NppService) BuildSchedule() (*pipeline.Schedule, error) {
	return pipeline.BuildSchedule(s.cfg.Anchors)
}

// BuildAllSeries builds the four unmasked input series in model
// argument order: vegetation, temperature, radiation, water stress.
func (s *NppService) BuildAllSeries(schedule *pipeline.Schedule) ([]models.RasterSeries, error) {
	specs := pipeline.Sources()
	series := make([]models.RasterSeries, len(specs))
	for i, spec := range specs {
		built, err := pipeline.NewSeriesBuilder(s.provider, spec, s.cfg).Build(schedule)
		if err != nil {
			return nil, fmt.Errorf("building %s series: %w", spec.Name, err)
		}
		series[i] = built
	}
	return series, nil
}

// Harmonize applies the configured shared mask to all series.
func (s *NppService) Harmonize(series []models.RasterSeries) []models.RasterSeries {
	mask := s.provider.Asset(s.cfg.MaskAsset)
	return pipeline.NewHarmonizer(mask).Apply(series...)
}

// ComputeForSchedule delegates the four period-aligned series to the
// model's batch operation. All four series must have equal length;
// the model cannot align mismatched period counts.
func (s *NppService) ComputeForSchedule(ndvi, lst, sol, we models.RasterSeries) ([]*models.RasterImage, error) {
	if len(lst) != len(ndvi) || len(sol) != len(ndvi) || len(we) != len(ndvi) {
		return nil, models.NewConfigurationError(
			fmt.Sprintf("series lengths differ: ndvi=%d lst=%d sol=%d we=%d",
				len(ndvi), len(lst), len(sol), len(we)))
	}

	log.Printf("[NppService] Computing batch NPP for %d periods", len(ndvi))
	return s.model.ComputeBatch(ndvi, lst, sol, we, s.cfg.Topt, s.cfg.LueMax)
}

// ComputeForPeriod delegates one period bundle to the model's single
// operation and materializes a valid-pixel count per source over the
// region of interest at the shared scale. The counts are purely
// diagnostic; pass the pre-mask entries to compare the sources'
// native footprints before trusting a single-period result.
func (s *NppService) ComputeForPeriod(bundle models.ModelInputBundle) (*models.RasterImage, *models.PeriodDiagnostics, error) {
	diagnostics := &models.PeriodDiagnostics{
		RegionID:    s.cfg.Region.RegionID,
		Date:        bundle.Ndvi.Date,
		ValidPixels: make(map[string]int64, 4),
	}
	for _, entry := range bundle.Entries() {
		count, err := s.provider.ValidPixelCount(entry.Image, s.cfg.Region, s.cfg.Scale)
		if err != nil {
			return nil, nil, fmt.Errorf("counting %s pixels: %w", entry.Band, err)
		}
		log.Printf("[NppService] %s valid pixels on %s: %d", entry.Band, entry.Date, count)
		diagnostics.ValidPixels[entry.Band] = count
	}

	image, err := s.model.ComputeSingle(bundle)
	if err != nil {
		return nil, nil, err
	}
	return image, diagnostics, nil
}

// Bundle assembles the model input bundle for one period index of the
// four aligned series.
func (s *NppService) Bundle(series []models.RasterSeries, index int) (models.ModelInputBundle, error) {
	if len(series) != 4 {
		return models.ModelInputBundle{}, models.NewConfigurationError(
			fmt.Sprintf("expected 4 series, got %d", len(series)))
	}
	for _, one := range series {
		if index < 0 || index >= len(one) {
			return models.ModelInputBundle{}, models.NewConfigurationError(
				fmt.Sprintf("period index %d out of range", index))
		}
	}
	return models.ModelInputBundle{
		Ndvi:   series[0][index],
		Lst:    series[1][index],
		Sol:    series[2][index],
		We:     series[3][index],
		Topt:   s.cfg.Topt,
		LueMax: s.cfg.LueMax,
	}, nil
}
