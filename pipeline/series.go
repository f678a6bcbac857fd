package pipeline

import (
	"fmt"

	"npp-server/api/rasterprovider"
	"npp-server/config"
	"npp-server/models"
)

// SourceSpec is the per-source policy consumed by the generic
// SeriesBuilder: which collection to query, how to window it, how to
// reduce each band over a window, the unit conversion applied to the
// reduced bands, and the fixed output band name.
type SourceSpec struct {
	Name       string
	Collection string
	Bands      []string

	// Windowed sources are reduced once per schedule period; a
	// non-windowed source relies on the provider's own native
	// compositing and yields one entry per native composite date in
	// the schedule's native filter range.
	Windowed bool

	Reducer string

	// Convert turns the independently reduced bands into the final
	// single-band image. Nil means the first reduced band passes
	// through unchanged.
	Convert func(parts []*models.RasterImage) *models.RasterImage

	OutputBand string
}

// SeriesBuilder produces one normalized RasterSeries from one native
// collection, following its SourceSpec policy.
type SeriesBuilder struct {
	provider rasterprovider.RasterProvider
	spec     SourceSpec
	cfg      config.PipelineConfig
}

// NewSeriesBuilder constructs a SeriesBuilder for one source.
func NewSeriesBuilder(provider rasterprovider.RasterProvider, spec SourceSpec, cfg config.PipelineConfig) *SeriesBuilder {
	return &SeriesBuilder{provider: provider, spec: spec, cfg: cfg}
}

// Build produces the source's series for the schedule. Windowed
// sources yield exactly one entry per period; the native source
// yields one entry per native composite date, which requires a
// materialize call to list those dates and is the only way Build can
// fail.
func (b *SeriesBuilder) Build(schedule *Schedule) (models.RasterSeries, error) {
	if b.spec.Windowed {
		series := make(models.RasterSeries, len(schedule.Periods))
		for i, period := range schedule.Periods {
			series[i] = b.buildWindow(period.DateRange(), period.StartDate())
		}
		return series, nil
	}

	collection := b.provider.QueryCollection(b.spec.Collection, b.cfg.Region, schedule.NativeFilterRange)
	dates, err := b.provider.ListImageDates(collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s composite dates: %w", b.spec.Name, err)
	}

	series := make(models.RasterSeries, len(dates))
	for i, date := range dates {
		// One native composite per entry: a one-day window around the
		// composite date picks exactly that image.
		window := models.NewDateRange(date, date.AddDate(0, 0, 1))
		series[i] = b.buildWindow(window, date.Format(models.DateLayout))
	}
	return series, nil
}

// buildWindow reduces each configured band over the window, applies
// the unit conversion, and normalizes the result into the common
// raster shape. Reprojection deliberately comes after the reduction:
// reduce at native resolution, resample exactly once.
func (b *SeriesBuilder) buildWindow(window models.DateRange, date string) models.RasterSeriesEntry {
	parts := make([]*models.RasterImage, len(b.spec.Bands))
	for i, band := range b.spec.Bands {
		collection := b.provider.QueryCollection(b.spec.Collection, b.cfg.Region, window).Select(band)
		parts[i] = b.provider.Reduce(collection, b.spec.Reducer)
	}

	image := parts[0]
	if b.spec.Convert != nil {
		image = b.spec.Convert(parts)
	}
	image = image.Rename(b.spec.OutputBand)
	image = b.provider.Clip(image, b.cfg.Region)
	image = b.provider.Reproject(image, b.cfg.CRS, b.cfg.Scale)
	image = b.provider.Tag(image, "date", date)

	return models.RasterSeriesEntry{
		Image: image,
		Band:  b.spec.OutputBand,
		Date:  date,
		Scale: b.cfg.Scale,
	}
}
