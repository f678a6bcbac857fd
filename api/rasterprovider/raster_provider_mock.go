package rasterprovider

import (
	"fmt"
	"math"
	"sort"
	"time"

	"npp-server/models"
)

// FixtureImage is one synthetic composite in the mock catalog. Pixel
// values are uniform per band, which is enough to exercise every
// reduction and unit conversion exactly.
type FixtureImage struct {
	Date  string             `json:"date"`
	Bands map[string]float64 `json:"bands"`
}

// Catalog holds the mock provider's collections and single-image
// assets.
type Catalog struct {
	Collections map[string][]FixtureImage `json:"collections"`
	Assets      map[string]float64        `json:"assets"`
}

// RasterProviderMock embeds mocked logic for the raster provider.
// Description calls behave exactly like the real client; materialize
// calls evaluate the expression tree against the fixture catalog
// instead of the remote service.
type RasterProviderMock struct {
	DescriptionBuilder

	catalog *Catalog
}

// NewRasterProviderMock creates a new instance of RasterProviderMock
// backed by the given catalog.
func NewRasterProviderMock(catalog *Catalog) *RasterProviderMock {
	if catalog == nil {
		catalog = &Catalog{}
	}
	return &RasterProviderMock{catalog: catalog}
}

// ListImageDates returns the catalog dates of the collection falling
// inside the handle's date range, in ascending order.
func (m *RasterProviderMock) ListImageDates(collection *models.ImageCollection) ([]time.Time, error) {
	images, ok := m.catalog.Collections[collection.Name]
	if !ok {
		return nil, fmt.Errorf("unknown collection: %s", collection.Name)
	}

	var dates []time.Time
	for _, img := range images {
		d, err := time.Parse(models.DateLayout, img.Date)
		if err != nil {
			return nil, fmt.Errorf("bad fixture date %q in collection %s: %w", img.Date, collection.Name, err)
		}
		if collection.Dates.Contains(d) {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// ValidPixelCount evaluates the expression; a no-data result counts
// zero pixels, anything else covers the whole region at the given
// scale (fixture rasters are uniform).
func (m *RasterProviderMock) ValidPixelCount(image *models.RasterImage, region models.Region, scale float64) (int64, error) {
	result, err := m.eval(image)
	if err != nil {
		return 0, err
	}
	if !result.valid {
		return 0, nil
	}
	return region.PixelCount(scale), nil
}

// ReduceRegion evaluates the expression to a single statistic over the
// region. A fully no-data image yields NaN with a nil error: coverage
// gaps are data, not failures.
func (m *RasterProviderMock) ReduceRegion(image *models.RasterImage, region models.Region, scale float64, op string) (float64, error) {
	result, err := m.eval(image)
	if err != nil {
		return 0, err
	}
	if !result.valid {
		return math.NaN(), nil
	}
	switch op {
	case models.ReduceSum:
		return result.value * float64(region.PixelCount(scale)), nil
	default:
		return result.value, nil
	}
}

// Export records nothing server-side; it returns a completed task
// pointing at a fixture URL.
func (m *RasterProviderMock) Export(image *models.RasterImage, name string, region models.Region) (*models.ExportTask, error) {
	return &models.ExportTask{
		TaskID:   "mock-task-" + name,
		Name:     name,
		RegionID: region.RegionID,
		Status:   "COMPLETED",
		URL:      "file://exports/" + name + ".tif",
	}, nil
}

// evalResult is one uniform-raster evaluation outcome. valid=false
// models a fully no-data raster.
type evalResult struct {
	value float64
	valid bool
}

func (m *RasterProviderMock) eval(image *models.RasterImage) (evalResult, error) {
	switch image.Op {
	case models.OpAsset:
		value, ok := m.catalog.Assets[image.Asset]
		if !ok {
			return evalResult{}, fmt.Errorf("unknown asset: %s", image.Asset)
		}
		return evalResult{value: value, valid: true}, nil

	case models.OpReduce:
		return m.evalReduce(image)

	case models.OpAddConst:
		return m.evalUnary(image, func(v float64) float64 { return v + image.Constant })

	case models.OpMultiplyConst:
		return m.evalUnary(image, func(v float64) float64 { return v * image.Constant })

	case models.OpDivideConst:
		return m.evalUnary(image, func(v float64) float64 { return v / image.Constant })

	case models.OpMultiply:
		a, err := m.eval(image.Inputs[0])
		if err != nil {
			return evalResult{}, err
		}
		b, err := m.eval(image.Inputs[1])
		if err != nil {
			return evalResult{}, err
		}
		if !a.valid || !b.valid {
			return evalResult{}, nil
		}
		return evalResult{value: a.value * b.value, valid: true}, nil

	case models.OpDivide:
		num, err := m.eval(image.Inputs[0])
		if err != nil {
			return evalResult{}, err
		}
		den, err := m.eval(image.Inputs[1])
		if err != nil {
			return evalResult{}, err
		}
		if !num.valid || !den.valid || den.value == 0 {
			return evalResult{}, nil
		}
		return evalResult{value: num.value / den.value, valid: true}, nil

	case models.OpMask:
		img, err := m.eval(image.Inputs[0])
		if err != nil {
			return evalResult{}, err
		}
		mask, err := m.eval(image.Inputs[1])
		if err != nil {
			return evalResult{}, err
		}
		if !img.valid || !mask.valid || mask.value == 0 {
			return evalResult{}, nil
		}
		return img, nil

	case models.OpClip, models.OpReproject, models.OpRename:
		// Spatial shape and band name do not change uniform pixel values.
		return m.eval(image.Inputs[0])

	default:
		return evalResult{}, fmt.Errorf("unknown raster op: %s", image.Op)
	}
}

func (m *RasterProviderMock) evalUnary(image *models.RasterImage, f func(float64) float64) (evalResult, error) {
	in, err := m.eval(image.Inputs[0])
	if err != nil {
		return evalResult{}, err
	}
	if !in.valid {
		return in, nil
	}
	return evalResult{value: f(in.value), valid: true}, nil
}

func (m *RasterProviderMock) evalReduce(image *models.RasterImage) (evalResult, error) {
	collection := image.Collection
	if collection == nil {
		return evalResult{}, fmt.Errorf("reduce without a collection handle")
	}
	images, ok := m.catalog.Collections[collection.Name]
	if !ok {
		return evalResult{}, fmt.Errorf("unknown collection: %s", collection.Name)
	}

	type dated struct {
		date  time.Time
		value float64
	}
	var samples []dated
	for _, img := range images {
		d, err := time.Parse(models.DateLayout, img.Date)
		if err != nil {
			return evalResult{}, fmt.Errorf("bad fixture date %q in collection %s: %w", img.Date, collection.Name, err)
		}
		if !collection.Dates.Contains(d) {
			continue
		}
		value, ok := img.Bands[collection.Band]
		if !ok {
			return evalResult{}, fmt.Errorf("collection %s has no band %q on %s", collection.Name, collection.Band, img.Date)
		}
		samples = append(samples, dated{date: d, value: value})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].date.Before(samples[j].date) })
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.value
	}

	// Empty window: a fully no-data raster, masked out downstream.
	if len(values) == 0 {
		return evalResult{}, nil
	}

	switch image.Reducer {
	case models.ReduceFirst:
		return evalResult{value: values[0], valid: true}, nil
	case models.ReduceMean:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return evalResult{value: sum / float64(len(values)), valid: true}, nil
	case models.ReduceSum:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return evalResult{value: sum, valid: true}, nil
	default:
		return evalResult{}, fmt.Errorf("unknown reducer: %s", image.Reducer)
	}
}
