package prodmodel

import (
	"fmt"

	"npp-server/models"
)

// ProductivityModelMock embeds mocked logic for the productivity
// model. It assembles a CASA-style light-use-efficiency expression
// locally, so downstream materialization keeps working without the
// remote service. The exact formula is not this repo's concern; the
// mock only has to produce one well-formed handle per period.
type ProductivityModelMock struct {
}

// NewProductivityModelMock creates a new instance of ProductivityModelMock
func NewProductivityModelMock() *ProductivityModelMock {
	return &ProductivityModelMock{}
}

// ComputeSingle assembles the NPP expression for one period bundle.
func (m *ProductivityModelMock) ComputeSingle(bundle models.ModelInputBundle) (*models.RasterImage, error) {
	// APAR: absorbed radiation from NDVI-derived FPAR.
	fpar := bundle.Ndvi.Image.MultiplyConst(1.25)
	apar := bundle.Sol.Image.Multiply(fpar).MultiplyConst(0.5)

	// Temperature stress peaks at the optimal temperature.
	tdiff := bundle.Lst.Image.AddConst(-bundle.Topt)
	tstress := tdiff.Multiply(tdiff).MultiplyConst(-0.0005).AddConst(1)

	// Effective light-use efficiency, bounded by the model scalar.
	lue := bundle.We.Image.Multiply(tstress).MultiplyConst(bundle.LueMax)

	npp := apar.Multiply(lue).Rename("npp").WithProperty("date", bundle.Ndvi.Date)
	return npp, nil
}

// ComputeBatch assembles one NPP expression per aligned period.
func (m *ProductivityModelMock) ComputeBatch(ndvi, lst, sol, we models.RasterSeries, topt, lueMax float64) ([]*models.RasterImage, error) {
	if len(lst) != len(ndvi) || len(sol) != len(ndvi) || len(we) != len(ndvi) {
		return nil, fmt.Errorf("series lengths differ: ndvi=%d lst=%d sol=%d we=%d",
			len(ndvi), len(lst), len(sol), len(we))
	}

	images := make([]*models.RasterImage, len(ndvi))
	for i := range ndvi {
		bundle := models.ModelInputBundle{
			Ndvi:   ndvi[i],
			Lst:    lst[i],
			Sol:    sol[i],
			We:     we[i],
			Topt:   topt,
			LueMax: lueMax,
		}
		image, err := m.ComputeSingle(bundle)
		if err != nil {
			return nil, err
		}
		images[i] = image
	}
	return images, nil
}
