package rasterprovider

import (
	"time"

	"npp-server/models"
)

// RasterProvider defines the interface for interacting with the remote
// raster computation service.
//
// Description-phase operations (QueryCollection through Tag) only build
// inert expression handles and never touch the network; materialize
// operations (ListImageDates through Export) trigger actual server-side
// computation and are the only ones that can fail.
type RasterProvider interface {
	// Description phase
	QueryCollection(name string, region models.Region, dates models.DateRange) *models.ImageCollection
	Reduce(collection *models.ImageCollection, op string) *models.RasterImage
	Reproject(image *models.RasterImage, crs string, scale float64) *models.RasterImage
	Clip(image *models.RasterImage, region models.Region) *models.RasterImage
	Tag(image *models.RasterImage, key, value string) *models.RasterImage
	Asset(assetID string) *models.RasterImage

	// Materialize phase
	ListImageDates(collection *models.ImageCollection) ([]time.Time, error)
	ValidPixelCount(image *models.RasterImage, region models.Region, scale float64) (int64, error)
	ReduceRegion(image *models.RasterImage, region models.Region, scale float64, op string) (float64, error)
	Export(image *models.RasterImage, name string, region models.Region) (*models.ExportTask, error)
}
