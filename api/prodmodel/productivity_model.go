package prodmodel

import "npp-server/models"

// ProductivityModel defines the interface for the external NPP model.
// Both operations stay in the description phase: the images they
// return are inert handles materialized later by the raster provider.
type ProductivityModel interface {
	ComputeSingle(bundle models.ModelInputBundle) (*models.RasterImage, error)
	ComputeBatch(ndvi, lst, sol, we models.RasterSeries, topt, lueMax float64) ([]*models.RasterImage, error)
}
