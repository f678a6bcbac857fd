package rasterprovider

import "npp-server/models"

// DescriptionBuilder implements the description phase of
// RasterProvider. Both the remote client and the mock embed it: the
// handles it builds are pure values, so description building is
// identical no matter where materialization happens.
type DescriptionBuilder struct{}

// QueryCollection builds a lazy handle over a named collection
// filtered by region and date range.
func (DescriptionBuilder) QueryCollection(name string, region models.Region, dates models.DateRange) *models.ImageCollection {
	return &models.ImageCollection{Name: name, Region: region, Dates: dates}
}

// Reduce collapses a collection handle into one image description.
// Reducing an empty window is well-defined: it materializes to a
// fully no-data raster, not an error.
func (DescriptionBuilder) Reduce(collection *models.ImageCollection, op string) *models.RasterImage {
	return &models.RasterImage{Op: models.OpReduce, Collection: collection, Reducer: op}
}

// Reproject resamples an image to the given CRS and scale.
func (DescriptionBuilder) Reproject(image *models.RasterImage, crs string, scale float64) *models.RasterImage {
	return &models.RasterImage{Op: models.OpReproject, CRS: crs, Scale: scale, Inputs: []*models.RasterImage{image}}
}

// Clip restricts an image to a region of interest.
func (DescriptionBuilder) Clip(image *models.RasterImage, region models.Region) *models.RasterImage {
	r := region
	return &models.RasterImage{Op: models.OpClip, Region: &r, Inputs: []*models.RasterImage{image}}
}

// Tag attaches a metadata property to an image.
func (DescriptionBuilder) Tag(image *models.RasterImage, key, value string) *models.RasterImage {
	return image.WithProperty(key, value)
}

// Asset references a single stored image by its asset ID.
func (DescriptionBuilder) Asset(assetID string) *models.RasterImage {
	return &models.RasterImage{Op: models.OpAsset, Asset: assetID}
}
