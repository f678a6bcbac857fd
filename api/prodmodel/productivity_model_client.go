package prodmodel

import (
	"fmt"

	"npp-server/api"
	"npp-server/models"
)

// ProductivityModelClient embeds the common HTTPClient and delegates
// both model operations to the remote NPP service.
type ProductivityModelClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
}

// NewProductivityModelClient creates a new instance of ProductivityModelClient
func NewProductivityModelClient(httpClient *api.HTTPClient) *ProductivityModelClient {
	return &ProductivityModelClient{HTTPClient: httpClient}
}

type computeSingleResponse struct {
	Image *models.RasterImage `json:"image"`
}

type computeBatchRequest struct {
	Ndvi   models.RasterSeries `json:"ndvi_series"`
	Lst    models.RasterSeries `json:"lst_series"`
	Sol    models.RasterSeries `json:"sol_series"`
	We     models.RasterSeries `json:"we_series"`
	Topt   float64             `json:"topt"`
	LueMax float64             `json:"lue_max"`
}

type computeBatchResponse struct {
	Images []*models.RasterImage `json:"images"`
}

// ComputeSingle computes the NPP image handle for one period bundle.
func (c *ProductivityModelClient) ComputeSingle(bundle models.ModelInputBundle) (*models.RasterImage, error) {
	var response computeSingleResponse
	if err := c.Request("POST", "/npp/compute-single", nil, bundle, &response); err != nil {
		return nil, err
	}
	return response.Image, nil
}

// ComputeBatch computes one NPP image handle per aligned period. The
// four series must already be period-aligned and of equal length.
func (c *ProductivityModelClient) ComputeBatch(ndvi, lst, sol, we models.RasterSeries, topt, lueMax float64) ([]*models.RasterImage, error) {
	request := computeBatchRequest{Ndvi: ndvi, Lst: lst, Sol: sol, We: we, Topt: topt, LueMax: lueMax}
	var response computeBatchResponse
	if err := c.Request("POST", "/npp/compute-batch", nil, request, &response); err != nil {
		return nil, err
	}
	if len(response.Images) != len(ndvi) {
		return nil, fmt.Errorf("model returned %d images for %d periods", len(response.Images), len(ndvi))
	}
	return response.Images, nil
}
