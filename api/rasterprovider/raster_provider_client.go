package rasterprovider

import (
	"fmt"
	"net/url"
	"time"

	"npp-server/api"
	"npp-server/models"
)

// RasterProviderClient embeds the common HTTPClient and talks to the
// remote raster service. Expression handles are serialized as JSON and
// only sent on materialize calls.
type RasterProviderClient struct {
	DescriptionBuilder
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties

	apiKey string
}

// NewRasterProviderClient creates a new instance of RasterProviderClient
func NewRasterProviderClient(httpClient *api.HTTPClient) *RasterProviderClient {
	return &RasterProviderClient{HTTPClient: httpClient}
}

// SetAPIKey sets the key sent with every materialize request.
func (c *RasterProviderClient) SetAPIKey(key string) {
	c.apiKey = key
}

func (c *RasterProviderClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": c.apiKey}
}

type listDatesResponse struct {
	Dates []string `json:"dates"`
}

type pixelCountRequest struct {
	Expression *models.RasterImage `json:"expression"`
	Region     models.Region       `json:"region"`
	Scale      float64             `json:"scale"`
}

type pixelCountResponse struct {
	Count int64 `json:"count"`
}

type reduceRegionRequest struct {
	Expression *models.RasterImage `json:"expression"`
	Region     models.Region       `json:"region"`
	Scale      float64             `json:"scale"`
	Reducer    string              `json:"reducer"`
}

type reduceRegionResponse struct {
	Value float64 `json:"value"`
}

type exportRequest struct {
	Expression *models.RasterImage `json:"expression"`
	Name       string              `json:"name"`
	Region     models.Region       `json:"region"`
}

// ListImageDates fetches the native composite dates available for the
// collection handle's region and date range.
func (c *RasterProviderClient) ListImageDates(collection *models.ImageCollection) ([]time.Time, error) {
	query := url.Values{}
	query.Set("start", collection.Dates.Start.Format(models.DateLayout))
	query.Set("end", collection.Dates.End.Format(models.DateLayout))
	query.Set("lat_min", fmt.Sprintf("%f", collection.Region.BoundingBox.LatMin))
	query.Set("lat_max", fmt.Sprintf("%f", collection.Region.BoundingBox.LatMax))
	query.Set("lng_min", fmt.Sprintf("%f", collection.Region.BoundingBox.LngMin))
	query.Set("lng_max", fmt.Sprintf("%f", collection.Region.BoundingBox.LngMax))

	var response listDatesResponse
	endpoint := "/collections/" + url.PathEscape(collection.Name) + "/dates"
	if err := c.Get(endpoint, query, c.headers(), &response); err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(response.Dates))
	for _, d := range response.Dates {
		parsed, err := time.Parse(models.DateLayout, d)
		if err != nil {
			return nil, fmt.Errorf("bad date %q in collection %s: %w", d, collection.Name, err)
		}
		dates = append(dates, parsed)
	}
	return dates, nil
}

// ValidPixelCount materializes the number of valid pixels of the image
// over the region at the given scale.
func (c *RasterProviderClient) ValidPixelCount(image *models.RasterImage, region models.Region, scale float64) (int64, error) {
	var response pixelCountResponse
	request := pixelCountRequest{Expression: image, Region: region, Scale: scale}
	if err := c.Request("POST", "/expression/pixel-count", c.headers(), request, &response); err != nil {
		return 0, err
	}
	return response.Count, nil
}

// ReduceRegion materializes a single statistic of the image over the
// region at the given scale.
func (c *RasterProviderClient) ReduceRegion(image *models.RasterImage, region models.Region, scale float64, op string) (float64, error) {
	var response reduceRegionResponse
	request := reduceRegionRequest{Expression: image, Region: region, Scale: scale, Reducer: op}
	if err := c.Request("POST", "/expression/reduce-region", c.headers(), request, &response); err != nil {
		return 0, err
	}
	return response.Value, nil
}

// Export asks the service to render the image for download and returns
// the task record.
func (c *RasterProviderClient) Export(image *models.RasterImage, name string, region models.Region) (*models.ExportTask, error) {
	var response models.ExportTask
	request := exportRequest{Expression: image, Name: name, Region: region}
	if err := c.Request("POST", "/expression/export", c.headers(), request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
