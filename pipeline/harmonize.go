package pipeline

import "npp-server/models"

// Harmonizer applies one shared categorical mask to every entry of
// every series, so all four series enter the model with an identical
// valid-pixel footprint. The mask is a read-only shared handle and is
// never mutated.
type Harmonizer struct {
	mask *models.RasterImage
}

// NewHarmonizer constructs a Harmonizer around the shared mask.
func NewHarmonizer(mask *models.RasterImage) *Harmonizer {
	return &Harmonizer{mask: mask}
}

// Apply returns new series with the mask applied to every entry. The
// transform is elementwise and source-independent; applying it twice
// is the same as applying it once.
func (h *Harmonizer) Apply(series ...models.RasterSeries) []models.RasterSeries {
	masked := make([]models.RasterSeries, len(series))
	for i, s := range series {
		out := make(models.RasterSeries, len(s))
		for j, entry := range s {
			entry.Image = entry.Image.UpdateMask(h.mask)
			out[j] = entry
		}
		masked[i] = out
	}
	return masked
}
