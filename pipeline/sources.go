package pipeline

import "npp-server/models"

// Provider collection identifiers for the four input sources.
const (
	VEGETATION_COLLECTION  = "MODIS/006/MOD13Q1"
	TEMPERATURE_COLLECTION = "MODIS/006/MOD11A2"
	RADIATION_COLLECTION   = "ECMWF/ERA5_LAND/HOURLY"
	WATERSTRESS_COLLECTION = "MODIS/006/MOD16A2"
)

// Native band names within those collections.
const (
	NDVI_BAND      = "NDVI"
	LST_BAND       = "LST_Day_1km"
	RADIATION_BAND = "surface_solar_radiation_downwards"
	ET_BAND        = "ET"
	PET_BAND       = "PET"
)

// Output band names shared by every entry of a series.
const (
	NDVI_OUTPUT_BAND = "ndvi"
	LST_OUTPUT_BAND  = "lst"
	SOL_OUTPUT_BAND  = "sol"
	WE_OUTPUT_BAND   = "we"
)

// Unit conversion constants.
const (
	NDVI_SCALE_FACTOR = 0.0001  // provider int16 -> index value
	LST_SCALE_FACTOR  = 0.02    // provider int16 -> Kelvin
	KELVIN_OFFSET     = -273.15 // Kelvin -> Celsius
	JOULES_PER_MEGAJOULE = 1e6
)

// VegetationSource is the 16-day NDVI composite. The provider already
// composites it, so there is no per-window loop: the whole-range
// filter picks one image per native composite date.
func VegetationSource() SourceSpec {
	return SourceSpec{
		Name:       "vegetation",
		Collection: VEGETATION_COLLECTION,
		Bands:      []string{NDVI_BAND},
		Windowed:   false,
		Reducer:    models.ReduceFirst,
		Convert: func(parts []*models.RasterImage) *models.RasterImage {
			return parts[0].MultiplyConst(NDVI_SCALE_FACTOR)
		},
		OutputBand: NDVI_OUTPUT_BAND,
	}
}

// TemperatureSource averages the 8-day LST composites falling in each
// 16-day window. Scale factor strictly before the Kelvin offset.
func TemperatureSource() SourceSpec {
	return SourceSpec{
		Name:       "temperature",
		Collection: TEMPERATURE_COLLECTION,
		Bands:      []string{LST_BAND},
		Windowed:   true,
		Reducer:    models.ReduceMean,
		Convert: func(parts []*models.RasterImage) *models.RasterImage {
			return parts[0].MultiplyConst(LST_SCALE_FACTOR).AddConst(KELVIN_OFFSET)
		},
		OutputBand: LST_OUTPUT_BAND,
	}
}

// RadiationSource sums the hourly solar radiation samples (J/m²) over
// each 16-day window and converts to MJ/m².
func RadiationSource() SourceSpec {
	return SourceSpec{
		Name:       "radiation",
		Collection: RADIATION_COLLECTION,
		Bands:      []string{RADIATION_BAND},
		Windowed:   true,
		Reducer:    models.ReduceSum,
		Convert: func(parts []*models.RasterImage) *models.RasterImage {
			return parts[0].DivideConst(JOULES_PER_MEGAJOULE)
		},
		OutputBand: SOL_OUTPUT_BAND,
	}
}

// WaterStressSource sums ET and PET independently over each window,
// then derives the stress coefficient we = (ETsum/PETsum)*0.5 + 0.5:
// 1.0 when evapotranspiration meets its potential, 0.5 under total
// stress.
func WaterStressSource() SourceSpec {
	return SourceSpec{
		Name:       "waterstress",
		Collection: WATERSTRESS_COLLECTION,
		Bands:      []string{ET_BAND, PET_BAND},
		Windowed:   true,
		Reducer:    models.ReduceSum,
		Convert: func(parts []*models.RasterImage) *models.RasterImage {
			return parts[0].Divide(parts[1]).MultiplyConst(0.5).AddConst(0.5)
		},
		OutputBand: WE_OUTPUT_BAND,
	}
}

// Sources returns the four source policies in model argument order.
func Sources() []SourceSpec {
	return []SourceSpec{
		VegetationSource(),
		TemperatureSource(),
		RadiationSource(),
		WaterStressSource(),
	}
}
