package models

// Raster expression operators. A RasterImage is only a description of
// a computation; the provider materializes it on demand.
const (
	OpAsset         = "asset"
	OpReduce        = "reduce"
	OpAddConst      = "add_const"
	OpMultiplyConst = "multiply_const"
	OpDivideConst   = "divide_const"
	OpMultiply      = "multiply"
	OpDivide        = "divide"
	OpMask          = "mask"
	OpClip          = "clip"
	OpReproject     = "reproject"
	OpRename        = "rename"
)

// Reduction operators applied when collapsing a collection into one
// image.
const (
	ReduceFirst = "first"
	ReduceMean  = "mean"
	ReduceSum   = "sum"
)

// RasterImage is an inert handle describing a deferred raster
// computation. Building one performs no I/O; handles are immutable
// and every operation returns a new node.
type RasterImage struct {
	Op         string            `json:"op"`
	Asset      string            `json:"asset,omitempty"`
	Collection *ImageCollection  `json:"collection,omitempty"`
	Reducer    string            `json:"reducer,omitempty"`
	Constant   float64           `json:"constant,omitempty"`
	Inputs     []*RasterImage    `json:"inputs,omitempty"`
	Band       string            `json:"band,omitempty"`
	Region     *Region           `json:"region,omitempty"`
	CRS        string            `json:"crs,omitempty"`
	Scale      float64           `json:"scale,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// AddConst adds a constant to every pixel.
func (i *RasterImage) AddConst(c float64) *RasterImage {
	return &RasterImage{Op: OpAddConst, Constant: c, Inputs: []*RasterImage{i}}
}

// MultiplyConst multiplies every pixel by a constant.
func (i *RasterImage) MultiplyConst(c float64) *RasterImage {
	return &RasterImage{Op: OpMultiplyConst, Constant: c, Inputs: []*RasterImage{i}}
}

// DivideConst divides every pixel by a constant.
func (i *RasterImage) DivideConst(c float64) *RasterImage {
	return &RasterImage{Op: OpDivideConst, Constant: c, Inputs: []*RasterImage{i}}
}

// Multiply multiplies this image by another, pixel by pixel.
func (i *RasterImage) Multiply(o *RasterImage) *RasterImage {
	return &RasterImage{Op: OpMultiply, Inputs: []*RasterImage{i, o}}
}

// Divide divides this image by another, pixel by pixel. Pixels where
// the divisor is zero or no-data become no-data.
func (i *RasterImage) Divide(o *RasterImage) *RasterImage {
	return &RasterImage{Op: OpDivide, Inputs: []*RasterImage{i, o}}
}

// UpdateMask marks pixels outside the mask's valid region as no-data.
func (i *RasterImage) UpdateMask(mask *RasterImage) *RasterImage {
	return &RasterImage{Op: OpMask, Inputs: []*RasterImage{i, mask}}
}

// Rename sets the image's band name.
func (i *RasterImage) Rename(band string) *RasterImage {
	return &RasterImage{Op: OpRename, Band: band, Inputs: []*RasterImage{i}}
}

// WithProperty returns a copy of the image carrying an extra metadata
// property. Properties never affect pixel values.
func (i *RasterImage) WithProperty(key, value string) *RasterImage {
	img := *i
	props := make(map[string]string, len(i.Properties)+1)
	for k, v := range i.Properties {
		props[k] = v
	}
	props[key] = value
	img.Properties = props
	return &img
}

// Property reads a metadata property set with WithProperty.
func (i *RasterImage) Property(key string) string {
	return i.Properties[key]
}
