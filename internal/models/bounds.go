package models

// Bounds is a latitude/longitude box in degrees used to prefilter tasks by service area.
type Bounds struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}
