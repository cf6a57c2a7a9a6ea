package reentry

import "math"

// atmLayer is one band of a piecewise exponential atmosphere.
type atmLayer struct {
	baseAlt     float64 // km above the surface
	baseDensity float64 // kg/m^3 at baseAlt
	scaleHeight float64 // km
}

// Atmosphere models the density of a co-rotating atmosphere as a piecewise
// exponential profile. Above CutoffAlt the density is taken as zero and drag
// is not evaluated at all. Below ReentryAlt the drag term stiffens faster
// than a fixed integration step can resolve, so the force model treats any
// dragging satellite under it as reentering.
type Atmosphere struct {
	CutoffAlt  float64 // km
	ReentryAlt float64 // km
	layers     []atmLayer
}

// Density returns the atmospheric density in kg/m^3 at the given altitude in km.
// Altitudes below the first layer clamp to the first layer base.
func (a *Atmosphere) Density(alt float64) float64 {
	if a == nil || alt > a.CutoffAlt {
		return 0
	}
	if alt < 0 {
		alt = 0
	}
	layer := a.layers[0]
	for _, l := range a.layers {
		if alt < l.baseAlt {
			break
		}
		layer = l
	}
	return layer.baseDensity * math.Exp(-(alt-layer.baseAlt)/layer.scaleHeight)
}

// EarthAtmosphere is the exponential atmospheric model from Vallado
// (Fundamentals of Astrodynamics, table 8-4), banded from sea level to
// 1000 km. Each entry is base altitude (km), nominal density (kg/m^3) and
// scale height (km).
var EarthAtmosphere = &Atmosphere{
	CutoffAlt:  1000,
	ReentryAlt: 90,
	layers: []atmLayer{
		{0, 1.225, 7.249},
		{25, 3.899e-2, 6.349},
		{30, 1.774e-2, 6.682},
		{40, 3.972e-3, 7.554},
		{50, 1.057e-3, 8.382},
		{60, 3.206e-4, 7.714},
		{70, 8.770e-5, 6.549},
		{80, 1.905e-5, 5.799},
		{90, 3.396e-6, 5.382},
		{100, 5.297e-7, 5.877},
		{110, 9.661e-8, 7.263},
		{120, 2.438e-8, 9.473},
		{130, 8.484e-9, 12.636},
		{140, 3.845e-9, 16.149},
		{150, 2.070e-9, 22.523},
		{180, 5.464e-10, 29.740},
		{200, 2.789e-10, 37.105},
		{250, 7.248e-11, 45.546},
		{300, 2.418e-11, 53.628},
		{350, 9.518e-12, 53.298},
		{400, 3.725e-12, 58.515},
		{450, 1.585e-12, 60.828},
		{500, 6.967e-13, 63.822},
		{600, 1.454e-13, 71.835},
		{700, 3.614e-14, 88.667},
		{800, 1.170e-14, 124.64},
		{900, 5.245e-15, 181.05},
	},
}

// MarsAtmosphere is a single-band exponential model with the surface density
// and scale height used for first-order aerobraking studies.
var MarsAtmosphere = &Atmosphere{
	CutoffAlt:  300,
	ReentryAlt: 50,
	layers: []atmLayer{
		{0, 2.0e-2, 11.1},
	},
}
