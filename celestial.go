package reentry

import (
	"fmt"
	"strings"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
	// EarthRotationRate is the average Earth rotation rate in radians per second.
	EarthRotationRate = 7.2921158553e-5
)

// BodyKind tags the variant of a celestial object. Every kind shares the same
// state-update contract: the registry moves it, the force model reads it.
type BodyKind uint8

const (
	// KindBarycenter is a massless frame marker: it anchors the position
	// hierarchy but is never a gravity source.
	KindBarycenter BodyKind = iota
	// KindStar is the central star.
	KindStar
	// KindPlanet orbits a barycenter.
	KindPlanet
	// KindMoon orbits a planet.
	KindMoon
)

func (k BodyKind) String() string {
	switch k {
	case KindBarycenter:
		return "barycenter"
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	}
	panic("cannot stringify unknown body kind")
}

// KeplerElements are canonical J2000 mean elements used as the body ephemeris.
// Angles are stored in radians; the catalog initializes them from degrees.
type KeplerElements struct {
	a, e, i, Ω, ω, M0 float64
}

// CelestialObject defines a celestial object keyed by its NAIF identifier.
// Position, Velocity and Orientation are barycentric state mutated by the
// registry once per step; everything else is loaded once from the catalog.
type CelestialObject struct {
	Name    string
	NAIF    int
	Kind    BodyKind
	Parent  int // NAIF id of the parent in the frame hierarchy, -1 for the SSB
	Radius  float64
	μ       float64 // km^3/s^2
	J2      float64
	RotRate float64 // spin rate about the pole, rad/s
	Atm     *Atmosphere
	Orbit   *KeplerElements // nil for the SSB and the Sun

	Position    []float64  // km, barycentric inertial
	Velocity    []float64  // km/s
	Orientation [4]float64 // quaternion w,x,y,z
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialObject) GM() float64 {
	return c.μ
}

// J returns the perturbing J_n factor for the provided n.
// Only J2 is carried in the catalog.
func (c CelestialObject) J(n uint8) float64 {
	if n == 2 {
		return c.J2
	}
	return 0.0
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return fmt.Sprintf("%s (NAIF %d)", c.Name, c.NAIF)
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.NAIF == b.NAIF && c.μ == b.μ && c.Radius == b.Radius
}

// CelestialObjectFromString returns the catalog object from its name.
func CelestialObjectFromString(name string) (CelestialObject, error) {
	for _, body := range catalog {
		if strings.EqualFold(body.Name, name) {
			return body, nil
		}
	}
	return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
}

func elems(a, e, i, Ω, ω, M0 float64) *KeplerElements {
	return &KeplerElements{a, e, Deg2rad(i), Deg2rad(Ω), Deg2rad(ω), Deg2rad(M0)}
}

/* Definitions. GM, J2 and radii are the JPL values; canonical orbits are J2000
mean elements. Barycenters carry their system GM for the solar fallback but are
skipped as gravity sources. */

// SSB is the solar system barycenter, origin of the inertial frame.
var SSB = CelestialObject{Name: "SSB", NAIF: 0, Kind: KindBarycenter, Parent: -1}

// Sun is our closest star. Its fallback position is the negated GM-weighted
// sum of the planetary barycenter positions.
var Sun = CelestialObject{Name: "Sun", NAIF: 10, Kind: KindStar, Parent: 0, Radius: 695700, μ: 1.32712440018e11}

var (
	mercuryBC = CelestialObject{Name: "Mercury Barycenter", NAIF: 1, Kind: KindBarycenter, Parent: 0, μ: 22031.86855,
		Orbit: elems(57909050.0, 0.2056, 7.005, 48.331, 29.124, 174.796)}
	venusBC = CelestialObject{Name: "Venus Barycenter", NAIF: 2, Kind: KindBarycenter, Parent: 0, μ: 324858.592,
		Orbit: elems(108208000.0, 0.0067, 3.3947, 76.680, 54.884, 50.416)}
	earthBC = CelestialObject{Name: "Earth Barycenter", NAIF: 3, Kind: KindBarycenter, Parent: 0, μ: 403503.2356,
		Orbit: elems(149598023.0, 0.0167, 0.000, -11.26064, 114.20783, 358.617)}
	marsBC = CelestialObject{Name: "Mars Barycenter", NAIF: 4, Kind: KindBarycenter, Parent: 0, μ: 42828.375214,
		Orbit: elems(227939200.0, 0.0935, 1.850, 49.558, 286.502, 19.373)}
	jupiterBC = CelestialObject{Name: "Jupiter Barycenter", NAIF: 5, Kind: KindBarycenter, Parent: 0, μ: 126712764.8,
		Orbit: elems(778570000.0, 0.0489, 1.303, 100.464, 273.867, 20.020)}
	saturnBC = CelestialObject{Name: "Saturn Barycenter", NAIF: 6, Kind: KindBarycenter, Parent: 0, μ: 37940585.2,
		Orbit: elems(1433530000.0, 0.0565, 2.485, 113.665, 339.392, 317.020)}
	uranusBC = CelestialObject{Name: "Uranus Barycenter", NAIF: 7, Kind: KindBarycenter, Parent: 0, μ: 5794556.4,
		Orbit: elems(2875040000.0, 0.0463, 0.773, 74.006, 96.998, 142.2386)}
	neptuneBC = CelestialObject{Name: "Neptune Barycenter", NAIF: 8, Kind: KindBarycenter, Parent: 0, μ: 6836527.1,
		Orbit: elems(4504450000.0, 0.0097, 1.770, 131.784, 273.187, 256.228)}
	plutoBC = CelestialObject{Name: "Pluto Barycenter", NAIF: 9, Kind: KindBarycenter, Parent: 0, μ: 975.5,
		Orbit: elems(5906440628.0, 0.2488, 17.16, 110.299, 113.834, 14.53)}
)

// Mercury is the smallest one.
var Mercury = CelestialObject{Name: "Mercury", NAIF: 199, Kind: KindPlanet, Parent: 1,
	Radius: 2439.7, μ: 22031.86855, J2: 6.0e-5, RotRate: 1.240e-6}

// Venus is poisonous.
var Venus = CelestialObject{Name: "Venus", NAIF: 299, Kind: KindPlanet, Parent: 2,
	Radius: 6051.8, μ: 324858.592, J2: 4.458e-6, RotRate: -2.992e-7}

// Earth is home.
var Earth = CelestialObject{Name: "Earth", NAIF: 399, Kind: KindPlanet, Parent: 3,
	Radius: 6378.1366, μ: 398600.435507, J2: 1.08262668e-3, RotRate: EarthRotationRate, Atm: EarthAtmosphere}

// Mars is the vacation place.
var Mars = CelestialObject{Name: "Mars", NAIF: 499, Kind: KindPlanet, Parent: 4,
	Radius: 3396.19, μ: 42828.375214, J2: 1.96045e-3, RotRate: 7.0882e-5, Atm: MarsAtmosphere}

// Jupiter is big.
var Jupiter = CelestialObject{Name: "Jupiter", NAIF: 599, Kind: KindPlanet, Parent: 5,
	Radius: 71492.0, μ: 126686531.9, J2: 1.4736e-2, RotRate: 1.75853e-4}

// Saturn floats and that's really cool.
var Saturn = CelestialObject{Name: "Saturn", NAIF: 699, Kind: KindPlanet, Parent: 6,
	Radius: 60268.0, μ: 37931207.8, J2: 1.6298e-2, RotRate: 1.63785e-4}

// Uranus is no joke.
var Uranus = CelestialObject{Name: "Uranus", NAIF: 799, Kind: KindPlanet, Parent: 7,
	Radius: 25559.0, μ: 5793951.3, J2: 3.343e-3, RotRate: -1.0124e-4}

// Neptune is deep blue.
var Neptune = CelestialObject{Name: "Neptune", NAIF: 899, Kind: KindPlanet, Parent: 8,
	Radius: 24764.0, μ: 6835103.1, J2: 3.411e-3, RotRate: 1.0834e-4}

// Pluto had that down ranking coming. It should have stayed in its lane.
var Pluto = CelestialObject{Name: "Pluto", NAIF: 999, Kind: KindPlanet, Parent: 9,
	Radius: 1188.3, μ: 869.613817, RotRate: -1.1386e-5}

// Moon is the Earth's moon.
var Moon = CelestialObject{Name: "Moon", NAIF: 301, Kind: KindMoon, Parent: 399,
	Radius: 1737.4, μ: 4902.800066, J2: 2.0323e-4,
	Orbit: elems(384400, 0.0549, 5.145, 125.08, 318.15, 115.3654)}

var (
	// Phobos and Deimos sit below the gravity threshold and only matter as
	// catalog entries.
	Phobos = CelestialObject{Name: "Phobos", NAIF: 401, Kind: KindMoon, Parent: 499,
		Radius: 11.08, μ: 0.0007112, Orbit: elems(9376, 0.0151, 1.093, 49.2, 150.057, 177.4)}
	Deimos = CelestialObject{Name: "Deimos", NAIF: 402, Kind: KindMoon, Parent: 499,
		Radius: 6.27, μ: 0.0000985, Orbit: elems(23463.2, 0.00033, 0.93, 316.65, 260.729, 53.2)}
	Io = CelestialObject{Name: "Io", NAIF: 501, Kind: KindMoon, Parent: 599,
		Radius: 1821.6, μ: 5959.9155, Orbit: elems(421800, 0.0041, 0.036, 43.977, 84.129, 171.016)}
	Europa = CelestialObject{Name: "Europa", NAIF: 502, Kind: KindMoon, Parent: 599,
		Radius: 1560.8, μ: 3202.7121, Orbit: elems(671100, 0.0094, 0.466, 219.106, 88.970, 29.298)}
	Ganymede = CelestialObject{Name: "Ganymede", NAIF: 503, Kind: KindMoon, Parent: 599,
		Radius: 2631.2, μ: 9887.8328, Orbit: elems(1070400, 0.0013, 0.177, 63.552, 192.417, 192.417)}
	Callisto = CelestialObject{Name: "Callisto", NAIF: 504, Kind: KindMoon, Parent: 599,
		Radius: 2410.3, μ: 7179.2834, Orbit: elems(1882700, 0.0074, 0.192, 298.848, 52.643, 52.643)}
	Titan = CelestialObject{Name: "Titan", NAIF: 606, Kind: KindMoon, Parent: 699,
		Radius: 2574.7, μ: 8978.0, Orbit: elems(1221870, 0.0288, 0.28, 28.06, 180.532, 163.31)}
	Triton = CelestialObject{Name: "Triton", NAIF: 801, Kind: KindMoon, Parent: 899,
		Radius: 1353.4, μ: 1427.598, Orbit: elems(354759, 0.000016, 156.885, 178.1, 0.0, 264.8)}
	Charon = CelestialObject{Name: "Charon", NAIF: 901, Kind: KindMoon, Parent: 999,
		Radius: 606.0, μ: 105.88, Orbit: elems(19591, 0.0002, 0.08, 223.046, 0.0, 30.89)}
)

// catalog lists every body the registry loads at initialization, parents
// before children.
var catalog = []CelestialObject{
	SSB, Sun,
	mercuryBC, venusBC, earthBC, marsBC, jupiterBC, saturnBC, uranusBC, neptuneBC, plutoBC,
	Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
	Moon, Phobos, Deimos, Io, Europa, Ganymede, Callisto, Titan, Triton, Charon,
}
