package reentry

import "fmt"

// SatelliteSpec is the caller-provided definition of a tracked satellite.
// Position and velocity are in km and km/s, in the inertial frame centered on
// the central body. Mass is in kg, area in m².
type SatelliteSpec struct {
	ID          string
	CentralBody int // NAIF id
	Position    []float64
	Velocity    []float64
	Mass        float64
	Area        float64
	DragCoeff   float64
}

func (s SatelliteSpec) validate() error {
	if s.ID == "" {
		return fmt.Errorf("satellite id may not be empty")
	}
	if len(s.Position) != 3 || len(s.Velocity) != 3 {
		return fmt.Errorf("satellite %q: position and velocity must be 3-vectors", s.ID)
	}
	if !isSane(s.Position) || !isSane(s.Velocity) {
		return fmt.Errorf("satellite %q: non-finite initial state", s.ID)
	}
	if s.Mass <= 0 {
		return fmt.Errorf("satellite %q: mass must be positive", s.ID)
	}
	if s.Area < 0 || s.DragCoeff < 0 {
		return fmt.Errorf("satellite %q: area and drag coefficient must not be negative", s.ID)
	}
	return nil
}

// Satellite is the engine-owned record of a tracked satellite. R and V are
// updated atomically by the integrator each step; an invalid satellite keeps
// its last valid state and is excluded from stepping.
type Satellite struct {
	ID          string
	CentralBody int
	R, V        []float64
	Mass        float64
	Area        float64
	DragCoeff   float64
	Invalid     bool
	Reason      string // why the satellite was invalidated
}

func newSatellite(spec SatelliteSpec) *Satellite {
	return &Satellite{
		ID:          spec.ID,
		CentralBody: spec.CentralBody,
		R:           append([]float64(nil), spec.Position...),
		V:           append([]float64(nil), spec.Velocity...),
		Mass:        spec.Mass,
		Area:        spec.Area,
		DragCoeff:   spec.DragCoeff,
	}
}

// Altitude returns the altitude in km above the given central body's surface.
func (s *Satellite) Altitude(central CelestialObject) float64 {
	return norm(s.R) - central.Radius
}

// snapshot returns a detached copy of the record. The integrator mutates R
// and V in place, so anything read outside the step must not alias them.
func (s *Satellite) snapshot() Satellite {
	out := *s
	out.R = append([]float64(nil), s.R...)
	out.V = append([]float64(nil), s.V...)
	return out
}
