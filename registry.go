package reentry

import (
	"math"
	"time"
)

// j2000 is the reference epoch of the canonical elements.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// Registry holds every tracked celestial body and advances their barycentric
// state from the canonical elements. It is read-many/write-once-per-step: the
// engine updates it in the body phase of a step, before any force evaluation.
type Registry struct {
	bodies map[int]*CelestialObject
	order  []int // catalog order, parents before children
	epoch  time.Time
}

// NewRegistry loads the full catalog. Positions are those of the J2000 epoch
// until the first UpdatePositions call.
func NewRegistry() *Registry {
	r := &Registry{bodies: make(map[int]*CelestialObject, len(catalog))}
	for i := range catalog {
		body := catalog[i]
		body.Position = []float64{0, 0, 0}
		body.Velocity = []float64{0, 0, 0}
		body.Orientation = [4]float64{1, 0, 0, 0}
		r.bodies[body.NAIF] = &body
		r.order = append(r.order, body.NAIF)
	}
	r.UpdatePositions(j2000)
	return r
}

// Epoch returns the epoch of the current body states.
func (r *Registry) Epoch() time.Time {
	return r.epoch
}

// Body returns a copy of the body with the given NAIF id.
func (r *Registry) Body(naif int) (CelestialObject, error) {
	b, found := r.bodies[naif]
	if !found {
		return CelestialObject{}, UnknownBodyError{naif}
	}
	body := *b
	body.Position = append([]float64(nil), b.Position...)
	body.Velocity = append([]float64(nil), b.Velocity...)
	return body, nil
}

// body returns the live record, nil when unregistered. Callers must not
// mutate it; only UpdatePositions writes body state.
func (r *Registry) body(naif int) *CelestialObject {
	return r.bodies[naif]
}

// UpdatePositions advances every body to the given epoch: barycenters about
// the SSB, the Sun as the negated GM-weighted sum of the barycenters, planets
// riding their barycenter, moons about their planet. Spin advances each
// body's orientation about its pole.
func (r *Registry) UpdatePositions(epoch time.Time) {
	Δt := epoch.Sub(j2000).Seconds()
	sun := r.bodies[Sun.NAIF]

	// Barycenters first: they anchor everything else.
	for _, naif := range r.order {
		b := r.bodies[naif]
		if b.Kind != KindBarycenter || b.Orbit == nil {
			continue
		}
		b.Position, b.Velocity = b.Orbit.rv(sun.μ, Δt)
	}

	// The Sun balances the planetary barycenters about the SSB.
	sunR := []float64{0, 0, 0}
	sunV := []float64{0, 0, 0}
	for _, naif := range r.order {
		b := r.bodies[naif]
		if b.Kind != KindBarycenter || b.Orbit == nil {
			continue
		}
		w := b.μ / sun.μ
		for i := 0; i < 3; i++ {
			sunR[i] -= w * b.Position[i]
			sunV[i] -= w * b.Velocity[i]
		}
	}
	sun.Position, sun.Velocity = sunR, sunV

	// Planets and moons resolve their parent chain; the catalog orders
	// parents before children.
	for _, naif := range r.order {
		b := r.bodies[naif]
		switch b.Kind {
		case KindPlanet:
			parent := r.bodies[b.Parent]
			copy(b.Position, parent.Position)
			copy(b.Velocity, parent.Velocity)
		case KindMoon:
			parent := r.bodies[b.Parent]
			R, V := b.Orbit.rv(parent.μ, Δt)
			for i := 0; i < 3; i++ {
				b.Position[i] = parent.Position[i] + R[i]
				b.Velocity[i] = parent.Velocity[i] + V[i]
			}
		}
		if b.RotRate != 0 {
			θ := math.Mod(b.RotRate*Δt, 2*math.Pi)
			s, c := math.Sincos(θ / 2)
			b.Orientation = [4]float64{c, 0, 0, s}
		}
	}
	r.epoch = epoch
}
