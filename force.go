package reentry

import (
	"math"
	"time"
)

const (
	// minBodyGM is the negligible-mass threshold: bodies whose GM is below it
	// are skipped as third-body gravity sources.
	minBodyGM = 1.0 // km^3/s^2
	// minDistance guards the gravity singularity.
	minDistance = 1e-3 // km
)

// Perturbations selects which force contributions are evaluated on top of the
// central gravity term.
type Perturbations struct {
	Jn        uint8 // oblateness factors to be used (only J2 supported)
	ThirdBody bool  // differential gravity of every other registered body
	Drag      bool  // atmospheric drag below the central body's cutoff
}

// FullPerturbations enables every force contribution the model knows.
func FullPerturbations() Perturbations {
	return Perturbations{Jn: 2, ThirdBody: true, Drag: true}
}

// ForceModel computes the net inertial acceleration on a satellite. It reads
// body state frozen by the registry for the current step and never mutates
// its inputs.
type ForceModel struct {
	registry *Registry
	perts    Perturbations
}

// NewForceModel returns a force model over the given registry.
func NewForceModel(registry *Registry, perts Perturbations) *ForceModel {
	return &ForceModel{registry: registry, perts: perts}
}

// Acceleration returns the acceleration in km/s² on the satellite at its
// current state. The decayed flag is set instead of ever returning a
// non-finite vector: below the central body's surface (or inside another
// body's singularity guard) the satellite is done.
func (f *ForceModel) Acceleration(sat *Satellite, epoch time.Time) (acc []float64, decayed bool) {
	acc = make([]float64, 3)
	central := f.registry.body(sat.CentralBody)
	rNorm := norm(sat.R)
	if rNorm < central.Radius || rNorm < minDistance {
		return acc, true
	}
	if f.perts.Drag && central.Atm != nil && rNorm < central.Radius+central.Atm.ReentryAlt {
		return acc, true
	}

	// Central body gravity.
	bodyAcc := -central.μ / math.Pow(rNorm, 3)
	for i := 0; i < 3; i++ {
		acc[i] = bodyAcc * sat.R[i]
	}

	if f.perts.Jn >= 2 && central.J2 != 0 {
		// J2 in Cartesian closed form.
		x, y, z := sat.R[0], sat.R[1], sat.R[2]
		z2 := z * z
		z3 := z2 * z
		r2 := x*x + y*y + z2
		r252 := math.Pow(r2, 5/2.)
		r272 := math.Pow(r2, 7/2.)
		accJ2 := (3 / 2.) * central.J2 * math.Pow(central.Radius, 2) * central.μ
		acc[0] += accJ2 * (5*x*z2/r272 - x/r252)
		acc[1] += accJ2 * (5*y*z2/r272 - y/r252)
		acc[2] += accJ2 * (5*z3/r272 - 3*z/r252)
	}

	if f.perts.ThirdBody {
		for _, naif := range f.registry.order {
			body := f.registry.body(naif)
			if naif == central.NAIF || body.Kind == KindBarycenter || body.μ < minBodyGM {
				continue
			}
			// Differential gravity: direct pull on the satellite minus the
			// pull on the frame origin.
			bodyR := make([]float64, 3) // central body to perturbing body
			scR := make([]float64, 3)   // satellite to perturbing body
			for i := 0; i < 3; i++ {
				bodyR[i] = body.Position[i] - central.Position[i]
				scR[i] = bodyR[i] - sat.R[i]
			}
			scNorm := norm(scR)
			if scNorm < minDistance {
				return make([]float64, 3), true
			}
			bodyNorm3 := math.Pow(norm(bodyR), 3)
			scNorm3 := math.Pow(scNorm, 3)
			for i := 0; i < 3; i++ {
				acc[i] += body.μ * (scR[i]/scNorm3 - bodyR[i]/bodyNorm3)
			}
		}
	}

	if f.perts.Drag && central.Atm != nil {
		alt := rNorm - central.Radius
		if ρ := central.Atm.Density(alt); ρ > 0 {
			// Velocity relative to the co-rotating atmosphere.
			vAtm := cross([]float64{0, 0, central.RotRate}, sat.R)
			vRel := make([]float64, 3)
			for i := 0; i < 3; i++ {
				vRel[i] = sat.V[i] - vAtm[i]
			}
			vRelNorm := norm(vRel)
			// ½ρv²·CdA/m with ρ in kg/m³ and v in km/s works out to a factor
			// of 500 for km/s² output.
			dragAcc := -500 * ρ * vRelNorm * sat.DragCoeff * sat.Area / sat.Mass
			for i := 0; i < 3; i++ {
				acc[i] += dragAcc * vRel[i]
			}
		}
	}

	if !isSane(acc) {
		return make([]float64, 3), true
	}
	return acc, false
}
