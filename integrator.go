package reentry

import (
	"math"
	"time"

	"github.com/ChristopherRabotin/ode"
)

// propagation advances one satellite by a single RK4 step of dt seconds. It
// implements the ode Integrable contract over the 6-state (R, V). Body
// positions are frozen at the step epoch, so the evaluation is fully
// deterministic.
type propagation struct {
	sat      *Satellite
	force    *ForceModel
	epoch    time.Time
	dt       float64
	iterated bool
	diverged bool
	decayed  bool
}

func newPropagation(sat *Satellite, force *ForceModel, epoch time.Time, dt float64) *propagation {
	return &propagation{sat: sat, force: force, epoch: epoch, dt: dt}
}

// step runs the single RK4 step in place on the satellite record.
func (p *propagation) step() error {
	ode.NewRK4(0, p.dt, p).Solve()
	if !p.diverged && !p.decayed {
		// A blown-up step can land on a finite but unphysical state, e.g.
		// when a stiff force term misbehaves inside a stage. Nothing in a
		// free propagation legitimately exceeds escape speed by 3x.
		central := p.force.registry.body(p.sat.CentralBody)
		vEsc := math.Sqrt(2 * central.μ / norm(p.sat.R))
		if norm(p.sat.V) > 3*vEsc {
			p.diverged = true
		}
	}
	if p.diverged {
		return IntegrationDivergedError{p.sat.ID}
	}
	return nil
}

// GetState returns the current 6-state of the satellite.
func (p *propagation) GetState() []float64 {
	return []float64{p.sat.R[0], p.sat.R[1], p.sat.R[2], p.sat.V[0], p.sat.V[1], p.sat.V[2]}
}

// SetState commits the integrated state. Position and velocity land together;
// a non-finite result leaves the last valid state untouched and flags the
// propagation as diverged.
func (p *propagation) SetState(t float64, s []float64) {
	if !isSane(s) {
		p.diverged = true
		return
	}
	copy(p.sat.R, s[0:3])
	copy(p.sat.V, s[3:6])
}

// Stop halts the integrator after exactly one step.
func (p *propagation) Stop(t float64) bool {
	if p.iterated || p.diverged {
		return true
	}
	p.iterated = true
	return false
}

// Func is the equation of motion: d(R,V)/dt = (V, acceleration).
func (p *propagation) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 6)
	probe := *p.sat
	probe.R = f[0:3]
	probe.V = f[3:6]
	acc, decayed := p.force.Acceleration(&probe, p.epoch)
	if decayed {
		p.decayed = true
	}
	fDot[0] = f[3]
	fDot[1] = f[4]
	fDot[2] = f[5]
	fDot[3] = acc[0]
	fDot[4] = acc[1]
	fDot[5] = acc[2]
	return
}
