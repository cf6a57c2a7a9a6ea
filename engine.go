package reentry

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

type engineState uint8

const (
	// Uninitialized is the state before Initialize is called.
	Uninitialized engineState = iota
	// Initializing is the transient state while the registry loads.
	Initializing
	// Ready accepts stepping and satellite mutations.
	Ready
)

// Engine owns the body registry and the set of tracked satellites, and
// advances simulated time. A single logical caller drives it; concurrent
// mutation during an in-flight step is rejected with StepInProgressError.
type Engine struct {
	cfg      Config
	logger   kitlog.Logger
	registry *Registry
	force    *ForceModel
	epoch    time.Time
	sats     map[string]*Satellite
	order    []string // insertion order, for deterministic stepping and export
	state    engineState
	busy     uint32 // step-in-progress guard, CAS 0->1
	histChan chan ExportState
	exportWG sync.WaitGroup
}

// New returns an engine for the given configuration. A nil logger is allowed.
func New(cfg Config, logger kitlog.Logger) *Engine {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Engine{
		cfg:    cfg,
		logger: kitlog.With(logger, "subsys", "engine"),
		sats:   make(map[string]*Satellite),
	}
}

// Initialize loads the body registry and sets the epoch from the configured
// start date. It must complete before any other engine operation.
func (e *Engine) Initialize() error {
	if e.state != Uninitialized {
		return fmt.Errorf("engine already initialized")
	}
	e.state = Initializing
	e.registry = NewRegistry()
	e.force = NewForceModel(e.registry, e.cfg.Perts)
	e.epoch = e.cfg.StartDate.UTC()
	e.registry.UpdatePositions(e.epoch)
	e.state = Ready
	e.logger.Log("level", "info", "status", "initialized", "epoch", e.epoch, "bodies", len(e.registry.order))
	return nil
}

// Epoch returns the current simulated epoch.
func (e *Engine) Epoch() time.Time {
	return e.epoch
}

// Registry exposes the body registry for read-only lookups.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// StreamTo starts streaming per-step satellite states to the export writer.
// Call before the first Step; Close flushes and waits for the writer.
func (e *Engine) StreamTo(conf ExportConfig) {
	if conf.IsUseless() || e.histChan != nil {
		return
	}
	e.histChan = make(chan ExportState, 1000)
	// The writer gets its own reference: Close nils out the field.
	ch := e.histChan
	e.exportWG.Add(1)
	go func() {
		defer e.exportWG.Done()
		StreamStates(e.cfg.OutputDir, conf, ch)
	}()
}

// Close terminates the export stream, if any, and waits for it to flush.
func (e *Engine) Close() {
	if e.histChan != nil {
		close(e.histChan)
		e.histChan = nil
	}
	e.exportWG.Wait()
}

// AddSatellite starts tracking a satellite from the given spec.
func (e *Engine) AddSatellite(spec SatelliteSpec) error {
	if e.state != Ready {
		return NotInitializedError{"addSatellite"}
	}
	if !atomic.CompareAndSwapUint32(&e.busy, 0, 1) {
		return StepInProgressError{"addSatellite"}
	}
	defer atomic.StoreUint32(&e.busy, 0)
	if err := spec.validate(); err != nil {
		return err
	}
	if _, tracked := e.sats[spec.ID]; tracked {
		return DuplicateIDError{spec.ID}
	}
	if e.registry.body(spec.CentralBody) == nil {
		return UnknownBodyError{spec.CentralBody}
	}
	e.sats[spec.ID] = newSatellite(spec)
	e.order = append(e.order, spec.ID)
	satellitesTracked.Set(float64(len(e.sats)))
	e.logger.Log("level", "info", "added", spec.ID, "center", spec.CentralBody)
	return nil
}

// RemoveSatellite stops tracking the satellite with the given id.
func (e *Engine) RemoveSatellite(id string) error {
	if e.state != Ready {
		return NotInitializedError{"removeSatellite"}
	}
	if !atomic.CompareAndSwapUint32(&e.busy, 0, 1) {
		return StepInProgressError{"removeSatellite"}
	}
	defer atomic.StoreUint32(&e.busy, 0)
	if _, tracked := e.sats[id]; !tracked {
		return UnknownSatelliteError{id}
	}
	delete(e.sats, id)
	for i, sid := range e.order {
		if sid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	satellitesTracked.Set(float64(len(e.sats)))
	satellitesInvalid.Set(float64(e.invalidCount()))
	e.logger.Log("level", "info", "removed", id)
	return nil
}

// Step advances the simulated epoch by dt seconds: first the body phase
// (registry update for the new epoch), then, behind a full barrier, the
// satellite phase. Satellites are independent of each other, so the satellite
// phase fans out over a worker pool; each worker owns the satellites it
// integrates and no state is shared between them.
func (e *Engine) Step(dt float64) error {
	if e.state != Ready {
		return NotInitializedError{"step"}
	}
	if dt <= 0 {
		return fmt.Errorf("step duration must be positive, got %f", dt)
	}
	if !atomic.CompareAndSwapUint32(&e.busy, 0, 1) {
		return StepInProgressError{"step"}
	}
	defer atomic.StoreUint32(&e.busy, 0)
	start := time.Now()

	epoch := e.epoch.Add(time.Duration(dt * float64(time.Second)))
	e.registry.UpdatePositions(epoch)

	active := make([]*Satellite, 0, len(e.sats))
	for _, id := range e.order {
		if sat := e.sats[id]; !sat.Invalid {
			active = append(active, sat)
		}
	}

	type stepResult struct {
		id      string
		err     error
		decayed bool
	}
	jobs := make(chan *Satellite)
	results := make(chan stepResult, len(active))
	var wg sync.WaitGroup
	for w := 0; w < e.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sat := range jobs {
				prop := newPropagation(sat, e.force, epoch, dt)
				err := prop.step()
				results <- stepResult{sat.ID, err, prop.decayed}
			}
		}()
	}
	for _, sat := range active {
		jobs <- sat
	}
	close(jobs)
	wg.Wait()
	close(results)

	for res := range results {
		sat := e.sats[res.id]
		switch {
		case res.err != nil:
			sat.Invalid = true
			sat.Reason = "diverged"
			divergencesTotal.Inc()
			e.logger.Log("level", "critical", "diverged", res.id, "epoch", epoch)
		case res.decayed:
			sat.Invalid = true
			sat.Reason = "decayed"
			e.logger.Log("level", "critical", "decayed", res.id, "epoch", epoch, "r", norm(sat.R))
		}
	}

	e.epoch = epoch
	if e.histChan != nil {
		for _, id := range e.order {
			e.histChan <- ExportState{DT: epoch, Sat: e.sats[id].snapshot()}
		}
	}
	stepsTotal.Inc()
	stepDurationSeconds.Observe(time.Since(start).Seconds())
	satellitesInvalid.Set(float64(e.invalidCount()))
	return nil
}

// SatelliteState is a value snapshot of one tracked satellite.
type SatelliteState struct {
	Position []float64
	Velocity []float64
	Altitude float64
	Invalid  bool
	Reason   string
}

// BodyState is a value snapshot of one registered body.
type BodyState struct {
	Position    []float64
	Velocity    []float64
	Orientation [4]float64
}

// Snapshot is the externally visible aggregate state at an epoch. It is a
// deep copy: mutating it never affects the engine.
type Snapshot struct {
	Epoch      time.Time
	Satellites map[string]SatelliteState
	Bodies     map[int]BodyState
}

// State returns an immutable copy of all satellite and body states at the
// current epoch.
func (e *Engine) State() (Snapshot, error) {
	if e.state != Ready {
		return Snapshot{}, NotInitializedError{"getSimulationState"}
	}
	if !atomic.CompareAndSwapUint32(&e.busy, 0, 1) {
		return Snapshot{}, StepInProgressError{"getSimulationState"}
	}
	defer atomic.StoreUint32(&e.busy, 0)

	snap := Snapshot{
		Epoch:      e.epoch,
		Satellites: make(map[string]SatelliteState, len(e.sats)),
		Bodies:     make(map[int]BodyState, len(e.registry.order)),
	}
	for id, sat := range e.sats {
		central := e.registry.body(sat.CentralBody)
		snap.Satellites[id] = SatelliteState{
			Position: append([]float64(nil), sat.R...),
			Velocity: append([]float64(nil), sat.V...),
			Altitude: sat.Altitude(*central),
			Invalid:  sat.Invalid,
			Reason:   sat.Reason,
		}
	}
	for _, naif := range e.registry.order {
		body := e.registry.body(naif)
		snap.Bodies[naif] = BodyState{
			Position:    append([]float64(nil), body.Position...),
			Velocity:    append([]float64(nil), body.Velocity...),
			Orientation: body.Orientation,
		}
	}
	return snap, nil
}

// Satellite returns the state of a single tracked satellite.
func (e *Engine) Satellite(id string) (SatelliteState, error) {
	if e.state != Ready {
		return SatelliteState{}, NotInitializedError{"satellite"}
	}
	sat, tracked := e.sats[id]
	if !tracked {
		return SatelliteState{}, UnknownSatelliteError{id}
	}
	central := e.registry.body(sat.CentralBody)
	return SatelliteState{
		Position: append([]float64(nil), sat.R...),
		Velocity: append([]float64(nil), sat.V...),
		Altitude: sat.Altitude(*central),
		Invalid:  sat.Invalid,
		Reason:   sat.Reason,
	}, nil
}

func (e *Engine) invalidCount() (n int) {
	for _, sat := range e.sats {
		if sat.Invalid {
			n++
		}
	}
	return
}

func (e *Engine) workers() int {
	if e.cfg.Workers > 0 {
		return e.cfg.Workers
	}
	return runtime.NumCPU()
}
