package reentry

import "fmt"

// NotInitializedError is returned when an engine operation is attempted
// before Initialize has completed.
type NotInitializedError struct {
	Op string
}

func (e NotInitializedError) Error() string {
	return fmt.Sprintf("engine not initialized: cannot %s", e.Op)
}

// UnknownBodyError is returned on a lookup for an unregistered NAIF identifier.
type UnknownBodyError struct {
	NAIF int
}

func (e UnknownBodyError) Error() string {
	return fmt.Sprintf("no body registered with NAIF id %d", e.NAIF)
}

// UnknownSatelliteError is returned on a lookup for an untracked satellite.
type UnknownSatelliteError struct {
	ID string
}

func (e UnknownSatelliteError) Error() string {
	return fmt.Sprintf("no satellite tracked with id %q", e.ID)
}

// DuplicateIDError is returned when adding a satellite whose id is already tracked.
type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("satellite id %q already tracked", e.ID)
}

// IntegrationDivergedError indicates that a satellite state turned NaN/Inf
// during a step. The satellite is marked invalid and excluded from further
// stepping; the rest of the simulation continues.
type IntegrationDivergedError struct {
	ID string
}

func (e IntegrationDivergedError) Error() string {
	return fmt.Sprintf("integration diverged for satellite %q", e.ID)
}

// StepInProgressError is returned when a mutation is attempted while a step
// is in flight.
type StepInProgressError struct {
	Op string
}

func (e StepInProgressError) Error() string {
	return fmt.Sprintf("step in progress: cannot %s", e.Op)
}
