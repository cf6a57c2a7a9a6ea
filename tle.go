package reentry

import (
	"fmt"
	"strings"

	satellite "github.com/joshuaferrara/go-satellite"
)

// SatelliteSpecFromTLE builds a satellite spec from two-line elements,
// evaluated at the given epoch via SGP4. The resulting state vector is Earth
// centered inertial (TEME), which is close enough to the catalog frame for
// seeding purposes.
//
// The TLE is pre-validated because go-satellite terminates the process on
// malformed input.
func SatelliteSpecFromTLE(id, line1, line2 string, epoch SpecEpoch, mass, area, dragCoeff float64) (SatelliteSpec, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return SatelliteSpec{}, fmt.Errorf("invalid TLE for %q: %s", id, err)
	}
	sat := satellite.TLEToSat(strings.TrimSpace(line1), strings.TrimSpace(line2), satellite.GravityWGS84)
	if sat.Error != 0 {
		return SatelliteSpec{}, fmt.Errorf("sgp4 init failed for %q: code=%d", id, sat.Error)
	}
	pos, vel := satellite.Propagate(sat, epoch.Year, epoch.Month, epoch.Day, epoch.Hour, epoch.Minute, epoch.Second)
	spec := SatelliteSpec{
		ID:          id,
		CentralBody: Earth.NAIF,
		Position:    []float64{pos.X, pos.Y, pos.Z},
		Velocity:    []float64{vel.X, vel.Y, vel.Z},
		Mass:        mass,
		Area:        area,
		DragCoeff:   dragCoeff,
	}
	if !isSane(spec.Position) || !isSane(spec.Velocity) {
		return SatelliteSpec{}, fmt.Errorf("sgp4 produced a non-finite state for %q", id)
	}
	return spec, nil
}

// SpecEpoch is the UTC instant at which the TLE is evaluated.
type SpecEpoch struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1'")
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2'")
	}
	return nil
}
