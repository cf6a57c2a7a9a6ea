package reentry

import (
	"strings"
	"testing"
)

const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func TestSatelliteSpecFromTLE(t *testing.T) {
	epoch := SpecEpoch{Year: 2008, Month: 9, Day: 20, Hour: 12, Minute: 25, Second: 40}
	spec, err := SatelliteSpecFromTLE("iss", issLine1, issLine2, epoch, 420000, 2500, 2.2)
	if err != nil {
		t.Fatalf("TLE seeding failed: %s", err)
	}
	if spec.ID != "iss" || spec.CentralBody != Earth.NAIF {
		t.Fatalf("wrong spec identity: %+v", spec)
	}
	r := norm(spec.Position)
	if r < 6650 || r > 6850 {
		t.Fatalf("ISS radius is %f km", r)
	}
	v := norm(spec.Velocity)
	if v < 7.5 || v > 7.8 {
		t.Fatalf("ISS speed is %f km/s", v)
	}
	if spec.Mass != 420000 || spec.Area != 2500 || spec.DragCoeff != 2.2 {
		t.Fatal("ballistic properties not carried over")
	}

	// The spec can seed an engine directly.
	e := New(DefaultConfig(), nil)
	if err = e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err = e.AddSatellite(spec); err != nil {
		t.Fatalf("TLE spec rejected by the engine: %s", err)
	}
}

func TestSatelliteSpecFromTLEValidation(t *testing.T) {
	epoch := SpecEpoch{Year: 2008, Month: 9, Day: 20}
	if _, err := SatelliteSpecFromTLE("x", "garbage", issLine2, epoch, 1, 1, 2.2); err == nil {
		t.Fatal("short line1 accepted")
	}
	if _, err := SatelliteSpecFromTLE("x", issLine1, strings.Replace(issLine2, "2 ", "3 ", 1), epoch, 1, 1, 2.2); err == nil {
		t.Fatal("bad line2 prefix accepted")
	}
	if _, err := SatelliteSpecFromTLE("x", issLine2, issLine1, epoch, 1, 1, 2.2); err == nil {
		t.Fatal("swapped lines accepted")
	}
	// Surrounding whitespace is tolerated.
	if _, err := SatelliteSpecFromTLE("x", " "+issLine1+" ", issLine2+"\n", epoch, 1, 1, 2.2); err != nil {
		t.Fatalf("whitespace not trimmed: %s", err)
	}
}
