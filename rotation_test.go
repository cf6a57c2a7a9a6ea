package reentry

import (
	"math"
	"testing"
	"time"
)

func TestR1R2R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r2 := R2(x)
	r3 := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r2.At(1, 1) || r1.At(0, 0) != r3.At(2, 2) || r3.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R2.At(1, 1) = R3.At(2, 2) = 1\n")
	}
	// Test R1.
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced\n")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced\n")
	}
	// Test R2.
	if r2.At(0, 0) != r2.At(2, 2) || r2.At(2, 2) != c {
		t.Fatal("expected R2 cosines misplaced\n")
	}
	if r2.At(2, 0) != -r2.At(0, 2) || r2.At(2, 0) != s {
		t.Fatal("expected R2 sines misplaced\n")
	}
	// Test R3.
	if r3.At(1, 1) != r3.At(0, 0) || r3.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced\n")
	}
	if r3.At(0, 1) != -r3.At(1, 0) || r3.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced\n")
	}
}

func TestPQW2ECI(t *testing.T) {
	// With all angles zero the perifocal and inertial frames coincide.
	v := []float64{1234.5, -987.6, 0}
	if !vectorsEqual(PQW2ECI(0, 0, 0, v), v) {
		t.Fatal("identity rotation broken")
	}
	// A pure RAAN rotation about the third axis keeps the norm.
	r := PQW2ECI(0, 0, math.Pi/4, v)
	if math.Abs(norm(r)-norm(v)) > 1e-9 {
		t.Fatal("rotation changed the norm")
	}
	// A polar orbit maps the in-plane normal onto the pole.
	p := PQW2ECI(math.Pi/2, 0, 0, []float64{0, 1, 0})
	if !vectorsEqual(p, []float64{0, 0, 1}) {
		t.Fatalf("polar rotation broken: %+v", p)
	}
}

func TestECIECEFRoundTrip(t *testing.T) {
	dt := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)
	θ := GMST(dt)
	if θ < 0 || θ >= 2*math.Pi {
		t.Fatalf("GMST out of range: %f", θ)
	}
	R := []float64{6524.834, 6862.875, 6448.296}
	if !vectorsEqual(ECEF2ECI(ECI2ECEF(R, θ), θ), R) {
		t.Fatal("ECI -> ECEF -> ECI is not the identity")
	}
}

func TestGMSTAdvance(t *testing.T) {
	// The Earth rotates by about 15 degrees per hour.
	dt := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)
	θ0 := GMST(dt)
	θ1 := GMST(dt.Add(time.Hour))
	delta := math.Mod(θ1-θ0+2*math.Pi, 2*math.Pi)
	if math.Abs(Rad2deg(delta)-15.04) > 0.1 {
		t.Fatalf("GMST advanced by %f degrees in one hour", Rad2deg(delta))
	}
}
