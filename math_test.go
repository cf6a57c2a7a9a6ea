package reentry

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestCross(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if !vectorsEqual(cross(i, j), k) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqual(cross(j, k), i) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqual(cross([]float64{2, 3, 4}, []float64{5, 6, 7}), []float64{-3, 6, -3}) {
		t.Fatal("cross fail")
	}
	// From Vallado
	if !vectorsEqual(cross([]float64{6524.834, 6862.875, 6448.296}, []float64{4.901327, 5.533756, -1.976341}), []float64{-4.924667792015100e4, 4.450050424118601e4, 0.246964476137900e4}) {
		t.Fatal("cross fail")
	}
}

func TestAngles(t *testing.T) {
	for i := 0.0; i < 360; i += 0.5 {
		if ok, _ := anglesEqual(Deg2rad(i), Deg2rad(Rad2deg(Deg2rad(i)))); !ok {
			t.Fatalf("incorrect conversion for %3.2f", i)
		}
	}
	if Rad2deg(Deg2rad(360)) != 0 {
		t.Fatal("incorrect conversion for 360")
	}
	if ok, _ := anglesEqual(Deg2rad(1), Deg2rad(-359.)); !ok {
		t.Fatal("incorrect conversion for -359")
	}
	if ok, _ := anglesEqual(Deg2rad(180), Deg2rad(-180.)); !ok {
		t.Fatal("incorrect conversion for -180")
	}
	if ok, _ := anglesEqual(math.Pi/3, Deg2rad(Rad2deg(-5*math.Pi/3))); !ok {
		t.Fatal("incorrect conversion for -pi/3")
	}
}

func TestMisc(t *testing.T) {
	if vectorsEqual([]float64{1, 0}, []float64{1, 0, 0}) {
		t.Fatal("vectors of different sizes should not be equal")
	}
	if sign(10) != 1 || sign(-10) != -1 || sign(0) != 1 {
		t.Fatal("sign broken")
	}
	if !vectorsEqual(unit([]float64{0, 0, 0}), []float64{0, 0, 0}) {
		t.Fatal("unit of a zero vector should be zero")
	}
	u := unit([]float64{3, 4, 0})
	if !floats.EqualWithinAbs(norm(u), 1, 1e-12) {
		t.Fatal("unit vector does not have norm 1")
	}
	if !floats.EqualWithinAbs(dot([]float64{1, 2, 3}, []float64{4, 5, 6}), 32, 1e-12) {
		t.Fatal("dot product broken")
	}
}

func TestIsSane(t *testing.T) {
	if !isSane([]float64{1, 2, 3}) {
		t.Fatal("finite vector flagged as insane")
	}
	if isSane([]float64{1, math.NaN(), 3}) {
		t.Fatal("NaN not flagged")
	}
	if isSane([]float64{1, 2, math.Inf(1)}) {
		t.Fatal("+Inf not flagged")
	}
	if isSane([]float64{math.Inf(-1), 2, 3}) {
		t.Fatal("-Inf not flagged")
	}
}
