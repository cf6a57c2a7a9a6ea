package reentry

import "testing"

func TestSatelliteSpecValidate(t *testing.T) {
	good := leoSpec("ok")
	if err := good.validate(); err != nil {
		t.Fatalf("valid spec rejected: %s", err)
	}
	noID := leoSpec("")
	if err := noID.validate(); err == nil {
		t.Fatal("empty id accepted")
	}
	short := leoSpec("short")
	short.Position = []float64{1, 2}
	if err := short.validate(); err == nil {
		t.Fatal("2-vector position accepted")
	}
	negArea := leoSpec("area")
	negArea.Area = -1
	if err := negArea.validate(); err == nil {
		t.Fatal("negative area accepted")
	}
}

func TestSatelliteSnapshotDetached(t *testing.T) {
	sat := newSatellite(leoSpec("iss"))
	snap := sat.snapshot()
	sat.R[0] += 100
	sat.V[1] -= 1
	if snap.R[0] == sat.R[0] || snap.V[1] == sat.V[1] {
		t.Fatal("snapshot aliases the live record")
	}
	if snap.ID != sat.ID || snap.Mass != sat.Mass {
		t.Fatal("snapshot lost the scalar fields")
	}
}
