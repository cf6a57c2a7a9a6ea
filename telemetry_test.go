package reentry

import (
	"testing"
	"time"

	"github.com/gonum/floats"
	"github.com/soniakeys/meeus/julian"
)

func TestTimeSyncFrame(t *testing.T) {
	epoch := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)
	frame := EncodeTimeSync(epoch, 30)
	if len(frame) != 17 {
		t.Fatalf("time sync frame is %d bytes", len(frame))
	}
	if frame[0] != MessageTimeSync {
		t.Fatalf("wrong type byte %d", frame[0])
	}
	dec, err := DecodeTimeSync(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(dec.JD, julian.TimeToJD(epoch), 1e-9) {
		t.Fatalf("JD roundtrip lost precision: %f", dec.JD)
	}
	if dec.Warp != 30 {
		t.Fatalf("warp roundtrip lost precision: %f", dec.Warp)
	}
	if _, err = DecodeTimeSync(frame[:16]); err == nil {
		t.Fatal("truncated frame must not decode")
	}
	frame[0] = MessageBodyState
	if _, err = DecodeTimeSync(frame); err == nil {
		t.Fatal("wrong type byte must not decode")
	}
}

func TestBodyStateFrame(t *testing.T) {
	state := BodyState{
		Position:    []float64{1.5e8, -2.3e7, 4.2e4},
		Velocity:    []float64{-29.78, 5.12, 0.003},
		Orientation: [4]float64{0.7071, 0, 0, 0.7071},
	}
	frame := EncodeBodyState(399, state)
	if len(frame) != 85 {
		t.Fatalf("body state frame is %d bytes", len(frame))
	}
	if frame[0] != MessageBodyState {
		t.Fatalf("wrong type byte %d", frame[0])
	}
	dec, err := DecodeBodyState(frame)
	if err != nil {
		t.Fatal(err)
	}
	if dec.NAIF != 399 {
		t.Fatalf("NAIF roundtrip lost: %d", dec.NAIF)
	}
	for i := 0; i < 3; i++ {
		if dec.Position[i] != state.Position[i] || dec.Velocity[i] != state.Velocity[i] {
			t.Fatal("state roundtrip lost precision")
		}
	}
	if dec.Orientation != state.Orientation {
		t.Fatal("orientation roundtrip lost precision")
	}
	if _, err = DecodeBodyState(frame[:84]); err == nil {
		t.Fatal("truncated frame must not decode")
	}
}

func TestTelemetryFrames(t *testing.T) {
	e := New(DefaultConfig(), nil)
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	snap, err := e.State()
	if err != nil {
		t.Fatal(err)
	}
	frames := TelemetryFrames(snap, 1)
	if len(frames) != len(snap.Bodies)+1 {
		t.Fatalf("expected %d frames, got %d", len(snap.Bodies)+1, len(frames))
	}
	if frames[0][0] != MessageTimeSync {
		t.Fatal("first frame must be the time sync")
	}
	prev := -1
	for _, frame := range frames[1:] {
		if frame[0] != MessageBodyState {
			t.Fatal("expected a body state frame")
		}
		dec, err := DecodeBodyState(frame)
		if err != nil {
			t.Fatal(err)
		}
		if int(dec.NAIF) <= prev {
			t.Fatal("body frames not in NAIF order")
		}
		prev = int(dec.NAIF)
	}
}
