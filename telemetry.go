package reentry

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// Message types of the embedding application's binary telemetry protocol.
const (
	// MessageTimeSync carries the simulated epoch and the playback warp.
	MessageTimeSync byte = 2
	// MessageBodyState carries one body's barycentric state in an 85-byte frame.
	MessageBodyState byte = 10

	timeSyncFrameLen  = 17
	bodyStateFrameLen = 85
)

// TimeSyncFrame is the decoded form of a MessageTimeSync frame. Warp is a
// transport-level playback factor; it never reaches the physics.
type TimeSyncFrame struct {
	JD   float64
	Warp float64
}

// EncodeTimeSync encodes the epoch as a Julian date plus the playback warp.
func EncodeTimeSync(epoch time.Time, warp float64) []byte {
	buf := make([]byte, timeSyncFrameLen)
	buf[0] = MessageTimeSync
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(julian.TimeToJD(epoch.UTC())))
	binary.LittleEndian.PutUint64(buf[9:], math.Float64bits(warp))
	return buf
}

// DecodeTimeSync decodes a MessageTimeSync frame.
func DecodeTimeSync(frame []byte) (TimeSyncFrame, error) {
	if len(frame) != timeSyncFrameLen || frame[0] != MessageTimeSync {
		return TimeSyncFrame{}, fmt.Errorf("not a time sync frame")
	}
	return TimeSyncFrame{
		JD:   math.Float64frombits(binary.LittleEndian.Uint64(frame[1:])),
		Warp: math.Float64frombits(binary.LittleEndian.Uint64(frame[9:])),
	}, nil
}

// BodyStateFrame is the decoded form of a MessageBodyState frame.
type BodyStateFrame struct {
	NAIF        uint32
	Position    [3]float64
	Velocity    [3]float64
	Orientation [4]float64
}

// EncodeBodyState encodes one body state as a frame of exactly 85 bytes:
// type byte, uint32 NAIF id, 3 position doubles, 3 velocity doubles and the
// 4 orientation quaternion doubles, all little endian.
func EncodeBodyState(naif int, state BodyState) []byte {
	buf := make([]byte, bodyStateFrameLen)
	buf[0] = MessageBodyState
	binary.LittleEndian.PutUint32(buf[1:], uint32(naif))
	at := 5
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint64(buf[at:], math.Float64bits(state.Position[i]))
		at += 8
	}
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint64(buf[at:], math.Float64bits(state.Velocity[i]))
		at += 8
	}
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(buf[at:], math.Float64bits(state.Orientation[i]))
		at += 8
	}
	return buf
}

// DecodeBodyState decodes a MessageBodyState frame.
func DecodeBodyState(frame []byte) (BodyStateFrame, error) {
	if len(frame) != bodyStateFrameLen || frame[0] != MessageBodyState {
		return BodyStateFrame{}, fmt.Errorf("not a body state frame")
	}
	var out BodyStateFrame
	out.NAIF = binary.LittleEndian.Uint32(frame[1:])
	at := 5
	for i := 0; i < 3; i++ {
		out.Position[i] = math.Float64frombits(binary.LittleEndian.Uint64(frame[at:]))
		at += 8
	}
	for i := 0; i < 3; i++ {
		out.Velocity[i] = math.Float64frombits(binary.LittleEndian.Uint64(frame[at:]))
		at += 8
	}
	for i := 0; i < 4; i++ {
		out.Orientation[i] = math.Float64frombits(binary.LittleEndian.Uint64(frame[at:]))
		at += 8
	}
	return out, nil
}

// TelemetryFrames serializes a snapshot into the wire frames the embedding
// application consumes: one time sync followed by one body state frame per
// registered body, in NAIF order.
func TelemetryFrames(snap Snapshot, warp float64) [][]byte {
	ids := make([]int, 0, len(snap.Bodies))
	for naif := range snap.Bodies {
		ids = append(ids, naif)
	}
	sort.Ints(ids)
	frames := make([][]byte, 0, len(ids)+1)
	frames = append(frames, EncodeTimeSync(snap.Epoch, warp))
	for _, naif := range ids {
		frames = append(frames, EncodeBodyState(naif, snap.Bodies[naif]))
	}
	return frames
}
