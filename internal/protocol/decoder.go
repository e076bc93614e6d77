package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"

	"github.com/SeamusWaldron/gocube_sim"
)

// RotationEvent is a single face rotation reported by the cube.
type RotationEvent struct {
	FaceCode          byte   // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte   // Center piece orientation
	Clockwise         bool   // Direction of rotation
	Color             string // Center color of the turned face
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// OrientationEvent is the cube's attitude in space.
type OrientationEvent struct {
	Q quat.Number // Normalized attitude

	UpFace    gocube.Face // Face pointing up
	FrontFace gocube.Face // Face pointing at the solver
}

// Face color indices as sent by the cube.
var colorNames = map[byte]string{
	0: "blue",
	1: "green",
	2: "white",
	3: "yellow",
	4: "red",
	5: "orange",
}

// colorFaces assumes the standard hold: white on top, green in front.
var colorFaces = map[string]gocube.Face{
	"white":  gocube.FaceU,
	"yellow": gocube.FaceD,
	"green":  gocube.FaceF,
	"blue":   gocube.FaceB,
	"red":    gocube.FaceR,
	"orange": gocube.FaceL,
}

// DecodeRotation decodes a rotation payload: pairs of [face_dir] [center].
// Even face codes are clockwise, odd ones counter-clockwise.
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	var events []RotationEvent
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]
		colorName, ok := colorNames[faceCode/2]
		if !ok {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", faceCode/2, faceCode)
		}

		events = append(events, RotationEvent{
			FaceCode:          faceCode,
			CenterOrientation: payload[i+1],
			Clockwise:         faceCode%2 == 0,
			Color:             colorName,
		})
	}

	return events, nil
}

// Move converts the rotation to face notation.
func (r RotationEvent) Move() (gocube.Move, bool) {
	face, ok := colorFaces[r.Color]
	if !ok {
		return gocube.Move{}, false
	}
	turn := gocube.CCW
	if r.Clockwise {
		turn = gocube.CW
	}
	return gocube.Move{Face: face, Turn: turn}, true
}

// DecodeBattery decodes a battery message payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeOrientation decodes an orientation payload, the ASCII string
// "x#y#z#w" optionally followed by non-numeric trailing bytes.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}

	var v [4]float64
	for i, name := range []string{"x", "y", "z", "w"} {
		f, err := strconv.ParseFloat(leadingNumber(parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", name, err)
		}
		v[i] = f
	}

	q := quat.Number{Real: v[3], Imag: v[0], Jmag: v[1], Kmag: v[2]}
	if n := quat.Abs(q); n > 0 {
		q = quat.Scale(1/n, q)
	}

	return &OrientationEvent{
		Q:         q,
		UpFace:    faceAlong(rotateVec(q, 0, 1, 0)),
		FrontFace: faceAlong(rotateVec(q, 0, 0, 1)),
	}, nil
}

// leadingNumber returns the numeric prefix of s.
func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

func rotateVec(q quat.Number, x, y, z float64) [3]float64 {
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: x, Jmag: y, Kmag: z}), quat.Conj(q))
	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}

// faceAlong names the face whose outward normal is closest to v.
func faceAlong(v [3]float64) gocube.Face {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	switch {
	case ay >= ax && ay >= az:
		if v[1] > 0 {
			return gocube.FaceU
		}
		return gocube.FaceD
	case az >= ax && az >= ay:
		if v[2] > 0 {
			return gocube.FaceF
		}
		return gocube.FaceB
	case v[0] > 0:
		return gocube.FaceR
	default:
		return gocube.FaceL
	}
}
