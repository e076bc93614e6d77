package protocol

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_sim"
)

func TestParseEncodedFrame(t *testing.T) {
	frame := Encode(MsgTypeRotation, []byte{0x08, 0x03, 0x05, 0x00})
	msg, err := Parse(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgTypeRotation, msg.Type)
	assert.Equal(t, []byte{0x08, 0x03, 0x05, 0x00}, msg.Payload)
	assert.Equal(t, "rotation", MessageTypeName(msg.Type))
}

func TestParseErrors(t *testing.T) {
	good := Encode(MsgTypeBattery, []byte{80})

	_, err := Parse(good[:3])
	assert.ErrorIs(t, err, ErrMessageTooShort)

	bad := append([]byte(nil), good...)
	bad[0] = 0x00
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	bad = append([]byte(nil), good...)
	bad[len(bad)-3]++
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	bad = append([]byte(nil), good...)
	bad[len(bad)-1] = 0x00
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidSuffix)

	bad = append([]byte(nil), good...)
	bad[1] = 40
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand(CmdRequestBattery)
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x2A + 0x01 + 0x32, 0x0D, 0x0A}, cmd)
}

func TestDecodeRotation(t *testing.T) {
	events, err := DecodeRotation([]byte{0x08, 0x00, 0x05, 0x03})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "red", events[0].Color)
	assert.True(t, events[0].Clockwise)
	m, ok := events[0].Move()
	require.True(t, ok)
	assert.Equal(t, gocube.R, m)

	assert.Equal(t, "white", events[1].Color)
	assert.False(t, events[1].Clockwise)
	m, ok = events[1].Move()
	require.True(t, ok)
	assert.Equal(t, gocube.UPrime, m)

	_, err = DecodeRotation([]byte{0x08})
	assert.Error(t, err)
	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.Error(t, err)
}

func TestEveryFaceCodeMaps(t *testing.T) {
	seen := map[string]bool{}
	for code := byte(0); code < 12; code++ {
		events, err := DecodeRotation([]byte{code, 0})
		require.NoError(t, err)
		m, ok := events[0].Move()
		require.True(t, ok)
		seen[m.Notation()] = true
	}
	assert.Len(t, seen, 12)
}

func TestDecodeBattery(t *testing.T) {
	b, err := DecodeBattery([]byte{73})
	require.NoError(t, err)
	assert.Equal(t, 73, b.Level)
	_, err = DecodeBattery(nil)
	assert.Error(t, err)
}

func TestDecodeOrientation(t *testing.T) {
	o, err := DecodeOrientation([]byte("0#0#0#1000\x5a\r\n"))
	require.NoError(t, err)
	assert.Equal(t, gocube.FaceU, o.UpFace)
	assert.Equal(t, gocube.FaceF, o.FrontFace)
	assert.InDelta(t, 1, o.Q.Real, 1e-12)

	// Half turn about x: up points down, front points back.
	o, err = DecodeOrientation([]byte("1000#0#0#0"))
	require.NoError(t, err)
	assert.Equal(t, gocube.FaceD, o.UpFace)
	assert.Equal(t, gocube.FaceB, o.FrontFace)

	// Quarter turn about z takes up to the left.
	s := strconv.FormatFloat(math.Sqrt2/2, 'f', 6, 64)
	o, err = DecodeOrientation([]byte("0#0#" + s + "#" + s))
	require.NoError(t, err)
	assert.Equal(t, gocube.FaceL, o.UpFace)
	assert.Equal(t, gocube.FaceF, o.FrontFace)

	_, err = DecodeOrientation([]byte("1#2#3"))
	assert.Error(t, err)
	_, err = DecodeOrientation([]byte("a#0#0#1"))
	assert.Error(t, err)
}
