// Package protocol parses the GoCube smart cube BLE wire format.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE Service and Characteristic UUIDs
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message type constants
const (
	MsgTypeRotation    byte = 0x01
	MsgTypeState       byte = 0x02
	MsgTypeOrientation byte = 0x03
	MsgTypeBattery     byte = 0x05
)

// Command codes for writing to RX characteristic
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdEnableOrientation  byte = 0x38
	CmdFlashBacklight     byte = 0x41
)

// Message frame constants
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

// Errors
var (
	ErrInvalidPrefix   = errors.New("invalid message prefix")
	ErrInvalidSuffix   = errors.New("invalid message suffix")
	ErrInvalidChecksum = errors.New("invalid checksum")
	ErrMessageTooShort = errors.New("message too short")
	ErrInvalidLength   = errors.New("invalid message length")
)

// Message is one parsed notification.
type Message struct {
	Type    byte   // Message type identifier
	Payload []byte // Payload without frame overhead
}

// Parse parses a raw BLE notification.
// Frame format: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]
// The length byte counts everything after itself.
func Parse(data []byte) (*Message, error) {
	if len(data) < 5 {
		return nil, ErrMessageTooShort
	}
	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	expectedLen := 2 + length
	if len(data) < expectedLen {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, expectedLen, len(data))
	}

	checksumIdx := length - 1
	if checksumIdx < 3 {
		return nil, ErrMessageTooShort
	}

	if data[checksumIdx+1] != FrameSuffix1 || data[checksumIdx+2] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	// Checksum is the byte sum of everything before it.
	var checksum byte
	for i := 0; i < checksumIdx; i++ {
		checksum += data[i]
	}
	if checksum != data[checksumIdx] {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[checksumIdx], checksum)
	}

	return &Message{
		Type:    data[2],
		Payload: append([]byte(nil), data[3:checksumIdx]...),
	}, nil
}

// Encode frames a message the way the cube sends it. Parse(Encode(t, p))
// returns t and p.
func Encode(msgType byte, payload []byte) []byte {
	length := byte(len(payload) + 4) // type + payload + checksum + CRLF
	out := make([]byte, 0, int(length)+2)
	out = append(out, FramePrefix, length, msgType)
	out = append(out, payload...)

	var checksum byte
	for _, b := range out {
		checksum += b
	}
	return append(out, checksum, FrameSuffix1, FrameSuffix2)
}

// BuildCommand creates a command message to send to the cube.
// Format: [0x2A] [0x01] [cmd] [checksum] [0x0D] [0x0A]
func BuildCommand(cmdCode byte) []byte {
	length := byte(0x01)
	checksum := FramePrefix + length + cmdCode
	return []byte{FramePrefix, length, cmdCode, checksum, FrameSuffix1, FrameSuffix2}
}

// MessageTypeName returns a human-readable name for the message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
