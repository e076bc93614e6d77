// Package ble connects to a GoCube smart cube over Bluetooth Low Energy.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/gocube_sim/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: no GoCube found")
)

// BLE UUIDs
var (
	serviceUUID = bluetooth.NewUUID(uuid.MustParse(protocol.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.RxCharUUID))
)

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	logger  *zap.Logger

	device bluetooth.Device
	rxChar bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	battery    int

	onMessage func(*protocol.Message)
}

// NewClient enables the default adapter.
func NewClient(logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter, logger: logger, battery: -1}, nil
}

// SetMessageCallback sets the callback for parsed notifications.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// Scan lists GoCubes advertising within timeout.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var mu sync.Mutex
	var results []ScanResult
	seen := make(map[string]bool)
	done := make(chan error, 1)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			addr := result.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, RSSI: result.RSSI, Address: result.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// Connect connects to a scanned cube and subscribes to its notifications.
func (c *Client) Connect(result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("GoCube service not found: %v", err)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.mu.Unlock()

	c.logger.Info("connected", zap.String("device", result.Name), zap.Int16("rssi", result.RSSI))
	return c.SendCommand(protocol.CmdRequestBattery)
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.battery = -1
	return err
}

// IsConnected reports whether a device is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last known battery level, -1 if unknown.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.Parse(data)
	if err != nil {
		c.logger.Debug("dropping malformed notification", zap.Binary("data", data), zap.Error(err))
		return
	}

	if msg.Type == protocol.MsgTypeBattery {
		if b, err := protocol.DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = b.Level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()
	if cb != nil {
		cb(msg)
	}
}
