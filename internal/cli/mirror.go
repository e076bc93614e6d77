package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim/internal/ble"
	"github.com/SeamusWaldron/gocube_sim/internal/engine"
	"github.com/SeamusWaldron/gocube_sim/internal/protocol"
)

var (
	mirrorTimeout time.Duration
	mirrorName    string
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Drive the virtual cube from a GoCube smart cube",
	Long: `Connect to a GoCube over Bluetooth and mirror every physical face turn
on the virtual cube. Start with the GoCube solved, white on top and green
facing you. Press Ctrl+C to stop.`,
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().DurationVarP(&mirrorTimeout, "timeout", "t", 10*time.Second, "Scan timeout")
	mirrorCmd.Flags().StringVar(&mirrorName, "name", "", "Connect to the cube with this name")
	rootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, err := ble.NewClient(logger.Named("ble"))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Scanning for GoCube devices (%s)...\n", mirrorTimeout)
	results, err := client.Scan(ctx, mirrorTimeout)
	if err != nil {
		return err
	}
	target, err := pickDevice(results, mirrorName)
	if err != nil {
		return err
	}

	msgs := make(chan *protocol.Message, 64)
	client.SetMessageCallback(func(m *protocol.Message) {
		select {
		case msgs <- m:
		default:
			logger.Warn("dropping notification, follower is behind",
				zap.String("type", protocol.MessageTypeName(m.Type)))
		}
	})

	fmt.Fprintf(out, "Connecting to %s...\n", target.Name)
	if err := client.Connect(target); err != nil {
		return err
	}
	defer client.Disconnect()

	// The physical cube is assumed solved; tell it so and ask for battery.
	for _, c := range []byte{protocol.CmdResetSolved, protocol.CmdRequestBattery} {
		if err := client.SendCommand(c); err != nil {
			logger.Warn("command failed", zap.Uint8("cmd", c), zap.Error(err))
		}
	}

	rt, err := newRuntime(runtimeOptions{source: "mirror", realtime: true, record: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Fprintf(out, "Connected to %s. Turn the cube; Ctrl+C to stop.\n\n", client.DeviceName())
	err = followCube(ctx, rt.engine, msgs, out)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	fmt.Fprintln(out)
	printState(out, rt.engine, true, false)
	return err
}

// pickDevice returns the scan result called name, or the first one when
// name is empty.
func pickDevice(results []ble.ScanResult, name string) (ble.ScanResult, error) {
	for _, r := range results {
		if name == "" || r.Name == name {
			return r, nil
		}
	}
	if name != "" {
		return ble.ScanResult{}, fmt.Errorf("%w: %s", ble.ErrDeviceNotFound, name)
	}
	return ble.ScanResult{}, ble.ErrDeviceNotFound
}

// followCube mirrors rotation notifications onto e until ctx is done or
// msgs is closed. Messages are handled one at a time so each move waits
// for the previous animation.
func followCube(ctx context.Context, e *engine.Engine, msgs <-chan *protocol.Message, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := handleMessage(ctx, e, msg, out); err != nil {
				return err
			}
		}
	}
}

func handleMessage(ctx context.Context, e *engine.Engine, msg *protocol.Message, out io.Writer) error {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		events, err := protocol.DecodeRotation(msg.Payload)
		if err != nil {
			logger.Warn("bad rotation payload", zap.Error(err))
			return nil
		}
		for _, ev := range events {
			m, ok := ev.Move()
			if !ok {
				continue
			}
			if err := e.Mirror(ctx, m); err != nil {
				if errors.Is(err, engine.ErrBusy) {
					logger.Warn("mirror move dropped", zap.String("notation", m.Notation()))
					continue
				}
				return err
			}
			fmt.Fprintf(out, "%s ", m.Notation())
			if e.IsSolved() {
				fmt.Fprint(out, "(solved) ")
			}
		}

	case protocol.MsgTypeBattery:
		if b, err := protocol.DecodeBattery(msg.Payload); err == nil {
			logger.Info("battery", zap.Int("level", b.Level))
		}

	case protocol.MsgTypeOrientation:
		if o, err := protocol.DecodeOrientation(msg.Payload); err == nil {
			logger.Debug("orientation",
				zap.String("up", string(o.UpFace)),
				zap.String("front", string(o.FrontFace)))
		}

	default:
		logger.Debug("ignoring notification", zap.String("type", protocol.MessageTypeName(msg.Type)))
	}
	return nil
}
