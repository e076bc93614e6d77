package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/engine"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
	"github.com/SeamusWaldron/gocube_sim/internal/rotation"
)

var playSeed uint64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the cube interactively",
	Long: `Open an interactive terminal cube.

Keys:
  u d l r f b    turn a face clockwise
  U D L R F B    turn a face counter-clockwise
  s              shuffle
  z              undo the last turn
  enter          solve
  x              reset
  q              quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "Seed for shuffles (0 = random)")
	rootCmd.AddCommand(playCmd)
}

// Message types
type frameMsg rotation.Frame

type opDoneMsg struct {
	op    string
	moves []gocube.Move
	ok    bool
	err   error
}

// playModel is the bubbletea model for the interactive cube.
type playModel struct {
	ctx    context.Context
	engine *engine.Engine
	frames <-chan rotation.Frame

	frame    rotation.Frame
	status   string
	err      error
	quitting bool
}

func newPlayModel(ctx context.Context, e *engine.Engine) playModel {
	frames := make(chan rotation.Frame, 1)
	e.Rotator().OnFrame(func(f rotation.Frame) {
		select {
		case frames <- f:
		default:
		}
	})
	return playModel{
		ctx:    ctx,
		engine: e,
		frames: frames,
		status: "Ready",
	}
}

func (m playModel) Init() tea.Cmd {
	return waitForFrame(m.ctx, m.frames)
}

// waitForFrame delivers the next animation frame. It returns nil once ctx
// is done.
func waitForFrame(ctx context.Context, frames <-chan rotation.Frame) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return frameMsg(f)
		case <-ctx.Done():
			return nil
		}
	}
}

var faceKeys = map[string]gocube.Face{
	"u": gocube.FaceU, "d": gocube.FaceD,
	"l": gocube.FaceL, "r": gocube.FaceR,
	"f": gocube.FaceF, "b": gocube.FaceB,
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.frame = rotation.Frame(msg)
		return m, waitForFrame(m.ctx, m.frames)

	case opDoneMsg:
		m.err = nil
		switch {
		case errors.Is(msg.err, engine.ErrBusy):
			m.status = fmt.Sprintf("%s ignored, cube is busy", msg.op)
		case msg.err != nil:
			m.err = msg.err
		case msg.op == "undo" && !msg.ok:
			m.status = "Nothing to undo"
		case msg.op == "solve" && len(msg.moves) == 0 && !m.engine.IsSolved():
			m.status = "No solution found"
		case msg.op == "solve":
			m.status = fmt.Sprintf("Solved with %s", formatOrDash(msg.moves))
		default:
			m.status = msg.op + " done"
		}
		return m, nil
	}

	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	e := m.engine

	if face, ok := faceKeys[strings.ToLower(key)]; ok {
		move := gocube.Move{Face: face, Turn: gocube.CW}
		if key != strings.ToLower(key) {
			move.Turn = gocube.CCW
		}
		return m, m.run(move.Notation(), func(ctx context.Context) opDoneMsg {
			return opDoneMsg{err: e.TurnMove(ctx, move)}
		})
	}

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "s":
		return m, m.run("shuffle", func(ctx context.Context) opDoneMsg {
			return opDoneMsg{err: e.Shuffle(ctx)}
		})
	case "z":
		return m, m.run("undo", func(ctx context.Context) opDoneMsg {
			ok, err := e.Undo(ctx)
			return opDoneMsg{ok: ok, err: err}
		})
	case "enter":
		return m, m.run("solve", func(ctx context.Context) opDoneMsg {
			moves, err := e.Solve(ctx)
			return opDoneMsg{moves: moves, err: err}
		})
	case "x":
		return m, m.run("reset", func(ctx context.Context) opDoneMsg {
			return opDoneMsg{err: e.Reset(ctx)}
		})
	}
	return m, nil
}

// run performs op off the UI goroutine.
func (m playModel) run(name string, op func(context.Context) opDoneMsg) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		res := op(ctx)
		res.op = name
		return res
	}
}

func (m playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	e := m.engine

	b.WriteString(titleStyle.Render("GoCube Simulator"))
	b.WriteString("\n\n")

	b.WriteString(renderNet(e.Registry().Facelets()))
	b.WriteString("\n")

	if e.Busy() && !m.frame.Done {
		b.WriteString(labelStyle.Render("Turning "))
		b.WriteString(progressBar(m.frame.Progress, 20))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
	}

	history := e.History()
	shown := history
	if len(shown) > 24 {
		shown = shown[len(shown)-24:]
	}
	b.WriteString(labelStyle.Render("History: "))
	if len(history) > len(shown) {
		b.WriteString(statusStyle.Render(fmt.Sprintf("(+%d) ", len(history)-len(shown))))
	}
	b.WriteString(moveStyle.Render(formatOrDash(shown)))
	b.WriteString("\n")
	if n := len(history); n > 0 {
		b.WriteString(statusStyle.Render("         " + notation.Describe(history[n-1])))
	}
	b.WriteString("\n")

	undo := "no"
	if e.UndoAvailable() {
		undo = "yes"
	}
	b.WriteString(labelStyle.Render("Undo: "))
	b.WriteString(undo)
	b.WriteString(labelStyle.Render("   Solved: "))
	b.WriteString(fmt.Sprintf("%v", e.IsSolved()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("udlrfb: turn  UDLRFB: reverse  s: shuffle  z: undo  enter: solve  x: reset  q: quit"))
	b.WriteString("\n")

	return b.String()
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %3.0f%%", p*100)
}

func runPlay(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(runtimeOptions{source: "play", realtime: true, record: true, seed: seedFlag(playSeed)})
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(newPlayModel(ctx, rt.engine), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
