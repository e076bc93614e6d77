package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/engine"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
)

// applyScramble turns the moves in args, or shuffles when args is empty.
func applyScramble(ctx context.Context, e *engine.Engine, args []string) error {
	if len(args) == 0 {
		return e.Shuffle(ctx)
	}

	moves, invalid := gocube.ParseMoves(strings.Join(args, " "))
	if len(invalid) > 0 {
		return fmt.Errorf("invalid moves: %s", strings.Join(invalid, ", "))
	}
	for _, m := range moves {
		if err := e.TurnMove(ctx, m); err != nil {
			return fmt.Errorf("move %s: %w", m, err)
		}
	}
	return nil
}

// printState writes the history and the cube net to w.
func printState(w io.Writer, e *engine.Engine, color, describe bool) {
	history := e.History()

	fmt.Fprintf(w, "History:  %s\n", formatOrDash(history))
	if describe && len(history) > 0 {
		fmt.Fprintf(w, "          %s\n", notation.DescribeSequence(history))
	}
	fmt.Fprintf(w, "Undo:     %v\n", e.UndoAvailable())
	fmt.Fprintf(w, "Solved:   %v\n\n", e.IsSolved())

	facelets := e.Registry().Facelets()
	if color {
		fmt.Fprint(w, renderNet(facelets))
	} else {
		fmt.Fprint(w, gocube.FormatNet(facelets))
	}
}

func formatOrDash(moves []gocube.Move) string {
	if len(moves) == 0 {
		return "-"
	}
	return gocube.FormatMoves(moves)
}
