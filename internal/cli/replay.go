package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim/internal/engine"
	"github.com/SeamusWaldron/gocube_sim/internal/storage"
)

var (
	replayLast  bool
	replayPlain bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Replay a stored session on a fresh cube",
	Long: `Replay every recorded quarter turn of a session on a fresh virtual
cube and print the final state. Reset markers reset the cube.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent session")
	replayCmd.Flags().BoolVar(&replayPlain, "plain", false, "Print the net as letters instead of colors")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(db, args, replayLast)
	if err != nil {
		return err
	}
	records, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return err
	}

	rt, err := newRuntime(runtimeOptions{source: "replay"})
	if err != nil {
		return err
	}
	defer rt.Close()

	n, err := replayRecords(cmd.Context(), rt.engine, records)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Replayed %d moves from session %s\n\n", n, s.SessionID)
	printState(out, rt.engine, !replayPlain, false)
	return nil
}

// replayRecords applies stored records in order and returns the number of
// moves applied.
func replayRecords(ctx context.Context, e *engine.Engine, records []storage.MoveRecord) (int, error) {
	n := 0
	for _, r := range records {
		if r.IsReset() {
			if err := e.Reset(ctx); err != nil {
				return n, err
			}
			continue
		}

		m, ok := r.Move()
		if !ok {
			continue
		}
		if err := e.TurnMove(ctx, m); err != nil {
			logger.Warn("replay stopped", zap.Int("seq", r.Seq), zap.String("notation", r.Notation), zap.Error(err))
			return n, fmt.Errorf("move %d (%s): %w", r.Seq, r.Notation, err)
		}
		n++
	}
	return n, nil
}
