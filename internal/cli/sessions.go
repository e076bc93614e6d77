package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_sim/internal/storage"
)

var (
	sessionsLimit int
	sessionLast   bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List and inspect stored sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the moves of a session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsListCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum number of sessions to list")
	sessionsShowCmd.Flags().BoolVar(&sessionLast, "last", false, "Show the most recent session")

	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(sessionsLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded")
		return nil
	}

	moves := storage.NewMoveRepository(db)
	fmt.Printf("%-36s  %-19s  %-9s  %10s  %6s\n", "SESSION", "STARTED", "SOURCE", "DURATION", "MOVES")
	fmt.Println(strings.Repeat("-", 88))
	for _, s := range sessions {
		counts, err := moves.CountByKind(s.SessionID)
		if err != nil {
			return err
		}
		total := 0
		for kind, n := range counts {
			if kind != "reset" {
				total += n
			}
		}
		fmt.Printf("%-36s  %-19s  %-9s  %10s  %6d\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Source,
			formatDuration(s.DurationMs),
			total)
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(db, args, sessionLast)
	if err != nil {
		return err
	}
	records, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return err
	}

	fmt.Printf("Session:  %s\n", s.SessionID)
	fmt.Printf("Source:   %s\n", s.Source)
	fmt.Printf("Started:  %s\n", s.StartedAt.Local().Format(time.DateTime))
	fmt.Printf("Duration: %s\n\n", formatDuration(s.DurationMs))

	if len(records) == 0 {
		fmt.Println("No moves recorded")
		return nil
	}
	fmt.Printf("%5s  %10s  %-8s  %s\n", "SEQ", "TIME", "KIND", "MOVE")
	fmt.Println(strings.Repeat("-", 36))
	for _, r := range records {
		offset := time.Duration(r.TsMs-s.StartedAt.UnixMilli()) * time.Millisecond
		fmt.Printf("%5d  %10s  %-8s  %s\n", r.Seq, offset.Round(time.Millisecond), r.Kind, r.Notation)
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	s, err := sessions.Get(args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("session not found: %s", args[0])
	}
	if err := sessions.Delete(s.SessionID); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", s.SessionID)
	return nil
}

// resolveSession finds the session named in args, or the latest one when
// last is set.
func resolveSession(db *storage.DB, args []string, last bool) (*storage.Session, error) {
	sessions := storage.NewSessionRepository(db)

	var (
		s   *storage.Session
		err error
	)
	switch {
	case last:
		s, err = sessions.GetLast()
	case len(args) == 1:
		s, err = sessions.Get(args[0])
	default:
		return nil, errors.New("specify a session ID or --last")
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func formatDuration(ms *int64) string {
	if ms == nil {
		return "open"
	}
	return (time.Duration(*ms) * time.Millisecond).Round(time.Millisecond).String()
}
