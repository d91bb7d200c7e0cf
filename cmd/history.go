package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sabi/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent lesson runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLessonEvents(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printHistory(cmd.OutOrStdout(), events)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of events to show")
}

func printHistory(w io.Writer, events []store.LessonEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No lesson runs yet.")
		return
	}
	fmt.Fprintf(w, "%-19s  %-8s  %-32s  %-12s  %5s  %4s\n",
		"Timestamp", "Run", "Lesson", "Action", "Score", "XP")
	fmt.Fprintln(w, strings.Repeat("─", 92))
	for _, e := range events {
		score, xp := "", ""
		if e.Action == store.ActionComplete {
			score = fmt.Sprintf("%d%%", e.Score)
			xp = fmt.Sprintf("+%d", e.XPAwarded)
		}
		action := e.Action
		if e.Action == store.ActionExit {
			action += "@" + e.Phase
		}
		fmt.Fprintf(w, "%-19s  %-8s  %-32s  %-12s  %5s  %4s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.RunID, 8),
			truncate(e.LessonTitle, 32),
			truncate(action, 12),
			score, xp)
	}
}
