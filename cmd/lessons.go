package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/store"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons with their lock state and best scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := loadUnit(cmd)
		if err != nil {
			return err
		}
		return withProgress(cmd, func(_ context.Context, _ *store.Store, p *progress.Store) error {
			printLessons(cmd.OutOrStdout(), unit, p)
			return nil
		})
	},
}

func printLessons(w io.Writer, unit *curriculum.Unit, p *progress.Store) {
	fmt.Fprintf(w, "%s\n", unit.Title)
	fmt.Fprintln(w, strings.Repeat("─", 64))
	fmt.Fprintf(w, "%-3s  %-40s  %-8s  %s\n", "#", "Lesson", "State", "Best")
	for i := range unit.Lessons {
		l := &unit.Lessons[i]
		state, best := "locked", "-"
		if p.IsLessonUnlocked(i) {
			state = "open"
		}
		if rec, ok := p.Record(i); ok && rec.Completed {
			state = "done"
			best = fmt.Sprintf("%d%%", rec.BestScore)
		}
		fmt.Fprintf(w, "%-3d  %-40s  %-8s  %s\n", i+1, truncate(l.Title, 40), state, best)
	}
}
