package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP, streak and words learned",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := loadUnit(cmd)
		if err != nil {
			return err
		}
		return withProgress(cmd, func(_ context.Context, _ *store.Store, p *progress.Store) error {
			printStats(cmd.OutOrStdout(), unit, p)
			return nil
		})
	},
}

func printStats(w io.Writer, unit *curriculum.Unit, p *progress.Store) {
	acct := p.Account()
	last := acct.LastActive
	if last == "" {
		last = "never"
	}
	fmt.Fprintf(w, "XP:             %d\n", acct.XP)
	fmt.Fprintf(w, "Streak:         %d\n", acct.Streak)
	fmt.Fprintf(w, "Last active:    %s\n", last)
	fmt.Fprintf(w, "Words learned:  %d\n", p.WordsLearned(unit))
	fmt.Fprintf(w, "Lessons done:   %d/%d\n", p.CompletedCount(unit), len(unit.Lessons))
}
