package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/sabi/internal/curriculum"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Validate or summarize curriculum files",
}

var curriculumValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a curriculum file against the schema and content rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := curriculum.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d lessons)\n", args[0], len(u.Lessons))
		return nil
	},
}

var curriculumShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the active curriculum",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := loadUnit(cmd)
		if err != nil {
			return err
		}
		printCurriculum(cmd.OutOrStdout(), u)
		return nil
	},
}

func init() {
	curriculumCmd.AddCommand(curriculumValidateCmd)
	curriculumCmd.AddCommand(curriculumShowCmd)
}

func printCurriculum(w io.Writer, u *curriculum.Unit) {
	fmt.Fprintf(w, "Unit: %s\n\n", u.Title)
	fmt.Fprintf(w, "%-3s  %-40s  %5s  %5s  %5s  %5s  %5s  %5s  %5s\n",
		"#", "Lesson", "Words", "Dlg", "MC", "Gap", "Type", "Match", "Steps")
	for i := range u.Lessons {
		l := &u.Lessons[i]
		pairs := 0
		for _, a := range l.Assessments {
			pairs += len(a.Pairs)
		}
		fmt.Fprintf(w, "%-3d  %-40s  %5d  %5d  %5d  %5d  %5d  %5d  %5d\n",
			i+1, truncate(l.Title, 40), l.WordCount(), len(l.Dialogues), len(l.Exercises),
			len(l.FillInGaps), len(l.TypingExercises), pairs, l.StepCount())
	}
}
