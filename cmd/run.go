package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sabi/internal/app"
	"github.com/abhisek/sabi/internal/llm"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/store"
	"github.com/abhisek/sabi/internal/tutor"
)

// runApp loads the curriculum and progress, builds the optional tutor and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	unit, err := loadUnit(cmd)
	if err != nil {
		return err
	}

	deps := app.Deps{Unit: unit}
	var repo progress.Repo = progress.NewMemoryRepo()
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); !ephemeral {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		repo = st.ProgressRepo()
		deps.Events = st.EventRepo()
	}

	deps.Progress, err = progress.Open(ctx, repo)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	deps.Tutor = newTutor(ctx, deps.Events)

	return app.Run(deps)
}

// newTutor returns nil when no LLM provider is configured; the app works
// without it.
func newTutor(ctx context.Context, events store.EventRepo) *tutor.Service {
	cfg, ok := llm.LoadConfig()
	if !ok {
		return nil
	}
	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Tutor explanations will be unavailable.")
		return nil
	}
	return tutor.NewService(provider, tutor.DefaultConfig())
}
