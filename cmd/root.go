package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sabi",
	Short: "Bite-sized language lessons in your terminal",
	Long:  "Sabi plays short gamified lessons: new words, a dialogue, drills and a picture quiz, with XP and daily streaks.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Read SABI_* settings from this file if it exists")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SABI_DB env var)")
	rootCmd.PersistentFlags().String("curriculum", "", "Path to a curriculum JSON file (overrides SABI_CURRICULUM env var)")
	rootCmd.Flags().Bool("ephemeral", false, "Keep progress in memory only")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile fills unset environment variables from --env-file. A missing
// file is not an error.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SABI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadUnit loads the curriculum named by --curriculum or SABI_CURRICULUM,
// falling back to the built-in unit.
func loadUnit(cmd *cobra.Command) (*curriculum.Unit, error) {
	path, _ := cmd.Flags().GetString("curriculum")
	if path == "" {
		path = os.Getenv(curriculum.EnvPath)
	}
	u, err := curriculum.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}
	return u, nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// withProgress opens the database and the progress store on top of it,
// runs fn and closes the database.
func withProgress(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store, p *progress.Store) error) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := progress.Open(ctx, st.ProgressRepo())
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	return fn(ctx, st, p)
}
