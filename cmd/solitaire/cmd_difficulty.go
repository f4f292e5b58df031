package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amsibert-fmms/Solitaire/internal/database"
	"github.com/amsibert-fmms/Solitaire/internal/difficulty"
)

var difficultyFlags struct {
	since string
	limit int
	path  string
	seed  string
}

var difficultyCmd = &cobra.Command{
	Use:   "difficulty",
	Short: "Score unlevelled wins and assign difficulty buckets",
	RunE:  runDifficulty,
}

func init() {
	difficultyCmd.Flags().StringVar(&difficultyFlags.since, "since", "",
		"Only update wins logged on or after this date (YYYY-MM-DD).")
	difficultyCmd.Flags().IntVar(&difficultyFlags.limit, "limit", 0,
		"Only update the first N matching records.")
	difficultyCmd.Flags().StringVar(&difficultyFlags.path, "path", "data/wins.csv",
		"Path to the CSV file containing win logs.")
	difficultyCmd.Flags().StringVar(&difficultyFlags.seed, "seed-path", "data/wins_seed.csv",
		"Seed CSV used to hydrate the win log when it is missing.")
	rootCmd.AddCommand(difficultyCmd)
}

func runDifficulty(cmd *cobra.Command, args []string) error {
	var since time.Time
	if difficultyFlags.since != "" {
		parsed, err := time.Parse("2006-01-02", difficultyFlags.since)
		if err != nil {
			return fmt.Errorf("--since must be provided in YYYY-MM-DD format")
		}
		since = parsed
	}
	limit := difficultyFlags.limit
	if limit < 0 {
		limit = 0
	}

	updated, counts, err := difficulty.UpdateFile(difficultyFlags.path, difficultyFlags.seed, since, limit)
	if err != nil {
		return err
	}
	if updated == 0 {
		logrus.Info("no rows updated")
		return nil
	}

	if cfg.DatabaseURL != "" {
		if err := mirrorLevelsToDatabase(difficultyFlags.path); err != nil {
			logrus.WithError(err).Warn("could not mirror difficulty levels to postgres")
		}
	}

	parts := ""
	for i, level := range []string{difficulty.LevelEasy, difficulty.LevelMedium, difficulty.LevelHard} {
		pct := float64(counts[level]) / float64(updated) * 100
		if i > 0 {
			parts += ", "
		}
		parts += fmt.Sprintf("%.1f%% %s", pct, level)
	}
	logrus.Infof("updated %d rows: %s", updated, parts)
	return nil
}

// mirrorLevelsToDatabase writes freshly assigned scores and levels back to
// postgres so the ingest API serves the same labels as the CSV log.
func mirrorLevelsToDatabase(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
		return err
	}
	defer database.Close()

	records, err := difficulty.LoadCSV(path)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.DifficultyLevel == "" {
			continue
		}
		if err := database.UpdateDifficulty(ctx, *rec); err != nil {
			return err
		}
	}
	return nil
}
