package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amsibert-fmms/Solitaire/internal/dataset"
	"github.com/amsibert-fmms/Solitaire/internal/stats"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate attempt datasets exported as CSV",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var summaryCmd = &cobra.Command{
	Use:   "summary <path>...",
	Short: "Summarise attempt datasets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSummary,
}

var streaksFlags struct {
	abandonedAsLoss bool
}

var streaksCmd = &cobra.Command{
	Use:   "streaks <path>...",
	Short: "Compute win/loss streak statistics for attempt datasets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStreaks,
}

func init() {
	streaksCmd.Flags().BoolVar(&streaksFlags.abandonedAsLoss, "treat-abandoned-as-loss", false,
		"Count 'abandoned' attempts as losses when computing streaks.")
	rootCmd.AddCommand(validateCmd, summaryCmd, streaksCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	hasError := false
	for _, path := range args {
		records, err := dataset.Load(path)
		if err != nil {
			return err
		}
		result := dataset.Validate(path, records)
		fmt.Println(dataset.FormatResult(result))
		for _, warning := range result.Warnings {
			fmt.Printf("  warning: %s\n", warning)
		}
		for _, e := range result.Errors {
			fmt.Printf("  error: %s\n", e)
			hasError = true
		}
	}
	if hasError {
		return errors.New("validation failed")
	}
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		records, err := dataset.Load(path)
		if err != nil {
			return err
		}
		fmt.Println(stats.FormatSummary(path, stats.Summarise(records)))
	}
	return nil
}

func runStreaks(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		records, err := dataset.Load(path)
		if err != nil {
			return err
		}
		summary := stats.ComputeStreaks(records, streaksFlags.abandonedAsLoss)
		fmt.Println(stats.FormatStreaks(path, summary))
	}
	return nil
}
