package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthlabs/hearth/internal/history"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent command history",
	RunE:  showStatus,
}

var statusLast int

func init() {
	statusCmd.Flags().IntVar(&statusLast, "last", 10, "Number of recent commands to show")
	rootCmd.AddCommand(statusCmd)
}

func showStatus(cmd *cobra.Command, args []string) error {
	if statusLast < 1 {
		return fmt.Errorf("--last must be at least 1, got %d", statusLast)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	db, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	recent, err := db.Recent(statusLast)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if len(recent) == 0 {
		fmt.Println("No commands recorded yet.")
		return nil
	}

	fmt.Printf("%-20s %-30s %-14s %-8s %-8s %s\n",
		"TIME", "INPUT", "INTENT", "OUTCOME", "TOOK", "ENTITIES")
	for _, r := range recent {
		input := r.Input
		if len(input) > 30 {
			input = input[:27] + "..."
		}
		took := fmt.Sprintf("%dms", r.DurationMs)
		fmt.Printf("%-20s %-30s %-14s %-8s %-8s %s\n",
			r.CreatedAt, input, r.Intent, renderOutcome(r.Outcome), took, r.EntityIDs)
	}
	return nil
}
