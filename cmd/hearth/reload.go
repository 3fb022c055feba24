package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hearthlabs/hearth/internal/entity"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Rebuild the entity cache from the server",
	RunE:  runReload,
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	initDebug(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	reg, err := entity.Reload(ctx, newClient(cfg), cfg.CachePath())
	if err != nil {
		return fmt.Errorf("reload entities: %w", err)
	}

	fmt.Printf("%s Reloaded %d entities into %s\n",
		styleSuccess.Render("✓"), reg.Len(), cfg.CachePath())
	return nil
}
