package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthlabs/hearth/internal/entity"
	"github.com/hearthlabs/hearth/internal/history"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, server connectivity, and cache health",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	fmt.Println("Hearth Doctor")
	fmt.Println("=============")
	fmt.Println()

	fmt.Print("Config............. ")
	fmt.Printf("OK (server %s)\n", cfg.Server.URL)

	fmt.Print("Access token....... ")
	if cfg.ResolveToken() == "" {
		fmt.Println("MISSING")
		fmt.Println("  Set server.token in config.yaml or export HEARTH_TOKEN.")
	} else {
		fmt.Println("OK")
	}

	fmt.Print("Server............. ")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := newClient(cfg).Ping(ctx); err != nil {
		fmt.Printf("UNREACHABLE (%v)\n", err)
	} else {
		fmt.Println("OK")
	}

	fmt.Print("Entity cache....... ")
	if age, err := entity.CacheAge(cfg.CachePath()); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("MISSING (run `hearth reload`)")
		} else {
			fmt.Printf("ERROR: %v\n", err)
		}
	} else {
		reg, err := entity.Load(cfg.CachePath())
		if err != nil {
			fmt.Printf("UNREADABLE: %v\n", err)
		} else {
			fmt.Printf("OK (%d entities, refreshed %s ago)\n", reg.Len(), age.Round(time.Minute))
			if age > 7*24*time.Hour {
				fmt.Println("  Cache is over a week old; consider `hearth reload`.")
			}
		}
	}

	fmt.Print("History............ ")
	db, err := history.Open(cfg.HistoryPath())
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
	} else {
		db.Close()
		fmt.Println("OK")
	}

	return nil
}
