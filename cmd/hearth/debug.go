package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearthlabs/hearth/internal/config"
)

var debugCmd = &cobra.Command{
	Use:   "debug [on|off]",
	Short: "Toggle persistent debug tracing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDebugToggle,
}

func init() {
	rootCmd.AddCommand(debugCmd)
}

var debugEnabled bool

// initDebug resolves the effective debug state: the --debug flag wins,
// otherwise the persisted .debug_state file decides.
func initDebug(cfg *config.Config) {
	if flagDebug {
		debugEnabled = true
		return
	}
	data, err := os.ReadFile(cfg.DebugStatePath())
	if err != nil {
		return
	}
	debugEnabled = strings.TrimSpace(strings.ToLower(string(data))) == "true"
}

func debugf(format string, args ...any) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "Debug - "+format+"\n", args...)
	}
}

func runDebugToggle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initDebug(cfg)

	next := !debugEnabled
	if len(args) == 1 {
		switch args[0] {
		case "on":
			next = true
		case "off":
			next = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}
	}

	if err := os.WriteFile(cfg.DebugStatePath(), []byte(fmt.Sprintf("%t", next)), 0644); err != nil {
		return fmt.Errorf("write debug state: %w", err)
	}

	if next {
		fmt.Println("Debug ON")
	} else {
		fmt.Println("Debug OFF")
	}
	return nil
}
