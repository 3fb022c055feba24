package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hearth [command text...]",
	Short: "hearth - natural language control for Home Assistant",
	Long: "hearth turns loosely-phrased commands like \"turn on the kitchen light\" or\n" +
		"\"set the thermostat to 72\" into Home Assistant service calls, matching\n" +
		"device names fuzzily against a cached entity list.",
	Args:          cobra.ArbitraryArgs,
	RunE:          runText,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hearth v0.1.0")
	},
}

var (
	flagConfig string
	flagDebug  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.hearth/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Print matcher and classifier tracing")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
