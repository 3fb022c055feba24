package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthlabs/hearth/internal/entity"
	"github.com/hearthlabs/hearth/internal/match"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities [query]",
	Short: "List cached entities, or fuzzy-search them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEntities,
}

func init() {
	rootCmd.AddCommand(entitiesCmd)
}

func runEntities(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	reg, err := entity.Load(cfg.CachePath())
	if err != nil {
		return fmt.Errorf("no entity cache — run `hearth reload` first (%w)", err)
	}

	if len(args) == 1 {
		matcher := match.New(reg, thresholdsFrom(cfg), nil)
		found := matcher.Find(args[0])
		if len(found) == 0 {
			fmt.Println("No matches.")
			return nil
		}

		fmt.Printf("%-6s %-40s %s\n", "SCORE", "ENTITY_ID", "NAME")
		for _, c := range found {
			fmt.Printf("%-6.0f %-40s %s\n", c.Score, c.EntityID, reg.DisplayName(c.EntityID))
		}
		return nil
	}

	fmt.Printf("%-40s %-15s %s\n", "ENTITY_ID", "DOMAIN", "NAME")
	for _, n := range reg.All() {
		fmt.Printf("%-40s %-15s %s\n", n.EntityID, n.Domain, n.Name)
	}
	fmt.Println(styleInfo.Render(fmt.Sprintf("%d entities", reg.Len())))
	return nil
}
