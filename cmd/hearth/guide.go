package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show a cheat sheet of supported phrasing",
	RunE:  runGuide,
}

func init() {
	rootCmd.AddCommand(guideCmd)
}

const guideMarkdown = `# hearth phrasing guide

Device names are matched fuzzily against your entity cache, so partial and
out-of-order names work: ` + "`hearth kitchen light on`" + `.

## Switching

- ` + "`hearth turn on the kitchen light`" + `
- ` + "`hearth living room lamp off`" + `
- ` + "`hearth kitchen light`" + ` — toggles when the device is toggleable

## Lights

- ` + "`hearth kitchen light 50`" + ` — brightness percent
- ` + "`hearth make the lamp brighter`" + ` / ` + "`dim the lamp`" + `
- ` + "`hearth bedroom light red`" + ` — color by name
- ` + "`hearth blue`" + ` — colors your configured color_lights

## Climate

- ` + "`hearth set the heat to 72`" + `
- ` + "`hearth thermostat 68`" + `

## Media

- ` + "`hearth play the tv`" + ` / ` + "`pause`" + ` / ` + "`next`" + ` / ` + "`prev`" + `
- ` + "`hearth tv volume up`" + ` / ` + "`volume down`" + `
- ` + "`hearth tv volume 40`" + `

## Fans

- ` + "`hearth bedroom fan high`" + ` — high / medium / low / off

## Everything else

- ` + "`hearth front door status`" + ` — query any entity's state
- ` + "`hearth trigger morning routine`" + ` — run an automation
- ` + "`hearth movie night`" + ` — activate a scene
- ` + "`hearth kitchen light and bedroom fan off`" + ` — multiple devices

Maintenance: ` + "`hearth reload`" + ` refreshes the entity cache,
` + "`hearth entities [query]`" + ` inspects it, ` + "`hearth status`" + `
shows recent commands, and ` + "`hearth doctor`" + ` checks the setup.
`

func runGuide(cmd *cobra.Command, args []string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	out, err := r.Render(guideMarkdown)
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}
	fmt.Print(out)
	return nil
}
