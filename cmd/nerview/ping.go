package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fwojciec/nerview"
)

// Run executes the ping command.
func (c *PingCmd) Run(deps *Dependencies) error {
	place, err := nerview.Ping(deps.Ctx, deps.Resolver)
	if err != nil {
		color.New(color.FgRed).Fprintf(deps.Stdout, "✗ Cannot reach Wikidata: %s\n", err)
		fmt.Fprintln(deps.Stdout, "Troubleshooting:")
		for _, hint := range nerview.TroubleshootingHints {
			fmt.Fprintf(deps.Stdout, "  - %s\n", hint)
		}
		return err
	}

	color.New(color.FgGreen).Fprintf(deps.Stdout, "✓ Wikidata reachable (%s: %s)\n", nerview.ProbeQID, place.Label)
	return nil
}
