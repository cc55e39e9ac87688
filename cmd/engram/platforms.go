package main

import (
	"fmt"
	"strings"
)

// Run executes the platforms command.
func (c *PlatformsCmd) Run(deps *Dependencies) error {
	for _, platform := range deps.Registry.List() {
		source := deps.Registry.Get(platform)
		if s, ok := source.(interface{ Selectors() []string }); ok {
			fmt.Fprintf(deps.Stdout, "%-8s  %s\n", platform, strings.Join(s.Selectors(), ", "))
			continue
		}
		fmt.Fprintln(deps.Stdout, platform)
	}
	return nil
}
