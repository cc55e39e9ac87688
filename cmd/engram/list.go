package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/engram"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := engram.SessionFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Platform != "" {
		platform := engram.Platform(c.Platform)
		filter.Platform = &platform
	}
	if c.Search != "" {
		filter.Title = &c.Search
	}

	return listSessions(deps, filter, "No sessions found. Use 'engram capture' to save one.")
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(deps.Stderr, "error: search query is empty")
		return engram.Errorf(engram.EINVALID, "empty search query")
	}

	filter := engram.SessionFilter{Query: &query, Limit: c.Limit}
	if c.Platform != "" {
		platform := engram.Platform(c.Platform)
		filter.Platform = &platform
	}

	return listSessions(deps, filter, fmt.Sprintf("No sessions match %q.", query))
}

// listSessions prints one line per session matching filter.
func listSessions(deps *Dependencies, filter engram.SessionFilter, empty string) error {
	sessions, err := deps.Sessions.FindSessions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", engram.ErrorMessage(err))
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(deps.Stdout, empty)
		return nil
	}

	for _, s := range sessions {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.ID, s.CapturedAt.Format("2006-01-02 15:04"), summary(s))
	}

	return nil
}
