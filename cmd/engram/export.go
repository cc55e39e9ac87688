package main

import (
	"fmt"

	"github.com/fwojciec/engram"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	ids := c.IDs
	if len(ids) == 0 {
		filter := engram.SessionFilter{}
		if c.Platform != "" {
			platform := engram.Platform(c.Platform)
			filter.Platform = &platform
		}
		sessions, err := deps.Sessions.FindSessions(deps.Ctx, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", engram.ErrorMessage(err))
			return err
		}
		for _, s := range sessions {
			ids = append(ids, s.ID)
		}
	}

	if len(ids) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions to export.")
		return nil
	}

	for _, id := range ids {
		// FindSessions does not load messages.
		session, err := deps.Sessions.FindSessionByID(deps.Ctx, id)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", id, engram.ErrorMessage(err))
			return err
		}

		path, err := deps.Writer.WriteSession(deps.Ctx, session)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", id, engram.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d sessions\n", len(ids))
	return nil
}
