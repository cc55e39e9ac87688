package main

import (
	"fmt"

	"github.com/fwojciec/engram"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return engram.Errorf(engram.EINVALID, "use --force to confirm deletion")
	}

	session, err := deps.Sessions.FindSessionByID(deps.Ctx, c.ID)
	if err != nil {
		if engram.ErrorCode(err) == engram.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: session %q not found. Use 'engram list' to see captured sessions.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", engram.ErrorMessage(err))
		return err
	}

	if err := deps.Sessions.DeleteSession(deps.Ctx, session.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", engram.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted session %q\n", session.Title)
	return nil
}
