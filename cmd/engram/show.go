package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	session, err := deps.Sessions.FindSessionByID(deps.Ctx, c.ID)
	if err != nil {
		if engram.ErrorCode(err) == engram.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: session %q not found. Use 'engram list' to see captured sessions.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", engram.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(session)
	}

	out, err := fs.FormatSession(session)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}
