package main

import (
	"fmt"

	"github.com/fwojciec/edgar"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.FormDs.DeleteFormD(deps.Ctx, c.ID); err != nil {
		if edgar.ErrorCode(err) == edgar.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: filing %q not found. Use 'edgar list' to see stored filings.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", edgar.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted filing %s\n", c.ID)
	return nil
}
