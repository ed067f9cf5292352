package main

import (
	"fmt"

	"github.com/fwojciec/wallbase"
)

// Run executes the ban command.
func (c *BanCmd) Run(deps *Dependencies) error {
	if err := deps.Bans.Ban(deps.Ctx, c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wallbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Banned %s\n", c.URL)
	return nil
}

// Run executes the unban command.
func (c *UnbanCmd) Run(deps *Dependencies) error {
	if err := deps.Bans.Unban(deps.Ctx, c.URL); err != nil {
		if wallbase.ErrorCode(err) == wallbase.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s is not banned. Use 'wallbase bans' to see banned URLs.\n", c.URL)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", wallbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Unbanned %s\n", c.URL)
	return nil
}

// Run executes the bans command.
func (c *BansCmd) Run(deps *Dependencies) error {
	urls, err := deps.Bans.FindBans(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wallbase.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No banned URLs.")
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
