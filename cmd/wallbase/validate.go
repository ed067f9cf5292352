package main

import (
	"fmt"

	"github.com/fwojciec/wallbase"
	"github.com/fwojciec/wallbase/source"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	ok := source.Validate(deps.Ctx, source.Config{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		BaseURL:   deps.BaseURL,
		Logger:    deps.Logger,
	}, c.Location)

	if !ok {
		fmt.Fprintf(deps.Stderr, "error: location %q yields no results\n", c.Location)
		return wallbase.Errorf(wallbase.ENOTFOUND, "location %q yields no results", c.Location)
	}

	fmt.Fprintf(deps.Stdout, "Location %q is valid\n", c.Location)
	return nil
}
