package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagemd"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := pagemd.ConversionFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	convs, err := deps.History.FindConversions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	if len(convs) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversions recorded. Use 'pagemd convert' to convert a page.")
		return nil
	}

	for _, conv := range convs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", conv.CreatedAt.UTC().Format(time.RFC3339), conv.SourceURL, conv.OutputPath)
		if conv.Title != "" {
			fmt.Fprintf(deps.Stdout, "    %s", conv.Title)
			if conv.Published != "" {
				fmt.Fprintf(deps.Stdout, " (%s)", conv.Published)
			}
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "    strategy=%s images=%d hash=%s\n", conv.Strategy, conv.AssetCount, conv.ContentHash)
	}
	return nil
}
