package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/server/internal/query"
	"github.com/launchdash/launchdash/server/internal/render"
)

func newOutcomesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "outcomes",
		Short: "Successes per site, or successes and failures for one site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := f.load()
			if err != nil {
				return err
			}
			slices := query.Outcomes(ds, f.site)

			total := 0
			for _, s := range slices {
				total += s.Count
			}

			tw := newTable(f.markdown, "", "Launches", "Share")
			rightAlign(tw, 2, 3)
			for _, s := range slices {
				share := "-"
				if total > 0 {
					share = render.Percent(float64(s.Count) / float64(total))
				}
				tw.AppendRow([]any{s.Label, humanize.Comma(int64(s.Count)), share})
			}
			tw.AppendFooter([]any{"Total", humanize.Comma(int64(total)), ""})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.OutcomesTitle(f.site))
			fmt.Fprintln(out, tw.Render())
			return nil
		},
	}
}
