package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/query"
	"github.com/launchdash/launchdash/server/internal/render"
)

func newSummaryCmd(f *rootFlags) *cobra.Command {
	var low, high float64
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Success rate per payload range and the best and worst range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := f.load()
			if err != nil {
				return err
			}
			sel := query.DefaultSelection(ds)
			sel.Site = f.site
			if cmd.Flags().Changed("low") {
				sel.Payload.Low = low
			}
			if cmd.Flags().Changed("high") {
				sel.Payload.High = high
			}
			if err := query.ValidateSelection(ds, sel); err != nil {
				return err
			}

			sum, err := query.PayloadSummary(ds, sel)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s kg to %s kg\n", siteLabel(sel.Site),
				humanize.Commaf(sel.Payload.Low), humanize.Commaf(sel.Payload.High))
			if err == nil {
				fmt.Fprintln(out, bucketTable(f.markdown, sum.Buckets))
			}
			fmt.Fprintln(out, render.PayloadSummaryText(sum, err))
			return nil
		},
	}
	cmd.Flags().Float64Var(&low, "low", 0, "lowest payload mass in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&high, "high", 0, "highest payload mass in kg (default: dataset maximum)")
	return cmd
}

func bucketTable(markdown bool, stats []types.BucketStat) string {
	tw := newTable(markdown, "Payload range", "Launches", "Success rate")
	rightAlign(tw, 2, 3)
	for _, st := range stats {
		rate := "-"
		if st.Rate != nil {
			rate = render.Percent(*st.Rate)
		}
		tw.AppendRow([]any{st.Bucket.Label, humanize.Comma(int64(st.Count)), rate})
	}
	return tw.Render()
}

func siteLabel(site string) string {
	if site == types.SiteAll {
		return "All Sites"
	}
	return site
}
