package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/pkg/types"
)

func newSitesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List launch sites with launch and success counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := f.load()
			if err != nil {
				return err
			}

			type tally struct{ launches, successes int }
			counts := make(map[string]*tally)
			for r := range ds.All() {
				t, ok := counts[r.Site]
				if !ok {
					t = &tally{}
					counts[r.Site] = t
				}
				t.launches++
				if r.Outcome == types.Success {
					t.successes++
				}
			}

			tw := newTable(f.markdown, "Site", "Launches", "Successes")
			rightAlign(tw, 2, 3)
			for _, site := range ds.Sites() {
				t := counts[site]
				tw.AppendRow([]any{site, humanize.Comma(int64(t.launches)), humanize.Comma(int64(t.successes))})
			}
			tw.AppendFooter([]any{"Total", humanize.Comma(int64(ds.Len())), ""})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tw.Render())
			b := ds.PayloadBounds()
			fmt.Fprintf(out, "Payload mass: %s kg to %s kg\n", humanize.Commaf(b.Low), humanize.Commaf(b.High))
			return nil
		},
	}
}
