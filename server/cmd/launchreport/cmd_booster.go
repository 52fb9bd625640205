package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/server/internal/query"
	"github.com/launchdash/launchdash/server/internal/render"
)

func newBoosterCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "booster",
		Short: "The booster version with the highest success rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := f.load()
			if err != nil {
				return err
			}
			b, err := query.BestBooster(ds, f.site)
			fmt.Fprintln(cmd.OutOrStdout(), siteLabel(f.site)+": "+render.BoosterText(b, err))
			return nil
		},
	}
}
