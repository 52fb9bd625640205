// launchreport prints the dashboard's derived views as terminal tables.
//
// Usage:
//
//	launchreport sites    --data=<csv|db>
//	launchreport outcomes --data=<csv|db> [--site=<site>]
//	launchreport summary  --data=<csv|db> [--site=<site>] [--low=<kg>] [--high=<kg>]
//	launchreport booster  --data=<csv|db> [--site=<site>]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/query"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootFlags are shared by every subcommand.
type rootFlags struct {
	data     string
	format   string
	table    string
	site     string
	markdown bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "launchreport",
		Short: "Report launch outcomes from a SpaceX launch dataset",
		Long:  "launchreport answers the dashboard's questions offline: success counts\nper site, payload success rates and the best booster version.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if f.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.Version = version

	pf := root.PersistentFlags()
	pf.StringVar(&f.data, "data", "", "launch dataset, CSV or SQLite (required)")
	pf.StringVar(&f.format, "format", "", "dataset format: csv | sqlite (default: from extension)")
	pf.StringVar(&f.table, "table", dataset.DefaultTable, "SQLite table name")
	pf.StringVar(&f.site, "site", types.SiteAll, "launch site, or ALL")
	pf.BoolVar(&f.markdown, "markdown", false, "render tables as Markdown")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log dataset loading to stderr")
	_ = root.MarkPersistentFlagRequired("data")

	root.AddCommand(newSitesCmd(f))
	root.AddCommand(newOutcomesCmd(f))
	root.AddCommand(newSummaryCmd(f))
	root.AddCommand(newBoosterCmd(f))
	return root
}

// load reads the dataset and checks --site against it.
func (f *rootFlags) load() (*dataset.Dataset, error) {
	ds, err := dataset.Load(f.data, f.format, f.table)
	if err != nil {
		return nil, err
	}
	if err := query.ValidateSite(ds, f.site); err != nil {
		return nil, fmt.Errorf("%w (see 'launchreport sites')", err)
	}
	return ds, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
