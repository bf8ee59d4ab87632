package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zotools/pubsync"
	"github.com/zotools/pubsync/internal/transport"
	"github.com/zotools/pubsync/internal/zotero"
	"github.com/zotools/pubsync/pkg/logging"
)

// syncCmd runs the fetch-reconcile-export pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the library and write the filtered export",
	Example: `  pubsync sync --group 2224372 --needs needed_pubs.csv --out pubs_export.csv
  pubsync sync --group 2224372 --collection V4N6XQ2P --limit 100
  pubsync sync --group 2224372 --dry-run --report run_report.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := syncFlags(cmd)

		pipeline, err := pubsync.New(
			pubsync.WithGroup(flags.Group),
			pubsync.WithCollection(flags.Collection),
			pubsync.WithLimit(flags.Limit),
			pubsync.WithNeedsFile(flags.Needs),
			pubsync.WithOutputFile(flags.Out),
			pubsync.WithReportFile(flags.Report),
			pubsync.WithAPIURL(flags.APIURL),
			pubsync.WithTimeout(transport.DefaultTimeout),
			pubsync.WithDryRun(flags.DryRun),
			pubsync.WithLogger(logging.Default()),
			pubsync.WithSummaryWriter(os.Stdout),
		)
		if err != nil {
			return err
		}

		start := time.Now()
		run, err := pipeline.Run(cmd.Context())
		if err != nil {
			cmd.SilenceUsage = true
			logging.Err(err).Msg("Sync failed")
			return err
		}

		logging.Info().
			Dur("elapsed", time.Since(start)).
			Int("rows", len(run.Reconciliation.Records)).
			Int("missing", len(run.Reconciliation.Gaps)).
			Msg("Sync complete")
		return nil
	},
}

// Flags holds the sync command flags.
type Flags struct {
	Group      string
	Collection string
	Limit      int
	Needs      string
	Out        string
	Report     string
	APIURL     string
	DryRun     bool
}

// syncFlags extracts sync flags from a command, with viper supplying
// values from config file and environment for flags not set explicitly.
func syncFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{
		Group:      stringFlag(cmd, "group"),
		Collection: stringFlag(cmd, "collection"),
		Needs:      stringFlag(cmd, "needs"),
		Out:        stringFlag(cmd, "out"),
		Report:     stringFlag(cmd, "report"),
		APIURL:     stringFlag(cmd, "api-url"),
	}
	flags.Limit, _ = cmd.Flags().GetInt("limit")
	flags.DryRun, _ = cmd.Flags().GetBool("dry-run")
	return flags
}

// stringFlag prefers an explicitly set flag over the viper value.
func stringFlag(cmd *cobra.Command, name string) string {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetString(name)
		return value
	}
	if value := viper.GetString(name); value != "" {
		return value
	}
	value, _ := cmd.Flags().GetString(name)
	return value
}

func init() {
	syncCmd.Flags().StringP("group", "g", "", "Zotero group library ID (required unless configured)")
	syncCmd.Flags().StringP("collection", "c", "", "collection key within the group")
	syncCmd.Flags().Int("limit", zotero.MaxPageSize, "maximum items to fetch in the single request")
	syncCmd.Flags().String("needs", pubsync.DefaultNeedsFile, "path of the needed-publications CSV")
	syncCmd.Flags().String("out", pubsync.DefaultOutputFile, "path of the CSV export")
	syncCmd.Flags().String("report", "", "write a YAML run report to this path")
	syncCmd.Flags().String("api-url", zotero.DefaultBaseURL, "Zotero API base URL")
	syncCmd.Flags().Bool("dry-run", false, "reconcile and report without writing the export")

	rootCmd.AddCommand(syncCmd)
}
