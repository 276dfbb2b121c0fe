package cmd

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/xfsops/prjquota/pkg/quota"
	"github.com/xfsops/prjquota/pkg/quota/xfs"
)

var listWideFlag bool

var listCmd = &cobra.Command{
	Use:   "list MOUNTPOINT",
	Short: "List project quotas of a mount point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := xfs.NewCLI()
		if err != nil {
			return err
		}
		store, err := quota.NewStore(args[0], cli)
		if err != nil {
			return err
		}
		snapshot, err := store.Quotas()
		if err != nil {
			return err
		}

		writer := table.NewWriter()
		writer.SetOutputMirror(os.Stdout)

		header := table.Row{"PROJECT", "USED", "SOFT", "HARD", "WARN", "GRACE"}
		if listWideFlag {
			header = append(header, "USED (B)", "SOFT (B)", "HARD (B)")
		}
		writer.AppendHeader(header)

		for _, id := range snapshot.ProjectIDs() {
			q := snapshot[id]
			row := table.Row{
				q.ProjectID,
				humanize.IBytes(q.UsedBytes),
				humanize.IBytes(q.SoftBytes),
				humanize.IBytes(q.HardBytes),
				q.WarnCount,
				q.Grace,
			}
			if listWideFlag {
				row = append(row, q.UsedBytes, q.SoftBytes, q.HardBytes)
			}
			writer.AppendRow(row)
		}

		writer.Render()
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listWideFlag, "wide", false, "Also print raw byte values")
}
