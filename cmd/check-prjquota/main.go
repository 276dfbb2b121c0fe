// check-prjquota is a Nagios-style check for XFS project quota usage of a
// directory. It prints exactly one status line with performance data and
// exits with the matching code; any failure whatsoever is reported as
// UNKNOWN so the monitoring caller never sees silent or unparseable output.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xfsops/prjquota/pkg/check"
	"github.com/xfsops/prjquota/pkg/mount"
	"github.com/xfsops/prjquota/pkg/projid"
	"github.com/xfsops/prjquota/pkg/quota"
	"github.com/xfsops/prjquota/pkg/quota/xfs"
	"github.com/xfsops/prjquota/pkg/utils"
)

var (
	pathFlag     string
	warningFlag  int
	criticalFlag int
)

var rootCmd = &cobra.Command{
	Use:           "check-prjquota",
	Short:         "Check XFS project quota usage for given path",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		thresholds := check.Thresholds{WarnPercent: warningFlag, CritPercent: criticalFlag}
		if err := thresholds.Validate(); err != nil {
			return fmt.Errorf("bad arguments (see --help): %v", err)
		}

		result, err := runCheck(pathFlag, thresholds)
		if err != nil {
			return err
		}

		fmt.Println(result.Render())
		os.Exit(result.Status.ExitCode())
		return nil
	},
}

func runCheck(path string, thresholds check.Thresholds) (check.Result, error) {
	mountPoint, err := mount.FindMountPoint(path)
	if err != nil {
		return check.Result{}, err
	}

	cli, err := xfs.NewCLI()
	if err != nil {
		return check.Result{}, err
	}
	store, err := quota.NewStore(mountPoint, cli)
	if err != nil {
		return check.Result{}, err
	}

	projectID, err := projid.NewResolver(mountPoint).ProjectID(path)
	if err != nil {
		return check.Result{}, err
	}

	snapshot, err := store.Quotas()
	if err != nil {
		return check.Result{}, err
	}
	record, ok := snapshot[projectID]
	if !ok {
		return check.Result{}, &quota.NoQuotaFoundError{ProjectID: projectID, MountPoint: mountPoint}
	}

	// Fallback limit when no quota is configured at all.
	disk, err := utils.GetDiskUsage(mountPoint)
	if err != nil {
		return check.Result{}, err
	}

	return check.Evaluate(check.Input{
		Path:             path,
		UsedBytes:        record.UsedBytes,
		SoftBytes:        record.SoftBytes,
		HardBytes:        record.HardBytes,
		VolumeTotalBytes: disk.Total,
	}, thresholds), nil
}

func init() {
	rootCmd.Flags().StringVarP(&pathFlag, "path", "P", "", "Path to be checked")
	rootCmd.Flags().IntVarP(&warningFlag, "warning", "W", 75, "Percentage of quota use raising a warning")
	rootCmd.Flags().IntVarP(&criticalFlag, "critical", "C", 85, "Percentage of quota use raising an error")
	_ = rootCmd.MarkFlagRequired("path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("UNKNOWN: %v\n", err)
		os.Exit(check.Unknown.ExitCode())
	}
}
