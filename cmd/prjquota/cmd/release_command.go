package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xfsops/prjquota/pkg/mount"
	"github.com/xfsops/prjquota/pkg/projid"
	"github.com/xfsops/prjquota/pkg/quota"
	"github.com/xfsops/prjquota/pkg/quota/xfs"
)

var releaseCmd = &cobra.Command{
	Use:   "release PATH",
	Short: "Release a directory's quota and project id",
	Long: `Release a directory's quota completely: reset the directory's
project id to 0, then zero both block limits for the old id. Both steps are
required for the project id to become reusable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		mountPoint, err := mount.FindMountPoint(path)
		if err != nil {
			return err
		}

		cli, err := xfs.NewCLI()
		if err != nil {
			return err
		}
		store, err := quota.NewStore(mountPoint, cli)
		if err != nil {
			return err
		}

		resolver := projid.NewResolver(mountPoint)
		projectID, err := resolver.ProjectID(path)
		if err != nil {
			return err
		}
		if projectID == 0 {
			return fmt.Errorf("no project id assigned to %s", path)
		}

		if err := resolver.SetProjectID(path, 0); err != nil {
			return err
		}
		if err := store.SetQuota(projectID, 0, 0, false); err != nil {
			return err
		}

		fmt.Printf("released project id %d from %s\n", projectID, path)
		return nil
	},
}
