package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xfsops/prjquota/pkg/mount"
	"github.com/xfsops/prjquota/pkg/projid"
)

var projectCmd = &cobra.Command{
	Use:   "project PATH",
	Short: "Print the project id assigned to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		mountPoint, err := mount.FindMountPoint(path)
		if err != nil {
			return err
		}

		projectID, err := projid.NewResolver(mountPoint).ProjectID(path)
		if err != nil {
			return err
		}

		fmt.Printf("%s: project id %d (mount point %s)\n", path, projectID, mountPoint)
		return nil
	},
}
