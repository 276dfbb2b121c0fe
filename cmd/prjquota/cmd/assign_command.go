package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xfsops/prjquota/pkg/mount"
	"github.com/xfsops/prjquota/pkg/projid"
	"github.com/xfsops/prjquota/pkg/quota"
	"github.com/xfsops/prjquota/pkg/quota/xfs"
)

var assignProjectIDFlag uint32

var assignCmd = &cobra.Command{
	Use:   "assign PATH",
	Short: "Assign a project id to a directory",
	Long: `Assign a project id to a directory, with inheritance so children
created afterwards receive it too. Without --project-id the next free id
(highest existing id + 1) is picked.`,
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

		projectID := assignProjectIDFlag
		if projectID == 0 {
			projectID, err = store.NextProjectID()
			if err != nil {
				return err
			}
		}

		if err := projid.NewResolver(mountPoint).SetProjectID(path, projectID); err != nil {
			return err
		}

		fmt.Printf("assigned project id %d to %s\n", projectID, path)
		return nil
	},
}

func init() {
	assignCmd.Flags().Uint32Var(&assignProjectIDFlag, "project-id", 0, "Project id to assign (default: next available)")
}
