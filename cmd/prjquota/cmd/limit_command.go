package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/xfsops/prjquota/pkg/quota"
	"github.com/xfsops/prjquota/pkg/quota/xfs"
)

var (
	limitSoftFlag        string
	limitHardFlag        string
	limitNoSafeSpaceFlag bool
)

var limitCmd = &cobra.Command{
	Use:   "limit MOUNTPOINT PROJECT_ID",
	Short: "Set block limits for a project id",
	Long: `Set soft and hard block limits for a project id. Sizes accept
humanized values like 5GiB or 500MB; an omitted size means "no limit".
Setting both to zero releases the quota (use the release command to also
detach the directory's project id).

Unless --no-safe-space is given, each requested limit is validated against
the volume's non-reserved free space before any change is made.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[1], err)
		}

		soft, err := parseSize(limitSoftFlag)
		if err != nil {
			return fmt.Errorf("invalid --soft value: %w", err)
		}
		hard, err := parseSize(limitHardFlag)
		if err != nil {
			return fmt.Errorf("invalid --hard value: %w", err)
		}

		cli, err := xfs.NewCLI()
		if err != nil {
			return err
		}
		store, err := quota.NewStore(args[0], cli)
		if err != nil {
			return err
		}

		if err := store.SetQuota(uint32(projectID), soft, hard, !limitNoSafeSpaceFlag); err != nil {
			return err
		}

		fmt.Printf("set project %d limits on %s: soft=%d hard=%d\n", projectID, args[0], soft, hard)
		return nil
	},
}

func parseSize(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return humanize.ParseBytes(s)
}

func init() {
	limitCmd.Flags().StringVar(&limitSoftFlag, "soft", "", "Soft block limit, e.g. 5GiB (default: no limit)")
	limitCmd.Flags().StringVar(&limitHardFlag, "hard", "", "Hard block limit, e.g. 6GiB (default: no limit)")
	limitCmd.Flags().BoolVar(&limitNoSafeSpaceFlag, "no-safe-space", false, "Skip the free-space reservation check")
}
