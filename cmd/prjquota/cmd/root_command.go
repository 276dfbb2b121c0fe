package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var rootCmd = &cobra.Command{
	Use:   "prjquota",
	Short: "Manage XFS project (directory) quotas",
	Long: `prjquota inspects and manages XFS project quotas: it resolves the
project id assigned to a directory, assigns project ids, and queries and
sets quota limits through xfs_quota.

Mutations are not safe under concurrent invocation against the same mount
point; serialize access externally if multiple actors administer quotas.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flag.Parse()
	},
}

// Execute runs the root command, printing the failure for the operator.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	klog.InitFlags(nil)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	_ = flag.Set("logtostderr", "true")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(limitCmd)
	rootCmd.AddCommand(releaseCmd)
}
