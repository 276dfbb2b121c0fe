package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/xfsops/prjquota/pkg/exporter"
	"github.com/xfsops/prjquota/pkg/quota"
	"github.com/xfsops/prjquota/pkg/quota/xfs"
)

var rootCmd = &cobra.Command{
	Use:   "prjquota-exporter",
	Short: "Prometheus exporter for XFS project quotas",
	Long: `prjquota-exporter serves per-project quota usage and limits of one
or more XFS mount points as Prometheus metrics, plus a read-only JSON API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flag.Parse()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.MountPoints) == 0 {
			return fmt.Errorf("no mount points configured, use --mount-point or the config file")
		}

		cli, err := xfs.NewCLI()
		if err != nil {
			return err
		}

		stores := make([]*quota.Store, 0, len(cfg.MountPoints))
		for _, mountPoint := range cfg.MountPoints {
			store, err := quota.NewStore(mountPoint, cli)
			if err != nil {
				return err
			}
			klog.InfoS("Watching mount point", "mountPoint", mountPoint)
			stores = append(stores, store)
		}

		collector := exporter.NewQuotaCollector(stores)
		router := exporter.NewRouter(stores, collector)

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return exporter.Serve(ctx, router, cfg.Listen)
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			klog.ErrorS(err, "Exporter exited with error")
			return err
		}

		klog.Info("Exporter stopped gracefully")
		return nil
	},
}

// Execute is called by main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	klog.InitFlags(nil)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	_ = flag.Set("logtostderr", "true")

	registerConfigFlags(rootCmd)
}
