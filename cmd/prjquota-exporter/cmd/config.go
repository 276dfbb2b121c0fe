package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the exporter runtime configuration, merged from defaults, an
// optional YAML config file and command-line flags (flags win).
type Config struct {
	Listen      string   `mapstructure:"listen"`
	MountPoints []string `mapstructure:"mount_points"`
}

var (
	configFileFlag string
	v              = viper.New()
)

func registerConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFileFlag, "config", "", "Config file (default: /etc/prjquota/exporter.yaml)")
	cmd.Flags().String("listen", ":9201", "Metrics/API listen address")
	cmd.Flags().StringSlice("mount-point", nil, "Mount point to export quotas for (repeatable)")

	_ = v.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	_ = v.BindPFlag("mount_points", cmd.Flags().Lookup("mount-point"))
}

func loadConfig() (*Config, error) {
	v.SetDefault("listen", ":9201")

	if configFileFlag != "" {
		v.SetConfigFile(configFileFlag)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("exporter")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/prjquota")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
