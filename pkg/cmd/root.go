package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/config"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/logger"
)

var (
	// Settings holds the resolved developer settings, available to all
	// subcommands after PersistentPreRunE completes.
	Settings *config.Settings

	// Log is built from Settings in PersistentPreRunE.
	Log logger.Logger = logger.Nop()
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "asset-plugin",
		Short: "Asset package bridge",
		Long:  "asset-plugin exposes npm and bower packages to a Composer-style package manager: it normalizes their versions, converts their manifests and lists their registry versions.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			level, err := logger.ParseLevel(s.LogLevel)
			if err != nil {
				return err
			}
			if s.LogFormat != "text" && s.LogFormat != "json" {
				return fmt.Errorf("unknown log format %q", s.LogFormat)
			}

			Settings = s
			Log = logger.New(&logger.Config{
				Level:  level,
				Output: cmd.ErrOrStderr(),
				JSON:   s.LogFormat == "json",
			})
			return nil
		},
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("cache-dir", "", "registry document cache (default ~/.asset-plugin/cache)")
	flags.Int("cache-size", 128, "number of registry documents kept in memory")

	root.AddCommand(newInitCmd())
	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newStabilityCmd())
	root.AddCommand(newSemverCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newPackagesCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
